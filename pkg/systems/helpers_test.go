package systems

import (
	"testing"

	"github.com/decker502/spincube/pkg/anim"
	"github.com/decker502/spincube/pkg/components"
	"github.com/decker502/spincube/pkg/config"
	"github.com/decker502/spincube/pkg/ecs"
	"github.com/decker502/spincube/pkg/entities"
)

const (
	testViewportWidth  = 800
	testViewportHeight = 600
)

// testWorld 不依赖 Ebitengine 的完整场景
type testWorld struct {
	em      *ecs.EntityManager
	cfg     *config.SceneConfig
	clock   *anim.ManualClock
	sched   *anim.FrameScheduler
	engine  *anim.Engine
	cube    ecs.EntityID
	handles map[components.Axis]ecs.EntityID
	camera  ecs.EntityID

	renders int

	animations  *AnimationSystem
	interaction *InteractionSystem
	cameraSys   *CameraSystem
}

func newTestWorld(t *testing.T, cfg *config.SceneConfig) *testWorld {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultSceneConfig()
	}

	w := &testWorld{
		em:      ecs.NewEntityManager(),
		cfg:     cfg,
		clock:   anim.NewManualClock(0),
		sched:   anim.NewFrameScheduler(),
		handles: make(map[components.Axis]ecs.EntityID),
	}
	w.engine = anim.NewEngine(w.clock, w.sched)

	var err error
	if w.cube, err = entities.NewCubeEntity(w.em, cfg); err != nil {
		t.Fatalf("NewCubeEntity: %v", err)
	}
	for _, axis := range components.Axes {
		id, err := entities.NewHandleEntity(w.em, cfg, axis)
		if err != nil {
			t.Fatalf("NewHandleEntity(%s): %v", axis, err)
		}
		w.handles[axis] = id
	}
	if w.camera, err = entities.NewCameraEntity(w.em, cfg, testViewportWidth, testViewportHeight); err != nil {
		t.Fatalf("NewCameraEntity: %v", err)
	}

	sink := RenderFunc(func() { w.renders++ })
	w.animations = NewAnimationSystem(w.em, w.engine, w.cube, cfg, sink)
	w.interaction = NewInteractionSystem(w.em, w.cube, w.animations, sink)
	w.cameraSys = NewCameraSystem(w.em, w.engine, w.camera, cfg, sink)
	return w
}

// frame 推进时间并执行一帧 tick
func (w *testWorld) frame(deltaMs float64) {
	w.clock.Advance(deltaMs)
	w.sched.RunPending()
}

// runFor 以 16ms 帧间隔运行 totalMs
func (w *testWorld) runFor(totalMs float64) {
	for elapsed := 0.0; elapsed < totalMs; elapsed += 16 {
		w.frame(16)
	}
}

func (w *testWorld) cubeTransform(t *testing.T) *components.TransformComponent {
	t.Helper()
	tr, ok := ecs.GetComponent[*components.TransformComponent](w.em, w.cube)
	if !ok {
		t.Fatal("cube has no transform")
	}
	return tr
}

func (w *testWorld) cubeMaterial(t *testing.T) *components.MaterialComponent {
	t.Helper()
	m, ok := ecs.GetComponent[*components.MaterialComponent](w.em, w.cube)
	if !ok {
		t.Fatal("cube has no material")
	}
	return m
}

// fakeInput 可编程的输入来源
type fakeInput struct {
	state PointerState
	reset bool
}

func (f *fakeInput) Pointer() PointerState {
	s := f.state
	// 滚轮只在一帧内有效
	f.state.WheelY = 0
	return s
}

func (f *fakeInput) ResetRequested() bool {
	r := f.reset
	f.reset = false
	return r
}
