package scenes

import (
	"strings"
	"testing"

	"github.com/decker502/spincube/pkg/anim"
	"github.com/decker502/spincube/pkg/components"
	"github.com/decker502/spincube/pkg/config"
	"github.com/decker502/spincube/pkg/ecs"
	"github.com/decker502/spincube/pkg/game"
	"github.com/decker502/spincube/pkg/systems"
	"github.com/quasilyte/gdata/v2"
)

// scriptedInput 按帧回放的输入
type scriptedInput struct {
	frames []systems.PointerState
	reset  bool
}

func (in *scriptedInput) Pointer() systems.PointerState {
	if len(in.frames) == 0 {
		return systems.PointerState{}
	}
	p := in.frames[0]
	in.frames = in.frames[1:]
	return p
}

func (in *scriptedInput) ResetRequested() bool {
	r := in.reset
	in.reset = false
	return r
}

func newTestScene(t *testing.T, settings *game.SettingsManager) (*CubeScene, *scriptedInput, *anim.ManualClock) {
	t.Helper()
	input := &scriptedInput{}
	clock := anim.NewManualClock(0)
	s, err := newCubeScene(config.DefaultSceneConfig(), settings, input, clock)
	if err != nil {
		t.Fatalf("newCubeScene: %v", err)
	}
	return s, input, clock
}

// TestNewCubeScene_InvalidArgs 测试参数校验
func TestNewCubeScene_InvalidArgs(t *testing.T) {
	if _, err := NewCubeScene(nil, nil, &scriptedInput{}); err == nil {
		t.Error("nil config should fail")
	}
	if _, err := NewCubeScene(config.DefaultSceneConfig(), nil, nil); err == nil {
		t.Error("nil input should fail")
	}
}

// TestCubeScene_ClickStartsAnimations 测试点击手柄后旋转和缩放按帧推进
func TestCubeScene_ClickStartsAnimations(t *testing.T) {
	s, input, clock := newTestScene(t, nil)
	s.dirty = false

	// 默认视角下屏幕中心是 Z 手柄
	input.frames = []systems.PointerState{
		{X: 400, Y: 300, Pressed: true},
		{X: 400, Y: 300, Pressed: false},
	}
	s.Update(1.0 / 60)
	s.Update(1.0 / 60)

	if !s.dirty {
		t.Fatal("click should request a redraw")
	}
	if !s.animationSystem.IsRotating() || !s.animationSystem.IsScaling(components.AxisZ) {
		t.Fatal("handle click should start rotation and z scale")
	}

	for i := 0; i < 70; i++ {
		clock.Advance(16)
		s.Update(1.0 / 60)
	}

	tr, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.cubeEntity)
	if tr.ScaleZ.Current != 1.5 {
		t.Errorf("scale.z = %v, want 1.5", tr.ScaleZ.Current)
	}
	if s.animationSystem.IsRotating() {
		t.Error("rotation should have completed")
	}
}

// TestCubeScene_IdleDoesNotRequestRender 测试无输入无动画时不请求重绘
func TestCubeScene_IdleDoesNotRequestRender(t *testing.T) {
	s, _, clock := newTestScene(t, nil)
	s.dirty = false

	for i := 0; i < 10; i++ {
		clock.Advance(16)
		s.Update(1.0 / 60)
	}
	if s.dirty {
		t.Error("idle frames should not mark the canvas dirty")
	}
}

// TestCubeScene_Resize 测试尺寸变化请求重绘
func TestCubeScene_Resize(t *testing.T) {
	s, _, _ := newTestScene(t, nil)
	s.dirty = false

	s.Resize(800, 600)
	if s.dirty {
		t.Error("same size should not request a redraw")
	}

	s.Resize(1280, 720)
	if !s.dirty {
		t.Error("new size should request a redraw")
	}
	cam := s.cameraSystem.Camera()
	if cam.ViewportWidth != 1280 || cam.ViewportHeight != 720 {
		t.Errorf("viewport = %dx%d, want 1280x720", cam.ViewportWidth, cam.ViewportHeight)
	}
}

// TestCubeScene_SaveAndRestoreCamera 测试镜头位置跨场景保存和恢复
func TestCubeScene_SaveAndRestoreCamera(t *testing.T) {
	settings, _ := game.NewSettingsManager(nil)

	s, _, _ := newTestScene(t, settings)
	s.cameraSystem.Orbit(50, 20)
	s.cameraSystem.Zoom(1)
	if !s.SaveOnExit() {
		t.Fatal("SaveOnExit should succeed")
	}

	saved := settings.GetSettings().Camera
	if saved == nil {
		t.Fatal("camera was not saved")
	}
	cam := s.cameraSystem.Camera()
	if saved.Yaw != cam.Yaw.Current || saved.Pitch != cam.Pitch.Current || saved.Distance != cam.Distance.Current {
		t.Errorf("saved %+v, camera (%v, %v, %v)", *saved, cam.Yaw.Current, cam.Pitch.Current, cam.Distance.Current)
	}

	restored, _, _ := newTestScene(t, settings)
	rc := restored.cameraSystem.Camera()
	if rc.Yaw.Current != saved.Yaw || rc.Pitch.Current != saved.Pitch || rc.Distance.Current != saved.Distance {
		t.Errorf("restored (%v, %v, %v), want %+v", rc.Yaw.Current, rc.Pitch.Current, rc.Distance.Current, *saved)
	}
}

// TestCubeScene_SaveOnExitDoesNotWrite 测试 SaveOnExit 只更新内存中的设置
func TestCubeScene_SaveOnExitDoesNotWrite(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")
	m, err := gdata.Open(gdata.Config{AppName: "spincube-scene-test"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	settings, _ := game.NewSettingsManager(m)

	s, _, _ := newTestScene(t, settings)
	s.cameraSystem.Orbit(40, 0)
	if !s.SaveOnExit() {
		t.Fatal("SaveOnExit should succeed")
	}
	if settings.GetSettings().Camera == nil {
		t.Fatal("camera should be recorded in memory")
	}

	reopened, _ := game.NewSettingsManager(m)
	if reopened.GetSettings().Camera != nil {
		t.Errorf("SaveOnExit should not write to disk, got %+v", *reopened.GetSettings().Camera)
	}
}

// TestCubeScene_SaveWithoutSettings 测试无设置管理器时保存为空操作
func TestCubeScene_SaveWithoutSettings(t *testing.T) {
	s, _, _ := newTestScene(t, nil)
	if !s.SaveOnExit() {
		t.Error("SaveOnExit without settings should report success")
	}
}

// TestCubeScene_HUDText 测试 HUD 文本
func TestCubeScene_HUDText(t *testing.T) {
	s, _, _ := newTestScene(t, nil)

	got := s.hudText()
	for _, want := range []string{"scale x=1.000 y=1.000 z=1.000", "rotation=0.00π", "R: reset view"} {
		if !strings.Contains(got, want) {
			t.Errorf("hudText() = %q, missing %q", got, want)
		}
	}

	s.SetMobileHints(true)
	if got := s.hudText(); !strings.Contains(got, "tap cube") {
		t.Errorf("mobile hudText() = %q, want tap hints", got)
	}
}

// TestCubeScene_Close 测试关闭后动画不再推进
func TestCubeScene_Close(t *testing.T) {
	s, _, clock := newTestScene(t, nil)
	if _, err := s.animationSystem.StartRotation(); err != nil {
		t.Fatalf("StartRotation: %v", err)
	}

	s.Close()
	if s.engine.Active() != 0 {
		t.Errorf("active animations = %d, want 0", s.engine.Active())
	}
	clock.Advance(100)
	s.Update(1.0 / 60)
}
