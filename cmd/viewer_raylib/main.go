//go:build raylib

// viewer_raylib 使用 raylib 真 3D 渲染同一个场景
//
// 动画引擎、拾取、镜头和交互逻辑与 Ebitengine 版本完全相同（pkg/systems），
// 只有输入来源和绘制换成 raylib。raylib 和 Ebitengine 都自带 GLFW，
// 所以本程序不能引用任何依赖 ebiten 的包。
//
// 构建：
//
//	go build -tags raylib ./cmd/viewer_raylib
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/decker502/spincube/pkg/anim"
	"github.com/decker502/spincube/pkg/components"
	"github.com/decker502/spincube/pkg/config"
	"github.com/decker502/spincube/pkg/ecs"
	"github.com/decker502/spincube/pkg/entities"
	"github.com/decker502/spincube/pkg/systems"
)

// raylibInput 从 raylib 读取鼠标和键盘输入
type raylibInput struct{}

func (raylibInput) Pointer() systems.PointerState {
	pos := rl.GetMousePosition()
	return systems.PointerState{
		X:       int(pos.X),
		Y:       int(pos.Y),
		Pressed: rl.IsMouseButtonDown(rl.MouseButtonLeft),
		WheelY:  float64(rl.GetMouseWheelMove()),
	}
}

func (raylibInput) ResetRequested() bool {
	return rl.IsKeyPressed(rl.KeyR)
}

// viewer 场景状态
type viewer struct {
	cfg       *config.SceneConfig
	em        *ecs.EntityManager
	cube      ecs.EntityID
	scheduler *anim.FrameScheduler
	camera    *systems.CameraSystem
	input     *systems.InputSystem
	renders   int
}

func newViewer(cfg *config.SceneConfig) (*viewer, error) {
	v := &viewer{
		cfg:       cfg,
		em:        ecs.NewEntityManager(),
		scheduler: anim.NewFrameScheduler(),
	}
	engine := anim.NewEngine(anim.NewSystemClock(), v.scheduler)
	engine.SetEasingValidation(cfg.Animation.ValidateEasing)

	// raylib 每帧都会重绘，这里只统计重绘请求
	sink := systems.RenderFunc(func() { v.renders++ })

	var err error
	if v.cube, err = entities.NewCubeEntity(v.em, cfg); err != nil {
		return nil, err
	}
	for _, axis := range components.Axes {
		if _, err := entities.NewHandleEntity(v.em, cfg, axis); err != nil {
			return nil, err
		}
	}
	camEntity, err := entities.NewCameraEntity(v.em, cfg, cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return nil, err
	}

	animations := systems.NewAnimationSystem(v.em, engine, v.cube, cfg, sink)
	interaction := systems.NewInteractionSystem(v.em, v.cube, animations, sink)
	v.camera = systems.NewCameraSystem(v.em, engine, camEntity, cfg, sink)
	v.input = systems.NewInputSystem(v.em, raylibInput{}, v.camera, interaction, cfg.Camera.ClickSlopPx)
	return v, nil
}

func (v *viewer) update() {
	v.camera.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	v.input.Update()
	v.scheduler.RunPending()
}

// rlCamera 把轨道镜头同步为 raylib Camera3D
func (v *viewer) rlCamera() rl.Camera3D {
	cam := v.camera.Camera()
	eye := cam.Eye()
	return rl.Camera3D{
		Position:   rl.NewVector3(float32(eye.X()), float32(eye.Y()), float32(eye.Z())),
		Target:     rl.NewVector3(float32(cam.Target.X()), float32(cam.Target.Y()), float32(cam.Target.Z())),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       float32(cam.FovY),
		Projection: rl.CameraPerspective,
	}
}

func (v *viewer) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rlColor(config.MustColor(v.cfg.Colors.Background)))

	rl.BeginMode3D(v.rlCamera())
	edge := rlColor(config.MustColor(v.cfg.Colors.Edge))

	meshes := ecs.GetEntitiesWith3[*components.TransformComponent, *components.MeshComponent, *components.MaterialComponent](v.em)
	for _, id := range meshes {
		tr, _ := ecs.GetComponent[*components.TransformComponent](v.em, id)
		mesh, _ := ecs.GetComponent[*components.MeshComponent](v.em, id)
		mat, _ := ecs.GetComponent[*components.MaterialComponent](v.em, id)
		pos := rl.NewVector3(float32(tr.Position.X()), float32(tr.Position.Y()), float32(tr.Position.Z()))

		switch mesh.Kind {
		case components.MeshBox:
			rl.PushMatrix()
			rl.Translatef(pos.X, pos.Y, pos.Z)
			rl.Rotatef(float32(tr.RotationY.Current*180/math.Pi), 0, 1, 0)
			rl.Scalef(float32(tr.ScaleX.Current), float32(tr.ScaleY.Current), float32(tr.ScaleZ.Current))
			rl.DrawCube(rl.NewVector3(0, 0, 0), 1, 1, 1, rlColor(mat.Color))
			rl.DrawCubeWires(rl.NewVector3(0, 0, 0), 1, 1, 1, edge)
			rl.PopMatrix()
		case components.MeshSphere:
			rl.DrawSphereEx(pos, float32(mesh.Radius*tr.ScaleX.Current), int32(mesh.Segments), int32(mesh.Segments), rlColor(mat.Color))
		}
	}
	rl.EndMode3D()

	if tr, ok := ecs.GetComponent[*components.TransformComponent](v.em, v.cube); ok {
		status := fmt.Sprintf("scale x=%.3f y=%.3f z=%.3f  rotation=%.2fpi",
			tr.ScaleX.Current, tr.ScaleY.Current, tr.ScaleZ.Current, tr.RotationY.Current/math.Pi)
		rl.DrawText("click cube: spin  click handle: scale  drag: orbit  wheel: zoom  R: reset", 10, 10, 16, edge)
		rl.DrawText(status, 10, 32, 16, edge)
	}
	rl.EndDrawing()
}

func rlColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "场景配置文件路径（默认使用内置默认值）")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
		rl.SetTraceLogLevel(rl.LogWarning)
	}

	cfg := config.DefaultSceneConfig()
	if *configPath != "" {
		loaded, err := config.LoadSceneConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	v, err := newViewer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title+" (raylib)")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		v.update()
		v.draw()
	}
	log.Printf("[Viewer] exit after %d render requests", v.renders)
}
