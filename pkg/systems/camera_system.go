package systems

import (
	"log"
	"math"

	"github.com/decker502/spincube/pkg/anim"
	"github.com/decker502/spincube/pkg/components"
	"github.com/decker502/spincube/pkg/config"
	"github.com/decker502/spincube/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// 俯仰角限制，避免越过天顶时 LookAt 的 up 向量翻转
const maxPitch = 89 * math.Pi / 180

// CameraSystem 轨道镜头控制
//
// 拖动旋转、滚轮缩放、窗口尺寸变化时更新宽高比，
// 以及按 R 键用动画引擎平滑复位。任何镜头变化都会请求重绘。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID
	engine        *anim.Engine
	sink          RenderSink

	cfg             config.CameraConfig
	resetDurationMs float64
}

// NewCameraSystem 创建镜头控制系统
func NewCameraSystem(em *ecs.EntityManager, engine *anim.Engine, cameraEntity ecs.EntityID, cfg *config.SceneConfig, sink RenderSink) *CameraSystem {
	return &CameraSystem{
		entityManager:   em,
		cameraEntity:    cameraEntity,
		engine:          engine,
		sink:            sink,
		cfg:             cfg.Camera,
		resetDurationMs: cfg.Animation.CameraResetDurationMs,
	}
}

// Camera 返回镜头组件
func (s *CameraSystem) Camera() *components.OrbitCameraComponent {
	cam, ok := ecs.GetComponent[*components.OrbitCameraComponent](s.entityManager, s.cameraEntity)
	if !ok {
		return nil
	}
	return cam
}

// Orbit 按拖动像素旋转镜头
func (s *CameraSystem) Orbit(dxPx, dyPx float64) {
	cam := s.Camera()
	if cam == nil || (dxPx == 0 && dyPx == 0) {
		return
	}
	s.cancelReset(cam)

	cam.Yaw.Current -= dxPx * s.cfg.RotateSpeed
	cam.Pitch.Current = clamp(cam.Pitch.Current+dyPx*s.cfg.RotateSpeed, -maxPitch, maxPitch)
	s.sink.RequestRender()
}

// Zoom 按滚轮刻度缩放，正值拉近
func (s *CameraSystem) Zoom(wheelY float64) {
	cam := s.Camera()
	if cam == nil || wheelY == 0 {
		return
	}
	s.cancelReset(cam)

	factor := math.Pow(1-s.cfg.ZoomSpeed, wheelY)
	cam.Distance.Current = clamp(cam.Distance.Current*factor, s.cfg.MinDistance, s.cfg.MaxDistance)
	s.sink.RequestRender()
}

// Resize 更新视口尺寸并重新计算投影宽高比
// 尺寸未变化时不做任何事
func (s *CameraSystem) Resize(width, height int) {
	cam := s.Camera()
	if cam == nil || width <= 0 || height <= 0 {
		return
	}
	if cam.ViewportWidth == width && cam.ViewportHeight == height {
		return
	}
	cam.ViewportWidth = width
	cam.ViewportHeight = height
	log.Printf("[CameraSystem] 视口尺寸变化: %dx%d (aspect %.3f)", width, height, cam.Aspect())
	s.sink.RequestRender()
}

// Restore 设置镜头角度和距离（用于加载存档），距离会被限制在配置范围内
func (s *CameraSystem) Restore(yaw, pitch, distance float64) {
	cam := s.Camera()
	if cam == nil {
		return
	}
	cam.Yaw.Current = yaw
	cam.Pitch.Current = clamp(pitch, -maxPitch, maxPitch)
	cam.Distance.Current = clamp(distance, s.cfg.MinDistance, s.cfg.MaxDistance)
	s.sink.RequestRender()
}

// Reset 平滑复位到配置中的初始角度和距离
func (s *CameraSystem) Reset() {
	cam := s.Camera()
	if cam == nil {
		return
	}

	// 偏航角取最近的等价角度，避免多转几圈
	homeYaw := mgl64.DegToRad(s.cfg.YawDegrees)
	yawTarget := cam.Yaw.Current + wrapAngle(homeYaw-cam.Yaw.Current)

	targets := []struct {
		value  *anim.Value
		target float64
	}{
		{&cam.Yaw, yawTarget},
		{&cam.Pitch, mgl64.DegToRad(s.cfg.PitchDegrees)},
		{&cam.Distance, s.cfg.Distance},
	}

	log.Printf("[CameraSystem] 镜头复位")
	for _, t := range targets {
		if _, err := s.engine.Start(t.value, t.target, s.resetDurationMs, anim.EaseOutCubic, anim.PolicyRestart, s.sink.RequestRender, nil); err != nil {
			log.Printf("[CameraSystem] 复位动画启动失败: %v", err)
		}
	}
}

// IsResetting 复位动画是否进行中
func (s *CameraSystem) IsResetting() bool {
	cam := s.Camera()
	if cam == nil {
		return false
	}
	return s.engine.StateOf(&cam.Yaw) == anim.StateAnimating ||
		s.engine.StateOf(&cam.Pitch) == anim.StateAnimating ||
		s.engine.StateOf(&cam.Distance) == anim.StateAnimating
}

// cancelReset 用户操作优先于复位动画
func (s *CameraSystem) cancelReset(cam *components.OrbitCameraComponent) {
	for _, v := range []*anim.Value{&cam.Yaw, &cam.Pitch, &cam.Distance} {
		if a, ok := s.engine.AnimationOf(v); ok {
			a.Cancel(anim.SnapNone)
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// wrapAngle 把角度规约到 (-π, π]
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
