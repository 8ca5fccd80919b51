package scenes

import (
	"bytes"
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/spincube/pkg/anim"
	"github.com/decker502/spincube/pkg/components"
	"github.com/decker502/spincube/pkg/config"
	"github.com/decker502/spincube/pkg/ecs"
	"github.com/decker502/spincube/pkg/entities"
	"github.com/decker502/spincube/pkg/game"
	"github.com/decker502/spincube/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// hudFontSize HUD 字号
const hudFontSize = 14

// CubeScene 旋转立方体场景
//
// 持有自己的实体管理器、动画引擎和全部系统，不依赖任何全局状态。
// 画面按需重绘：系统通过 RequestRender 标记画布为脏，
// Draw 只在画布为脏时重新光栅化，其余帧直接复用上一帧的画布。
type CubeScene struct {
	cfg      *config.SceneConfig
	settings *game.SettingsManager

	// ECS Framework and Systems
	entityManager     *ecs.EntityManager
	cubeEntity        ecs.EntityID
	cameraEntity      ecs.EntityID
	scheduler         *anim.FrameScheduler
	engine            *anim.Engine
	animationSystem   *systems.AnimationSystem
	interactionSystem *systems.InteractionSystem
	cameraSystem      *systems.CameraSystem
	inputSystem       *systems.InputSystem

	// Render-on-demand state
	canvas  *ebiten.Image
	dirty   bool
	renders int

	background color.RGBA
	edge       color.RGBA
	hudFace    *text.GoTextFace
	showHUD    bool
	mobileHint bool
}

// NewCubeScene 创建立方体场景
//
// 参数：
//   - cfg: 场景配置（必须已通过 Validate）
//   - settings: 设置管理器，可为 nil（不恢复、不保存镜头）
//   - input: 输入来源（桌面端为 utils.EbitenInput）
//
// 返回：
//   - *CubeScene: 场景实例
//   - error: 配置无效或实体创建失败
func NewCubeScene(cfg *config.SceneConfig, settings *game.SettingsManager, input systems.InputSource) (*CubeScene, error) {
	return newCubeScene(cfg, settings, input, anim.NewSystemClock())
}

func newCubeScene(cfg *config.SceneConfig, settings *game.SettingsManager, input systems.InputSource, clock anim.Clock) (*CubeScene, error) {
	if cfg == nil {
		return nil, fmt.Errorf("scene config cannot be nil")
	}
	if input == nil {
		return nil, fmt.Errorf("input source cannot be nil")
	}

	s := &CubeScene{
		cfg:           cfg,
		settings:      settings,
		entityManager: ecs.NewEntityManager(),
		scheduler:     anim.NewFrameScheduler(),
		background:    config.MustColor(cfg.Colors.Background),
		edge:          config.MustColor(cfg.Colors.Edge),
		showHUD:       true,
		dirty:         true,
	}
	s.engine = anim.NewEngine(clock, s.scheduler)
	s.engine.SetEasingValidation(cfg.Animation.ValidateEasing)

	var err error
	if s.cubeEntity, err = entities.NewCubeEntity(s.entityManager, cfg); err != nil {
		return nil, fmt.Errorf("create cube: %w", err)
	}
	for _, axis := range components.Axes {
		if _, err := entities.NewHandleEntity(s.entityManager, cfg, axis); err != nil {
			return nil, fmt.Errorf("create %s handle: %w", axis, err)
		}
	}
	if s.cameraEntity, err = entities.NewCameraEntity(s.entityManager, cfg, cfg.Window.Width, cfg.Window.Height); err != nil {
		return nil, fmt.Errorf("create camera: %w", err)
	}

	s.animationSystem = systems.NewAnimationSystem(s.entityManager, s.engine, s.cubeEntity, cfg, s)
	s.interactionSystem = systems.NewInteractionSystem(s.entityManager, s.cubeEntity, s.animationSystem, s)
	s.cameraSystem = systems.NewCameraSystem(s.entityManager, s.engine, s.cameraEntity, cfg, s)
	s.inputSystem = systems.NewInputSystem(s.entityManager, input, s.cameraSystem, s.interactionSystem, cfg.Camera.ClickSlopPx)

	if settings != nil {
		if cam := settings.GetSettings().Camera; cam != nil {
			s.cameraSystem.Restore(cam.Yaw, cam.Pitch, cam.Distance)
			log.Printf("[CubeScene] 恢复镜头: yaw=%.3f pitch=%.3f distance=%.2f", cam.Yaw, cam.Pitch, cam.Distance)
		}
	}

	if face, err := loadHUDFace(); err != nil {
		log.Printf("[CubeScene] Warning: HUD font unavailable: %v", err)
	} else {
		s.hudFace = face
	}

	log.Printf("[CubeScene] 场景初始化完成 (scale policy: %s)", cfg.ScalePolicy())
	return s, nil
}

// loadHUDFace 从内置的 Go Regular 字体创建 HUD 字体
func loadHUDFace() (*text.GoTextFace, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source: %w", err)
	}
	return &text.GoTextFace{
		Source:    source,
		Size:      hudFontSize,
		Direction: text.DirectionLeftToRight,
	}, nil
}

// Update 处理输入并推进本帧的动画 tick
func (s *CubeScene) Update(deltaTime float64) {
	s.inputSystem.Update()
	s.scheduler.RunPending()
}

// RequestRender 标记画布需要重绘（幂等，一帧内可多次调用）
func (s *CubeScene) RequestRender() {
	s.dirty = true
}

// Renders 返回实际重绘的次数
func (s *CubeScene) Renders() int {
	return s.renders
}

// Resize 实现 game.Resizable
func (s *CubeScene) Resize(width, height int) {
	s.cameraSystem.Resize(width, height)
}

// SetHUDVisible 显示/隐藏 HUD
func (s *CubeScene) SetHUDVisible(visible bool) {
	if s.showHUD != visible {
		s.showHUD = visible
		s.RequestRender()
	}
}

// HUDVisible HUD 是否可见
func (s *CubeScene) HUDVisible() bool {
	return s.showHUD
}

// SetMobileHints 使用触摸操作提示
func (s *CubeScene) SetMobileHints(mobile bool) {
	s.mobileHint = mobile
	s.RequestRender()
}

// SaveOnExit 实现 game.Saveable：把当前镜头位置写入内存中的设置
// 写盘由调用方（App.Shutdown）统一执行一次
func (s *CubeScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	cam := s.cameraSystem.Camera()
	if cam == nil {
		return true
	}

	s.settings.SetCamera(cam.Yaw.Current, cam.Pitch.Current, cam.Distance.Current)
	log.Printf("[CubeScene] 记录镜头: yaw=%.3f pitch=%.3f distance=%.2f", cam.Yaw.Current, cam.Pitch.Current, cam.Distance.Current)
	return true
}

// Close 取消进行中的动画并停止调度
func (s *CubeScene) Close() {
	s.engine.CancelAll(anim.SnapNone)
	s.scheduler.Close()
}
