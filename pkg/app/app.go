// Package app 提供查看器应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/decker502/spincube/pkg/config"
	"github.com/decker502/spincube/pkg/embedded"
	"github.com/decker502/spincube/pkg/game"
	"github.com/decker502/spincube/pkg/scenes"
	"github.com/decker502/spincube/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppName gdata 存储使用的应用名
const AppName = "spincube"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 场景配置文件路径，为空时使用嵌入的 data/scene.yaml
	ConfigPath string
	// NoPersist 不读写磁盘上的设置（镜头位置、全屏状态）
	NoPersist bool
}

// App 是查看器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	scene        *scenes.CubeScene
	settings     *game.SettingsManager
	sceneConfig  *config.SceneConfig
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
	shutdown                 bool
}

// NewApp 创建并初始化查看器应用
//
// 桌面端调用此函数前应先调用 embedded.Init()，否则使用内置默认配置。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	sceneConfig, err := LoadSceneConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("场景配置加载失败: %w", err)
	}

	var settings *game.SettingsManager
	if cfg.NoPersist {
		settings, _ = game.NewSettingsManager(nil)
	} else {
		if err := utils.EnsureStorageDir(); err != nil {
			log.Printf("[App] Warning: storage dir unavailable: %v", err)
		}
		settings = game.OpenSettingsManager(AppName)
	}

	scene, err := scenes.NewCubeScene(sceneConfig, settings, utils.NewEbitenInput())
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}
	scene.SetMobileHints(utils.IsMobile())

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)
	log.Printf("[App] Scene ready (%dx%d, persist=%v)", sceneConfig.Window.Width, sceneConfig.Window.Height, settings.IsPersistent())

	return &App{
		sceneManager: sceneManager,
		scene:        scene,
		settings:     settings,
		sceneConfig:  sceneConfig,
		verbose:      cfg.Verbose,
	}, nil
}

// LoadSceneConfig 按优先级加载场景配置
//
// 优先级：
//  1. path 指定的文件
//  2. 嵌入的 data/scene.yaml
//  3. config.DefaultSceneConfig()
func LoadSceneConfig(path string) (*config.SceneConfig, error) {
	if path != "" {
		log.Printf("[Config] 加载场景配置: %s", path)
		return config.LoadSceneConfig(path)
	}

	data, err := embedded.ReadFile(config.DefaultSceneConfigPath)
	switch {
	case err == nil:
		log.Printf("[Config] 使用嵌入的场景配置: %s", config.DefaultSceneConfigPath)
		return config.ParseSceneConfig(data)
	case errors.Is(err, embedded.ErrNotInitialized):
		log.Printf("[Config] 嵌入资源未初始化，使用默认场景配置")
		return config.DefaultSceneConfig(), nil
	default:
		return nil, fmt.Errorf("read embedded %s: %w", config.DefaultSceneConfigPath, err)
	}
}

// ConfigureWindow 在 RunGame 前设置窗口属性
func (a *App) ConfigureWindow() {
	w := a.sceneConfig.Window
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	// 画面只在需要时重绘，空闲帧不清屏
	ebiten.SetScreenClearedEveryFrame(false)

	if a.settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || ebiten.IsWindowBeingClosed() {
		a.Shutdown()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.sceneConfig.Window.Width, a.sceneConfig.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.sceneConfig.Window.Width, a.sceneConfig.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// H 显示/隐藏 HUD
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.scene.SetHUDVisible(!a.scene.HUDVisible())
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settings.SetFullscreen(false)
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		return
	}
	ebiten.SetFullscreen(true)
	a.settings.SetFullscreen(true)
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 逻辑屏幕尺寸跟随窗口尺寸，并把尺寸转发给场景（更新镜头宽高比）
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Shutdown 保存场景状态和设置，只执行一次
// 场景只更新内存中的设置，这里统一写盘一次
func (a *App) Shutdown() {
	if a.shutdown {
		return
	}
	a.shutdown = true

	if !a.sceneManager.SaveOnExit() {
		log.Printf("[App] Warning: scene state was not saved")
	}
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
	a.scene.Close()
	log.Printf("[App] Shutdown complete")
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
