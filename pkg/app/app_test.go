package app

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/decker502/spincube/pkg/config"
	"github.com/decker502/spincube/pkg/embedded"
	"github.com/decker502/spincube/pkg/game"
	"github.com/decker502/spincube/pkg/scenes"
	"github.com/decker502/spincube/pkg/systems"
	"github.com/quasilyte/gdata/v2"
)

// TestLoadSceneConfig 测试配置加载优先级
func TestLoadSceneConfig(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(custom, []byte("window:\n  width: 1024\n  height: 768\n"), 0644); err != nil {
		t.Fatal(err)
	}
	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("animation:\n  scaleDurationMs: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	embeddedFS := fstest.MapFS{
		"data/scene.yaml": &fstest.MapFile{Data: []byte("window:\n  title: embedded\n")},
	}

	tests := []struct {
		name      string
		embedded  fstest.MapFS
		path      string
		wantErr   bool
		wantWidth int
		wantTitle string
	}{
		{"未初始化嵌入资源时使用默认值", nil, "", false, 800, "spincube"},
		{"使用嵌入配置", embeddedFS, "", false, 800, "embedded"},
		{"命令行文件优先", embeddedFS, custom, false, 1024, "spincube"},
		{"无效配置文件", embeddedFS, broken, true, 0, ""},
		{"文件不存在", nil, filepath.Join(dir, "missing.yaml"), true, 0, ""},
		{"嵌入资源缺少配置", fstest.MapFS{}, "", true, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.embedded != nil {
				embedded.Init(tt.embedded)
			} else {
				embedded.Init(nil)
			}
			t.Cleanup(func() { embedded.Init(nil) })

			cfg, err := LoadSceneConfig(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadSceneConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg.Window.Width != tt.wantWidth {
				t.Errorf("Window.Width = %d, want %d", cfg.Window.Width, tt.wantWidth)
			}
			if cfg.Window.Title != tt.wantTitle {
				t.Errorf("Window.Title = %q, want %q", cfg.Window.Title, tt.wantTitle)
			}
			if cfg.Animation != config.DefaultSceneConfig().Animation {
				t.Errorf("Animation = %+v, want defaults", cfg.Animation)
			}
		})
	}
}

// idleInput 没有任何输入
type idleInput struct{}

func (idleInput) Pointer() systems.PointerState { return systems.PointerState{} }
func (idleInput) ResetRequested() bool          { return false }

// TestShutdownPersistsSettings 测试退出时镜头位置和全屏状态写盘，重复调用无效果
func TestShutdownPersistsSettings(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")
	m, err := gdata.Open(gdata.Config{AppName: "spincube-app-test"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	settings, _ := game.NewSettingsManager(m)
	settings.SetFullscreen(true)

	scene, err := scenes.NewCubeScene(config.DefaultSceneConfig(), settings, idleInput{})
	if err != nil {
		t.Fatalf("NewCubeScene: %v", err)
	}
	sm := game.NewSceneManager()
	sm.SwitchTo(scene)
	a := &App{sceneManager: sm, scene: scene, settings: settings, sceneConfig: config.DefaultSceneConfig()}

	a.Shutdown()
	a.Shutdown()

	reopened, _ := game.NewSettingsManager(m)
	got := reopened.GetSettings()
	if got.Camera == nil {
		t.Fatal("camera was not persisted on shutdown")
	}
	if got.Camera.Distance != config.DefaultSceneConfig().Camera.Distance {
		t.Errorf("Camera.Distance = %v, want %v", got.Camera.Distance, config.DefaultSceneConfig().Camera.Distance)
	}
	if !got.Fullscreen {
		t.Error("Fullscreen should be persisted")
	}
}
