package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// CameraSettings 上次退出时的镜头位置
type CameraSettings struct {
	Yaw      float64 `yaml:"yaw"`      // 弧度
	Pitch    float64 `yaml:"pitch"`    // 弧度
	Distance float64 `yaml:"distance"` // 到目标点的距离
}

// SceneSettings 跨会话保存的查看器设置
type SceneSettings struct {
	// Camera 为 nil 表示没有保存过镜头位置，使用配置中的初始值
	Camera *CameraSettings `yaml:"camera,omitempty"`

	// Fullscreen 启动时是否全屏
	Fullscreen bool `yaml:"fullscreen"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *SceneSettings {
	return &SceneSettings{
		Camera:     nil,
		Fullscreen: false,
	}
}

// SettingsManager 设置管理器
// 负责查看器设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *SceneSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方的错误（加载失败不会返回错误，只记录日志）
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// OpenSettingsManager 打开应用的 gdata 存储并创建设置管理器
//
// gdata 打开失败时退化为仅内存模式，不返回错误。
func OpenSettingsManager(appName string) *SettingsManager {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (settings will not persist)", err)
		manager = nil
	}
	sm, _ := NewSettingsManager(manager)
	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded SceneSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// IsPersistent 设置是否能写入磁盘
func (sm *SettingsManager) IsPersistent() bool {
	return sm.gdataManager != nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *SceneSettings {
	return sm.settings
}

// SetCamera 记录镜头位置
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetCamera(yaw, pitch, distance float64) {
	sm.settings.Camera = &CameraSettings{Yaw: yaw, Pitch: pitch, Distance: distance}
}

// ClearCamera 清除保存的镜头位置
func (sm *SettingsManager) ClearCamera() {
	sm.settings.Camera = nil
}

// SetFullscreen 设置全屏模式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}
