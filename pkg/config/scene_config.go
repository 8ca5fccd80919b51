package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/decker502/spincube/pkg/anim"
	"gopkg.in/yaml.v3"
)

// DefaultSceneConfigPath 内嵌默认配置的路径
const DefaultSceneConfigPath = "data/scene.yaml"

// ErrScaleRange scaleTarget 必须大于 restScale，否则缩放无法在两者之间切换
var ErrScaleRange = errors.New("scaleTarget must be greater than restScale")

// SceneConfig 场景配置
//
// 包含动画参数、手柄、颜色、镜头和窗口设置。
// 所有动画常量都可以通过配置调整，默认值与原始场景一致。
//
// 配置文件位置: data/scene.yaml
type SceneConfig struct {
	Animation AnimationConfig `yaml:"animation"`
	Handles   HandlesConfig   `yaml:"handles"`
	Colors    ColorsConfig    `yaml:"colors"`
	Camera    CameraConfig    `yaml:"camera"`
	Window    WindowConfig    `yaml:"window"`
}

// AnimationConfig 动画参数
type AnimationConfig struct {
	// RotationSpeed 每次点击旋转的角度增量（弧度），默认 2π（一整圈）
	RotationSpeed float64 `yaml:"rotationSpeed"`

	// RotationDurationMs 旋转动画时长（毫秒）
	RotationDurationMs float64 `yaml:"rotationDurationMs"`

	// ScaleDurationMs 缩放动画时长（毫秒）
	ScaleDurationMs float64 `yaml:"scaleDurationMs"`

	// ScaleEasingExponent 缩放缓动指数 k：eased = 1 - (1-p)^k
	ScaleEasingExponent float64 `yaml:"scaleEasingExponent"`

	// ScaleTarget 展开状态的缩放值
	ScaleTarget float64 `yaml:"scaleTarget"`

	// RestScale 静止状态的缩放值
	RestScale float64 `yaml:"restScale"`

	// ScalePolicy 缩放动画进行中再次点击同一轴时的策略："restart" 或 "reject"
	ScalePolicy string `yaml:"scalePolicy"`

	// CameraResetDurationMs 镜头复位动画时长（毫秒）
	CameraResetDurationMs float64 `yaml:"cameraResetDurationMs"`

	// ValidateEasing 启动动画前校验缓动函数（调试用途）
	ValidateEasing bool `yaml:"validateEasing"`
}

// HandlesConfig 轴向手柄
type HandlesConfig struct {
	// Radius 手柄球体半径
	Radius float64 `yaml:"radius"`

	// Segments 球体分段数
	Segments int `yaml:"segments"`

	// Offset 手柄到原点的距离（沿各自的轴）
	Offset float64 `yaml:"offset"`

	// ColorX/ColorY/ColorZ 手柄颜色（#rrggbb）
	ColorX string `yaml:"colorX"`
	ColorY string `yaml:"colorY"`
	ColorZ string `yaml:"colorZ"`
}

// ColorsConfig 颜色配置（#rrggbb）
type ColorsConfig struct {
	Active     string `yaml:"active"`
	Inactive   string `yaml:"inactive"`
	Background string `yaml:"background"`
	Edge       string `yaml:"edge"`
}

// CameraConfig 镜头和轨道控制
type CameraConfig struct {
	FovDegrees  float64 `yaml:"fovDegrees"`
	Near        float64 `yaml:"near"`
	Far         float64 `yaml:"far"`
	Distance    float64 `yaml:"distance"`
	MinDistance float64 `yaml:"minDistance"`
	MaxDistance float64 `yaml:"maxDistance"`

	// YawDegrees/PitchDegrees 初始角度
	YawDegrees   float64 `yaml:"yawDegrees"`
	PitchDegrees float64 `yaml:"pitchDegrees"`

	// RotateSpeed 拖动旋转速度（弧度/像素）
	RotateSpeed float64 `yaml:"rotateSpeed"`

	// ZoomSpeed 滚轮缩放比例（每格滚轮）
	ZoomSpeed float64 `yaml:"zoomSpeed"`

	// ClickSlopPx 按下到抬起移动不超过该像素数时视为点击，否则视为拖动
	ClickSlopPx int `yaml:"clickSlopPx"`
}

// WindowConfig 窗口设置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// DefaultSceneConfig 返回默认配置
func DefaultSceneConfig() *SceneConfig {
	return &SceneConfig{
		Animation: AnimationConfig{
			RotationSpeed:         2 * math.Pi,
			RotationDurationMs:    1000,
			ScaleDurationMs:       1000,
			ScaleEasingExponent:   0.5,
			ScaleTarget:           1.5,
			RestScale:             1.0,
			ScalePolicy:           "restart",
			CameraResetDurationMs: 600,
		},
		Handles: HandlesConfig{
			Radius:   0.1,
			Segments: 16,
			Offset:   1.0,
			ColorX:   "#ff0000",
			ColorY:   "#00ff00",
			ColorZ:   "#0000ff",
		},
		Colors: ColorsConfig{
			Active:     "#ffc0cb",
			Inactive:   "#dda0dd",
			Background: "#f0f0f0",
			Edge:       "#6b4c6b",
		},
		Camera: CameraConfig{
			FovDegrees:  75,
			Near:        0.1,
			Far:         1000,
			Distance:    5,
			MinDistance: 1.5,
			MaxDistance: 50,
			RotateSpeed: 0.01,
			ZoomSpeed:   0.1,
			ClickSlopPx: 4,
		},
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "spincube",
		},
	}
}

// LoadSceneConfig 从文件加载场景配置
//
// 参数:
//   - path: 配置文件路径（如 "data/scene.yaml"）
//
// 返回:
//   - *SceneConfig: 加载成功后的配置
//   - error: 读取、解析或验证失败
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}
	return ParseSceneConfig(data)
}

// ParseSceneConfig 解析 YAML 格式的场景配置
//
// 未出现的字段保留默认值，因此配置文件可以只写需要覆盖的部分。
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	cfg := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
func (c *SceneConfig) Validate() error {
	a := c.Animation
	if !(a.RotationDurationMs > 0) {
		return fmt.Errorf("rotationDurationMs must be > 0, got %v", a.RotationDurationMs)
	}
	if !(a.ScaleDurationMs > 0) {
		return fmt.Errorf("scaleDurationMs must be > 0, got %v", a.ScaleDurationMs)
	}
	if !(a.CameraResetDurationMs > 0) {
		return fmt.Errorf("cameraResetDurationMs must be > 0, got %v", a.CameraResetDurationMs)
	}
	if !(a.ScaleEasingExponent > 0) {
		return fmt.Errorf("scaleEasingExponent must be > 0, got %v", a.ScaleEasingExponent)
	}
	if !(a.RestScale > 0) || !(a.ScaleTarget > 0) {
		return fmt.Errorf("scaleTarget(%v) and restScale(%v) must be > 0", a.ScaleTarget, a.RestScale)
	}
	if a.ScaleTarget <= a.RestScale {
		return fmt.Errorf("%w: scaleTarget=%v restScale=%v", ErrScaleRange, a.ScaleTarget, a.RestScale)
	}
	if _, err := anim.ParsePolicy(a.ScalePolicy); err != nil {
		return err
	}

	if !(c.Handles.Radius > 0) {
		return fmt.Errorf("handle radius must be > 0, got %v", c.Handles.Radius)
	}
	if c.Handles.Segments < 3 {
		return fmt.Errorf("handle segments must be >= 3, got %d", c.Handles.Segments)
	}

	for name, value := range map[string]string{
		"colors.active":     c.Colors.Active,
		"colors.inactive":   c.Colors.Inactive,
		"colors.background": c.Colors.Background,
		"colors.edge":       c.Colors.Edge,
		"handles.colorX":    c.Handles.ColorX,
		"handles.colorY":    c.Handles.ColorY,
		"handles.colorZ":    c.Handles.ColorZ,
	} {
		if _, err := ParseColor(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	cam := c.Camera
	if cam.FovDegrees <= 0 || cam.FovDegrees >= 180 {
		return fmt.Errorf("camera fovDegrees must be in (0, 180), got %v", cam.FovDegrees)
	}
	if !(cam.Near > 0) || cam.Far <= cam.Near {
		return fmt.Errorf("camera near(%v)/far(%v) invalid", cam.Near, cam.Far)
	}
	if cam.MinDistance <= 0 || cam.MinDistance > cam.MaxDistance {
		return fmt.Errorf("camera distance range invalid: min(%.2f) > max(%.2f)", cam.MinDistance, cam.MaxDistance)
	}
	if cam.Distance < cam.MinDistance || cam.Distance > cam.MaxDistance {
		return fmt.Errorf("camera distance %.2f outside [%.2f, %.2f]", cam.Distance, cam.MinDistance, cam.MaxDistance)
	}
	if cam.ClickSlopPx < 0 {
		return fmt.Errorf("camera clickSlopPx must be >= 0, got %d", cam.ClickSlopPx)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

// ScalePolicy 返回解析后的缩放策略
func (c *SceneConfig) ScalePolicy() anim.Policy {
	p, err := anim.ParsePolicy(c.Animation.ScalePolicy)
	if err != nil {
		return anim.PolicyRestart
	}
	return p
}

// ParseColor 解析 "#rrggbb" 或 "#rrggbbaa" 颜色
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q (want #rrggbb)", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// MustColor 解析已经过 Validate 的颜色，失败时返回不透明黑色
func MustColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}
