package systems

import (
	"log"

	"github.com/decker502/spincube/pkg/components"
	"github.com/decker502/spincube/pkg/ecs"
)

// PointerState 当前帧的指针状态（鼠标或触摸）
type PointerState struct {
	// X, Y 指针位置（逻辑像素，原点左上）
	X, Y int
	// Pressed 左键/触摸是否按下
	Pressed bool
	// WheelY 本帧滚轮刻度，正值表示向上滚（拉近）
	WheelY float64
}

// InputSource 输入来源
// 桌面端由 utils.EbitenInput 实现，测试中使用假实现
type InputSource interface {
	Pointer() PointerState
	ResetRequested() bool
}

// InputSystem 把原始指针状态转换为点击、拖动和缩放
//
// 按下到抬起的移动距离不超过 clickSlop 像素视为点击，
// 否则视为拖动旋转镜头，抬起时不触发点击。
type InputSystem struct {
	entityManager *ecs.EntityManager
	source        InputSource
	camera        *CameraSystem
	interaction   *InteractionSystem
	clickSlop     int

	pressed        bool
	dragging       bool
	pressX, pressY int
	lastX, lastY   int
}

// NewInputSystem 创建输入系统
func NewInputSystem(em *ecs.EntityManager, source InputSource, camera *CameraSystem, interaction *InteractionSystem, clickSlop int) *InputSystem {
	return &InputSystem{
		entityManager: em,
		source:        source,
		camera:        camera,
		interaction:   interaction,
		clickSlop:     clickSlop,
	}
}

// Update 处理一帧输入
func (s *InputSystem) Update() {
	p := s.source.Pointer()

	if p.WheelY != 0 {
		s.camera.Zoom(p.WheelY)
	}
	if s.source.ResetRequested() {
		s.camera.Reset()
	}

	switch {
	case p.Pressed && !s.pressed:
		s.pressX, s.pressY = p.X, p.Y
		s.lastX, s.lastY = p.X, p.Y
		s.dragging = false

	case p.Pressed && s.pressed:
		if !s.dragging && exceedsSlop(p.X-s.pressX, p.Y-s.pressY, s.clickSlop) {
			s.dragging = true
			// 补上从按下点到当前点的位移
			s.lastX, s.lastY = s.pressX, s.pressY
		}
		if s.dragging {
			s.camera.Orbit(float64(p.X-s.lastX), float64(p.Y-s.lastY))
		}
		s.lastX, s.lastY = p.X, p.Y

	case !p.Pressed && s.pressed:
		// 触摸抬起后拿不到位置，使用最后一次按下时的位置
		if !s.dragging {
			s.Click(s.lastX, s.lastY)
		}
		s.dragging = false
	}

	s.pressed = p.Pressed
}

// Click 在屏幕坐标处执行一次拾取并分发结果
func (s *InputSystem) Click(x, y int) components.Target {
	target := components.TargetNone

	cam := s.camera.Camera()
	if cam != nil {
		ray, err := ScreenRay(cam, float64(x), float64(y))
		if err != nil {
			log.Printf("[InputSystem] 无法构造拾取射线: %v", err)
		} else if hit, ok := Pick(s.entityManager, ray); ok {
			target = hit.Target
		}
	}

	log.Printf("[InputSystem] 点击 (%d, %d) -> %s", x, y, target)
	s.interaction.OnTargetActivated(target)
	return target
}

func exceedsSlop(dx, dy, slop int) bool {
	return dx*dx+dy*dy > slop*slop
}
