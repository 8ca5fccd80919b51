package components

// Target 点击命中的对象
type Target int

const (
	// TargetNone 未命中任何对象
	TargetNone Target = iota
	TargetCube
	TargetHandleX
	TargetHandleY
	TargetHandleZ
)

// String 返回目标名称
func (t Target) String() string {
	switch t {
	case TargetCube:
		return "cube"
	case TargetHandleX:
		return "handleX"
	case TargetHandleY:
		return "handleY"
	case TargetHandleZ:
		return "handleZ"
	default:
		return "none"
	}
}

// HandleTarget 返回轴对应的手柄目标
func HandleTarget(axis Axis) Target {
	switch axis {
	case AxisX:
		return TargetHandleX
	case AxisY:
		return TargetHandleY
	case AxisZ:
		return TargetHandleZ
	default:
		return TargetNone
	}
}

// HandleAxis 如果目标是手柄，返回其对应轴
func (t Target) HandleAxis() (Axis, bool) {
	switch t {
	case TargetHandleX:
		return AxisX, true
	case TargetHandleY:
		return AxisY, true
	case TargetHandleZ:
		return AxisZ, true
	default:
		return AxisX, false
	}
}

// PickableComponent 可被射线拾取的实体
// 拾取形状取自同一实体的 MeshComponent
type PickableComponent struct {
	Target Target
}
