package components

import (
	"github.com/decker502/spincube/pkg/anim"
	"github.com/go-gl/mathgl/mgl64"
)

// TransformComponent 存储实体的位置、绕 Y 轴旋转和逐轴缩放
//
// 旋转角和三个缩放分量都是 anim.Value，动画引擎直接通过指针修改它们，
// 渲染和拾取在每帧读取。
type TransformComponent struct {
	// Position 世界坐标位置
	Position mgl64.Vec3

	// RotationY 绕 Y 轴的旋转角（弧度），不做取模，连续累加
	RotationY anim.Value

	// ScaleX/ScaleY/ScaleZ 各轴缩放因子（1.0 = 原始大小）
	ScaleX anim.Value
	ScaleY anim.Value
	ScaleZ anim.Value
}

// NewTransformComponent 创建变换组件
//
// 参数：
//   - name: 实体名，用作各个 anim.Value 的名称前缀（日志用）
//   - position: 世界坐标位置
//   - scale: 三轴统一的初始缩放
func NewTransformComponent(name string, position mgl64.Vec3, scale float64) *TransformComponent {
	return &TransformComponent{
		Position:  position,
		RotationY: anim.Value{Name: name + ".rotation.y"},
		ScaleX:    anim.Value{Name: name + ".scale.x", Current: scale},
		ScaleY:    anim.Value{Name: name + ".scale.y", Current: scale},
		ScaleZ:    anim.Value{Name: name + ".scale.z", Current: scale},
	}
}

// ScaleValue 返回指定轴的缩放值
// 非法轴返回 nil
func (t *TransformComponent) ScaleValue(axis Axis) *anim.Value {
	switch axis {
	case AxisX:
		return &t.ScaleX
	case AxisY:
		return &t.ScaleY
	case AxisZ:
		return &t.ScaleZ
	default:
		return nil
	}
}

// Scale 返回指定轴的当前缩放
func (t *TransformComponent) Scale(axis Axis) float64 {
	if v := t.ScaleValue(axis); v != nil {
		return v.Current
	}
	return 0
}

// SetScale 设置指定轴的缩放
func (t *TransformComponent) SetScale(axis Axis, scale float64) {
	if v := t.ScaleValue(axis); v != nil {
		v.Current = scale
	}
}

// ScaleVec 返回三轴缩放向量
func (t *TransformComponent) ScaleVec() mgl64.Vec3 {
	return mgl64.Vec3{t.ScaleX.Current, t.ScaleY.Current, t.ScaleZ.Current}
}

// ModelMatrix 返回模型矩阵：平移 × 旋转(Y) × 缩放
func (t *TransformComponent) ModelMatrix() mgl64.Mat4 {
	s := t.ScaleVec()
	return mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(mgl64.HomogRotate3DY(t.RotationY.Current)).
		Mul4(mgl64.Scale3D(s.X(), s.Y(), s.Z()))
}
