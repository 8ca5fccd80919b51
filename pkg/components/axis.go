package components

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis 坐标轴（封闭枚举，替代字符串 "x"/"y"/"z" 索引）
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Axes 全部坐标轴，按 X、Y、Z 顺序
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

// String 返回轴名称
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Valid 是否为合法轴
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

// Unit 返回该轴的单位向量
func (a Axis) Unit() mgl64.Vec3 {
	switch a {
	case AxisX:
		return mgl64.Vec3{1, 0, 0}
	case AxisY:
		return mgl64.Vec3{0, 1, 0}
	default:
		return mgl64.Vec3{0, 0, 1}
	}
}
