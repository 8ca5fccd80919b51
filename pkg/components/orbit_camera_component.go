package components

import (
	"math"

	"github.com/decker502/spincube/pkg/anim"
	"github.com/go-gl/mathgl/mgl64"
)

// OrbitCameraComponent 围绕目标点旋转的透视镜头
//
// 镜头位置由球坐标 (Yaw, Pitch, Distance) 决定，
// Yaw=0, Pitch=0 时镜头位于目标点 +Z 方向。
// 三个参数都是 anim.Value，复位时可以用动画引擎平滑过渡。
type OrbitCameraComponent struct {
	Target mgl64.Vec3

	Yaw      anim.Value // 弧度
	Pitch    anim.Value // 弧度
	Distance anim.Value

	// FovY 垂直视角（度）
	FovY float64
	Near float64
	Far  float64

	// ViewportWidth/ViewportHeight 视口像素尺寸，窗口尺寸变化时更新
	ViewportWidth  int
	ViewportHeight int
}

// Aspect 返回视口宽高比
func (c *OrbitCameraComponent) Aspect() float64 {
	if c.ViewportHeight <= 0 {
		return 1
	}
	return float64(c.ViewportWidth) / float64(c.ViewportHeight)
}

// Eye 返回镜头世界坐标
func (c *OrbitCameraComponent) Eye() mgl64.Vec3 {
	yaw, pitch, dist := c.Yaw.Current, c.Pitch.Current, c.Distance.Current
	offset := mgl64.Vec3{
		dist * math.Cos(pitch) * math.Sin(yaw),
		dist * math.Sin(pitch),
		dist * math.Cos(pitch) * math.Cos(yaw),
	}
	return c.Target.Add(offset)
}

// View 返回观察矩阵
func (c *OrbitCameraComponent) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), c.Target, mgl64.Vec3{0, 1, 0})
}

// Projection 返回透视投影矩阵
func (c *OrbitCameraComponent) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), c.Aspect(), c.Near, c.Far)
}
