package components

// HandleComponent 轴向缩放手柄
// 点击手柄会对立方体的 Axis 轴播放缩放动画
type HandleComponent struct {
	Axis Axis
}
