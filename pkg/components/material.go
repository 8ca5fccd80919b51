package components

import "image/color"

// MaterialComponent 纯色材质
// 立方体被点中时切换为 ActiveColor，点空白处恢复 InactiveColor
type MaterialComponent struct {
	Color         color.RGBA
	ActiveColor   color.RGBA
	InactiveColor color.RGBA
}

// SetActive 切换激活/未激活颜色
func (m *MaterialComponent) SetActive(active bool) {
	if active {
		m.Color = m.ActiveColor
	} else {
		m.Color = m.InactiveColor
	}
}

// IsActive 当前是否为激活颜色
func (m *MaterialComponent) IsActive() bool {
	return m.Color == m.ActiveColor
}
