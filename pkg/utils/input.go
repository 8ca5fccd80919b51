// Package utils 提供平台相关的辅助函数（输入、存储目录、平台检测）
package utils

import (
	"github.com/decker502/spincube/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenInput 从 Ebitengine 读取鼠标/触摸/键盘输入，实现 systems.InputSource
//
// 同时支持鼠标和触摸，优先使用触摸。
// 触摸抬起后 ebiten 拿不到位置，所以每帧记录最后一次触摸位置。
type EbitenInput struct {
	touchID    ebiten.TouchID
	touching   bool
	lastTouchX int
	lastTouchY int
}

// NewEbitenInput 创建 Ebitengine 输入来源
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{touchID: -1}
}

// Pointer 返回当前帧的指针状态
// 必须在 ebiten.Game.Update 中调用
func (in *EbitenInput) Pointer() systems.PointerState {
	_, wheelY := ebiten.Wheel()

	if x, y, pressed, ok := in.touchState(); ok {
		return systems.PointerState{X: x, Y: y, Pressed: pressed, WheelY: wheelY}
	}

	x, y := ebiten.CursorPosition()
	return systems.PointerState{
		X:       x,
		Y:       y,
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		WheelY:  wheelY,
	}
}

// touchState 跟踪第一个触摸点
//
// 返回：
//   - x, y: 触摸位置（抬起时为最后一次位置）
//   - pressed: 触摸是否仍在进行
//   - ok: 本帧是否由触摸输入决定
func (in *EbitenInput) touchState() (x, y int, pressed, ok bool) {
	if !in.touching {
		ids := inpututil.AppendJustPressedTouchIDs(nil)
		if len(ids) == 0 {
			return 0, 0, false, false
		}
		in.touchID = ids[0]
		in.touching = true
	}

	for _, id := range ebiten.AppendTouchIDs(nil) {
		if id == in.touchID {
			in.lastTouchX, in.lastTouchY = ebiten.TouchPosition(id)
			return in.lastTouchX, in.lastTouchY, true, true
		}
	}

	// 触摸已抬起：报告一次未按下，让输入系统完成点击
	in.touching = false
	in.touchID = -1
	return in.lastTouchX, in.lastTouchY, false, true
}

// ResetRequested 本帧是否按下了镜头复位键（R）
func (in *EbitenInput) ResetRequested() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR)
}

// IsTouching 是否有活动的触摸
func (in *EbitenInput) IsTouching() bool {
	return in.touching
}
