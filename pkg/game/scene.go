package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents an interactive scene (e.g., the spinning cube viewer).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，场景可以据此响应窗口尺寸变化
//
// App.Layout 每帧把外部尺寸转发给当前场景，
// 场景自行判断尺寸是否真的变化（相同尺寸应为空操作）。
type Resizable interface {
	Resize(width, height int)
}

// Saveable 是一个可选接口，用于支持场景在退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 按 Esc 退出
//   - 游戏窗口关闭
type Saveable interface {
	// SaveOnExit 在场景退出时保存状态
	// 返回 true 表示保存成功或无需保存
	// 返回 false 表示保存失败（但程序仍会正常退出）
	SaveOnExit() bool
}
