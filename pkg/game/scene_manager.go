package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager controls which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene gets a chance to save its state first.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene != nil && sm.currentScene != scene {
		sm.saveCurrent()
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// Resize 把窗口尺寸转发给实现了 Resizable 的当前场景
func (sm *SceneManager) Resize(width, height int) {
	if r, ok := sm.currentScene.(Resizable); ok {
		r.Resize(width, height)
	}
}

// SaveOnExit 保存当前场景状态（如果场景实现了 Saveable）
//
// 返回：
//   - bool: 保存成功或无需保存时为 true
func (sm *SceneManager) SaveOnExit() bool {
	return sm.saveCurrent()
}

func (sm *SceneManager) saveCurrent() bool {
	s, ok := sm.currentScene.(Saveable)
	if !ok {
		return true
	}
	if !s.SaveOnExit() {
		log.Printf("[SceneManager] 场景状态保存失败")
		return false
	}
	return true
}
