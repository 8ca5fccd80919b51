// Package scenes 提供基于 Ebitengine 的场景实现
package scenes

import (
	"github.com/decker502/spincube/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

var (
	_ Scene          = (*CubeScene)(nil)
	_ game.Resizable = (*CubeScene)(nil)
	_ game.Saveable  = (*CubeScene)(nil)
)
