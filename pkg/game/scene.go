package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (main menu, reaction game).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Leaver 可选接口：场景被切换走时收到通知
//
// 用于场景释放自身状态（如反应游戏在退出时保存设置）。
type Leaver interface {
	OnLeave()
}

// SceneID 场景标识
type SceneID string

const (
	SceneMenu     SceneID = "menu"
	SceneReaction SceneID = "reaction"
)
