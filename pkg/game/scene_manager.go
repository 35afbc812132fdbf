package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 按 ID 创建场景，避免 game 包依赖 scenes 包
type SceneFactory func(id SceneID) Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	currentID    SceneID
	sceneFactory SceneFactory
	pending      *SceneID // 延迟到下一帧开始时切换
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or Goto to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene immediately.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if leaver, ok := sm.currentScene.(Leaver); ok && sm.currentScene != scene {
		leaver.OnLeave()
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentID 返回当前场景 ID（通过 SwitchTo 直接设置的场景为空）
func (sm *SceneManager) CurrentID() SceneID {
	return sm.currentID
}

// Goto 请求切换到指定场景
//
// 场景通常在自己的 Update 中调用 Goto，为了不在 Update 执行途中替换场景，
// 切换在下一次 SceneManager.Update 开始时生效。
func (sm *SceneManager) Goto(id SceneID) {
	sm.pending = &id
}

func (sm *SceneManager) applyPending() {
	if sm.pending == nil {
		return
	}
	id := *sm.pending
	sm.pending = nil

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return
	}

	scene := sm.sceneFactory(id)
	if scene == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景: %s", id)
		return
	}

	sm.SwitchTo(scene)
	sm.currentID = id
	log.Printf("[SceneManager] 切换到场景: %s", id)
}

// Update applies a pending scene switch and then updates the active scene.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	sm.applyPending()
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
