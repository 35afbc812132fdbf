package game

import (
	"log"

	"github.com/decker502/toanvui/pkg/reaction"
	"github.com/decker502/toanvui/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "toanvui"

// GameState 存储全局游戏状态
// 单例，持有跨场景共享的存储和统计数据
type GameState struct {
	gdataManager     *gdata.Manager // 可为 nil（存储不可用时降级为内存模式）
	settingsManager  *SettingsManager
	highScoreManager *HighScoreManager

	LastResult  *reaction.Result // 最近一局的结果，菜单展示用
	GamesPlayed int              // 本次启动后完成的局数
}

// 全局单例实例
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 延迟初始化：首次调用时打开 gdata 存储并加载设置
func GetGameState() *GameState {
	if globalGameState == nil {
		globalGameState = NewGameState(openGdataManager())
	}
	return globalGameState
}

// resetGlobalGameState 重置单例（测试用）
func resetGlobalGameState() {
	globalGameState = nil
}

// NewGameState 基于给定存储创建游戏状态
// gdataManager 为 nil 时设置和最高分只保存在内存中
func NewGameState(gdataManager *gdata.Manager) *GameState {
	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		log.Printf("[GameState] Warning: %v (using default settings)", err)
	}

	return &GameState{
		gdataManager:     gdataManager,
		settingsManager:  sm,
		highScoreManager: NewHighScoreManager(gdataManager),
	}
}

// openGdataManager 打开跨平台存储，失败时返回 nil
func openGdataManager() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[GameState] Warning: Failed to prepare storage dir: %v", err)
	}

	manager, err := gdata.Open(gdata.Config{
		AppName: AppName,
	})
	if err != nil {
		log.Printf("[GameState] Warning: Failed to open gdata storage: %v (running in memory mode)", err)
		return nil
	}

	log.Printf("[GameState] gdata storage opened (app: %s)", AppName)
	return manager
}

// GetGdataManager 返回 gdata 存储管理器（可能为 nil）
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}

// GetSettingsManager 返回设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}

// GetHighScoreManager 返回最高分管理器
func (gs *GameState) GetHighScoreManager() *HighScoreManager {
	return gs.highScoreManager
}

// RecordResult 记录一局结束的结果
func (gs *GameState) RecordResult(result reaction.Result) {
	r := result
	gs.LastResult = &r
	gs.GamesPlayed++
}
