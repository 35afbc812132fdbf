package game

import (
	"log"
	"strconv"
	"strings"

	"github.com/quasilyte/gdata/v2"
)

// 最高分存储位置：一个属性，内容为十进制字符串
const (
	highScoreObject   = "reaction"
	highScoreProperty = "high_score"
)

// HighScoreManager 持久化反应游戏的最高分
//
// 实现 reaction.HighScoreStore。存储读写失败只记录日志，
// 之后继续使用内存中的值，游戏不会因此中断。
type HighScoreManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）
	cached       int            // 最近一次读到或写入的值
}

// NewHighScoreManager 创建最高分管理器
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（仅内存记录）
func NewHighScoreManager(gdataManager *gdata.Manager) *HighScoreManager {
	return &HighScoreManager{gdataManager: gdataManager}
}

// LoadHighScore 读取最高分
// 没有记录时返回 0；读取或解析失败时返回内存中的值
func (hm *HighScoreManager) LoadHighScore() int {
	if hm.gdataManager == nil {
		return hm.cached
	}

	if !hm.gdataManager.ObjectPropExists(highScoreObject, highScoreProperty) {
		return hm.cached
	}

	data, err := hm.gdataManager.LoadObjectProp(highScoreObject, highScoreProperty)
	if err != nil {
		log.Printf("[HighScoreManager] Warning: Failed to load high score: %v", err)
		return hm.cached
	}

	score, err := parseHighScore(data)
	if err != nil {
		log.Printf("[HighScoreManager] Warning: Invalid high score %q: %v", string(data), err)
		return hm.cached
	}

	hm.cached = score
	return score
}

// SaveHighScore 写入最高分
// 是否需要写入由调用方判断（仅在打破纪录时调用）
func (hm *HighScoreManager) SaveHighScore(score int) {
	hm.cached = score

	if hm.gdataManager == nil {
		return
	}

	data := []byte(strconv.Itoa(score))
	if err := hm.gdataManager.SaveObjectProp(highScoreObject, highScoreProperty, data); err != nil {
		log.Printf("[HighScoreManager] Warning: Failed to save high score %d: %v", score, err)
		return
	}

	log.Printf("[HighScoreManager] High score saved: %d", score)
}

func parseHighScore(data []byte) (int, error) {
	score, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, err
	}
	if score < 0 {
		return 0, strconv.ErrRange
	}
	return score, nil
}
