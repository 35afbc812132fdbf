package reaction

// HighScoreStore 最高分存储
//
// 读写失败由实现方自行记录并吞掉：读取失败视为 0，写入失败不影响本局。
type HighScoreStore interface {
	LoadHighScore() int
	SaveHighScore(score int)
}

// MemoryHighScoreStore 仅存在于内存中的最高分（测试和无持久化环境使用）
type MemoryHighScoreStore struct {
	Score  int
	Writes int // 写入次数
}

// LoadHighScore 实现 HighScoreStore
func (m *MemoryHighScoreStore) LoadHighScore() int {
	return m.Score
}

// SaveHighScore 实现 HighScoreStore
func (m *MemoryHighScoreStore) SaveHighScore(score int) {
	m.Score = score
	m.Writes++
}
