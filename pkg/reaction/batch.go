package reaction

import "math/rand"

// Batch 同时释放的一组掉落物
type Batch struct {
	Index   int // 第几批（从 1 开始）
	Target  Category
	Objects []FallingObject
}

// generateBatch 生成一批掉落物
//
// 保证：
//   - 车道互不相同、图形互不相同
//   - 恰好一个掉落物被标记为目标
//
// 调用方负责保证 count <= lanes 且 count <= len(categories)（配置校验已覆盖）。
func generateBatch(rng *rand.Rand, categories []Category, lanes, count int, firstID ObjectID) []FallingObject {
	laneOrder := rng.Perm(lanes)
	categoryOrder := rng.Perm(len(categories))
	targetIdx := rng.Intn(count)

	objects := make([]FallingObject, count)
	for i := 0; i < count; i++ {
		objects[i] = FallingObject{
			ID:       firstID + ObjectID(i),
			Category: categories[categoryOrder[i]],
			Lane:     laneOrder[i],
			Progress: 0,
			IsTarget: i == targetIdx,
		}
	}
	return objects
}
