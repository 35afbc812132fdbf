package utils

// LaneLayout 车道区域的屏幕坐标换算
// 引擎只给出车道号和 0..1 的掉落进度，这里换算成像素
type LaneLayout struct {
	X, Y          float64 // 区域左上角
	Width, Height float64 // 区域尺寸，Height 对应进度 0 → 1
	Lanes         int
}

// LaneWidth 单条车道的宽度
func (l LaneLayout) LaneWidth() float64 {
	if l.Lanes <= 0 {
		return 0
	}
	return l.Width / float64(l.Lanes)
}

// LaneCenterX 车道中心的 X 坐标
func (l LaneLayout) LaneCenterX(lane int) float64 {
	return l.X + (float64(lane)+0.5)*l.LaneWidth()
}

// ProgressY 掉落进度对应的 Y 坐标
func (l LaneLayout) ProgressY(progress float64) float64 {
	return l.Y + progress*l.Height
}

// LaneAt 屏幕 X 坐标所在的车道
//
// 返回：
//   - lane: 车道号
//   - ok: 是否落在车道区域的水平范围内
func (l LaneLayout) LaneAt(x float64) (lane int, ok bool) {
	if l.Lanes <= 0 || x < l.X || x >= l.X+l.Width {
		return 0, false
	}

	lane = int((x - l.X) / l.LaneWidth())
	// 防止浮点误差越界
	if lane >= l.Lanes {
		lane = l.Lanes - 1
	}
	return lane, true
}

// Contains 点是否在车道区域内
func (l LaneLayout) Contains(x, y float64) bool {
	return x >= l.X && x < l.X+l.Width && y >= l.Y && y < l.Y+l.Height
}
