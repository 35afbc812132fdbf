// Package utils 提供输入、布局、文字和缓动等通用工具
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsJustTouchedOrClicked 检查本帧是否刚发生点击或触摸，优先检测触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// GetPointerState 获取指针的完整状态（触摸优先）
// 返回：是否按下、X坐标、Y坐标
func GetPointerState() (pressed bool, x, y int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	x, y = ebiten.CursorPosition()
	pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return pressed, x, y
}

// GestureType 指针手势
type GestureType int

const (
	GestureNone       GestureType = iota
	GestureTap                    // 按下后原地松开
	GestureSwipeLeft              // 水平向左滑动
	GestureSwipeRight             // 水平向右滑动
)

// Gesture 一次完成的手势
type Gesture struct {
	Type GestureType
	X, Y int // 按下位置
}

// DefaultSwipeThreshold 被识别为滑动的最小水平位移（像素）
const DefaultSwipeThreshold = 40

// GestureTracker 跟踪按下 → 松开之间的位移，区分点击和左右滑动
//
// 每帧调用一次 Update()（或在测试中直接调用 Feed）。
// 手势在松开的那一帧返回，滑动过程中持续按住不会重复触发。
type GestureTracker struct {
	Threshold int

	pressed        bool
	startX, startY int
	lastX, lastY   int
}

// NewGestureTracker 创建手势跟踪器
func NewGestureTracker() *GestureTracker {
	return &GestureTracker{Threshold: DefaultSwipeThreshold}
}

// Update 读取当前帧的指针状态并返回完成的手势
func (gt *GestureTracker) Update() Gesture {
	pressed, x, y := GetPointerState()
	return gt.Feed(pressed, x, y)
}

// Feed 输入一帧的指针状态
func (gt *GestureTracker) Feed(pressed bool, x, y int) Gesture {
	switch {
	case pressed && !gt.pressed:
		gt.pressed = true
		gt.startX, gt.startY = x, y
		gt.lastX, gt.lastY = x, y
		return Gesture{}

	case pressed:
		gt.lastX, gt.lastY = x, y
		return Gesture{}

	case gt.pressed:
		// 触摸松开的那一帧拿不到坐标，用最后一次按住时的位置
		gt.pressed = false
		return gt.classify()
	}
	return Gesture{}
}

// IsPressed 指针当前是否按下
func (gt *GestureTracker) IsPressed() bool {
	return gt.pressed
}

// Reset 丢弃进行中的手势
func (gt *GestureTracker) Reset() {
	gt.pressed = false
}

func (gt *GestureTracker) classify() Gesture {
	dx := gt.lastX - gt.startX
	dy := gt.lastY - gt.startY
	g := Gesture{X: gt.startX, Y: gt.startY}

	if abs(dx) >= gt.Threshold && abs(dx) > abs(dy) {
		if dx < 0 {
			g.Type = GestureSwipeLeft
		} else {
			g.Type = GestureSwipeRight
		}
		return g
	}

	if abs(dx) < gt.Threshold && abs(dy) < gt.Threshold {
		g.Type = GestureTap
	}
	return g
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
