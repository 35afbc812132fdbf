package utils

import "math"

// 缓动函数：输入进度 t ∈ [0, 1]，返回缓动后的值
// 超出范围的输入先被夹紧，特效的生命周期比例可以直接传入。

// Clamp01 把 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// EaseOutCubic 三次方缓出，开始快结束慢（得分飘字上升）
// f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// EaseInQuad 二次方缓入（淡出透明度）
// f(t) = t²
func EaseInQuad(t float64) float64 {
	t = Clamp01(t)
	return t * t
}

// EaseOutBack 回弹缓出，终点前略微超出（横幅弹出）
// f(t) = 1 + c3(t-1)³ + c1(t-1)²
func EaseOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	t = Clamp01(t)
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}

// Pulse 0 → 1 → 0 的正弦脉冲（倒计时数字缩放）
func Pulse(t float64) float64 {
	return math.Sin(Clamp01(t) * math.Pi)
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
