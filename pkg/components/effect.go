package components

import "image/color"

// ConfettiComponent 彩纸碎片（接到目标时的庆祝效果）
type ConfettiComponent struct {
	Color    color.RGBA
	Width    float64
	Height   float64
	Rotation float64 // 弧度
	Spin     float64 // 弧度/秒
}

// FloatingTextComponent 飘字（如 "+10"），随生命周期上浮并淡出
type FloatingTextComponent struct {
	Text   string
	Color  color.RGBA
	Size   float64 // 字号
	RiseBy float64 // 整个生命周期内上浮的距离（像素）

	OriginY float64 // 创建时的 Y 坐标
}

// BannerComponent 屏幕中央的横幅（"Bắt đầu!"、"Tăng tốc!"）
// 以回弹缓动放大出现
type BannerComponent struct {
	Text      string
	Color     color.RGBA
	Size      float64
	PopInTime float64 // 弹出动画时长（秒）
}
