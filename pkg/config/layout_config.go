package config

// 布局配置常量
// 逻辑分辨率为竖屏 480x800，ebiten 负责缩放到实际窗口/设备

// 窗口
const (
	ScreenWidth  = 480
	ScreenHeight = 800

	// WindowScale 桌面端初始窗口缩放
	WindowScale = 1.0
)

// 车道区域：掉落物从顶部 LaneAreaY 落到 LaneAreaY+LaneAreaHeight（进度 0 → 1）
const (
	LaneAreaX      = 30.0
	LaneAreaY      = 150.0
	LaneAreaWidth  = 420.0
	LaneAreaHeight = 500.0

	// ObjectSize 掉落图形的直径（像素）
	ObjectSize = 72.0

	// BasketWidth / BasketHeight 玩家篮子尺寸
	BasketWidth  = 110.0
	BasketHeight = 36.0

	// BasketGap 车道区域底部到篮子顶部的距离
	BasketGap = 8.0
)

// HUD
const (
	HUDMarginX    = 20.0
	HUDScoreY     = 24.0
	HUDPromptY    = 84.0
	HUDFontSize   = 24.0
	TitleFontSize = 44.0
	BannerY       = 360.0
)

// 屏幕方向键（移动端显示在底部两侧）
const (
	ArrowButtonSize    = 80.0
	ArrowButtonMargin  = 20.0
	ArrowButtonCenterY = ScreenHeight - ArrowButtonMargin - ArrowButtonSize/2
)

// 按钮（菜单、结束弹窗）
const (
	ButtonWidth  = 220.0
	ButtonHeight = 64.0
)
