package scenes

import (
	"image/color"

	"github.com/decker502/toanvui/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 界面配色
var (
	colorBackground = color.RGBA{R: 0xfd, G: 0xf6, B: 0xe3, A: 0xff}
	colorText       = color.RGBA{R: 0x2b, G: 0x2d, B: 0x42, A: 0xff}
	colorMuted      = color.RGBA{R: 0x8d, G: 0x99, B: 0xae, A: 0xff}
	colorAccent     = color.RGBA{R: 0xf7, G: 0x7f, B: 0x00, A: 0xff}
	colorButton     = color.RGBA{R: 0x3a, G: 0x86, B: 0xff, A: 0xff}
	colorButtonText = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorOverlay    = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x99}
	colorPanel      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorLaneGuide  = color.RGBA{R: 0xe0, G: 0xd8, B: 0xc0, A: 0xff}
	colorBasket     = color.RGBA{R: 0x8b, G: 0x5e, B: 0x3c, A: 0xff}
	colorGood       = color.RGBA{R: 0x2a, G: 0x9d, B: 0x8f, A: 0xff}
)

// Button 矩形按钮（坐标为左上角）
type Button struct {
	Label string
	X, Y  float64
	W, H  float64
}

// NewCenteredButton 创建水平居中于 centerX 的按钮
func NewCenteredButton(label string, centerX, y, w, h float64) Button {
	return Button{Label: label, X: centerX - w/2, Y: y, W: w, H: h}
}

// Contains 点是否落在按钮内
func (b Button) Contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= b.X && fx < b.X+b.W && fy >= b.Y && fy < b.Y+b.H
}

// Draw 绘制按钮背景和居中的文字
func (b Button) Draw(screen *ebiten.Image, face *text.GoTextFace, bg color.RGBA) {
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), bg, true)
	drawCenteredText(screen, b.Label, face, b.X+b.W/2, b.Y+b.H/2, colorButtonText)
}

// drawCenteredText 以 (x, y) 为中心绘制文字，face 为 nil 时跳过
func drawCenteredText(screen *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// drawText 以 (x, y) 为左上角绘制文字
func drawText(screen *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// drawRightText 以 (x, y) 为右上角绘制文字
func drawRightText(screen *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignEnd
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// drawWrappedText 按 maxWidth 自动换行，整段以 (x, y) 为首行中心，返回绘制的行数
func drawWrappedText(screen *ebiten.Image, str string, face *text.GoTextFace, x, y, maxWidth, lineHeight float64, clr color.Color) int {
	lines := utils.WrapText(str, face, maxWidth)
	for i, line := range lines {
		drawCenteredText(screen, line, face, x, y+float64(i)*lineHeight, clr)
	}
	return len(lines)
}
