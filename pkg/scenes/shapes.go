package scenes

import (
	"image"
	"image/color"
	"math"

	"github.com/decker502/toanvui/pkg/reaction"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ShapeColors 每种图形的填充色
var ShapeColors = map[reaction.Category]color.RGBA{
	reaction.CategoryCircle:   {R: 0xef, G: 0x47, B: 0x6f, A: 0xff},
	reaction.CategorySquare:   {R: 0x11, G: 0x8a, B: 0xb2, A: 0xff},
	reaction.CategoryTriangle: {R: 0x06, G: 0xd6, B: 0xa0, A: 0xff},
	reaction.CategoryStar:     {R: 0xff, G: 0xd1, B: 0x66, A: 0xff},
}

var fallbackShapeColor = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}

// 三角形绘制需要一张纯白纹理，取 3x3 图片中心像素避免边缘采样
var whiteSubImage *ebiten.Image

func whiteTexture() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// ShapeColor 图形颜色，未知图形返回灰色
func ShapeColor(category reaction.Category) color.RGBA {
	if c, ok := ShapeColors[category]; ok {
		return c
	}
	return fallbackShapeColor
}

// DrawShape 以 (cx, cy) 为中心绘制图形，size 为外接圆直径
func DrawShape(screen *ebiten.Image, category reaction.Category, cx, cy, size float64, clr color.RGBA) {
	r := size / 2
	switch category {
	case reaction.CategoryCircle:
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r), clr, true)
	case reaction.CategorySquare:
		side := size * 0.8
		vector.DrawFilledRect(screen, float32(cx-side/2), float32(cy-side/2), float32(side), float32(side), clr, true)
	case reaction.CategoryTriangle:
		fillPolygon(screen, cx, cy, trianglePoints(cx, cy, r), clr)
	case reaction.CategoryStar:
		fillPolygon(screen, cx, cy, starPoints(cx, cy, r, r*0.45, 5), clr)
	default:
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r*0.6), clr, true)
	}
}

// trianglePoints 顶点朝上的等边三角形，内接于半径 r 的圆（重心下移使视觉居中）
func trianglePoints(cx, cy, r float64) [][2]float64 {
	return regularPoints(cx, cy+r*0.15, r, 3)
}

// regularPoints 正 n 边形顶点，第一个顶点朝上，顺时针排列
func regularPoints(cx, cy, r float64, n int) [][2]float64 {
	points := make([][2]float64, n)
	for i := 0; i < n; i++ {
		a := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		points[i] = [2]float64{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	return points
}

// starPoints n 角星顶点，外顶点与内顶点交替
func starPoints(cx, cy, outer, inner float64, n int) [][2]float64 {
	points := make([][2]float64, 0, n*2)
	for i := 0; i < n*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := -math.Pi/2 + math.Pi*float64(i)/float64(n)
		points = append(points, [2]float64{cx + r*math.Cos(a), cy + r*math.Sin(a)})
	}
	return points
}

// fanIndices 以顶点 0 为中心、1..n 为轮廓的扇形三角形索引
func fanIndices(n int) []uint16 {
	indices := make([]uint16, 0, n*3)
	for i := 0; i < n; i++ {
		indices = append(indices, 0, uint16(i+1), uint16((i+1)%n+1))
	}
	return indices
}

// fillPolygon 以中心点扇形三角化并填充，要求从中心能看到所有边（三角形、星形）
func fillPolygon(screen *ebiten.Image, cx, cy float64, points [][2]float64, clr color.RGBA) {
	r := float32(clr.R) / 0xff
	g := float32(clr.G) / 0xff
	b := float32(clr.B) / 0xff
	a := float32(clr.A) / 0xff

	vertices := make([]ebiten.Vertex, 0, len(points)+1)
	vertices = append(vertices, ebiten.Vertex{
		DstX: float32(cx), DstY: float32(cy),
		SrcX: 1, SrcY: 1,
		ColorR: r, ColorG: g, ColorB: b, ColorA: a,
	})
	for _, p := range points {
		vertices = append(vertices, ebiten.Vertex{
			DstX: float32(p[0]), DstY: float32(p[1]),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	screen.DrawTriangles(vertices, fanIndices(len(points)), whiteTexture(), op)
}
