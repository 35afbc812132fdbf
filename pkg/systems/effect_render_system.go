package systems

import (
	"image/color"
	"log"
	"math"

	"github.com/decker502/toanvui/pkg/components"
	"github.com/decker502/toanvui/pkg/ecs"
	"github.com/decker502/toanvui/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EffectRenderSystem 绘制特效实体：彩纸、飘字、横幅
type EffectRenderSystem struct {
	entityManager *ecs.EntityManager
	faces         map[float64]*text.GoTextFace // 按字号缓存
	centerX       float64                      // 横幅水平中心
	bannerY       float64                      // 横幅中心 Y
}

// NewEffectRenderSystem 创建特效渲染系统
//
// 参数：
//   - em: 实体管理器
//   - centerX, bannerY: 横幅绘制位置（屏幕坐标）
func NewEffectRenderSystem(em *ecs.EntityManager, centerX, bannerY float64) *EffectRenderSystem {
	return &EffectRenderSystem{
		entityManager: em,
		faces:         make(map[float64]*text.GoTextFace),
		centerX:       centerX,
		bannerY:       bannerY,
	}
}

// Draw 按 彩纸 → 飘字 → 横幅 的顺序绘制，横幅在最上层
func (s *EffectRenderSystem) Draw(screen *ebiten.Image) {
	em := s.entityManager

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.ConfettiComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		c, _ := ecs.GetComponent[*components.ConfettiComponent](em, id)

		// 绕竖轴翻转：宽度随旋转角余弦变化
		w := c.Width * math.Max(0.15, math.Abs(math.Cos(c.Rotation)))
		clr := fade(c.Color, s.alpha(id))
		vector.DrawFilledRect(screen, float32(pos.X-w/2), float32(pos.Y-c.Height/2), float32(w), float32(c.Height), clr, true)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.FloatingTextComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		ft, _ := ecs.GetComponent[*components.FloatingTextComponent](em, id)
		s.drawCenteredText(screen, ft.Text, ft.Size, pos.X, pos.Y, ft.Color, s.alpha(id), 1)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.BannerComponent](em) {
		b, _ := ecs.GetComponent[*components.BannerComponent](em, id)
		scale := 1.0
		if b.PopInTime > 0 {
			elapsed := 0.0
			if lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id); ok {
				elapsed = lifetime.CurrentLifetime
			}
			scale = math.Max(0.01, utils.EaseOutBack(elapsed/b.PopInTime))
		}
		s.drawCenteredText(screen, b.Text, b.Size, s.centerX, s.bannerY, b.Color, s.alpha(id), scale)
	}
}

// alpha 带 FadeOut 的实体在后半段生命周期内淡出
func (s *EffectRenderSystem) alpha(id ecs.EntityID) float64 {
	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
	if !ok || !lifetime.FadeOut {
		return 1
	}
	ratio := LifeRatio(s.entityManager, id)
	if ratio < 0.5 {
		return 1
	}
	return 1 - utils.EaseInQuad((ratio-0.5)*2)
}

func (s *EffectRenderSystem) drawCenteredText(screen *ebiten.Image, str string, size, x, y float64, clr color.RGBA, alpha, scale float64) {
	face := s.face(size)
	if face == nil {
		return
	}

	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, str, face, op)
}

func (s *EffectRenderSystem) face(size float64) *text.GoTextFace {
	if f, ok := s.faces[size]; ok {
		return f
	}
	f, err := utils.NewDefaultFace(size)
	if err != nil {
		log.Printf("[EffectRenderSystem] Warning: %v", err)
		return nil
	}
	s.faces[size] = f
	return f
}

// fade 按 alpha 缩放颜色（预乘 alpha）
func fade(c color.RGBA, alpha float64) color.RGBA {
	a := math.Max(0, math.Min(1, alpha))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
