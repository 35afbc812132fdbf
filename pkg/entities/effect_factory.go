package entities

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/decker502/toanvui/pkg/components"
	"github.com/decker502/toanvui/pkg/ecs"
)

// 特效参数
const (
	ConfettiCount    = 18
	ConfettiLifetime = 0.9
	ConfettiSpeedMin = 160.0
	ConfettiSpeedMax = 320.0
	ConfettiGravity  = 520.0

	ScorePopupLifetime = 0.8
	ScorePopupRise     = 60.0
	ScorePopupSize     = 30.0

	BannerSize      = 48.0
	BannerPopInTime = 0.25
)

// ConfettiPalette 彩纸颜色
var ConfettiPalette = []color.RGBA{
	{R: 0xff, G: 0x59, B: 0x5e, A: 0xff},
	{R: 0xff, G: 0xca, B: 0x3a, A: 0xff},
	{R: 0x8a, G: 0xc9, B: 0x26, A: 0xff},
	{R: 0x19, G: 0x82, B: 0xc4, A: 0xff},
	{R: 0x6a, G: 0x4c, B: 0x93, A: 0xff},
}

// NewConfettiBurst 在 (x, y) 创建一簇向上散开的彩纸
//
// 参数:
//   - em: 实体管理器
//   - rng: 随机源（决定方向、速度和颜色）
//   - x, y: 爆发中心的屏幕坐标
//   - count: 彩纸数量
//
// 返回:
//   - []ecs.EntityID: 创建的实体
//   - error: em 或 rng 为 nil 时返回错误
func NewConfettiBurst(em *ecs.EntityManager, rng *rand.Rand, x, y float64, count int) ([]ecs.EntityID, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}

	ids := make([]ecs.EntityID, 0, count)
	for i := 0; i < count; i++ {
		// 上半圆内的随机方向（-170° ~ -10°）
		angle := (-170 + rng.Float64()*160) * math.Pi / 180
		speed := ConfettiSpeedMin + rng.Float64()*(ConfettiSpeedMax-ConfettiSpeedMin)

		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
		ecs.AddComponent(em, id, &components.VelocityComponent{
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Gravity: ConfettiGravity,
			Drag:    0.8,
		})
		ecs.AddComponent(em, id, &components.ConfettiComponent{
			Color:    ConfettiPalette[rng.Intn(len(ConfettiPalette))],
			Width:    6 + rng.Float64()*4,
			Height:   10 + rng.Float64()*6,
			Rotation: rng.Float64() * math.Pi,
			Spin:     (rng.Float64()*2 - 1) * 4 * math.Pi,
		})
		ecs.AddComponent(em, id, &components.LifetimeComponent{
			MaxLifetime: ConfettiLifetime * (0.8 + rng.Float64()*0.4),
			FadeOut:     true,
		})
		ids = append(ids, id)
	}
	return ids, nil
}

// NewScorePopup 创建上浮淡出的得分飘字（如 "+10"）
func NewScorePopup(em *ecs.EntityManager, x, y float64, label string, clr color.RGBA) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.FloatingTextComponent{
		Text:    label,
		Color:   clr,
		Size:    ScorePopupSize,
		RiseBy:  ScorePopupRise,
		OriginY: y,
	})
	ecs.AddComponent(em, id, &components.LifetimeComponent{
		MaxLifetime: ScorePopupLifetime,
		FadeOut:     true,
	})
	return id, nil
}

// NewBanner 创建屏幕中央的横幅，显示 duration 秒
// 同一时间只保留一个横幅，已有的横幅会被移除
func NewBanner(em *ecs.EntityManager, label string, clr color.RGBA, duration float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if duration <= 0 {
		return 0, fmt.Errorf("banner duration must be positive, got %v", duration)
	}

	for _, old := range ecs.GetEntitiesWith1[*components.BannerComponent](em) {
		em.DestroyEntity(old)
		ecs.RemoveComponent[*components.BannerComponent](em, old)
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.BannerComponent{
		Text:      label,
		Color:     clr,
		Size:      BannerSize,
		PopInTime: BannerPopInTime,
	})
	ecs.AddComponent(em, id, &components.LifetimeComponent{
		MaxLifetime: duration,
		FadeOut:     true,
	})
	return id, nil
}
