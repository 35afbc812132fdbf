package systems

import (
	"github.com/decker502/toanvui/pkg/components"
	"github.com/decker502/toanvui/pkg/ecs"
	"github.com/decker502/toanvui/pkg/utils"
)

// EffectMotionSystem 移动特效实体
//   - 有速度的实体：重力、阻力、位移（彩纸）
//   - 彩纸旋转
//   - 飘字：按生命周期比例缓动上浮
type EffectMotionSystem struct {
	entityManager *ecs.EntityManager
}

// NewEffectMotionSystem 创建特效运动系统
func NewEffectMotionSystem(em *ecs.EntityManager) *EffectMotionSystem {
	return &EffectMotionSystem{entityManager: em}
}

// Update 推进 deltaTime 秒
func (s *EffectMotionSystem) Update(deltaTime float64) {
	em := s.entityManager

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.VelocityComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)

		vel.VY += vel.Gravity * deltaTime
		if vel.Drag > 0 {
			keep := 1 - vel.Drag*deltaTime
			if keep < 0 {
				keep = 0
			}
			vel.VX *= keep
			vel.VY *= keep
		}
		pos.X += vel.VX * deltaTime
		pos.Y += vel.VY * deltaTime
	}

	for _, id := range ecs.GetEntitiesWith1[*components.ConfettiComponent](em) {
		confetti, _ := ecs.GetComponent[*components.ConfettiComponent](em, id)
		confetti.Rotation += confetti.Spin * deltaTime
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.FloatingTextComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		ft, _ := ecs.GetComponent[*components.FloatingTextComponent](em, id)
		pos.Y = ft.OriginY - ft.RiseBy*utils.EaseOutCubic(LifeRatio(em, id))
	}
}
