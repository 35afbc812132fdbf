package systems

import (
	"github.com/decker502/toanvui/pkg/components"
	"github.com/decker502/toanvui/pkg/ecs"
)

// LifetimeSystem 推进特效实体的生命周期，过期后标记删除
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 累加存在时间，过期实体交给 EntityManager 延迟删除
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok || lifetime.IsExpired {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
			s.entityManager.DestroyEntity(id)
		}
	}
}

// LifeRatio 已存在时间占比 0 ~ 1，没有生命周期组件时返回 0
func LifeRatio(em *ecs.EntityManager, id ecs.EntityID) float64 {
	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if !ok || lifetime.MaxLifetime <= 0 {
		return 0
	}
	ratio := lifetime.CurrentLifetime / lifetime.MaxLifetime
	if ratio > 1 {
		return 1
	}
	return ratio
}
