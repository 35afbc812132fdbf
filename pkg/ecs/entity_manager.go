// Package ecs 提供一个最小化的实体-组件存储
//
// 实体只是一个 ID，组件按具体类型挂在实体上。
// 系统（pkg/systems）通过查询拥有特定组件组合的实体来驱动逻辑。
package ecs

import (
	"reflect"
	"sort"
)

// EntityID 实体标识，0 表示无效实体
type EntityID uint64

type componentSet map[reflect.Type]interface{}

// EntityManager 保存所有存活实体及其组件
//
// 删除是延迟的：DestroyEntity 只做标记，RemoveMarkedEntities 在帧末统一清理，
// 这样系统可以在遍历查询结果时安全地销毁实体。
type EntityManager struct {
	nextID   uint64
	entities map[EntityID]componentSet
	doomed   map[EntityID]struct{}
}

// NewEntityManager 创建空的实体存储
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:   1,
		entities: make(map[EntityID]componentSet),
		doomed:   make(map[EntityID]struct{}),
	}
}

// CreateEntity 分配一个新 ID，ID 单调递增且不复用
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.entities[id] = make(componentSet)
	return id
}

// DestroyEntity 标记实体待删除，重复标记或未知 ID 会被忽略
func (em *EntityManager) DestroyEntity(id EntityID) {
	if _, ok := em.entities[id]; !ok {
		return
	}
	em.doomed[id] = struct{}{}
}

// IsPendingDestroy 实体是否已被标记但尚未清理
func (em *EntityManager) IsPendingDestroy(id EntityID) bool {
	_, ok := em.doomed[id]
	return ok
}

// AddComponent 挂载组件，同类型组件会被替换；实体不存在时什么也不做
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	if set, ok := em.entities[id]; ok {
		set[reflect.TypeOf(component)] = component
	}
}

// RemoveComponent 卸载指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if set, ok := em.entities[id]; ok {
		delete(set, componentType)
	}
}

// GetComponent 按类型取组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	set, ok := em.entities[id]
	if !ok {
		return nil, false
	}
	comp, found := set[componentType]
	return comp, found
}

// HasComponent 实体是否挂有该类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, found := em.GetComponent(id, componentType)
	return found
}

// RemoveMarkedEntities 清理所有被标记的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for id := range em.doomed {
		delete(em.entities, id)
		delete(em.doomed, id)
	}
}

// Clear 立即删除所有实体
// 用于重开一局时丢弃上一局残留的特效实体，ID 计数不回退
func (em *EntityManager) Clear() {
	em.entities = make(map[EntityID]componentSet)
	em.doomed = make(map[EntityID]struct{})
}

// EntityCount 当前实体数量（包含已标记但尚未清理的实体）
func (em *EntityManager) EntityCount() int {
	return len(em.entities)
}

// GetEntitiesWith 查询同时拥有所有给定组件类型的实体
//
// 返回的 ID 按升序排列，绘制顺序因此与创建顺序一致。
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0, len(em.entities))

next:
	for id, set := range em.entities {
		for _, ct := range componentTypes {
			if _, found := set[ct]; !found {
				continue next
			}
		}
		result = append(result, id)
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
