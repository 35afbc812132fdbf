// Package components 定义特效实体使用的纯数据组件
//
// 组件只保存数据，不包含逻辑；逻辑位于 pkg/systems。
package components

// PositionComponent 实体中心的屏幕坐标
type PositionComponent struct {
	X, Y float64
}

// VelocityComponent 速度（像素/秒）
type VelocityComponent struct {
	VX, VY  float64
	Gravity float64 // 竖直加速度（像素/秒²），向下为正
	Drag    float64 // 每秒速度衰减比例 0 ~ 1
}
