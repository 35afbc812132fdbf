package components

// LifetimeComponent 管理特效实体的生命周期
// 存在时间达到上限后实体被销毁
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大生命周期(秒)
	CurrentLifetime float64 // 当前已存在时间(秒)
	IsExpired       bool    // 是否已过期
	FadeOut         bool    // 渲染时是否随生命周期淡出
}
