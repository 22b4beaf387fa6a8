package components

// ProjectileComponent 标记当前飞行中的弹丸
// 同一时刻最多只有一个弹丸实体存在（由 SimulationState.ProjectileID 保证）
type ProjectileComponent struct {
	Radius float64 // 碰撞半径（像素）

	// HasRicocheted 本次飞行是否已经在侧墙反弹过
	// ricochet 皮肤每次射击最多反弹一次
	HasRicocheted bool
}
