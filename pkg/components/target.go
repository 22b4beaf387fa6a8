package components

// TargetComponent 标记一个游荡的圆形靶子
//
// 生命周期：
//   - 回合开始时或靶池数量不足时创建
//   - 被弹丸命中（或 instant-kill 皮肤释放）时 Hit = true
//   - Hit 之后原地冻结：不再移动、不再参与碰撞、不再绘制
//   - 只有回合结算时才会被删除
type TargetComponent struct {
	ID     string  // 稳定标识（UUID），用于快照与日志
	Radius float64 // 碰撞与绘制半径（像素）
	Hit    bool    // 是否已被命中
}
