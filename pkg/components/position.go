package components

// PositionComponent 存储实体的画布坐标（像素，左上角为原点）
// 对于圆形实体（目标、弹丸、粒子），坐标表示圆心
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 存储实体的速度
// 单位是"像素/帧"：模拟按帧步进，每帧执行一次 X += VX, Y += VY
type VelocityComponent struct {
	VX float64
	VY float64
}
