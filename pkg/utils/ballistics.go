package utils

import "math"

// Point 画布坐标点
type Point struct {
	X, Y float64
}

// Bounds 弹丸飞行区域（画布尺寸）
// 顶部开放：弹丸可以飞出顶部再落回来
type Bounds struct {
	Width  float64
	Height float64
}

// Flight 弹道体：弹丸的运动学状态
//
// 实时弹丸和瞄准时的轨迹预览都通过 Advance 推进，
// 保证预览与实际飞行逐帧一致。
type Flight struct {
	X, Y   float64
	VX, VY float64

	// CanRicochet 是否允许在左右墙壁反弹（mirror 皮肤）
	CanRicochet bool
	// Ricocheted 是否已经反弹过（每次射击最多一次）
	Ricocheted bool
}

// StepResult 单帧推进的结果
type StepResult struct {
	// Reflected 本帧发生了墙壁反弹
	Reflected bool
	// Escaped 弹丸离开了画布左、右或底部边界，应当被移除
	Escaped bool
}

// Advance 推进一帧：x += vx; y += vy; vy += gravity
// 然后处理侧墙反弹与越界判定
func (f *Flight) Advance(gravity float64, b Bounds) StepResult {
	f.X += f.VX
	f.Y += f.VY
	f.VY += gravity

	var res StepResult
	if f.CanRicochet && !f.Ricocheted {
		switch {
		case f.X <= 0:
			f.X = 0
			f.VX = -f.VX
			f.Ricocheted = true
			res.Reflected = true
		case f.X >= b.Width:
			f.X = b.Width
			f.VX = -f.VX
			f.Ricocheted = true
			res.Reflected = true
		}
	}

	res.Escaped = f.X < 0 || f.X > b.Width || f.Y > b.Height
	return res
}

// Position 当前坐标
func (f *Flight) Position() Point {
	return Point{X: f.X, Y: f.Y}
}

// LaunchVelocity 根据拉拽点计算发射速度: (anchor - pull) / divisor
func LaunchVelocity(anchor, pull Point, divisor float64) (vx, vy float64) {
	return (anchor.X - pull.X) / divisor, (anchor.Y - pull.Y) / divisor
}

// PredictTrajectory 模拟最多 maxSteps 帧并返回每帧后的位置
// 弹丸越界时停止（越界那一帧不包含在结果中）
func PredictTrajectory(start Flight, gravity float64, b Bounds, maxSteps int) []Point {
	points := make([]Point, 0, maxSteps)
	f := start
	for i := 0; i < maxSteps; i++ {
		if res := f.Advance(gravity, b); res.Escaped {
			break
		}
		points = append(points, f.Position())
	}
	return points
}

// ClampPull 约束拉拽点
//
//  1. pull.y 不能高于锚点（pull.y >= anchor.y）
//  2. pull.x 限制在 [-lateralMargin, width+lateralMargin]
//  3. 拉拽向量长度不超过 maxPull（保持方向缩放）
//  4. 缩放后再次保证 pull.y >= anchor.y
func ClampPull(anchor, pull Point, width, lateralMargin, maxPull float64) Point {
	p := pull
	if p.Y < anchor.Y {
		p.Y = anchor.Y
	}
	p.X = Clamp(p.X, -lateralMargin, width+lateralMargin)

	dx := p.X - anchor.X
	dy := p.Y - anchor.Y
	dist := math.Hypot(dx, dy)
	if dist > maxPull {
		angle := math.Atan2(dy, dx)
		p.X = anchor.X + math.Cos(angle)*maxPull
		p.Y = anchor.Y + math.Sin(angle)*maxPull
	}

	if p.Y < anchor.Y {
		p.Y = anchor.Y
	}
	return p
}

// Clamp 将 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Distance 两点间距离
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// CirclesOverlap 圆-圆碰撞检测（严格小于半径和才算重叠）
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	return Distance(x1, y1, x2, y2) < r1+r2
}
