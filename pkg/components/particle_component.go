package components

import "image/color"

// ParticleComponent represents a single particle instance in the particle engine.
//
// Position lives in a separate PositionComponent and velocity in a
// VelocityComponent; this component stores the visual and lifecycle state.
//
// Life starts at 1.0 and strictly decreases by Decay every tick. The
// ParticleSystem destroys the particle once Life <= 0.
//
// This is a pure data component following ECS principles - it contains no methods.
type ParticleComponent struct {
	Family ParticleFamily // 所属粒子族，决定更新与绘制规则

	Size  float64    // 半径/边长（像素）
	Color color.RGBA // 基础颜色，绘制时 alpha 乘以 Life

	// Lifecycle (生命周期, 0-1)
	Life  float64 // 剩余生命，(0, 1]
	Decay float64 // 每帧减少的生命值

	// GravityScale 重力缩放，每帧 VY += ParticleGravity * GravityScale
	GravityScale float64

	// Family-specific extras (族专属字段)
	Rotation      float64 // 当前旋转角度（弧度），纸屑使用
	RotationSpeed float64 // 每帧旋转角速度（弧度）
	Glyph         rune    // 黑客皮肤粒子显示的字符
}
