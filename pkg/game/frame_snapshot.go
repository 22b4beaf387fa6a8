package game

import (
	"image/color"

	"github.com/decker502/slingmath/pkg/components"
	"github.com/decker502/slingmath/pkg/config"
	"github.com/decker502/slingmath/pkg/player"
	"github.com/decker502/slingmath/pkg/utils"
)

// TargetView 快照中的靶子（只包含未命中的靶子）
type TargetView struct {
	ID     string
	X, Y   float64
	Radius float64
}

// ProjectileView 快照中的弹丸
type ProjectileView struct {
	X, Y   float64
	Radius float64
}

// ParticleView 快照中的粒子
type ParticleView struct {
	Family   components.ParticleFamily
	X, Y     float64
	Size     float64
	Color    color.RGBA
	Alpha    float64 // = Life
	Rotation float64
	Glyph    rune
}

// SlingshotView 快照中的弹弓
type SlingshotView struct {
	AnchorX, AnchorY float64
	Pulling          bool
	PullX, PullY     float64
}

// FrameSnapshot 一帧结束时的只读状态，渲染层只消费快照
type FrameSnapshot struct {
	Tick          uint64
	Width, Height float64
	Active        bool
	Skin          config.SkinEffect

	Targets    []TargetView
	Projectile *ProjectileView
	Particles  []ParticleView
	Slingshot  SlingshotView
	// Trajectory 瞄准时的预测轨迹（仅带 TrajectoryPreview 的皮肤）
	Trajectory []utils.Point

	Round    RoundPhase
	Question *player.Question
	Level    int
	Coins    int
	Status   string
}
