package systems

import (
	"github.com/decker502/slingmath/pkg/components"
	"github.com/decker502/slingmath/pkg/ecs"
	"github.com/decker502/slingmath/pkg/game"
)

// BuildSnapshot 从模拟状态生成一帧只读快照
//
// 命中的靶子和已标记删除的实体不会出现在快照中。
// aim 为 nil 时不生成轨迹预览。
func BuildSnapshot(state *game.SimulationState, aim *AimSystem) game.FrameSnapshot {
	em := state.EntityManager
	snap := game.FrameSnapshot{
		Tick:     state.Tick,
		Width:    state.Bounds.Width,
		Height:   state.Bounds.Height,
		Active:   state.Active,
		Skin:     state.Skin,
		Round:    state.Round.Phase,
		Question: state.Round.Question,
		Level:    state.Level,
		Coins:    state.Coins,
		Status:   state.Status,
		Slingshot: game.SlingshotView{
			AnchorX: state.Aim.AnchorX,
			AnchorY: state.Aim.AnchorY,
			Pulling: state.Aim.Pulling(),
			PullX:   state.Aim.PullX,
			PullY:   state.Aim.PullY,
		},
	}

	for _, id := range ecs.GetEntitiesWith2[*components.TargetComponent, *components.PositionComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		target, _ := ecs.GetComponent[*components.TargetComponent](em, id)
		if target.Hit {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		snap.Targets = append(snap.Targets, game.TargetView{
			ID:     target.ID,
			X:      pos.X,
			Y:      pos.Y,
			Radius: target.Radius,
		})
	}

	if state.HasProjectile() {
		pos, ok1 := ecs.GetComponent[*components.PositionComponent](em, state.ProjectileID)
		proj, ok2 := ecs.GetComponent[*components.ProjectileComponent](em, state.ProjectileID)
		if ok1 && ok2 {
			snap.Projectile = &game.ProjectileView{X: pos.X, Y: pos.Y, Radius: proj.Radius}
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		snap.Particles = append(snap.Particles, game.ParticleView{
			Family:   p.Family,
			X:        pos.X,
			Y:        pos.Y,
			Size:     p.Size,
			Color:    p.Color,
			Alpha:    p.Life,
			Rotation: p.Rotation,
			Glyph:    p.Glyph,
		})
	}

	if aim != nil {
		snap.Trajectory = aim.PreviewTrajectory()
	}
	return snap
}
