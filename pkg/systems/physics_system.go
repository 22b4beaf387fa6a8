package systems

import (
	"log"

	"github.com/decker502/slingmath/pkg/components"
	"github.com/decker502/slingmath/pkg/ecs"
	"github.com/decker502/slingmath/pkg/entities"
	"github.com/decker502/slingmath/pkg/game"
	"github.com/decker502/slingmath/pkg/utils"
)

// PhysicsSystem 处理弹丸飞行与弹丸-靶子碰撞
//
// 每帧先推进弹丸（与轨迹预览共用 utils.Flight.Advance），
// 再按存储顺序检测未命中的靶子，第一个重叠的靶子被命中。
// 每帧最多命中一个靶子；命中后弹丸立即销毁并触发回合结算。
type PhysicsSystem struct {
	state  *game.SimulationState
	hooks  *game.Hooks
	rounds RoundTrigger
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - state: 模拟状态
//   - hooks: 宿主回调（可为 nil）
//   - rounds: 回合触发器，命中时调用（可为 nil）
func NewPhysicsSystem(state *game.SimulationState, hooks *game.Hooks, rounds RoundTrigger) *PhysicsSystem {
	return &PhysicsSystem{
		state:  state,
		hooks:  hooks,
		rounds: rounds,
	}
}

// Update 推进弹丸一帧并处理碰撞（模拟冻结时不执行）
func (ps *PhysicsSystem) Update(deltaTime float64) {
	if !ps.state.Active || !ps.state.HasProjectile() {
		return
	}

	em := ps.state.EntityManager
	id := ps.state.ProjectileID
	pos, ok1 := ecs.GetComponent[*components.PositionComponent](em, id)
	vel, ok2 := ecs.GetComponent[*components.VelocityComponent](em, id)
	proj, ok3 := ecs.GetComponent[*components.ProjectileComponent](em, id)
	if !ok1 || !ok2 || !ok3 {
		log.Printf("[PhysicsSystem] Projectile %d is missing components, removing", id)
		ps.removeProjectile()
		return
	}

	flight := utils.Flight{
		X:           pos.X,
		Y:           pos.Y,
		VX:          vel.VX,
		VY:          vel.VY,
		CanRicochet: ps.state.Skin.Ricochet,
		Ricocheted:  proj.HasRicocheted,
	}
	res := flight.Advance(ps.state.Config.Physics.Gravity, ps.state.Bounds.Flight())

	pos.X, pos.Y = flight.X, flight.Y
	vel.VX, vel.VY = flight.VX, flight.VY
	proj.HasRicocheted = flight.Ricocheted
	if res.Reflected {
		log.Printf("[PhysicsSystem] Projectile ricocheted at (%.1f, %.1f)", pos.X, pos.Y)
	}

	// 碰撞检测先于越界判定
	if targetID, hit := ps.findHit(pos, proj.Radius); hit {
		ps.resolveHit(targetID)
		return
	}

	if res.Escaped {
		log.Printf("[PhysicsSystem] Projectile left the playfield at (%.1f, %.1f)", pos.X, pos.Y)
		ps.removeProjectile()
	}
}

// findHit 按存储顺序查找第一个与弹丸重叠的未命中靶子
func (ps *PhysicsSystem) findHit(pos *components.PositionComponent, radius float64) (ecs.EntityID, bool) {
	em := ps.state.EntityManager
	for _, id := range ecs.GetEntitiesWith2[*components.TargetComponent, *components.PositionComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		target, _ := ecs.GetComponent[*components.TargetComponent](em, id)
		if target.Hit {
			continue
		}
		tpos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if utils.CirclesOverlap(pos.X, pos.Y, radius, tpos.X, tpos.Y, target.Radius) {
			return id, true
		}
	}
	return 0, false
}

// resolveHit 标记靶子命中、生成爆炸粒子、销毁弹丸并开始回合
func (ps *PhysicsSystem) resolveHit(targetID ecs.EntityID) {
	x, y := markTargetHit(ps.state, ps.hooks, targetID)
	log.Printf("[PhysicsSystem] Target hit at (%.1f, %.1f)", x, y)

	ps.removeProjectile()
	if ps.rounds != nil {
		ps.rounds.BeginRound(x, y)
	}
}

// removeProjectile 销毁当前弹丸
func (ps *PhysicsSystem) removeProjectile() {
	ps.state.EntityManager.DestroyEntity(ps.state.ProjectileID)
	ps.state.ProjectileID = 0
}

// markTargetHit 把靶子标记为命中，在靶子位置生成爆炸粒子并通知宿主
// 返回靶子位置
func markTargetHit(state *game.SimulationState, hooks *game.Hooks, targetID ecs.EntityID) (float64, float64) {
	em := state.EntityManager
	target, _ := ecs.GetComponent[*components.TargetComponent](em, targetID)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, targetID)
	target.Hit = true

	if _, err := entities.EmitParticles(em, state.Rand, state.Catalog, components.FamilyImpactBurst, pos.X, pos.Y); err != nil {
		log.Printf("[PhysicsSystem] Failed to emit impact burst: %v", err)
	}
	hooks.TargetHit(pos.X, pos.Y)
	return pos.X, pos.Y
}
