package systems

import (
	"log"
	"math"

	"github.com/decker502/slingmath/pkg/components"
	"github.com/decker502/slingmath/pkg/ecs"
	"github.com/decker502/slingmath/pkg/entities"
	"github.com/decker502/slingmath/pkg/game"
)

// TargetSystem 管理靶池：移动、边界反弹、回合结算后的清理与补充
//
// 非命中靶子每帧执行 x += vx; y += vy，越过可见区域时
// 把坐标夹回区域内并把对应速度分量指向区域内侧。
// 命中的靶子原地冻结，直到回合结算时被 DiscardHit 删除。
type TargetSystem struct {
	state *game.SimulationState
}

// NewTargetSystem 创建靶池系统
func NewTargetSystem(state *game.SimulationState) *TargetSystem {
	return &TargetSystem{state: state}
}

// Update 移动所有非命中靶子（模拟冻结时不移动）
func (s *TargetSystem) Update(deltaTime float64) {
	if !s.state.Active {
		return
	}

	em := s.state.EntityManager
	for _, id := range s.LiveTargets() {
		target, _ := ecs.GetComponent[*components.TargetComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		vel, ok := ecs.GetComponent[*components.VelocityComponent](em, id)
		if !ok {
			continue
		}

		pos.X += vel.VX
		pos.Y += vel.VY

		minX, maxX, minY, maxY := s.state.Bounds.TargetArea(target.Radius)
		pos.X, vel.VX = reflectAxis(pos.X, vel.VX, minX, maxX)
		pos.Y, vel.VY = reflectAxis(pos.Y, vel.VY, minY, maxY)
	}
}

// reflectAxis 单轴反弹：越界时夹回 [lo, hi] 并让速度指向区间内侧
// 区间为空（画布过小）时固定在 lo
func reflectAxis(p, v, lo, hi float64) (float64, float64) {
	if hi < lo {
		return lo, v
	}
	if p < lo {
		return lo, math.Abs(v)
	}
	if p > hi {
		return hi, -math.Abs(v)
	}
	return p, v
}

// LiveTargets 返回未命中且未被标记删除的靶子（按存储顺序）
func (s *TargetSystem) LiveTargets() []ecs.EntityID {
	em := s.state.EntityManager
	all := ecs.GetEntitiesWith2[*components.TargetComponent, *components.PositionComponent](em)
	live := make([]ecs.EntityID, 0, len(all))
	for _, id := range all {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		target, _ := ecs.GetComponent[*components.TargetComponent](em, id)
		if target.Hit {
			continue
		}
		live = append(live, id)
	}
	return live
}

// PoolCount 返回靶池中的靶子数量（包含已命中但尚未清理的靶子）
func (s *TargetSystem) PoolCount() int {
	em := s.state.EntityManager
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.TargetComponent](em) {
		if !em.IsMarkedForDestroy(id) {
			count++
		}
	}
	return count
}

// DiscardHit 删除所有已命中的靶子，返回删除数量
func (s *TargetSystem) DiscardHit() int {
	em := s.state.EntityManager
	removed := 0
	for _, id := range ecs.GetEntitiesWith1[*components.TargetComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		target, _ := ecs.GetComponent[*components.TargetComponent](em, id)
		if target.Hit {
			em.DestroyEntity(id)
			removed++
		}
	}
	return removed
}

// Replenish 补充靶子直到靶池数量达到 PoolSize，返回新建数量
func (s *TargetSystem) Replenish() int {
	cfg := s.state.Config.Targets
	created := 0
	for s.PoolCount() < cfg.PoolSize {
		if _, err := entities.NewTarget(s.state.EntityManager, s.state.Rand, cfg, s.state.Bounds.Width, s.state.Bounds.Height); err != nil {
			log.Printf("[TargetSystem] Failed to create target: %v", err)
			break
		}
		created++
	}
	if created > 0 {
		log.Printf("[TargetSystem] Replenished %d target(s)", created)
	}
	return created
}
