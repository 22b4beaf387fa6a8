package systems

import (
	"log"

	"github.com/decker502/slingmath/pkg/components"
	"github.com/decker502/slingmath/pkg/config"
	"github.com/decker502/slingmath/pkg/ecs"
	"github.com/decker502/slingmath/pkg/entities"
	"github.com/decker502/slingmath/pkg/game"
	"github.com/decker502/slingmath/pkg/utils"
)

// zeroPullEpsilon 拉拽向量长度小于该值视为零长度拉拽
const zeroPullEpsilon = 1e-9

// AimSystem 弹弓瞄准状态机
//
// 状态转换:
//
//	Idle --按下(锚点捕获半径内, 无弹丸, 模拟运行中)--> Aiming
//	Aiming --移动--> Aiming（拉拽点经过 utils.ClampPull 约束）
//	Aiming --释放(任意位置)--> Idle（发射弹丸，或 instant-kill 清场）
//
// 畸形输入（NaN/Inf 坐标）直接丢弃。
type AimSystem struct {
	state   *game.SimulationState
	hooks   *game.Hooks
	rounds  RoundTrigger
	targets *TargetSystem
}

// NewAimSystem 创建瞄准系统
func NewAimSystem(state *game.SimulationState, hooks *game.Hooks, rounds RoundTrigger, targets *TargetSystem) *AimSystem {
	return &AimSystem{
		state:   state,
		hooks:   hooks,
		rounds:  rounds,
		targets: targets,
	}
}

// HandlePointer 处理一帧的指针输入
//
// 释放只使用最后一次移动记录的拉拽点，释放事件本身的坐标不参与计算。
func (s *AimSystem) HandlePointer(p utils.PointerSample) {
	if !p.Valid() {
		return
	}

	aim := &s.state.Aim
	switch {
	case p.Pressed:
		s.press(p.X, p.Y)
	case p.Down && aim.Phase == components.AimAiming:
		s.move(p.X, p.Y)
	}

	if p.Released && aim.Phase == components.AimAiming {
		s.release()
	}
}

// press Idle -> Aiming
func (s *AimSystem) press(x, y float64) {
	aim := &s.state.Aim
	if aim.Phase != components.AimIdle || !s.state.Active || s.state.HasProjectile() {
		return
	}

	anchor := s.state.Anchor()
	if utils.Distance(anchor.X, anchor.Y, x, y) >= s.state.Config.Aim.CaptureRadius {
		return
	}

	aim.Phase = components.AimAiming
	s.setPull(x, y)
	log.Printf("[AimSystem] Aiming started at (%.1f, %.1f)", aim.PullX, aim.PullY)
}

// move 更新拉拽点
func (s *AimSystem) move(x, y float64) {
	s.setPull(x, y)
}

func (s *AimSystem) setPull(x, y float64) {
	cfg := s.state.Config.Aim
	pull := utils.ClampPull(s.state.Anchor(), utils.Point{X: x, Y: y},
		s.state.Bounds.Width, cfg.LateralMargin, cfg.MaxPullDistance)
	s.state.Aim.PullX = pull.X
	s.state.Aim.PullY = pull.Y
}

// release Aiming -> Idle
func (s *AimSystem) release() {
	aim := &s.state.Aim
	pull := utils.Point{X: aim.PullX, Y: aim.PullY}
	aim.Phase = components.AimIdle
	aim.PullX, aim.PullY = aim.AnchorX, aim.AnchorY

	if s.state.Skin.InstantKill {
		s.clearAllTargets()
		return
	}

	anchor := s.state.Anchor()
	if utils.Distance(anchor.X, anchor.Y, pull.X, pull.Y) < zeroPullEpsilon &&
		s.state.Config.Aim.ZeroPullPolicy != config.ZeroPullDrop {
		log.Printf("[AimSystem] Zero-length pull released, no projectile")
		return
	}

	vx, vy := utils.LaunchVelocity(anchor, pull, s.state.Config.Aim.PowerDivisor)
	id, err := entities.NewProjectile(s.state.EntityManager, pull.X, pull.Y, vx, vy, s.state.Config.Physics.ProjectileRadius)
	if err != nil {
		log.Printf("[AimSystem] Failed to launch projectile: %v", err)
		s.hooks.Error(err)
		return
	}
	s.state.ProjectileID = id
	log.Printf("[AimSystem] Projectile launched from (%.1f, %.1f) with velocity (%.2f, %.2f)", pull.X, pull.Y, vx, vy)
}

// clearAllTargets instant-kill 皮肤：命中全部未命中靶子，只发起一次回合请求
func (s *AimSystem) clearAllTargets() {
	live := s.targets.LiveTargets()
	if len(live) == 0 {
		log.Printf("[AimSystem] Instant kill released with no live targets")
		return
	}

	var lastID ecs.EntityID
	var lastX, lastY float64
	for _, id := range live {
		lastX, lastY = markTargetHit(s.state, s.hooks, id)
		lastID = id
	}
	log.Printf("[AimSystem] Instant kill cleared %d target(s), last hit entity %d", len(live), lastID)

	if s.rounds != nil {
		s.rounds.BeginRound(lastX, lastY)
	}
}

// PreviewTrajectory 返回当前拉拽对应的预测轨迹
//
// 只有带轨迹预览的皮肤在 Aiming 状态下才有结果。
// 预览与实时弹丸使用同一个 utils.Flight.Advance，逐帧一致。
func (s *AimSystem) PreviewTrajectory() []utils.Point {
	aim := s.state.Aim
	if aim.Phase != components.AimAiming || !s.state.Skin.TrajectoryPreview {
		return nil
	}

	anchor := s.state.Anchor()
	pull := utils.Point{X: aim.PullX, Y: aim.PullY}
	if utils.Distance(anchor.X, anchor.Y, pull.X, pull.Y) < zeroPullEpsilon &&
		s.state.Config.Aim.ZeroPullPolicy != config.ZeroPullDrop {
		return nil
	}

	vx, vy := utils.LaunchVelocity(anchor, pull, s.state.Config.Aim.PowerDivisor)
	start := utils.Flight{
		X:           pull.X,
		Y:           pull.Y,
		VX:          vx,
		VY:          vy,
		CanRicochet: s.state.Skin.Ricochet,
	}
	return utils.PredictTrajectory(start, s.state.Config.Physics.Gravity, s.state.Bounds.Flight(), s.state.Config.Aim.PreviewSteps)
}
