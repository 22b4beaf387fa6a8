package systems

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/decker502/slingmath/pkg/components"
	"github.com/decker502/slingmath/pkg/config"
	"github.com/decker502/slingmath/pkg/entities"
	"github.com/decker502/slingmath/pkg/game"
	"github.com/decker502/slingmath/pkg/player"
	"github.com/decker502/slingmath/pkg/utils"
)

// statusTTLFrames HUD 错误提示显示的帧数（60 TPS 下约 3 秒）
const statusTTLFrames = 180

// ErrNoRoundPresented 当前没有等待作答的题目
var ErrNoRoundPresented = errors.New("no question is being presented")

// RoundTrigger 命中后发起回合结算
type RoundTrigger interface {
	// BeginRound 在 (x, y) 命中后开始回合；已有回合进行中时返回 false
	BeginRound(x, y float64) bool
}

// Dispatcher 执行一个可能阻塞的任务，默认每个任务一个 goroutine
type Dispatcher func(task func())

// RoundSystem 回合结算状态机
//
//	Idle --BeginRound--> Delay --计时结束--> Fetching --成功--> Presenting
//	Presenting --Submit--> Submitting --响应(成功或失败)--> Idle
//	Fetching --失败--> Idle
//	Presenting --Dismiss--> Idle
//
// 回合开始时模拟冻结，回到 Idle 时解冻、删除命中的靶子并补齐靶池。
// Player Service 调用在 Dispatcher 中执行，结果通过带缓冲的通道送回，
// 在下一次 Update 中应用，因此 SimulationState 只在帧驱动协程中被修改。
type RoundSystem struct {
	state   *game.SimulationState
	hooks   *game.Hooks
	service player.Service
	targets *TargetSystem

	dispatch Dispatcher
	results  chan func()

	// requestedSkin 启动时要求装备的皮肤，加载档案时解锁并装备
	requestedSkin config.SkinID
}

// NewRoundSystem 创建回合系统
//
// 参数:
//   - state: 模拟状态
//   - hooks: 宿主回调（可为 nil）
//   - service: Player Service（可为 nil，此时所有请求按失败处理）
//   - targets: 靶池系统，结算时用于清理和补充靶子
func NewRoundSystem(state *game.SimulationState, hooks *game.Hooks, service player.Service, targets *TargetSystem) *RoundSystem {
	return &RoundSystem{
		state:    state,
		hooks:    hooks,
		service:  service,
		targets:  targets,
		dispatch: func(task func()) { go task() },
		results:  make(chan func(), 8),
	}
}

// SetDispatcher 替换任务执行方式（测试中可同步执行）
func (r *RoundSystem) SetDispatcher(d Dispatcher) {
	if d != nil {
		r.dispatch = d
	}
}

// RequestSkin 记录启动时要求的皮肤（经典皮肤不需要处理）
//
// 下一次 RefreshProfile 会在读取装备皮肤之前解锁并装备它，
// 这样玩家档案不会把它覆盖回档案中的旧皮肤。
func (r *RoundSystem) RequestSkin(id config.SkinID) {
	if id <= config.SkinClassic {
		return
	}
	r.requestedSkin = id
}

// BeginRound 冻结模拟并开始命中演出计时
func (r *RoundSystem) BeginRound(x, y float64) bool {
	round := &r.state.Round
	if round.Pending() {
		log.Printf("[RoundSystem] Round already pending (%s), ignoring hit at (%.1f, %.1f)", round.Phase, x, y)
		return false
	}

	r.state.Active = false
	round.Phase = game.RoundDelay
	round.DelayRemaining = r.state.Config.Round.HitDelay
	round.LastHit = &utils.Point{X: x, Y: y}
	round.Question = nil
	log.Printf("[RoundSystem] Round started, question in %.1fs", round.DelayRemaining)
	return true
}

// Update 应用已完成的异步结果并推进演出计时
func (r *RoundSystem) Update(deltaTime float64) {
	r.drainResults()

	round := &r.state.Round
	if round.Phase != game.RoundDelay {
		return
	}
	round.DelayRemaining -= deltaTime
	if round.DelayRemaining <= 0 {
		round.DelayRemaining = 0
		r.fetchQuestion()
	}
}

// drainResults 非阻塞地应用所有已到达的结果
func (r *RoundSystem) drainResults() {
	for {
		select {
		case apply := <-r.results:
			apply()
		default:
			return
		}
	}
}

// submitTask 在 Dispatcher 中执行 call，并把 apply 送回帧驱动协程
func (r *RoundSystem) submitTask(call func(ctx context.Context) func()) {
	timeout := r.state.Config.Round.RequestTimeoutDuration()
	r.dispatch(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		r.results <- call(ctx)
	})
}

// fetchQuestion Delay -> Fetching
func (r *RoundSystem) fetchQuestion() {
	r.state.Round.Phase = game.RoundFetching
	if r.service == nil {
		r.applyQuestion(nil, player.ErrServiceUnavailable)
		return
	}

	level := r.state.Level
	svc := r.service
	log.Printf("[RoundSystem] Requesting question for level %d", level)
	r.submitTask(func(ctx context.Context) func() {
		q, err := svc.GetQuestion(ctx, level)
		return func() { r.applyQuestion(q, err) }
	})
}

// applyQuestion Fetching -> Presenting，失败时直接结束回合
func (r *RoundSystem) applyQuestion(q *player.Question, err error) {
	round := &r.state.Round
	if round.Phase != game.RoundFetching {
		return
	}
	if err == nil && q == nil {
		err = fmt.Errorf("empty question response")
	}
	if err != nil {
		log.Printf("[RoundSystem] Failed to fetch question: %v", err)
		r.reportError(fmt.Errorf("fetch question: %w", err), "Could not load question")
		r.finish()
		return
	}

	round.Phase = game.RoundPresenting
	round.Question = q
	log.Printf("[RoundSystem] Presenting question: %s", q.Question)
	r.hooks.RoundPresented(q)
}

// Submit 提交玩家选择的答案（Presenting -> Submitting）
func (r *RoundSystem) Submit(selected int) error {
	round := &r.state.Round
	if round.Phase != game.RoundPresenting || round.Question == nil {
		return ErrNoRoundPresented
	}

	round.Phase = game.RoundSubmitting
	req := player.AnswerRequest{
		PlayerID:       r.state.PlayerID,
		SelectedAnswer: selected,
		CorrectAnswer:  round.Question.CorrectAnswer,
		Level:          round.Question.Level,
	}
	if r.service == nil {
		r.applyAnswer(nil, player.ErrServiceUnavailable)
		return nil
	}

	svc := r.service
	log.Printf("[RoundSystem] Submitting answer %d", selected)
	r.submitTask(func(ctx context.Context) func() {
		res, err := svc.SubmitAnswer(ctx, req)
		return func() { r.applyAnswer(res, err) }
	})
	return nil
}

// SubmitOption 按题目选项下标提交答案
func (r *RoundSystem) SubmitOption(index int) error {
	q := r.state.Round.Question
	if r.state.Round.Phase != game.RoundPresenting || q == nil {
		return ErrNoRoundPresented
	}
	if index < 0 || index >= len(q.Options) {
		return fmt.Errorf("option index %d out of range [0, %d)", index, len(q.Options))
	}
	return r.Submit(q.Options[index])
}

// applyAnswer Submitting -> Idle（成功或失败都结束回合）
func (r *RoundSystem) applyAnswer(res *player.AnswerResult, err error) {
	round := &r.state.Round
	if round.Phase != game.RoundSubmitting {
		return
	}
	if err == nil && res == nil {
		err = fmt.Errorf("empty answer response")
	}

	if err != nil {
		log.Printf("[RoundSystem] Failed to submit answer: %v", err)
		r.reportError(fmt.Errorf("submit answer: %w", err), "Could not submit answer")
	} else {
		if res.Correct {
			r.celebrate()
			r.state.SetStatus(fmt.Sprintf("+%d coins", res.CoinsEarned), statusTTLFrames)
		} else {
			r.state.SetStatus("Wrong answer", statusTTLFrames)
		}
		r.state.Level = res.NewLevel
		r.state.Coins = res.TotalCoins
		log.Printf("[RoundSystem] Answer resolved: correct=%v level=%d coins=%d", res.Correct, res.NewLevel, res.TotalCoins)
	}

	r.hooks.RoundResolved(res, err)
	r.finish()
}

// Dismiss 放弃当前题目，直接结束回合
func (r *RoundSystem) Dismiss() {
	if r.state.Round.Phase != game.RoundPresenting {
		return
	}
	log.Printf("[RoundSystem] Question dismissed")
	r.finish()
}

// celebrate 在最后命中位置（没有时用画布中心）生成纸屑
func (r *RoundSystem) celebrate() {
	x, y := r.state.Bounds.Width/2, r.state.Bounds.Height/2
	if hit := r.state.Round.LastHit; hit != nil {
		x, y = hit.X, hit.Y
	}
	if _, err := entities.EmitParticles(r.state.EntityManager, r.state.Rand, r.state.Catalog, components.FamilyRewardConfetti, x, y); err != nil {
		log.Printf("[RoundSystem] Failed to emit confetti: %v", err)
	}
}

// finish 解冻模拟、清理命中的靶子、补齐靶池并清空回合状态
func (r *RoundSystem) finish() {
	r.state.Active = true
	if r.targets != nil {
		r.targets.DiscardHit()
		r.targets.Replenish()
	}
	r.state.Round = game.RoundState{}
}

func (r *RoundSystem) reportError(err error, status string) {
	r.state.SetStatus(status, statusTTLFrames)
	r.hooks.Error(err)
}

// RefreshProfile 创建或读取玩家档案，并同步装备的皮肤
//
// 结果在之后的 Update 中应用；失败只记录日志并提示。
func (r *RoundSystem) RefreshProfile() {
	if r.service == nil {
		return
	}

	svc := r.service
	playerID := r.state.PlayerID
	requested := r.requestedSkin
	r.requestedSkin = config.SkinClassic
	r.submitTask(func(ctx context.Context) func() {
		profile, err := svc.CreateOrGetPlayer(ctx, playerID)
		if err != nil {
			return func() {
				log.Printf("[RoundSystem] Failed to load player %q: %v", playerID, err)
				r.reportError(fmt.Errorf("load player: %w", err), "Could not load player")
			}
		}
		equipErr := equipSkin(ctx, svc, profile.PlayerID, requested)
		skin, skinErr := svc.GetEquippedSkin(ctx, profile.PlayerID)
		return func() {
			r.applyProfile(profile)
			if equipErr != nil {
				log.Printf("[RoundSystem] Failed to equip skin %d: %v", requested, equipErr)
			}
			if skinErr != nil {
				log.Printf("[RoundSystem] Failed to read equipped skin: %v", skinErr)
				return
			}
			r.state.SetSkin(config.SkinID(skin))
		}
	})
}

// equipSkin 解锁（服务支持时）并装备皮肤；skin 为经典皮肤时什么都不做
func equipSkin(ctx context.Context, svc player.Service, playerID string, skin config.SkinID) error {
	if skin <= config.SkinClassic {
		return nil
	}
	if unlocker, ok := svc.(player.SkinUnlocker); ok {
		if _, err := unlocker.UnlockSkin(ctx, playerID, int(skin)); err != nil {
			return fmt.Errorf("unlock skin: %w", err)
		}
	}
	if _, err := svc.SelectSkin(ctx, playerID, int(skin)); err != nil {
		return fmt.Errorf("select skin: %w", err)
	}
	return nil
}

// applyProfile 把档案同步到 HUD 状态
func (r *RoundSystem) applyProfile(profile *player.Profile) {
	r.state.PlayerID = profile.PlayerID
	r.state.Coins = profile.Coins
	if profile.QuestionLevel > 0 {
		r.state.Level = profile.QuestionLevel
	}
	log.Printf("[RoundSystem] Player %s loaded: level=%d coins=%d", profile.PlayerID, r.state.Level, r.state.Coins)
}
