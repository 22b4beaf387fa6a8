package game

import "github.com/decker502/slingmath/pkg/player"

// Hooks 宿主回调；未设置的回调被忽略
//
// 所有回调都在帧驱动协程中同步调用，回调内不应阻塞。
type Hooks struct {
	// OnTargetHit 靶子被命中（每个被命中的靶子调用一次）
	OnTargetHit func(x, y float64)
	// OnFrame 每帧结束时的只读快照
	OnFrame func(snapshot FrameSnapshot)
	// OnRoundPresented 题目准备好，等待作答
	OnRoundPresented func(q *player.Question)
	// OnRoundResolved 回合结束；err 非空表示提交失败
	OnRoundResolved func(result *player.AnswerResult, err error)
	// OnError 可恢复的错误（已记录日志）
	OnError func(err error)
}

// TargetHit 调用 OnTargetHit（若已设置）
func (h *Hooks) TargetHit(x, y float64) {
	if h != nil && h.OnTargetHit != nil {
		h.OnTargetHit(x, y)
	}
}

// Frame 调用 OnFrame（若已设置）
func (h *Hooks) Frame(snapshot FrameSnapshot) {
	if h != nil && h.OnFrame != nil {
		h.OnFrame(snapshot)
	}
}

// RoundPresented 调用 OnRoundPresented（若已设置）
func (h *Hooks) RoundPresented(q *player.Question) {
	if h != nil && h.OnRoundPresented != nil {
		h.OnRoundPresented(q)
	}
}

// RoundResolved 调用 OnRoundResolved（若已设置）
func (h *Hooks) RoundResolved(result *player.AnswerResult, err error) {
	if h != nil && h.OnRoundResolved != nil {
		h.OnRoundResolved(result, err)
	}
}

// Error 调用 OnError（若已设置）
func (h *Hooks) Error(err error) {
	if h != nil && h.OnError != nil {
		h.OnError(err)
	}
}
