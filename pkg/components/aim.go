package components

// AimPhase 瞄准控制器状态
type AimPhase int

const (
	// AimIdle 空闲：等待按下
	AimIdle AimPhase = iota
	// AimAiming 拖拽瞄准中
	AimAiming
)

// String 返回状态名称（用于日志）
func (p AimPhase) String() string {
	switch p {
	case AimIdle:
		return "Idle"
	case AimAiming:
		return "Aiming"
	default:
		return "Unknown"
	}
}

// AimState 弹弓瞄准状态
//
// 不变量：
//   - Aiming 状态下 PullY >= AnchorY（不能向锚点上方拉）
//   - 拉拽向量长度 <= MaxPullDistance
type AimState struct {
	Phase AimPhase

	// 锚点（弹弓中心），窗口尺寸变化时重新计算为 (width/2, height-80)
	AnchorX float64
	AnchorY float64

	// 当前拉拽点，仅在 Aiming 状态下有效
	PullX float64
	PullY float64
}

// Pulling 是否处于拖拽状态
func (a *AimState) Pulling() bool {
	return a.Phase == AimAiming
}
