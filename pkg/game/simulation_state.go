package game

import (
	"log"
	"math/rand"

	"github.com/decker502/slingmath/internal/particle"
	"github.com/decker502/slingmath/pkg/components"
	"github.com/decker502/slingmath/pkg/config"
	"github.com/decker502/slingmath/pkg/ecs"
	"github.com/decker502/slingmath/pkg/player"
	"github.com/decker502/slingmath/pkg/utils"
)

// PlayfieldBounds 画布尺寸与底部保留区
type PlayfieldBounds struct {
	Width  float64
	Height float64
	// ReservedZone 画布底部为弹弓保留的高度，靶子不能进入
	ReservedZone float64
}

// Flight 返回弹丸飞行使用的边界（顶部开放）
func (b PlayfieldBounds) Flight() utils.Bounds {
	return utils.Bounds{Width: b.Width, Height: b.Height}
}

// TargetArea 返回非命中靶子必须保持的区域
//
//	x ∈ [r, width-r], y ∈ [r, height-reservedZone-r]
func (b PlayfieldBounds) TargetArea(radius float64) (minX, maxX, minY, maxY float64) {
	return radius, b.Width - radius, radius, b.Height - b.ReservedZone - radius
}

// RoundPhase 回合结算阶段
type RoundPhase int

const (
	// RoundIdle 没有进行中的回合
	RoundIdle RoundPhase = iota
	// RoundDelay 命中后的固定演出时间（不可取消）
	RoundDelay
	// RoundFetching 正在请求题目
	RoundFetching
	// RoundPresenting 题目已显示，等待玩家作答
	RoundPresenting
	// RoundSubmitting 正在提交答案
	RoundSubmitting
)

// String 返回阶段名称（用于日志）
func (p RoundPhase) String() string {
	switch p {
	case RoundIdle:
		return "Idle"
	case RoundDelay:
		return "Delay"
	case RoundFetching:
		return "Fetching"
	case RoundPresenting:
		return "Presenting"
	case RoundSubmitting:
		return "Submitting"
	default:
		return "Unknown"
	}
}

// RoundState 当前回合状态；同一时刻最多只有一个回合
type RoundState struct {
	Phase RoundPhase
	// DelayRemaining 演出剩余时间（秒）
	DelayRemaining float64
	// LastHit 最近一次命中的靶子位置，回合结算后清空
	LastHit *utils.Point
	// Question 当前题目（Presenting/Submitting 阶段有效）
	Question *player.Question
}

// Pending 是否有进行中的回合
func (r *RoundState) Pending() bool {
	return r.Phase != RoundIdle
}

// SimulationState 模拟的全部可变状态
//
// 由帧驱动（GameScene）独占持有，各系统通过指针读写。
// 只在 ebiten 的 Update 协程中访问；异步的 Player Service 结果
// 通过通道回到 Update 协程后才会写入这里。
type SimulationState struct {
	EntityManager *ecs.EntityManager
	Config        *config.GameConfig
	Catalog       particle.Catalog
	Rand          *rand.Rand

	Bounds PlayfieldBounds
	Aim    components.AimState
	Round  RoundState
	Skin   config.SkinEffect

	// Active 模拟是否运行；为 false 时靶子、弹丸和新的瞄准输入都冻结，粒子照常更新
	Active bool
	// ProjectileID 当前弹丸，0 表示没有
	ProjectileID ecs.EntityID
	// Tick 已执行的帧数
	Tick uint64

	// 玩家信息（HUD 显示）
	PlayerID string
	Level    int
	Coins    int
	// Status 瞬时状态提示（错误信息等），StatusTTL 帧后清空
	Status    string
	StatusTTL int
}

// NewSimulationState 创建模拟状态
//
// 参数：
//   - cfg: 游戏配置，nil 时使用默认配置
//   - catalog: 粒子族目录，nil 时使用内置默认目录
//   - width, height: 画布尺寸
//   - seed: 随机种子（相同种子可复现靶子位置与粒子）
func NewSimulationState(cfg *config.GameConfig, catalog particle.Catalog, width, height float64, seed int64) *SimulationState {
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}
	if catalog == nil {
		catalog = particle.MustDefaultCatalog()
	}
	s := &SimulationState{
		EntityManager: ecs.NewEntityManager(),
		Config:        cfg,
		Catalog:       catalog,
		Rand:          rand.New(rand.NewSource(seed)),
		Skin:          config.LookupSkin(config.SkinClassic),
		Active:        true,
		Level:         1,
	}
	s.Resize(width, height)
	return s
}

// Resize 更新画布尺寸并重新计算锚点 (width/2, height-anchorOffsetY)
//
// 拖拽中的拉拽点保持相对锚点的偏移，并重新约束到新画布内。
func (s *SimulationState) Resize(width, height float64) {
	s.Bounds = PlayfieldBounds{
		Width:        width,
		Height:       height,
		ReservedZone: s.Config.Targets.ReservedZoneHeight,
	}
	oldX, oldY := s.Aim.AnchorX, s.Aim.AnchorY
	s.Aim.AnchorX = width / 2
	s.Aim.AnchorY = height - s.Config.Aim.AnchorOffsetY

	if !s.Aim.Pulling() {
		s.Aim.PullX, s.Aim.PullY = s.Aim.AnchorX, s.Aim.AnchorY
		return
	}
	// 拖拽中：拉拽点随锚点平移，再按新画布重新约束
	pull := utils.Point{X: s.Aim.PullX + s.Aim.AnchorX - oldX, Y: s.Aim.PullY + s.Aim.AnchorY - oldY}
	pull = utils.ClampPull(s.Anchor(), pull, width, s.Config.Aim.LateralMargin, s.Config.Aim.MaxPullDistance)
	s.Aim.PullX, s.Aim.PullY = pull.X, pull.Y
}

// Anchor 返回弹弓锚点
func (s *SimulationState) Anchor() utils.Point {
	return utils.Point{X: s.Aim.AnchorX, Y: s.Aim.AnchorY}
}

// SetSkin 切换装备的皮肤（未知编号使用默认效果）
func (s *SimulationState) SetSkin(id config.SkinID) {
	effect := config.LookupSkin(id)
	if effect.ID != s.Skin.ID {
		log.Printf("[Simulation] Equipped skin changed: %s -> %s", s.Skin.Name, effect.Name)
	}
	s.Skin = effect
}

// HasProjectile 是否存在飞行中的弹丸
func (s *SimulationState) HasProjectile() bool {
	return s.ProjectileID != 0 &&
		s.EntityManager.Exists(s.ProjectileID) &&
		!s.EntityManager.IsMarkedForDestroy(s.ProjectileID)
}

// SetStatus 设置 HUD 状态提示，显示 ttl 帧
func (s *SimulationState) SetStatus(msg string, ttl int) {
	s.Status = msg
	s.StatusTTL = ttl
}

// TickStatus 每帧递减状态提示的剩余时间
func (s *SimulationState) TickStatus() {
	if s.StatusTTL > 0 {
		s.StatusTTL--
		if s.StatusTTL == 0 {
			s.Status = ""
		}
	}
}
