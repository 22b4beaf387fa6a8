package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/slingmath/internal/particle"
	"github.com/decker502/slingmath/pkg/config"
	"github.com/decker502/slingmath/pkg/game"
	"github.com/decker502/slingmath/pkg/player"
	"github.com/decker502/slingmath/pkg/systems"
	"github.com/decker502/slingmath/pkg/utils"
)

// GameSceneOptions 创建游戏场景所需的依赖
type GameSceneOptions struct {
	// Config 游戏配置，nil 时使用默认配置
	Config *config.GameConfig
	// Catalog 粒子族目录，nil 时使用内置目录
	Catalog particle.Catalog
	// Service Player Service，nil 时回合请求全部按失败处理
	Service player.Service
	// Hooks 宿主回调，可为 nil
	Hooks *game.Hooks

	PlayerID string
	Skin     config.SkinID
	Seed     int64
	Width    int
	Height   int

	// InputScale 窗口坐标到画布坐标的缩放，<= 0 按 1 处理
	InputScale float64
	// Input 指针输入来源，nil 时从 ebiten 采集
	Input func() utils.PointerSample
	// Dispatcher Player Service 请求的执行方式，nil 时每个请求一个 goroutine
	Dispatcher systems.Dispatcher
}

// GameScene 弹弓模拟的帧驱动
//
// 每帧执行顺序：
//  1. 回合 UI 输入（题目选项）与瞄准输入
//  2. 靶子移动（模拟运行中）
//  3. 弹丸推进与碰撞（模拟运行中）
//  4. 粒子更新
//  5. 环境粒子生成
//  6. 回合状态推进（应用异步结果）
//  7. 清理标记删除的实体，生成快照并回调 OnFrame
//
// Draw 只消费最后一帧快照。
type GameScene struct {
	state *game.SimulationState
	hooks *game.Hooks

	targetSystem   *systems.TargetSystem
	physicsSystem  *systems.PhysicsSystem
	particleSystem *systems.ParticleSystem
	ambientEmitter *systems.AmbientEmitter
	aimSystem      *systems.AimSystem
	roundSystem    *systems.RoundSystem
	renderSystem   *systems.RenderSystem

	input      func() utils.PointerSample
	inputScale float64
	keys       func() (option int, dismiss bool)

	snapshot game.FrameSnapshot
}

// NewGameScene 创建游戏场景并生成初始靶池
func NewGameScene(opts GameSceneOptions) *GameScene {
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = config.DefaultWindowWidth, config.DefaultWindowHeight
	}

	state := game.NewSimulationState(opts.Config, opts.Catalog, float64(width), float64(height), opts.Seed)
	state.PlayerID = opts.PlayerID
	state.SetSkin(opts.Skin)

	hooks := opts.Hooks
	if hooks == nil {
		hooks = &game.Hooks{}
	}

	s := &GameScene{
		state:      state,
		hooks:      hooks,
		input:      opts.Input,
		inputScale: opts.InputScale,
		keys:       pressedOptionKey,
	}
	if s.input == nil {
		s.input = utils.SamplePointer
	}

	s.targetSystem = systems.NewTargetSystem(state)
	s.roundSystem = systems.NewRoundSystem(state, hooks, opts.Service, s.targetSystem)
	s.roundSystem.SetDispatcher(opts.Dispatcher)
	s.physicsSystem = systems.NewPhysicsSystem(state, hooks, s.roundSystem)
	s.particleSystem = systems.NewParticleSystem(state)
	s.ambientEmitter = systems.NewAmbientEmitter(state)
	s.aimSystem = systems.NewAimSystem(state, hooks, s.roundSystem, s.targetSystem)
	s.renderSystem = systems.NewRenderSystem(state.Catalog)

	s.targetSystem.Replenish()
	s.roundSystem.RequestSkin(opts.Skin)
	s.roundSystem.RefreshProfile()
	s.snapshot = systems.BuildSnapshot(state, s.aimSystem)

	log.Printf("[GameScene] Initialized %dx%d, player=%q, skin=%s", width, height, opts.PlayerID, state.Skin.Name)
	return s
}

// Update 采集输入并推进一帧
func (s *GameScene) Update(deltaTime float64) {
	sample := utils.ScreenToCanvas(s.input(), s.inputScale)
	s.Step(deltaTime, sample)
}

// Step 使用给定输入推进一帧
func (s *GameScene) Step(deltaTime float64, sample utils.PointerSample) {
	if !s.handleRoundInput(sample) {
		s.aimSystem.HandlePointer(sample)
	}

	s.targetSystem.Update(deltaTime)
	s.physicsSystem.Update(deltaTime)
	s.particleSystem.Update(deltaTime)
	s.ambientEmitter.Update(deltaTime)
	s.roundSystem.Update(deltaTime)

	s.state.TickStatus()
	s.state.Tick++
	s.state.EntityManager.RemoveMarkedEntities()

	s.snapshot = systems.BuildSnapshot(s.state, s.aimSystem)
	s.hooks.Frame(s.snapshot)
}

// Draw 绘制最后一帧快照和 HUD
func (s *GameScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen, s.snapshot)
	s.drawHUD(screen, s.snapshot)
	s.drawRoundPanel(screen, s.snapshot)
}

// Resize 画布尺寸变化时重新计算锚点
func (s *GameScene) Resize(width, height int) {
	log.Printf("[GameScene] Resize to %dx%d", width, height)
	s.state.Resize(float64(width), float64(height))
}

// SetSkin 宿主通知装备的皮肤变化
func (s *GameScene) SetSkin(id config.SkinID) {
	s.state.SetSkin(id)
}

// Snapshot 返回最后一帧快照
func (s *GameScene) Snapshot() game.FrameSnapshot {
	return s.snapshot
}

// State 返回模拟状态（测试与调试使用）
func (s *GameScene) State() *game.SimulationState {
	return s.state
}

// Rounds 返回回合系统
func (s *GameScene) Rounds() *systems.RoundSystem {
	return s.roundSystem
}
