// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"os"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/slingmath/internal/particle"
	"github.com/decker502/slingmath/pkg/config"
	"github.com/decker502/slingmath/pkg/embedded"
	"github.com/decker502/slingmath/pkg/game"
	"github.com/decker502/slingmath/pkg/player"
	"github.com/decker502/slingmath/pkg/scenes"
	"github.com/decker502/slingmath/pkg/utils"
)

const (
	// 嵌入的默认配置
	embeddedGameConfig = "data/game.yaml"
	embeddedParticles  = "data/particles.yaml"

	// gdata 存档的应用名
	storageAppName = "slingmath"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ServerURL Player Service 地址，为空时使用本地服务（gdata 存档）
	ServerURL string
	// PlayerID 玩家 ID，为空时自动生成
	PlayerID string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// ConfigPath 磁盘上的游戏配置，为空时使用嵌入的 data/game.yaml
	ConfigPath string
	// ParticlesPath 磁盘上的粒子族配置，为空时使用嵌入的 data/particles.yaml
	ParticlesPath string
	// Skin 初始皮肤（玩家档案加载后以档案为准）
	Skin int
	// Hooks 宿主回调，可为 nil
	Hooks *game.Hooks
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	scene        *scenes.GameScene
	settings     *game.SettingsManager
	verbose      bool

	// pendingSkin 宿主线程请求的皮肤，-1 表示没有；在 Update 中应用
	pendingSkin atomic.Int64
}

// NewApp 创建并初始化游戏应用
//
// 使用嵌入配置前，必须先调用 embedded.Init() 初始化嵌入资源；
// 未初始化时回退到内置默认配置。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, err := loadGameConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("游戏配置加载失败: %w", err)
	}

	catalog, err := loadCatalog(cfg.ParticlesPath)
	if err != nil {
		return nil, fmt.Errorf("粒子配置加载失败: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	storage := openStorage()
	settings := game.NewSettingsManager(storage)

	playerID := cfg.PlayerID
	if playerID == "" {
		playerID = settings.GetSettings().PlayerID
	}

	service := newService(cfg, gameConfig, storage, seed)

	sceneManager := game.NewSceneManager()
	scene := scenes.NewGameScene(scenes.GameSceneOptions{
		Config:   gameConfig,
		Catalog:  catalog,
		Service:  service,
		Hooks:    cfg.Hooks,
		PlayerID: playerID,
		Skin:     config.SkinID(cfg.Skin),
		Seed:     seed,
		Width:    config.DefaultWindowWidth,
		Height:   config.DefaultWindowHeight,
	})
	sceneManager.SwitchTo(scene)

	if settings.GetSettings().Fullscreen && !utils.IsMobile() {
		ebiten.SetFullscreen(true)
	}

	log.Printf("[App] Started with seed %d", seed)

	a := &App{
		sceneManager: sceneManager,
		scene:        scene,
		settings:     settings,
		verbose:      cfg.Verbose,
	}
	a.pendingSkin.Store(-1)
	return a, nil
}

// loadGameConfig 优先读取磁盘配置，其次是嵌入配置，最后是默认配置
func loadGameConfig(path string) (*config.GameConfig, error) {
	if path != "" {
		log.Printf("[Config] 加载游戏配置: %s", path)
		return config.LoadGameConfig(path)
	}
	if !embedded.IsInitialized() || !embedded.Exists(embeddedGameConfig) {
		log.Printf("[Config] 未找到嵌入的 %s，使用默认配置", embeddedGameConfig)
		return config.DefaultGameConfig(), nil
	}
	data, err := embedded.ReadFile(embeddedGameConfig)
	if err != nil {
		return nil, err
	}
	return config.ParseGameConfig(data)
}

// loadCatalog 加载粒子族目录；返回 nil 表示使用内置目录
func loadCatalog(path string) (particle.Catalog, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case path != "":
		log.Printf("[Config] 加载粒子配置: %s", path)
		data, err = os.ReadFile(path)
	case embedded.IsInitialized() && embedded.Exists(embeddedParticles):
		data, err = embedded.ReadFile(embeddedParticles)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return particle.LoadCatalog(data)
}

// openStorage 打开 gdata 存储；失败时返回 nil（降级模式，只保存在内存中）
func openStorage() *gdata.Manager {
	if dir, err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: failed to prepare storage dir: %v", err)
	} else if dir != "" {
		log.Printf("[App] Profile storage: %s", dir)
	}
	manager, err := gdata.Open(gdata.Config{AppName: storageAppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, data will not persist: %v", err)
		return nil
	}
	return manager
}

// newService 选择 Player Service：配置了服务器地址时走 HTTP，否则使用本地存档
func newService(cfg Config, gameConfig *config.GameConfig, storage *gdata.Manager, seed int64) player.Service {
	if cfg.ServerURL != "" {
		log.Printf("[App] Using remote player service at %s", cfg.ServerURL)
		return player.NewHTTPClient(cfg.ServerURL, gameConfig.Round.RequestTimeoutDuration())
	}
	return player.NewLocalService(storage, rand.New(rand.NewSource(seed)))
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏（仅桌面端）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		if err := a.settings.SetFullscreen(fullscreen); err != nil {
			log.Printf("[App] Failed to save settings: %v", err)
		}
	}

	if skin := a.pendingSkin.Swap(-1); skin >= 0 {
		a.scene.SetSkin(config.SkinID(skin))
	}

	// 指针采样（含最后触摸位置）由场景的 utils.SamplePointer 负责
	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)

	// 玩家档案加载后记住玩家 ID，下次启动沿用
	if err := a.settings.RememberPlayer(a.scene.State().PlayerID); err != nil {
		log.Printf("[App] Failed to save settings: %v", err)
	}
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑画布跟随窗口尺寸，锚点随之重新计算
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Scene 返回游戏场景
func (a *App) Scene() *scenes.GameScene {
	return a.scene
}

// SetSkin 宿主通知装备的皮肤变化，可以在任意协程调用
func (a *App) SetSkin(skin int) {
	if skin < 0 {
		return
	}
	a.pendingSkin.Store(int64(skin))
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
