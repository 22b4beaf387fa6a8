package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// 默认窗口尺寸（逻辑像素）
const (
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
)

// ZeroPullPolicy 零长度拉拽（松手时拉拽点恰好等于锚点）的处理策略
type ZeroPullPolicy string

const (
	// ZeroPullIgnore 不生成弹丸，直接回到 Idle
	ZeroPullIgnore ZeroPullPolicy = "ignore"
	// ZeroPullDrop 生成速度为 (0,0) 的弹丸，在重力作用下直接下落
	ZeroPullDrop ZeroPullPolicy = "drop"
)

// GameConfig 弹弓模拟的全部调参
//
// 配置文件位置: data/game.yaml
// 未在文件中出现的字段保留 DefaultGameConfig() 的默认值。
type GameConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	Targets TargetConfig  `yaml:"targets"`
	Aim     AimConfig     `yaml:"aim"`
	Round   RoundConfig   `yaml:"round"`
}

// PhysicsConfig 物理参数，速度单位为像素/帧
type PhysicsConfig struct {
	// Gravity 弹丸每帧的竖直加速度
	Gravity float64 `yaml:"gravity"`
	// ParticleGravity 粒子每帧的竖直加速度（再乘以粒子族的 gravityScale）
	ParticleGravity float64 `yaml:"particleGravity"`
	// ProjectileRadius 弹丸半径
	ProjectileRadius float64 `yaml:"projectileRadius"`
}

// TargetConfig 靶池参数
type TargetConfig struct {
	// PoolSize 靶池大小，回合结算后补齐到这个数量
	PoolSize int `yaml:"poolSize"`
	// Radius 靶子半径
	Radius float64 `yaml:"radius"`
	// SpawnMargin 生成时在半径之外额外保留的边距
	SpawnMargin float64 `yaml:"spawnMargin"`
	// MaxSpeed 每个轴上的最大速度绝对值
	MaxSpeed float64 `yaml:"maxSpeed"`
	// ReservedZoneHeight 画布底部为弹弓保留的区域高度，靶子不能进入
	ReservedZoneHeight float64 `yaml:"reservedZoneHeight"`
}

// AimConfig 瞄准控制器参数
type AimConfig struct {
	// AnchorOffsetY 锚点距画布底部的距离，锚点 = (width/2, height-AnchorOffsetY)
	AnchorOffsetY float64 `yaml:"anchorOffsetY"`
	// CaptureRadius 按下点距锚点小于该距离才进入 Aiming
	CaptureRadius float64 `yaml:"captureRadius"`
	// MaxPullDistance 拉拽向量的最大长度
	MaxPullDistance float64 `yaml:"maxPullDistance"`
	// PowerDivisor 发射速度 = (anchor - pull) / PowerDivisor
	PowerDivisor float64 `yaml:"powerDivisor"`
	// LateralMargin 拉拽点允许超出画布左右边缘的距离
	LateralMargin float64 `yaml:"lateralMargin"`
	// ZeroPullPolicy 零长度拉拽策略
	ZeroPullPolicy ZeroPullPolicy `yaml:"zeroPullPolicy"`
	// PreviewSteps 轨迹预览模拟的最大帧数
	PreviewSteps int `yaml:"previewSteps"`
}

// RoundConfig 回合结算参数
type RoundConfig struct {
	// HitDelay 命中后到请求题目之间的固定演出时间（秒），不可取消
	HitDelay float64 `yaml:"hitDelay"`
	// RequestTimeout 单次 Player Service 请求超时（秒）
	RequestTimeout float64 `yaml:"requestTimeout"`
}

// DefaultGameConfig 返回默认配置（与原版网页游戏的常量一致）
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Physics: PhysicsConfig{
			Gravity:          0.3,
			ParticleGravity:  0.2,
			ProjectileRadius: 10,
		},
		Targets: TargetConfig{
			PoolSize:           3,
			Radius:             30,
			SpawnMargin:        10,
			MaxSpeed:           1.25,
			ReservedZoneHeight: 120,
		},
		Aim: AimConfig{
			AnchorOffsetY:   80,
			CaptureRadius:   80,
			MaxPullDistance: 150,
			PowerDivisor:    5,
			LateralMargin:   200,
			ZeroPullPolicy:  ZeroPullIgnore,
			PreviewSteps:    90,
		},
		Round: RoundConfig{
			HitDelay:       2.0,
			RequestTimeout: 10.0,
		},
	}
}

// LoadGameConfig 加载游戏配置
//
// 参数:
//   - path: 配置文件路径（如 "data/game.yaml"）
//
// 返回:
//   - *GameConfig: 加载成功后的配置结构
//   - error: 加载失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 解析 YAML 格式的游戏配置，缺省字段使用默认值
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
func (c *GameConfig) Validate() error {
	if c.Physics.Gravity < 0 {
		return fmt.Errorf("physics.gravity must be >= 0, got %.3f", c.Physics.Gravity)
	}
	if c.Physics.ProjectileRadius <= 0 {
		return fmt.Errorf("physics.projectileRadius must be > 0, got %.1f", c.Physics.ProjectileRadius)
	}
	if c.Targets.PoolSize < 1 {
		return fmt.Errorf("targets.poolSize must be >= 1, got %d", c.Targets.PoolSize)
	}
	if c.Targets.Radius <= 0 {
		return fmt.Errorf("targets.radius must be > 0, got %.1f", c.Targets.Radius)
	}
	if c.Targets.MaxSpeed < 0 {
		return fmt.Errorf("targets.maxSpeed must be >= 0, got %.2f", c.Targets.MaxSpeed)
	}
	if c.Targets.ReservedZoneHeight < 0 {
		return fmt.Errorf("targets.reservedZoneHeight must be >= 0, got %.1f", c.Targets.ReservedZoneHeight)
	}
	if c.Aim.PowerDivisor <= 0 {
		return fmt.Errorf("aim.powerDivisor must be > 0, got %.2f", c.Aim.PowerDivisor)
	}
	if c.Aim.MaxPullDistance <= 0 {
		return fmt.Errorf("aim.maxPullDistance must be > 0, got %.1f", c.Aim.MaxPullDistance)
	}
	if c.Aim.CaptureRadius <= 0 {
		return fmt.Errorf("aim.captureRadius must be > 0, got %.1f", c.Aim.CaptureRadius)
	}
	switch c.Aim.ZeroPullPolicy {
	case ZeroPullIgnore, ZeroPullDrop:
	default:
		return fmt.Errorf("aim.zeroPullPolicy must be %q or %q, got %q",
			ZeroPullIgnore, ZeroPullDrop, c.Aim.ZeroPullPolicy)
	}
	if c.Round.HitDelay < 0 {
		return fmt.Errorf("round.hitDelay must be >= 0, got %.2f", c.Round.HitDelay)
	}
	if c.Round.RequestTimeout <= 0 {
		return fmt.Errorf("round.requestTimeout must be > 0, got %.2f", c.Round.RequestTimeout)
	}
	return nil
}

// RequestTimeoutDuration 返回请求超时的 time.Duration 形式
func (c *RoundConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout * float64(time.Second))
}
