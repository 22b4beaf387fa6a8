package entities

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/decker502/slingmath/pkg/components"
	"github.com/decker502/slingmath/pkg/config"
	"github.com/decker502/slingmath/pkg/ecs"
)

// NewTarget 创建一个游荡的靶子实体
//
// 位置在可见区域内均匀随机：
//
//	x ∈ [r+margin, width-r-margin]
//	y ∈ [r+margin, height-reservedZone-r-margin]
//
// 速度每个轴在 [-MaxSpeed, MaxSpeed] 内均匀随机。
// 画布过小导致区间为空时，靶子放在区间起点。
//
// 参数:
//   - em: 实体管理器
//   - rng: 随机数源（可注入种子以便复现）
//   - cfg: 靶池配置
//   - width, height: 画布尺寸
//
// 返回:
//   - ecs.EntityID: 创建的靶子实体ID
//   - error: 参数无效时返回错误
func NewTarget(em *ecs.EntityManager, rng *rand.Rand, cfg config.TargetConfig, width, height float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if rng == nil {
		return 0, fmt.Errorf("random source cannot be nil")
	}
	if cfg.Radius <= 0 {
		return 0, fmt.Errorf("target radius must be > 0, got %.1f", cfg.Radius)
	}

	margin := cfg.Radius + cfg.SpawnMargin
	x := sampleSpan(rng, margin, width-margin)
	y := sampleSpan(rng, margin, height-cfg.ReservedZoneHeight-margin)

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.VelocityComponent{
		VX: (rng.Float64()*2 - 1) * cfg.MaxSpeed,
		VY: (rng.Float64()*2 - 1) * cfg.MaxSpeed,
	})
	em.AddComponent(entityID, &components.TargetComponent{
		ID:     uuid.NewString(),
		Radius: cfg.Radius,
	})

	return entityID, nil
}

// sampleSpan 在 [lo, hi] 内均匀取值，区间为空时返回 lo
func sampleSpan(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
