package entities

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/decker502/slingmath/internal/particle"
	"github.com/decker502/slingmath/pkg/components"
	"github.com/decker502/slingmath/pkg/ecs"
)

// EmitParticles 按粒子族定义在 (x, y) 发射一次粒子
//
// radial 族一次生成 Count 个粒子，角度均匀分布在 2π 上；
// single 族生成一个粒子，位置加上 OffsetX/OffsetY 的随机偏移。
//
// Example:
//
//	ids, err := EmitParticles(em, rng, catalog, components.FamilyImpactBurst, 300, 300)
//	if err != nil {
//	    log.Printf("[ParticleFactory] emit failed: %v", err)
//	}
func EmitParticles(em *ecs.EntityManager, rng *rand.Rand, catalog particle.Catalog, family components.ParticleFamily, x, y float64) ([]ecs.EntityID, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	spec, ok := catalog.Get(family.String())
	if !ok {
		return nil, fmt.Errorf("particle family %q not found in catalog", family.String())
	}

	switch spec.Pattern {
	case particle.PatternRadial:
		ids := make([]ecs.EntityID, 0, spec.Count)
		for i := 0; i < spec.Count; i++ {
			angle := 2*math.Pi*float64(i)/float64(spec.Count) + spec.AngleJitter.Sample(rng)
			speed := spec.Speed.Sample(rng)
			vx := math.Cos(angle) * speed
			vy := math.Sin(angle)*speed + spec.LiftY.Sample(rng)
			ids = append(ids, spawnParticle(em, rng, spec, family, x, y, vx, vy))
		}
		return ids, nil

	default:
		px := x + spec.OffsetX.Sample(rng)
		py := y + spec.OffsetY.Sample(rng)
		vx := spec.VelocityX.Sample(rng)
		vy := spec.VelocityY.Sample(rng) + spec.LiftY.Sample(rng)
		return []ecs.EntityID{spawnParticle(em, rng, spec, family, px, py, vx, vy)}, nil
	}
}

// spawnParticle 创建单个粒子实体（Life 从 1.0 开始）
func spawnParticle(em *ecs.EntityManager, rng *rand.Rand, spec *particle.FamilySpec, family components.ParticleFamily, x, y, vx, vy float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.VelocityComponent{VX: vx, VY: vy})

	comp := &components.ParticleComponent{
		Family:        family,
		Size:          spec.Size.Sample(rng),
		Color:         spec.PickColor(rng),
		Life:          1.0,
		Decay:         spec.Decay.Sample(rng),
		GravityScale:  spec.GravityScale,
		RotationSpeed: spec.RotationSpeed.Sample(rng),
		Glyph:         spec.PickGlyph(rng),
	}
	if spec.RandomRotation {
		comp.Rotation = rng.Float64() * 2 * math.Pi
	}
	em.AddComponent(id, comp)
	return id
}
