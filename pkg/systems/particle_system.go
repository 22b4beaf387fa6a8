package systems

import (
	"github.com/decker502/slingmath/pkg/components"
	"github.com/decker502/slingmath/pkg/ecs"
	"github.com/decker502/slingmath/pkg/game"
)

// ParticleSystem updates every live particle once per tick.
//
// Each tick a particle moves by its velocity, receives ParticleGravity scaled
// by its family's GravityScale, rotates by RotationSpeed, and loses Decay
// life. Particles whose life reaches zero are marked for destruction and
// disappear when the frame driver calls RemoveMarkedEntities.
//
// Particles keep animating while the simulation is frozen.
type ParticleSystem struct {
	state *game.SimulationState
}

// NewParticleSystem creates a new ParticleSystem instance.
func NewParticleSystem(state *game.SimulationState) *ParticleSystem {
	return &ParticleSystem{state: state}
}

// Update advances all particles by one tick.
func (ps *ParticleSystem) Update(deltaTime float64) {
	em := ps.state.EntityManager
	gravity := ps.state.Config.Physics.ParticleGravity

	ids := ecs.GetEntitiesWith3[
		*components.ParticleComponent,
		*components.PositionComponent,
		*components.VelocityComponent,
	](em)

	for _, id := range ids {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)

		pos.X += vel.VX
		pos.Y += vel.VY
		vel.VY += gravity * p.GravityScale
		p.Rotation += p.RotationSpeed

		p.Life -= p.Decay
		if p.Life <= 0 {
			p.Life = 0
			em.DestroyEntity(id)
		}
	}
}

// Count returns the number of particles that are still alive.
func (ps *ParticleSystem) Count() int {
	em := ps.state.EntityManager
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](em) {
		if !em.IsMarkedForDestroy(id) {
			count++
		}
	}
	return count
}
