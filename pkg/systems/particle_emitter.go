package systems

import (
	"log"

	"github.com/decker502/slingmath/pkg/entities"
	"github.com/decker502/slingmath/pkg/game"
)

// AmbientEmitter spawns the equipped skin's ambient particle family around
// the slingshot anchor.
//
// Every tick one particle is emitted with the family's SpawnChance. Skins
// without an ambient family emit nothing. Emission continues while the
// simulation is frozen, so the slingshot keeps glowing during a round.
type AmbientEmitter struct {
	state *game.SimulationState
}

// NewAmbientEmitter creates an emitter bound to the simulation state.
func NewAmbientEmitter(state *game.SimulationState) *AmbientEmitter {
	return &AmbientEmitter{state: state}
}

// Update rolls the spawn chance once and emits at most one emission.
func (e *AmbientEmitter) Update(deltaTime float64) {
	skin := e.state.Skin
	if !skin.HasAmbient() {
		return
	}

	spec, ok := e.state.Catalog.Get(skin.AmbientFamily.String())
	if !ok {
		return
	}
	if e.state.Rand.Float64() >= spec.SpawnChance {
		return
	}

	anchor := e.state.Anchor()
	if _, err := entities.EmitParticles(e.state.EntityManager, e.state.Rand, e.state.Catalog, skin.AmbientFamily, anchor.X, anchor.Y); err != nil {
		log.Printf("[AmbientEmitter] Failed to emit %s particle: %v", skin.AmbientFamily, err)
	}
}
