package systems

import (
	"testing"

	"github.com/decker502/slingmath/pkg/components"
	"github.com/decker502/slingmath/pkg/config"
	"github.com/decker502/slingmath/pkg/entities"
)

func TestBuildSnapshot(t *testing.T) {
	state := newTestState(t)
	live := addTarget(t, state, 100, 100, 0, 0)
	hit := addTarget(t, state, 200, 200, 0, 0)
	targetComp(t, state, hit).Hit = true
	addProjectile(t, state, 400, 300, 1, -1)
	if _, err := entities.EmitParticles(state.EntityManager, state.Rand, state.Catalog, components.FamilyRewardConfetti, 50, 50); err != nil {
		t.Fatalf("EmitParticles() error = %v", err)
	}
	state.Tick = 7

	snap := BuildSnapshot(state, nil)

	if snap.Tick != 7 || snap.Width != 800 || snap.Height != 600 {
		t.Errorf("unexpected header tick=%d size=%vx%v", snap.Tick, snap.Width, snap.Height)
	}
	if len(snap.Targets) != 1 || snap.Targets[0].X != 100 {
		t.Fatalf("snapshot targets = %+v, want only the live target", snap.Targets)
	}
	if snap.Targets[0].ID != targetComp(t, state, live).ID {
		t.Error("target view should carry the target id")
	}
	if snap.Projectile == nil || snap.Projectile.X != 400 {
		t.Errorf("projectile view = %+v", snap.Projectile)
	}
	if len(snap.Particles) != 30 {
		t.Errorf("particles = %d, want 30", len(snap.Particles))
	}
	for _, p := range snap.Particles {
		if p.Alpha != 1 || p.Family != components.FamilyRewardConfetti {
			t.Fatalf("unexpected particle view %+v", p)
		}
	}
	if snap.Slingshot.AnchorX != 400 || snap.Slingshot.AnchorY != 520 || snap.Slingshot.Pulling {
		t.Errorf("slingshot view = %+v", snap.Slingshot)
	}
	if snap.Trajectory != nil {
		t.Error("no trajectory expected without an aim system")
	}
}

func TestBuildSnapshotSkipsDestroyed(t *testing.T) {
	state := newTestState(t)
	id := addTarget(t, state, 100, 100, 0, 0)
	state.EntityManager.DestroyEntity(id)
	proj := addProjectile(t, state, 10, 10, 0, 0)
	state.EntityManager.DestroyEntity(proj)

	snap := BuildSnapshot(state, nil)
	if len(snap.Targets) != 0 || snap.Projectile != nil {
		t.Errorf("destroyed entities leaked into snapshot: %+v", snap)
	}
}

func TestBuildSnapshotTrajectory(t *testing.T) {
	state := newTestState(t)
	state.SetSkin(config.SkinMirror)
	aim := NewAimSystem(state, nil, nil, NewTargetSystem(state))
	aim.HandlePointer(press(400, 520))
	aim.HandlePointer(drag(420, 600))

	snap := BuildSnapshot(state, aim)
	if !snap.Slingshot.Pulling || len(snap.Trajectory) == 0 {
		t.Errorf("aiming snapshot should include the slingshot pull and trajectory")
	}
}
