package config

import (
	"testing"

	"github.com/decker502/slingmath/pkg/components"
)

func TestLookupSkin(t *testing.T) {
	tests := []struct {
		name        string
		id          SkinID
		wantName    string
		wantFamily  components.ParticleFamily
		ricochet    bool
		instantKill bool
	}{
		{"classic", SkinClassic, "Classic", components.FamilyNone, false, false},
		{"fire", SkinFire, "Fire", components.FamilyFire, false, false},
		{"ice", SkinIce, "Ice", components.FamilyIce, false, false},
		{"gold", SkinGold, "Gold", components.FamilyGold, false, false},
		{"rainbow", SkinRainbow, "Rainbow", components.FamilyRainbow, false, false},
		{"mirror ricochets", SkinMirror, "Mirror", components.FamilyMirror, true, false},
		{"hacker instant kill", SkinHacker, "Hacker", components.FamilyHacker, false, true},
		{"unknown falls back", SkinID(42), "Classic", components.FamilyNone, false, false},
		{"negative falls back", SkinID(-1), "Classic", components.FamilyNone, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			effect := LookupSkin(tt.id)
			if effect.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", effect.Name, tt.wantName)
			}
			if effect.AmbientFamily != tt.wantFamily {
				t.Errorf("AmbientFamily = %v, want %v", effect.AmbientFamily, tt.wantFamily)
			}
			if effect.Ricochet != tt.ricochet {
				t.Errorf("Ricochet = %v, want %v", effect.Ricochet, tt.ricochet)
			}
			if effect.InstantKill != tt.instantKill {
				t.Errorf("InstantKill = %v, want %v", effect.InstantKill, tt.instantKill)
			}
			if len(effect.Palette.Projectile) == 0 {
				t.Error("projectile palette must not be empty")
			}
		})
	}
}

func TestSkinCapabilitiesExclusive(t *testing.T) {
	for _, id := range KnownSkins() {
		effect := LookupSkin(id)
		if effect.Ricochet && effect.InstantKill {
			t.Errorf("skin %d (%s) has both ricochet and instant kill", id, effect.Name)
		}
		if effect.ID != id {
			t.Errorf("skin %d registered with ID %d", id, effect.ID)
		}
	}
	if got := len(KnownSkins()); got != 7 {
		t.Errorf("expected 7 known skins, got %d", got)
	}
}

func TestSkinHasAmbient(t *testing.T) {
	if LookupSkin(SkinClassic).HasAmbient() {
		t.Error("classic skin should have no ambient family")
	}
	if !LookupSkin(SkinHacker).HasAmbient() {
		t.Error("hacker skin should have an ambient family")
	}
}

func TestTrajectoryPreviewOnlyForRicochet(t *testing.T) {
	for _, id := range KnownSkins() {
		effect := LookupSkin(id)
		if effect.TrajectoryPreview != effect.Ricochet {
			t.Errorf("skin %s: TrajectoryPreview = %v, Ricochet = %v", effect.Name, effect.TrajectoryPreview, effect.Ricochet)
		}
	}
}
