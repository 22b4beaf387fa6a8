package systems

import (
	"image/color"
	"math"
	"testing"

	"github.com/decker502/slingmath/internal/particle"
	"github.com/decker502/slingmath/pkg/components"
	"github.com/decker502/slingmath/pkg/game"
	"github.com/decker502/slingmath/pkg/utils"
)

func TestRenderSystemShapeOf(t *testing.T) {
	rs := NewRenderSystem(particle.MustDefaultCatalog())

	tests := []struct {
		family components.ParticleFamily
		want   components.ParticleShape
	}{
		{components.FamilyImpactBurst, components.ShapeCircle},
		{components.FamilyRewardConfetti, components.ShapeRect},
		{components.FamilyIce, components.ShapeFlake},
		{components.FamilyHacker, components.ShapeGlyph},
		{components.FamilyGold, components.ShapeCircle},
		{components.FamilyNone, components.ShapeCircle},
	}

	for _, tt := range tests {
		t.Run(tt.family.String(), func(t *testing.T) {
			if got := rs.ShapeOf(tt.family); got != tt.want {
				t.Errorf("ShapeOf(%s) = %v, want %v", tt.family, got, tt.want)
			}
		})
	}
}

func TestRotatedRect(t *testing.T) {
	pts := rotatedRect(10, 20, 4, 8, 0)
	want := []utils.Point{{X: 8, Y: 16}, {X: 12, Y: 16}, {X: 12, Y: 24}, {X: 8, Y: 24}}
	for i := range want {
		if math.Abs(pts[i].X-want[i].X) > 1e-9 || math.Abs(pts[i].Y-want[i].Y) > 1e-9 {
			t.Errorf("corner %d = %+v, want %+v", i, pts[i], want[i])
		}
	}

	// 旋转 90° 后宽高互换
	pts = rotatedRect(0, 0, 4, 8, math.Pi/2)
	if math.Abs(pts[0].X-4) > 1e-9 || math.Abs(pts[0].Y+2) > 1e-9 {
		t.Errorf("rotated corner = %+v, want (4, -2)", pts[0])
	}
}

func TestHexagon(t *testing.T) {
	pts := hexagon(5, 5, 3)
	if len(pts) != 6 {
		t.Fatalf("hexagon has %d vertices, want 6", len(pts))
	}
	for i, p := range pts {
		if d := utils.Distance(5, 5, p.X, p.Y); math.Abs(d-3) > 1e-9 {
			t.Errorf("vertex %d at distance %v, want 3", i, d)
		}
	}
}

func TestPremultiply(t *testing.T) {
	got := premultiply(color.RGBA{R: 255, G: 128, B: 0, A: 51})
	want := color.RGBA{R: 51, G: 25, B: 0, A: 51}
	if got != want {
		t.Errorf("premultiply() = %+v, want %+v", got, want)
	}
}

func TestRenderSystemDrawNilScreen(t *testing.T) {
	rs := NewRenderSystem(particle.MustDefaultCatalog())
	// 没有屏幕时直接返回
	rs.Draw(nil, game.FrameSnapshot{})
}
