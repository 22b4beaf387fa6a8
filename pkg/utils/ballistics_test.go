package utils

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestFlightAdvance(t *testing.T) {
	f := Flight{X: 100, Y: 100, VX: 2, VY: -5}
	res := f.Advance(0.3, Bounds{Width: 800, Height: 600})

	if res.Escaped || res.Reflected {
		t.Fatalf("unexpected result %+v", res)
	}
	// 先用旧速度移动，再更新速度
	if !almostEqual(f.X, 102) || !almostEqual(f.Y, 95) {
		t.Errorf("expected position (102, 95), got (%v, %v)", f.X, f.Y)
	}
	if !almostEqual(f.VY, -4.7) {
		t.Errorf("expected vy -4.7, got %v", f.VY)
	}
}

func TestFlightEscape(t *testing.T) {
	bounds := Bounds{Width: 800, Height: 600}
	tests := []struct {
		name    string
		flight  Flight
		escaped bool
	}{
		{"leaves left", Flight{X: 1, Y: 300, VX: -5}, true},
		{"leaves right", Flight{X: 799, Y: 300, VX: 5}, true},
		{"leaves bottom", Flight{X: 400, Y: 599, VY: 5}, true},
		{"top is open", Flight{X: 400, Y: 1, VY: -20}, false},
		{"exactly on left edge stays", Flight{X: 5, Y: 300, VX: -5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.flight
			if got := f.Advance(0, bounds).Escaped; got != tt.escaped {
				t.Errorf("Escaped = %v, want %v (x=%v, y=%v)", got, tt.escaped, f.X, f.Y)
			}
		})
	}
}

func TestFlightRicochetOnce(t *testing.T) {
	bounds := Bounds{Width: 800, Height: 600}
	f := Flight{X: 5, Y: 300, VX: -10, VY: 0, CanRicochet: true}

	res := f.Advance(0, bounds)
	if !res.Reflected {
		t.Fatal("expected reflection off the left wall")
	}
	if res.Escaped {
		t.Fatal("reflected projectile must not escape")
	}
	if f.X != 0 || f.VX != 10 {
		t.Errorf("expected x=0 vx=10 after reflection, got x=%v vx=%v", f.X, f.VX)
	}
	if !f.Ricocheted {
		t.Error("Ricocheted flag should be set")
	}

	// 飞向右墙：第二次接触不再反弹，直接越界
	f.VX = 1000
	res = f.Advance(0, bounds)
	if res.Reflected {
		t.Error("second wall contact must not reflect")
	}
	if !res.Escaped {
		t.Error("expected projectile to escape after its only ricochet")
	}
}

func TestPredictTrajectoryMatchesLiveFlight(t *testing.T) {
	bounds := Bounds{Width: 800, Height: 600}
	start := Flight{X: 400, Y: 520, VX: -20, VY: -15, CanRicochet: true}

	preview := PredictTrajectory(start, 0.3, bounds, 90)
	if len(preview) == 0 {
		t.Fatal("expected preview points")
	}

	live := start
	for i, p := range preview {
		live.Advance(0.3, bounds)
		if live.X != p.X || live.Y != p.Y {
			t.Fatalf("step %d: preview (%v, %v) != live (%v, %v)", i, p.X, p.Y, live.X, live.Y)
		}
	}

	if start.Ricocheted {
		t.Error("PredictTrajectory must not mutate its input")
	}
}

func TestPredictTrajectoryStopsAtEscape(t *testing.T) {
	bounds := Bounds{Width: 100, Height: 100}
	points := PredictTrajectory(Flight{X: 50, Y: 50, VX: 20}, 0, bounds, 50)
	if len(points) != 2 {
		t.Errorf("expected 2 points before escaping, got %d", len(points))
	}
}

func TestLaunchVelocity(t *testing.T) {
	vx, vy := LaunchVelocity(Point{X: 400, Y: 520}, Point{X: 450, Y: 620}, 5)
	if vx != -10 || vy != -20 {
		t.Errorf("expected (-10, -20), got (%v, %v)", vx, vy)
	}
}

func TestClampPull(t *testing.T) {
	anchor := Point{X: 400, Y: 520}
	tests := []struct {
		name string
		pull Point
		want Point
	}{
		{"inside radius unchanged", Point{X: 420, Y: 560}, Point{X: 420, Y: 560}},
		{"above anchor clamped", Point{X: 400, Y: 300}, Point{X: 400, Y: 520}},
		{"straight down rescaled", Point{X: 400, Y: 900}, Point{X: 400, Y: 670}},
		{"far right rescaled horizontally", Point{X: 2000, Y: 520}, Point{X: 550, Y: 520}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampPull(anchor, tt.pull, 800, 200, 150)
			if !almostEqual(got.X, tt.want.X) || !almostEqual(got.Y, tt.want.Y) {
				t.Errorf("ClampPull(%v) = %v, want %v", tt.pull, got, tt.want)
			}
			if got.Y < anchor.Y {
				t.Errorf("pull.y %v above anchor %v", got.Y, anchor.Y)
			}
			if d := Distance(anchor.X, anchor.Y, got.X, got.Y); d > 150+epsilon {
				t.Errorf("pull distance %v exceeds max", d)
			}
		})
	}
}

func TestCirclesOverlap(t *testing.T) {
	if !CirclesOverlap(300, 300, 30, 310, 300, 10) {
		t.Error("expected overlap")
	}
	if CirclesOverlap(0, 0, 30, 40, 0, 10) {
		t.Error("touching circles (distance == r1+r2) must not overlap")
	}
}
