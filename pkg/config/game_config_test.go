package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultGameConfig(t *testing.T) {
	cfg := DefaultGameConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.Physics.Gravity != 0.3 {
		t.Errorf("expected gravity 0.3, got %f", cfg.Physics.Gravity)
	}
	if cfg.Targets.PoolSize != 3 {
		t.Errorf("expected pool size 3, got %d", cfg.Targets.PoolSize)
	}
	if cfg.Aim.MaxPullDistance != 150 {
		t.Errorf("expected max pull 150, got %f", cfg.Aim.MaxPullDistance)
	}
	if cfg.Aim.PowerDivisor != 5 {
		t.Errorf("expected power divisor 5, got %f", cfg.Aim.PowerDivisor)
	}
	if cfg.Aim.ZeroPullPolicy != ZeroPullIgnore {
		t.Errorf("expected zero pull policy %q, got %q", ZeroPullIgnore, cfg.Aim.ZeroPullPolicy)
	}
	if got := cfg.Round.RequestTimeoutDuration(); got != 10*time.Second {
		t.Errorf("expected 10s request timeout, got %v", got)
	}
}

func TestLoadGameConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *GameConfig)
	}{
		{
			name: "partial document keeps defaults",
			yamlContent: `
physics:
  gravity: 0.5
aim:
  zeroPullPolicy: drop
`,
			validate: func(t *testing.T, cfg *GameConfig) {
				if cfg.Physics.Gravity != 0.5 {
					t.Errorf("expected gravity 0.5, got %f", cfg.Physics.Gravity)
				}
				if cfg.Physics.ProjectileRadius != 10 {
					t.Errorf("expected default projectile radius 10, got %f", cfg.Physics.ProjectileRadius)
				}
				if cfg.Aim.ZeroPullPolicy != ZeroPullDrop {
					t.Errorf("expected zero pull policy drop, got %q", cfg.Aim.ZeroPullPolicy)
				}
				if cfg.Aim.CaptureRadius != 80 {
					t.Errorf("expected default capture radius 80, got %f", cfg.Aim.CaptureRadius)
				}
			},
		},
		{
			name: "full targets section",
			yamlContent: `
targets:
  poolSize: 5
  radius: 20
  spawnMargin: 5
  maxSpeed: 2
  reservedZoneHeight: 100
round:
  hitDelay: 0.5
`,
			validate: func(t *testing.T, cfg *GameConfig) {
				if cfg.Targets.PoolSize != 5 {
					t.Errorf("expected pool size 5, got %d", cfg.Targets.PoolSize)
				}
				if cfg.Targets.ReservedZoneHeight != 100 {
					t.Errorf("expected reserved zone 100, got %f", cfg.Targets.ReservedZoneHeight)
				}
				if cfg.Round.HitDelay != 0.5 {
					t.Errorf("expected hit delay 0.5, got %f", cfg.Round.HitDelay)
				}
			},
		},
		{
			name: "invalid zero pull policy",
			yamlContent: `
aim:
  zeroPullPolicy: bounce
`,
			wantErr:     true,
			errContains: "zeroPullPolicy",
		},
		{
			name: "zero power divisor",
			yamlContent: `
aim:
  powerDivisor: 0
`,
			wantErr:     true,
			errContains: "powerDivisor",
		},
		{
			name: "empty pool",
			yamlContent: `
targets:
  poolSize: 0
`,
			wantErr:     true,
			errContains: "poolSize",
		},
		{
			name: "negative gravity",
			yamlContent: `
physics:
  gravity: -1
`,
			wantErr:     true,
			errContains: "gravity",
		},
		{
			name:        "malformed yaml",
			yamlContent: "physics: [1, 2",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			tmpFile := filepath.Join(tmpDir, "game.yaml")
			if err := os.WriteFile(tmpFile, []byte(tt.yamlContent), 0644); err != nil {
				t.Fatalf("failed to create temp file: %v", err)
			}

			cfg, err := LoadGameConfig(tmpFile)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadGameConfigMissingFile(t *testing.T) {
	_, err := LoadGameConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read game config") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestShippedGameConfigMatchesDefaults 随程序嵌入的 data/game.yaml 与默认配置一致
func TestShippedGameConfigMatchesDefaults(t *testing.T) {
	cfg, err := LoadGameConfig(filepath.Join("..", "..", "data", "game.yaml"))
	if err != nil {
		t.Fatalf("LoadGameConfig() error = %v", err)
	}
	if *cfg != *DefaultGameConfig() {
		t.Errorf("data/game.yaml = %+v, want defaults %+v", *cfg, *DefaultGameConfig())
	}
}
