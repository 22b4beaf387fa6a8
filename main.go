package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/slingmath/pkg/app"
	"github.com/decker502/slingmath/pkg/config"
	"github.com/decker502/slingmath/pkg/embedded"
)

var (
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	serverFlag    = flag.String("server", "", "Player service base URL (empty = local profile storage)")
	playerFlag    = flag.String("player", "", "Player ID (empty = generate a new player)")
	seedFlag      = flag.Int64("seed", 0, "Random seed (0 = time based)")
	configFlag    = flag.String("config", "", "Game config YAML (overrides the embedded data/game.yaml)")
	particlesFlag = flag.String("particles", "", "Particle family YAML (overrides the embedded data/particles.yaml)")
	skinFlag      = flag.Int("skin", 0, "Skin id (1-6) to unlock and equip on the player profile (0 = keep the equipped skin)")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:       *verboseFlag,
		ServerURL:     *serverFlag,
		PlayerID:      *playerFlag,
		Seed:          *seedFlag,
		ConfigPath:    *configFlag,
		ParticlesPath: *particlesFlag,
		Skin:          *skinFlag,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.DefaultWindowWidth, config.DefaultWindowHeight)
	ebiten.SetWindowTitle("Slingshot Math")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
