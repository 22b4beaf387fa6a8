package config

import (
	"image/color"

	"github.com/decker502/slingmath/pkg/components"
)

// SkinID 弹弓皮肤编号（由 Player Service 返回的 selectedSkin）
type SkinID int

const (
	SkinClassic SkinID = iota
	SkinFire
	SkinIce
	SkinGold
	SkinRainbow
	SkinMirror
	SkinHacker
)

// SkinPalette 弹弓与弹丸的配色
type SkinPalette struct {
	// Projectile 弹丸填充色；多于一种颜色时按同心圆渐变绘制
	Projectile []color.RGBA
	// Base Y 形弹弓的握柄
	Base color.RGBA
	// Arms Y 形弹弓的两臂
	Arms color.RGBA
	// Band 橡皮筋
	Band color.RGBA
	// GradientBase 握柄是否使用 Projectile 的颜色渐变
	GradientBase bool
}

// SkinEffect 皮肤对模拟的影响
//
// Ricochet 与 InstantKill 互斥。
type SkinEffect struct {
	ID   SkinID
	Name string
	// AmbientFamily 锚点附近持续生成的粒子族，FamilyNone 表示无
	AmbientFamily components.ParticleFamily
	// Ricochet 弹丸可以从左右墙壁反弹一次
	Ricochet bool
	// InstantKill 松手时直接命中所有存活的靶子，不生成弹丸
	InstantKill bool
	// TrajectoryPreview 瞄准时绘制预测轨迹
	TrajectoryPreview bool
	Palette           SkinPalette
}

// HasAmbient 皮肤是否带有环境粒子
func (s SkinEffect) HasAmbient() bool {
	return s.AmbientFamily != components.FamilyNone
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

var defaultSkin = SkinEffect{
	ID:            SkinClassic,
	Name:          "Classic",
	AmbientFamily: components.FamilyNone,
	Palette: SkinPalette{
		Projectile: []color.RGBA{rgb(0x8B, 0x45, 0x13)},
		Base:       rgb(0x65, 0x43, 0x21),
		Arms:       rgb(0x65, 0x43, 0x21),
		Band:       rgb(0x33, 0x33, 0x33),
	},
}

var skinRegistry = map[SkinID]SkinEffect{
	SkinClassic: defaultSkin,
	SkinFire: {
		ID:            SkinFire,
		Name:          "Fire",
		AmbientFamily: components.FamilyFire,
		Palette: SkinPalette{
			Projectile: []color.RGBA{rgb(0xFF, 0x45, 0x00)},
			Base:       rgb(0xDC, 0x14, 0x3C),
			Arms:       rgb(0xFF, 0x45, 0x00),
			Band:       rgb(0xFF, 0x63, 0x47),
		},
	},
	SkinIce: {
		ID:            SkinIce,
		Name:          "Ice",
		AmbientFamily: components.FamilyIce,
		Palette: SkinPalette{
			Projectile: []color.RGBA{rgb(0x00, 0xCE, 0xD1)},
			Base:       rgb(0x46, 0x82, 0xB4),
			Arms:       rgb(0x87, 0xCE, 0xEB),
			Band:       rgb(0xB0, 0xE0, 0xE6),
		},
	},
	SkinGold: {
		ID:            SkinGold,
		Name:          "Gold",
		AmbientFamily: components.FamilyGold,
		Palette: SkinPalette{
			Projectile: []color.RGBA{rgb(0xFF, 0xD7, 0x00)},
			Base:       rgb(0xDA, 0xA5, 0x20),
			Arms:       rgb(0xFF, 0xD7, 0x00),
			Band:       rgb(0xFF, 0xA5, 0x00),
		},
	},
	SkinRainbow: {
		ID:            SkinRainbow,
		Name:          "Rainbow",
		AmbientFamily: components.FamilyRainbow,
		Palette: SkinPalette{
			Projectile: []color.RGBA{
				rgb(0xFF, 0x6B, 0x6B), rgb(0x4E, 0xCD, 0xC4), rgb(0x45, 0xB7, 0xD1),
				rgb(0xFF, 0xA0, 0x7A), rgb(0x98, 0xD8, 0xC8),
			},
			Base:         rgb(0xFF, 0x14, 0x93),
			Arms:         rgb(0x00, 0xCE, 0xD1),
			Band:         rgb(0xFF, 0xD7, 0x00),
			GradientBase: true,
		},
	},
	SkinMirror: {
		ID:                SkinMirror,
		Name:              "Mirror",
		AmbientFamily:     components.FamilyMirror,
		Ricochet:          true,
		TrajectoryPreview: true,
		Palette: SkinPalette{
			Projectile: []color.RGBA{rgb(0xF0, 0xF0, 0xF0), rgb(0xC0, 0xC0, 0xC0)},
			Base:       rgb(0xA9, 0xA9, 0xA9),
			Arms:       rgb(0xC0, 0xC0, 0xC0),
			Band:       rgb(0xE0, 0xE0, 0xE0),
		},
	},
	SkinHacker: {
		ID:            SkinHacker,
		Name:          "Hacker",
		AmbientFamily: components.FamilyHacker,
		InstantKill:   true,
		Palette: SkinPalette{
			Projectile: []color.RGBA{rgb(0x00, 0xFF, 0x00)},
			Base:       rgb(0x1A, 0x1A, 0x1A),
			Arms:       rgb(0x00, 0xAA, 0x00),
			Band:       rgb(0x00, 0xFF, 0x00),
		},
	},
}

// LookupSkin 返回皮肤效果；未知编号返回默认效果（Classic）
func LookupSkin(id SkinID) SkinEffect {
	if effect, ok := skinRegistry[id]; ok {
		return effect
	}
	return defaultSkin
}

// KnownSkins 返回所有已注册的皮肤编号（升序）
func KnownSkins() []SkinID {
	ids := make([]SkinID, 0, len(skinRegistry))
	for id := SkinClassic; id <= SkinHacker; id++ {
		if _, ok := skinRegistry[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
