package components

// ParticleFamily 粒子族：同一族的粒子共享生成、运动、衰减与绘制规则
type ParticleFamily int

const (
	// FamilyNone 表示"没有粒子族"（用于皮肤没有环境特效的情况）
	FamilyNone ParticleFamily = iota
	// FamilyImpactBurst 命中靶子时的红色径向爆炸
	FamilyImpactBurst
	// FamilyRewardConfetti 答对题目时的彩色纸屑（旋转矩形）
	FamilyRewardConfetti
	// FamilyFire 火焰皮肤环境粒子（向上飘）
	FamilyFire
	// FamilyIce 冰霜皮肤环境粒子（雪花，向下飘）
	FamilyIce
	// FamilyGold 黄金皮肤环境粒子（向上飘的金色光点）
	FamilyGold
	// FamilyRainbow 彩虹皮肤环境粒子（横向闪烁）
	FamilyRainbow
	// FamilyMirror 镜面皮肤环境粒子（横向银色闪光）
	FamilyMirror
	// FamilyHacker 黑客皮肤环境粒子（下落的二进制字符）
	FamilyHacker
)

// familyNames 粒子族名称，与 data/particles.yaml 中的键一致
var familyNames = map[ParticleFamily]string{
	FamilyNone:           "none",
	FamilyImpactBurst:    "impact_burst",
	FamilyRewardConfetti: "reward_confetti",
	FamilyFire:           "fire",
	FamilyIce:            "ice",
	FamilyGold:           "gold",
	FamilyRainbow:        "rainbow",
	FamilyMirror:         "mirror",
	FamilyHacker:         "hacker",
}

// String 返回粒子族在配置文件中的名称
func (f ParticleFamily) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseParticleFamily 根据配置名称查找粒子族
func ParseParticleFamily(name string) (ParticleFamily, bool) {
	for family, n := range familyNames {
		if n == name && family != FamilyNone {
			return family, true
		}
	}
	return FamilyNone, false
}

// AllParticleFamilies 返回所有有效粒子族（不含 FamilyNone），按枚举顺序
func AllParticleFamilies() []ParticleFamily {
	return []ParticleFamily{
		FamilyImpactBurst,
		FamilyRewardConfetti,
		FamilyFire,
		FamilyIce,
		FamilyGold,
		FamilyRainbow,
		FamilyMirror,
		FamilyHacker,
	}
}

// ParticleShape 粒子的绘制形状
type ParticleShape int

const (
	// ShapeCircle 实心圆
	ShapeCircle ParticleShape = iota
	// ShapeRect 旋转矩形（纸屑）
	ShapeRect
	// ShapeGlyph 字符（黑客皮肤的 0/1）
	ShapeGlyph
	// ShapeFlake 六边形雪花
	ShapeFlake
)
