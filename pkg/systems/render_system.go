package systems

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	particlePkg "github.com/decker502/slingmath/internal/particle"
	"github.com/decker502/slingmath/pkg/components"
	"github.com/decker502/slingmath/pkg/config"
	"github.com/decker502/slingmath/pkg/game"
	"github.com/decker502/slingmath/pkg/utils"
)

// 靶子与画面配色
var (
	backgroundColor   = color.RGBA{R: 0x87, G: 0xCE, B: 0xEB, A: 0xFF}
	groundColor       = color.RGBA{R: 0x7C, G: 0xB3, B: 0x42, A: 0xFF}
	targetOuterColor  = color.RGBA{R: 0xFF, G: 0x8E, B: 0x53, A: 0xFF}
	targetRimColor    = color.RGBA{R: 0xFE, G: 0x6B, B: 0x8B, A: 0xFF}
	targetCenterColor = color.RGBA{R: 0xFF, G: 0x6B, B: 0x6B, A: 0xFF}
	outlineColor      = color.RGBA{A: 0x4C}
	trajectoryColor   = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xB0}
)

// 弹弓几何（相对锚点）
const (
	slingHandleLength = 40
	slingArmSpreadX   = 30
	slingArmHeight    = 40
	slingProjectileR  = 10
	glyphBaseSize     = 12
)

// RenderSystem 绘制帧快照
//
// 渲染层只读取 game.FrameSnapshot，不访问实体管理器。
// 粒子形状由粒子族目录中的 shape 决定：
//   - circle: 实心圆
//   - rect: 旋转矩形（纸屑）
//   - glyph: 字符（黑客皮肤）
//   - flake: 六边形雪花
type RenderSystem struct {
	catalog particlePkg.Catalog

	// 1x1 白色纹理，用于 DrawTriangles 绘制纯色多边形
	whiteSubImage *ebiten.Image
	// 字符粒子缓存（白色字形，绘制时着色）
	glyphImages map[rune]*ebiten.Image

	// 顶点缓冲（复用以减少分配）
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(catalog particlePkg.Catalog) *RenderSystem {
	return &RenderSystem{
		catalog:     catalog,
		glyphImages: make(map[rune]*ebiten.Image),
		vertices:    make([]ebiten.Vertex, 0, 64),
		indices:     make([]uint16, 0, 96),
	}
}

// ShapeOf 返回粒子族的绘制形状（目录中缺失时按圆形绘制）
func (s *RenderSystem) ShapeOf(family components.ParticleFamily) components.ParticleShape {
	spec, ok := s.catalog.Get(family.String())
	if !ok {
		return components.ShapeCircle
	}
	switch spec.Shape {
	case "rect":
		return components.ShapeRect
	case "glyph":
		return components.ShapeGlyph
	case "flake":
		return components.ShapeFlake
	default:
		return components.ShapeCircle
	}
}

// Draw 绘制一帧
func (s *RenderSystem) Draw(screen *ebiten.Image, snap game.FrameSnapshot) {
	if screen == nil {
		return
	}
	s.ensureWhiteImage()

	screen.Fill(backgroundColor)
	groundTop := snap.Slingshot.AnchorY + slingHandleLength
	if groundTop < snap.Height {
		vector.DrawFilledRect(screen, 0, float32(groundTop), float32(snap.Width), float32(snap.Height-groundTop), groundColor, false)
	}

	for _, t := range snap.Targets {
		s.drawTarget(screen, t)
	}
	s.drawTrajectory(screen, snap.Trajectory)
	if snap.Projectile != nil {
		s.drawProjectile(screen, snap.Projectile.X, snap.Projectile.Y, snap.Projectile.Radius, snap.Skin.Palette)
	}
	for _, p := range snap.Particles {
		s.drawParticle(screen, p)
	}
	if snap.Active {
		s.drawSlingshot(screen, snap.Slingshot, snap.Skin.Palette)
	}
}

func (s *RenderSystem) ensureWhiteImage() {
	if s.whiteSubImage != nil {
		return
	}
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	s.whiteSubImage = white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// drawTarget 靶心：外圈、白边、白色内圈、红色中心
func (s *RenderSystem) drawTarget(screen *ebiten.Image, t game.TargetView) {
	x, y, r := float32(t.X), float32(t.Y), float32(t.Radius)
	vector.DrawFilledCircle(screen, x, y, r, targetRimColor, true)
	vector.DrawFilledCircle(screen, x, y, r*0.8, targetOuterColor, true)
	vector.StrokeCircle(screen, x, y, r, 3, color.White, true)
	vector.DrawFilledCircle(screen, x, y, r*0.5, color.White, true)
	vector.DrawFilledCircle(screen, x, y, r*0.25, targetCenterColor, true)
}

// drawProjectile 多色调色板按同心圆由外向内绘制
func (s *RenderSystem) drawProjectile(screen *ebiten.Image, px, py, radius float64, palette config.SkinPalette) {
	x, y, r := float32(px), float32(py), float32(radius)
	colors := palette.Projectile
	if len(colors) == 0 {
		colors = []color.RGBA{{R: 0x8B, G: 0x45, B: 0x13, A: 0xFF}}
	}
	n := float32(len(colors))
	for i := len(colors) - 1; i >= 0; i-- {
		vector.DrawFilledCircle(screen, x, y, r*float32(i+1)/n, colors[len(colors)-1-i], true)
	}
	vector.StrokeCircle(screen, x, y, r, 2, outlineColor, true)
}

func (s *RenderSystem) drawTrajectory(screen *ebiten.Image, points []utils.Point) {
	for i := 2; i < len(points); i += 3 {
		vector.DrawFilledCircle(screen, float32(points[i].X), float32(points[i].Y), 2, trajectoryColor, true)
	}
}

// drawSlingshot Y 形弹弓，瞄准时绘制拉开的橡皮筋和待发射的弹丸
func (s *RenderSystem) drawSlingshot(screen *ebiten.Image, sling game.SlingshotView, palette config.SkinPalette) {
	ax, ay := float32(sling.AnchorX), float32(sling.AnchorY)

	if palette.GradientBase && len(palette.Projectile) > 1 {
		seg := float32(slingHandleLength) / float32(len(palette.Projectile))
		for i, c := range palette.Projectile {
			y0 := ay + slingHandleLength - seg*float32(i)
			vector.StrokeLine(screen, ax, y0, ax, y0-seg, 12, c, true)
		}
	} else {
		vector.StrokeLine(screen, ax, ay+slingHandleLength, ax, ay, 12, palette.Base, true)
	}

	leftX, rightX, armY := ax-slingArmSpreadX, ax+slingArmSpreadX, ay-slingArmHeight
	vector.StrokeLine(screen, ax, ay, leftX, armY, 10, palette.Arms, true)
	vector.StrokeLine(screen, ax, ay, rightX, armY, 10, palette.Arms, true)

	if !sling.Pulling {
		vector.StrokeLine(screen, leftX, armY, rightX, armY, 4, palette.Band, true)
		return
	}
	px, py := float32(sling.PullX), float32(sling.PullY)
	vector.StrokeLine(screen, leftX, armY, px, py, 4, palette.Band, true)
	vector.StrokeLine(screen, px, py, rightX, armY, 4, palette.Band, true)
	s.drawProjectile(screen, sling.PullX, sling.PullY, slingProjectileR, palette)
}

// drawParticle 按粒子族形状绘制，alpha = life
func (s *RenderSystem) drawParticle(screen *ebiten.Image, p game.ParticleView) {
	alpha := utils.Clamp(p.Alpha, 0, 1)
	switch s.ShapeOf(p.Family) {
	case components.ShapeRect:
		// 纸屑：宽 size，高 2*size，绕中心旋转
		s.fillPolygon(screen, rotatedRect(p.X, p.Y, p.Size, p.Size*2, p.Rotation), p.Color, alpha)
	case components.ShapeFlake:
		s.fillPolygon(screen, hexagon(p.X, p.Y, p.Size), p.Color, alpha)
	case components.ShapeGlyph:
		s.drawGlyph(screen, p, alpha)
	default:
		c := p.Color
		c.A = uint8(float64(c.A) * alpha)
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Size), premultiply(c), true)
	}
}

// fillPolygon 以扇形三角化填充凸多边形
func (s *RenderSystem) fillPolygon(screen *ebiten.Image, pts []utils.Point, c color.RGBA, alpha float64) {
	if len(pts) < 3 {
		return
	}
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]

	r := float32(c.R) / 255
	g := float32(c.G) / 255
	b := float32(c.B) / 255
	a := float32(c.A) / 255 * float32(alpha)
	for _, pt := range pts {
		s.vertices = append(s.vertices, ebiten.Vertex{
			DstX:   float32(pt.X),
			DstY:   float32(pt.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		})
	}
	for i := 1; i < len(pts)-1; i++ {
		s.indices = append(s.indices, 0, uint16(i), uint16(i+1))
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(s.vertices, s.indices, s.whiteSubImage, op)
}

// drawGlyph 字符粒子：调试字体渲染的白色字形，按粒子颜色着色
func (s *RenderSystem) drawGlyph(screen *ebiten.Image, p game.ParticleView, alpha float64) {
	if p.Glyph == 0 {
		return
	}
	img, ok := s.glyphImages[p.Glyph]
	if !ok {
		img = ebiten.NewImage(8, 16)
		ebitenutil.DebugPrint(img, string(p.Glyph))
		s.glyphImages[p.Glyph] = img
	}

	scale := p.Size / glyphBaseSize
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-4, -8)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(p.X, p.Y)
	op.ColorScale.ScaleWithColor(p.Color)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(img, op)
}

// rotatedRect 返回以 (cx, cy) 为中心、旋转 angle 的矩形四个顶点
func rotatedRect(cx, cy, w, h, angle float64) []utils.Point {
	sin, cos := math.Sincos(angle)
	corners := [4][2]float64{{-w / 2, -h / 2}, {w / 2, -h / 2}, {w / 2, h / 2}, {-w / 2, h / 2}}
	pts := make([]utils.Point, 0, 4)
	for _, c := range corners {
		pts = append(pts, utils.Point{
			X: cx + c[0]*cos - c[1]*sin,
			Y: cy + c[0]*sin + c[1]*cos,
		})
	}
	return pts
}

// hexagon 返回外接圆半径为 r 的正六边形顶点
func hexagon(cx, cy, r float64) []utils.Point {
	pts := make([]utils.Point, 0, 6)
	for i := 0; i < 6; i++ {
		angle := 2 * math.Pi * float64(i) / 6
		pts = append(pts, utils.Point{X: cx + math.Cos(angle)*r, Y: cy + math.Sin(angle)*r})
	}
	return pts
}

// premultiply 转换为预乘 alpha 颜色（color.RGBA 约定）
func premultiply(c color.RGBA) color.RGBA {
	a := uint16(c.A)
	return color.RGBA{
		R: uint8(uint16(c.R) * a / 255),
		G: uint8(uint16(c.G) * a / 255),
		B: uint8(uint16(c.B) * a / 255),
		A: c.A,
	}
}
