package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/slingmath/pkg/game"
	"github.com/decker502/slingmath/pkg/utils"
)

const (
	// Question Panel (题目面板)
	QuestionPanelMaxWidth = 420
	QuestionPanelHeight   = 220
	QuestionPanelMargin   = 20

	// Option Buttons (选项按钮) - relative to the panel
	OptionButtonOffsetY = 130
	OptionButtonHeight  = 50
	OptionButtonSpacing = 20

	// HUD
	HUDPaddingX    = 8
	HUDPaddingY    = 8
	HUDLineSpacing = 16

	// debug 字体单个字符的宽度（像素）
	debugGlyphWidth = 6
)

var (
	overlayColor      = color.RGBA{A: 0x80}
	panelColor        = color.RGBA{R: 0x2C, G: 0x3E, B: 0x50, A: 0xFF}
	optionButtonColor = color.RGBA{R: 0x45, G: 0xB7, B: 0xD1, A: 0xFF}
	optionBorderColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// buttonRect 屏幕空间的矩形按钮
type buttonRect struct {
	X, Y, W, H float64
}

// contains 判断点是否在按钮内
func (r buttonRect) contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// questionPanelRect 计算居中的题目面板
func questionPanelRect(width, height float64) buttonRect {
	w := math.Min(QuestionPanelMaxWidth, width-2*QuestionPanelMargin)
	return buttonRect{
		X: (width - w) / 2,
		Y: (height - QuestionPanelHeight) / 2,
		W: w,
		H: QuestionPanelHeight,
	}
}

// optionButtons 计算 n 个选项按钮的位置（在面板内横向排列）
func optionButtons(width, height float64, n int) []buttonRect {
	if n <= 0 {
		return nil
	}
	panel := questionPanelRect(width, height)
	inner := panel.W - 2*QuestionPanelMargin
	bw := (inner - float64(n-1)*OptionButtonSpacing) / float64(n)

	buttons := make([]buttonRect, n)
	for i := range buttons {
		buttons[i] = buttonRect{
			X: panel.X + QuestionPanelMargin + float64(i)*(bw+OptionButtonSpacing),
			Y: panel.Y + OptionButtonOffsetY,
			W: bw,
			H: OptionButtonHeight,
		}
	}
	return buttons
}

// optionAt 返回 (x, y) 处的选项下标，没有命中返回 -1
func optionAt(x, y, width, height float64, n int) int {
	for i, b := range optionButtons(width, height, n) {
		if b.contains(x, y) {
			return i
		}
	}
	return -1
}

// pressedOptionKey 返回本帧按下的选项键（1-3 对应 0-2），Esc 表示放弃
func pressedOptionKey() (option int, dismiss bool) {
	keys := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3}
	numpad := []ebiten.Key{ebiten.KeyNumpad1, ebiten.KeyNumpad2, ebiten.KeyNumpad3}
	for i := range keys {
		if inpututil.IsKeyJustPressed(keys[i]) || inpututil.IsKeyJustPressed(numpad[i]) {
			return i, false
		}
	}
	return -1, inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

// handleRoundInput 题目显示期间处理选项输入
// 返回 true 表示输入已被题目面板消费
func (s *GameScene) handleRoundInput(sample utils.PointerSample) bool {
	round := s.state.Round
	if round.Phase != game.RoundPresenting || round.Question == nil {
		return false
	}

	option, dismiss := -1, false
	if s.keys != nil {
		option, dismiss = s.keys()
	}
	if option < 0 && sample.Pressed && sample.Valid() {
		option = optionAt(sample.X, sample.Y, s.state.Bounds.Width, s.state.Bounds.Height, len(round.Question.Options))
	}

	switch {
	case option >= 0 && option < len(round.Question.Options):
		if err := s.roundSystem.SubmitOption(option); err != nil {
			log.Printf("[GameScene] Failed to submit option %d: %v", option, err)
		}
	case dismiss:
		s.roundSystem.Dismiss()
	}
	return true
}

// drawHUD 左上角显示玩家信息和状态提示
func (s *GameScene) drawHUD(screen *ebiten.Image, snap game.FrameSnapshot) {
	if screen == nil {
		return
	}
	line := fmt.Sprintf("Level %d   Coins %d   Skin %s", snap.Level, snap.Coins, snap.Skin.Name)
	ebitenutil.DebugPrintAt(screen, line, HUDPaddingX, HUDPaddingY)

	y := HUDPaddingY + HUDLineSpacing
	if hint := roundHint(snap.Round); hint != "" {
		ebitenutil.DebugPrintAt(screen, hint, HUDPaddingX, y)
		y += HUDLineSpacing
	}
	if snap.Status != "" {
		ebitenutil.DebugPrintAt(screen, snap.Status, HUDPaddingX, y)
	}
}

// roundHint 回合等待阶段的提示文字
func roundHint(phase game.RoundPhase) string {
	switch phase {
	case game.RoundDelay:
		return "Hit!"
	case game.RoundFetching:
		return "Loading question..."
	case game.RoundSubmitting:
		return "Checking answer..."
	default:
		return ""
	}
}

// drawRoundPanel 绘制题目面板和选项按钮
func (s *GameScene) drawRoundPanel(screen *ebiten.Image, snap game.FrameSnapshot) {
	if screen == nil || snap.Question == nil {
		return
	}
	if snap.Round != game.RoundPresenting && snap.Round != game.RoundSubmitting {
		return
	}

	vector.DrawFilledRect(screen, 0, 0, float32(snap.Width), float32(snap.Height), overlayColor, false)

	panel := questionPanelRect(snap.Width, snap.Height)
	vector.DrawFilledRect(screen, float32(panel.X), float32(panel.Y), float32(panel.W), float32(panel.H), panelColor, true)

	title := fmt.Sprintf("Level %d", snap.Question.Level)
	drawCenteredDebugText(screen, title, panel.X+panel.W/2, panel.Y+24)
	drawCenteredDebugText(screen, snap.Question.Question, panel.X+panel.W/2, panel.Y+64)

	for i, b := range optionButtons(snap.Width, snap.Height, len(snap.Question.Options)) {
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), optionButtonColor, true)
		vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, optionBorderColor, true)
		label := fmt.Sprintf("%d) %d", i+1, snap.Question.Options[i])
		drawCenteredDebugText(screen, label, b.X+b.W/2, b.Y+b.H/2-8)
	}
}

// drawCenteredDebugText 以 debug 字体绘制水平居中的文本
func drawCenteredDebugText(screen *ebiten.Image, text string, centerX, y float64) {
	x := centerX - float64(len(text)*debugGlyphWidth)/2
	ebitenutil.DebugPrintAt(screen, text, int(x), int(y))
}
