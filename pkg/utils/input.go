// Package utils 提供通用工具函数
package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerSample 一帧的指针输入（鼠标或触摸）
//
// 坐标为画布坐标。Pressed/Released 表示本帧刚按下/刚释放，
// 两者都为 false 时表示移动（或悬停）。
type PointerSample struct {
	X, Y     float64
	Pressed  bool
	Released bool
	// Down 指针当前是否处于按下状态
	Down bool
}

// Valid 坐标是否有效（NaN/Inf 视为畸形输入，直接丢弃）
func (p PointerSample) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) &&
		!math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// 保存最后一次触摸位置（触摸释放时 ebiten 已经拿不到该触点的坐标）
var lastTouchX, lastTouchY int

// UpdateLastTouchPosition 更新最后一次触摸位置
// 应该在每帧更新时调用
func UpdateLastTouchPosition() {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		lastTouchX, lastTouchY = ebiten.TouchPosition(touchIDs[0])
	}
}

// IsPointerJustPressed 检查是否刚刚按下指针（触摸或鼠标）
// 返回是否按下以及按下位置
func IsPointerJustPressed() (bool, int, int) {
	// 检查触摸按下
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		// 同时更新最后触摸位置
		lastTouchX, lastTouchY = x, y
		return true, x, y
	}

	// 检查鼠标按下
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// IsPointerJustReleased 检查是否刚刚释放指针（触摸或鼠标）
// 返回是否释放以及释放位置
func IsPointerJustReleased() (bool, int, int) {
	// 检查触摸释放
	releasedTouchIDs := inpututil.AppendJustReleasedTouchIDs(nil)
	if len(releasedTouchIDs) > 0 {
		// 触摸释放时使用保存的最后触摸位置
		return true, lastTouchX, lastTouchY
	}

	// 检查鼠标释放
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// GetPointerState 获取指针的完整状态
// 返回：是否按下、X坐标、Y坐标
func GetPointerState() (pressed bool, x, y int) {
	// 检查触摸
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	x, y = ebiten.CursorPosition()
	pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return pressed, x, y
}

// SamplePointer 采集本帧的指针输入
//
// 释放事件在窗口外同样会被 ebiten 报告（全局释放），
// 因此拖拽到画布外松手也能正常发射。
func SamplePointer() PointerSample {
	UpdateLastTouchPosition()

	if ok, x, y := IsPointerJustPressed(); ok {
		return PointerSample{X: float64(x), Y: float64(y), Pressed: true, Down: true}
	}
	if ok, x, y := IsPointerJustReleased(); ok {
		return PointerSample{X: float64(x), Y: float64(y), Released: true}
	}

	down, x, y := GetPointerState()
	return PointerSample{X: float64(x), Y: float64(y), Down: down}
}

// ScreenToCanvas 将窗口坐标换算为画布坐标
// scale 为画布像素/窗口像素（ebiten Layout 缩放比），<= 0 时按 1 处理
func ScreenToCanvas(p PointerSample, scale float64) PointerSample {
	if scale <= 0 {
		return p
	}
	p.X *= scale
	p.Y *= scale
	return p
}
