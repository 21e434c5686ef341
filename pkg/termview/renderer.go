// Package termview 在终端中绘制对战棋盘
//
// 读取与 ebiten 渲染系统相同的 ECS 数据（单位、手牌、临时效果），
// 将屏幕像素坐标按比例投影到终端字符格。
package termview

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/gonewx/gridduel/pkg/components"
	"github.com/gonewx/gridduel/pkg/config"
	"github.com/gonewx/gridduel/pkg/ecs"
	"github.com/gonewx/gridduel/pkg/systems"
	"github.com/gonewx/gridduel/pkg/types"
)

// 终端布局：每个棋盘格占 CellCols × CellRows 个字符
const (
	CellCols = 8
	CellRows = 3
	OriginX  = 1
	OriginY  = 1
)

// minVisibleAlpha 低于此不透明度的效果元素不绘制
const minVisibleAlpha = 0.15

// StatusRow 状态栏所在行
const StatusRow = OriginY + config.BoardRows*CellRows + 6

// Renderer 把 ECS 棋盘绘制到 tcell.Screen
type Renderer struct {
	screen        tcell.Screen
	entityManager *ecs.EntityManager
	showGrid      bool
	base          tcell.Style
}

// NewRenderer 创建终端渲染器
func NewRenderer(screen tcell.Screen, em *ecs.EntityManager) *Renderer {
	return &Renderer{
		screen:        screen,
		entityManager: em,
		showGrid:      true,
		base:          tcell.StyleDefault,
	}
}

// SetShowGrid 设置是否绘制格子边框
func (r *Renderer) SetShowGrid(show bool) {
	r.showGrid = show
}

// Project 将屏幕像素坐标投影到终端字符坐标
func Project(x, y float64) (col, row int) {
	col = OriginX + int((x-config.BoardStartX)/config.CellWidth*CellCols)
	row = OriginY + int((y-config.BoardStartY)/config.CellHeight*CellRows)
	return col, row
}

// Glyph 返回效果元素在终端中的字符
func Glyph(visual *components.EffectVisualComponent) rune {
	switch visual.Shape {
	case types.ShapeRing:
		return 'o'
	case types.ShapeRect:
		return '#'
	case types.ShapeGlyph:
		if visual.Glyph != 0 {
			return visual.Glyph
		}
		return '+'
	default:
		return '*'
	}
}

// Draw 绘制一帧并刷新屏幕
func (r *Renderer) Draw(status string) {
	r.screen.Clear()
	if r.showGrid {
		r.drawGrid()
	}
	r.drawUnits()
	r.drawCards()
	r.drawEffects()
	r.drawText(OriginX, StatusRow, status, r.base)
	r.screen.Show()
}

func (r *Renderer) drawGrid() {
	style := r.base.Foreground(tcell.ColorGray)
	width := config.BoardColumns * CellCols
	height := config.BoardRows * CellRows

	for y := 0; y <= height; y++ {
		for x := 0; x <= width; x++ {
			onRow := y%CellRows == 0
			onCol := x%CellCols == 0
			var ch rune
			switch {
			case onRow && onCol:
				ch = '+'
			case onRow:
				ch = '-'
			case onCol:
				ch = '|'
			default:
				continue
			}
			r.screen.SetContent(OriginX+x, OriginY+y, ch, nil, style)
		}
	}
}

func (r *Renderer) drawUnits() {
	em := r.entityManager
	for _, id := range ecs.GetEntitiesWith1[*components.BoardUnitComponent](em) {
		unit, _ := ecs.GetComponent[*components.BoardUnitComponent](em, id)
		left := OriginX + unit.Col*CellCols + 1
		top := OriginY + unit.Row*CellRows + 1
		style := r.base.Foreground(toColor(systems.UnitColor(unit.Row)))
		r.drawText(left, top, runewidth.Truncate(unit.GameID, CellCols-1, ""), style)
	}
}

func (r *Renderer) drawCards() {
	em := r.entityManager
	style := r.base.Foreground(tcell.ColorYellow)
	for _, id := range ecs.GetEntitiesWith2[*components.HandCardComponent, *components.PositionComponent](em) {
		card, _ := ecs.GetComponent[*components.HandCardComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		col, row := Project(pos.X, pos.Y)
		label := "[" + runewidth.Truncate(card.GameID, CellCols-3, "") + "]"
		r.drawText(col-runewidth.StringWidth(label)/2, row, label, style)
	}
}

func (r *Renderer) drawEffects() {
	em := r.entityManager
	for _, id := range ecs.GetEntitiesWith2[*components.EffectVisualComponent, *components.PositionComponent](em) {
		visual, _ := ecs.GetComponent[*components.EffectVisualComponent](em, id)
		if visual.Alpha < minVisibleAlpha {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		col, row := Project(pos.X, pos.Y)
		style := r.base.Foreground(toColor(visual.Color)).Bold(true)
		r.screen.SetContent(col, row, Glyph(visual), nil, style)
	}
}

// drawText 从 (x, y) 开始逐字符绘制，按字符显示宽度推进
func (r *Renderer) drawText(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
