package systems

import (
	"image/color"
	"math"

	"github.com/gonewx/gridduel/pkg/components"
	"github.com/gonewx/gridduel/pkg/config"
	"github.com/gonewx/gridduel/pkg/ecs"
	"github.com/gonewx/gridduel/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 棋盘视觉常量
var (
	boardBackgroundColor = color.RGBA{R: 34, G: 40, B: 49, A: 255}
	cellBorderColor      = color.RGBA{R: 70, G: 80, B: 96, A: 255}
	// 第 0-1 行对手单位，第 2-3 行玩家单位
	opponentUnitColor = color.RGBA{R: 150, G: 60, B: 60, A: 255}
	playerUnitColor   = color.RGBA{R: 60, G: 100, B: 160, A: 255}
	cardColor         = color.RGBA{R: 180, G: 150, B: 90, A: 255}
)

const (
	// ringStrokeWidth 圆环线宽
	ringStrokeWidth = 3.0
	// debugGlyphWidth ebitenutil 调试字体的字符宽度
	debugGlyphWidth = 6
	labelOffsetY    = 6
)

// BoardRenderSystem 绘制棋盘、单位、手牌和临时效果元素
type BoardRenderSystem struct {
	entityManager *ecs.EntityManager
	showGrid      bool
}

// NewBoardRenderSystem 创建棋盘渲染系统
func NewBoardRenderSystem(em *ecs.EntityManager) *BoardRenderSystem {
	return &BoardRenderSystem{
		entityManager: em,
		showGrid:      true,
	}
}

// SetShowGrid 设置是否绘制格子边框
func (s *BoardRenderSystem) SetShowGrid(show bool) {
	s.showGrid = show
}

// Draw 绘制整个对战画面
// 渲染顺序（从底到顶）：棋盘 → 单位 → 手牌 → 临时效果
func (s *BoardRenderSystem) Draw(screen *ebiten.Image) {
	s.drawBoard(screen)
	s.drawUnits(screen)
	s.drawCards(screen)
	s.drawEffects(screen)
}

func (s *BoardRenderSystem) drawBoard(screen *ebiten.Image) {
	x, y, endX, endY := config.GetBoardBounds()
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(endX-x), float32(endY-y), boardBackgroundColor, false)

	if !s.showGrid {
		return
	}
	for row := 0; row < config.BoardRows; row++ {
		for col := 0; col < config.BoardColumns; col++ {
			cx, cy := config.CellCenter(row, col)
			vector.StrokeRect(screen,
				float32(cx-config.CellWidth/2), float32(cy-config.CellHeight/2),
				float32(config.CellWidth), float32(config.CellHeight),
				1, cellBorderColor, false)
		}
	}
}

func (s *BoardRenderSystem) drawUnits(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith3[*components.BoardUnitComponent, *components.PositionComponent, *components.SizeComponent](s.entityManager)
	for _, id := range entities {
		unit, _ := ecs.GetComponent[*components.BoardUnitComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		size, _ := ecs.GetComponent[*components.SizeComponent](s.entityManager, id)

		drawBox(screen, pos, size, UnitColor(unit.Row))
		drawLabel(screen, unit.GameID, pos)
	}
}

func (s *BoardRenderSystem) drawCards(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith3[*components.HandCardComponent, *components.PositionComponent, *components.SizeComponent](s.entityManager)
	for _, id := range entities {
		card, _ := ecs.GetComponent[*components.HandCardComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		size, _ := ecs.GetComponent[*components.SizeComponent](s.entityManager, id)

		drawBox(screen, pos, size, cardColor)
		drawLabel(screen, card.GameID, pos)
	}
}

// drawEffects 按创建顺序绘制临时效果元素，后创建的在上层
func (s *BoardRenderSystem) drawEffects(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.EffectVisualComponent, *components.PositionComponent](s.entityManager)
	for _, id := range entities {
		visual, _ := ecs.GetComponent[*components.EffectVisualComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		clr := FadeColor(visual.Color, visual.Alpha)
		if clr.A == 0 {
			continue
		}
		w, h := EffectExtent(visual)

		switch visual.Shape {
		case types.ShapeRing:
			vector.StrokeCircle(screen, float32(pos.X), float32(pos.Y), float32(w), ringStrokeWidth, clr, true)
		case types.ShapeRect:
			vector.DrawFilledRect(screen, float32(pos.X-w/2), float32(pos.Y-h/2), float32(w), float32(h), clr, true)
		case types.ShapeGlyph:
			ebitenutil.DebugPrintAt(screen, string(visual.Glyph), int(pos.X)-debugGlyphWidth/2, int(pos.Y)-labelOffsetY*2)
		default:
			vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), float32(w), clr, true)
		}
	}
}

// UnitColor 按所在行返回单位颜色
func UnitColor(row int) color.RGBA {
	if row < config.BoardRows/2 {
		return opponentUnitColor
	}
	return playerUnitColor
}

// FadeColor 按不透明度缩放颜色（预乘 alpha）
func FadeColor(c color.RGBA, alpha float64) color.RGBA {
	a := math.Max(0, math.Min(1, alpha))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// EffectExtent 返回效果元素的绘制尺寸
// 圆和圆环返回 (半径, 半径)；矩形返回 (宽, 高)，未指定高度时为正方形
func EffectExtent(visual *components.EffectVisualComponent) (w, h float64) {
	w = visual.Size * visual.Scale
	h = w
	if visual.Shape == types.ShapeRect && visual.Height > 0 {
		h = visual.Height * visual.Scale
	}
	return w, h
}

func drawBox(screen *ebiten.Image, pos *components.PositionComponent, size *components.SizeComponent, clr color.RGBA) {
	vector.DrawFilledRect(screen,
		float32(pos.X-size.Width/2), float32(pos.Y-size.Height/2),
		float32(size.Width), float32(size.Height),
		clr, false)
}

func drawLabel(screen *ebiten.Image, label string, pos *components.PositionComponent) {
	if len(label) > 8 {
		label = label[:8]
	}
	x := int(pos.X) - len(label)*debugGlyphWidth/2
	ebitenutil.DebugPrintAt(screen, label, x, int(pos.Y)-labelOffsetY)
}
