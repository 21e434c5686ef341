// Package surface 将动画序列器的渲染层接口实现在 ECS 之上
//
// 单位、手牌和临时效果元素都是 EntityManager 中的实体，
// 由 TweenSystem 推进补间，由 BoardRenderSystem / termview 绘制。
// BoardSurface 不是并发安全的，必须在游戏主循环中使用
// （配合 systems.ScheduleSystem）。
package surface

import (
	"fmt"
	"log"
	"time"

	"github.com/gonewx/gridduel/pkg/components"
	"github.com/gonewx/gridduel/pkg/config"
	"github.com/gonewx/gridduel/pkg/ecs"
	"github.com/gonewx/gridduel/pkg/sequencer"
)

// BoardSurface 基于 ECS 的对战棋盘渲染层
type BoardSurface struct {
	entityManager *ecs.EntityManager
	// visuals 游戏ID → 单位/手牌实体
	visuals map[string]ecs.EntityID
}

var _ sequencer.Surface = (*BoardSurface)(nil)

// NewBoardSurface 创建棋盘渲染层
func NewBoardSurface(em *ecs.EntityManager) *BoardSurface {
	return &BoardSurface{
		entityManager: em,
		visuals:       make(map[string]ecs.EntityID),
	}
}

// EntityManager 返回底层实体管理器
func (b *BoardSurface) EntityManager() *ecs.EntityManager {
	return b.entityManager
}

// AddUnit 在格子 (row, col) 放置一个单位
// 已存在同ID的可视元素时替换
func (b *BoardSurface) AddUnit(id string, row, col int) (ecs.EntityID, error) {
	if id == "" {
		return 0, fmt.Errorf("unit id must not be empty")
	}
	if !config.InBoard(row, col) {
		return 0, fmt.Errorf("unit %s: cell (%d,%d) outside %dx%d board", id, row, col, config.BoardRows, config.BoardColumns)
	}

	b.RemoveVisual(id)

	em := b.entityManager
	entity := em.CreateEntity()
	x, y := config.CellCenter(row, col)
	ecs.AddComponent(em, entity, &components.BoardUnitComponent{GameID: id, Row: row, Col: col})
	ecs.AddComponent(em, entity, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entity, &components.SizeComponent{Width: config.UnitWidth, Height: config.UnitHeight})
	b.visuals[id] = entity

	return entity, nil
}

// AddCard 在手牌槽位 slot 放置一张卡牌
func (b *BoardSurface) AddCard(id string, slot int) (ecs.EntityID, error) {
	if id == "" {
		return 0, fmt.Errorf("card id must not be empty")
	}
	if slot < 0 || slot >= config.HandSlots {
		return 0, fmt.Errorf("card %s: slot %d outside hand (0-%d)", id, slot, config.HandSlots-1)
	}

	b.RemoveVisual(id)

	em := b.entityManager
	entity := em.CreateEntity()
	x, y := config.HandSlotCenter(slot)
	ecs.AddComponent(em, entity, &components.HandCardComponent{GameID: id, Slot: slot})
	ecs.AddComponent(em, entity, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entity, &components.SizeComponent{Width: config.CardWidth, Height: config.CardHeight})
	b.visuals[id] = entity

	return entity, nil
}

// LoadScript 按对战脚本摆放单位和手牌
func (b *BoardSurface) LoadScript(script *config.BattleScript) error {
	for _, u := range script.Units {
		if _, err := b.AddUnit(u.ID, u.Row, u.Col); err != nil {
			return fmt.Errorf("failed to place script %s: %w", script.Name, err)
		}
	}
	for _, c := range script.Cards {
		if _, err := b.AddCard(c.ID, c.Slot); err != nil {
			return fmt.Errorf("failed to place script %s: %w", script.Name, err)
		}
	}
	return nil
}

// RemoveVisual 移除单位或手牌；之后对该ID的查找返回"不存在"
func (b *BoardSurface) RemoveVisual(id string) {
	entity, ok := b.visuals[id]
	if !ok {
		return
	}
	delete(b.visuals, id)
	b.entityManager.DestroyEntity(entity)
}

// CardInSlot 返回手牌槽位 slot 中的卡牌ID
func (b *BoardSurface) CardInSlot(slot int) (string, bool) {
	em := b.entityManager
	for _, id := range ecs.GetEntitiesWith1[*components.HandCardComponent](em) {
		card, _ := ecs.GetComponent[*components.HandCardComponent](em, id)
		if card.Slot == slot {
			return card.GameID, true
		}
	}
	return "", false
}

// FindVisualElement 查找单位或手牌的当前几何信息
func (b *BoardSurface) FindVisualElement(entityID string) (sequencer.Element, bool) {
	entity, ok := b.visuals[entityID]
	if !ok || !b.entityManager.IsAlive(entity) {
		return sequencer.Element{}, false
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](b.entityManager, entity)
	if !ok {
		return sequencer.Element{}, false
	}
	el := sequencer.Element{Center: sequencer.Point{X: pos.X, Y: pos.Y}}
	if size, ok := ecs.GetComponent[*components.SizeComponent](b.entityManager, entity); ok {
		el.Width = size.Width
		el.Height = size.Height
	}
	return el, true
}

// FindCellElement 返回格子 (row, col) 的几何信息，越界时返回"不存在"
func (b *BoardSurface) FindCellElement(row, col int) (sequencer.Element, bool) {
	if !config.InBoard(row, col) {
		return sequencer.Element{}, false
	}
	x, y := config.CellCenter(row, col)
	return sequencer.Element{
		Center: sequencer.Point{X: x, Y: y},
		Width:  config.CellWidth,
		Height: config.CellHeight,
	}, true
}

// CreateTransientElement 创建临时效果元素，初始位于原点
func (b *BoardSurface) CreateTransientElement(style sequencer.Style) sequencer.Handle {
	em := b.entityManager
	entity := em.CreateEntity()

	scale := style.Scale
	if scale == 0 {
		scale = 1
	}
	ecs.AddComponent(em, entity, &components.EffectVisualComponent{
		Shape:  style.Shape,
		Color:  style.Color,
		Size:   style.Size,
		Height: style.Height,
		Scale:  scale,
		Alpha:  style.Alpha,
		Glyph:  style.Glyph,
	})
	ecs.AddComponent(em, entity, &components.PositionComponent{})

	return sequencer.Handle(entity)
}

// PositionElement 立即移动临时元素，并取消其进行中的补间
func (b *BoardSurface) PositionElement(h sequencer.Handle, p sequencer.Point) {
	entity, ok := b.transient(h)
	if !ok {
		return
	}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](b.entityManager, entity); ok {
		pos.X = p.X
		pos.Y = p.Y
	}
	ecs.RemoveComponent[*components.TweenComponent](b.entityManager, entity)
}

// AnimateElement 在 d 时间内将元素从当前状态补间到 target
// d <= 0 时立即应用目标状态
func (b *BoardSurface) AnimateElement(h sequencer.Handle, target sequencer.Target, d time.Duration) {
	entity, ok := b.transient(h)
	if !ok {
		return
	}
	em := b.entityManager
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, entity)
	visual, _ := ecs.GetComponent[*components.EffectVisualComponent](em, entity)

	if d <= 0 {
		pos.X, pos.Y = target.Position.X, target.Position.Y
		visual.Scale = target.Scale
		visual.Alpha = target.Alpha
		ecs.RemoveComponent[*components.TweenComponent](em, entity)
		return
	}

	ecs.AddComponent(em, entity, &components.TweenComponent{
		FromX:     pos.X,
		FromY:     pos.Y,
		ToX:       target.Position.X,
		ToY:       target.Position.Y,
		FromScale: visual.Scale,
		ToScale:   target.Scale,
		FromAlpha: visual.Alpha,
		ToAlpha:   target.Alpha,
		Duration:  d.Seconds(),
	})
}

// RemoveElement 销毁临时元素；未知或已移除的句柄被忽略
func (b *BoardSurface) RemoveElement(h sequencer.Handle) {
	entity, ok := b.transient(h)
	if !ok {
		return
	}
	b.entityManager.DestroyEntity(entity)
}

// TransientCount 返回当前存活的临时效果元素数量
func (b *BoardSurface) TransientCount() int {
	return len(ecs.GetEntitiesWith1[*components.EffectVisualComponent](b.entityManager))
}

// transient 将句柄解析为存活的临时元素实体
func (b *BoardSurface) transient(h sequencer.Handle) (ecs.EntityID, bool) {
	entity := ecs.EntityID(h)
	if !b.entityManager.IsAlive(entity) {
		return 0, false
	}
	if !ecs.HasComponent[*components.EffectVisualComponent](b.entityManager, entity) {
		log.Printf("[BoardSurface] Warning: handle %d is not a transient element", h)
		return 0, false
	}
	return entity, true
}
