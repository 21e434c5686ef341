package systems

import (
	"github.com/gonewx/gridduel/pkg/components"
	"github.com/gonewx/gridduel/pkg/ecs"
	"github.com/gonewx/gridduel/pkg/utils"
)

// TweenSystem 推进补间动画
//
// 位置按缓动曲线插值，缩放和透明度线性插值。
// 补间结束时写入目标状态并移除 TweenComponent。
type TweenSystem struct {
	entityManager *ecs.EntityManager
	easing        utils.EasingFunc
}

// NewTweenSystem 创建补间系统，easing 为 nil 时使用 EaseOutCubic
func NewTweenSystem(em *ecs.EntityManager, easing utils.EasingFunc) *TweenSystem {
	if easing == nil {
		easing = utils.EaseOutCubic
	}
	return &TweenSystem{
		entityManager: em,
		easing:        easing,
	}
}

// Update 推进所有补间
func (s *TweenSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.TweenComponent, *components.PositionComponent](s.entityManager)

	for _, id := range entities {
		tween, _ := ecs.GetComponent[*components.TweenComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		tween.Elapsed += deltaTime
		t := tween.Progress()
		eased := s.easing(t)

		pos.X = utils.Lerp(tween.FromX, tween.ToX, eased)
		pos.Y = utils.Lerp(tween.FromY, tween.ToY, eased)

		if visual, ok := ecs.GetComponent[*components.EffectVisualComponent](s.entityManager, id); ok {
			visual.Scale = utils.Lerp(tween.FromScale, tween.ToScale, t)
			visual.Alpha = utils.Clamp01(utils.Lerp(tween.FromAlpha, tween.ToAlpha, t))
		}

		if tween.Done() {
			ecs.RemoveComponent[*components.TweenComponent](s.entityManager, id)
		}
	}
}
