package sequencer

import (
	"log"
	"math"
	"time"

	"github.com/gonewx/gridduel/pkg/config"
	"github.com/gonewx/gridduel/pkg/types"
)

// phase 效果的一个计时阶段
// enter 在阶段开始时创建/移动元素，duration 之后进入下一阶段
type phase struct {
	duration time.Duration
	enter    func(fx *effect)
}

// playbackFunc 解析请求引用的元素并构造播放阶段
// 任一必需元素缺失时返回 false，效果被跳过
type playbackFunc func(fx *effect) ([]phase, bool)

// defaultPlaybacks 效果类型 → 播放函数
func defaultPlaybacks() map[types.AnimationKind]playbackFunc {
	return map[types.AnimationKind]playbackFunc{
		types.AnimationAttack:       playAttack,
		types.AnimationDeathTrigger: playDeathTrigger,
		types.AnimationCardPlay:     playCardPlay,
		types.AnimationRallyShout:   playRallyShout,
		types.AnimationDeathBlow:    playDeathBlow,
		types.AnimationGuard:        playGuard,
	}
}

// impactGrowScale 命中元素在命中阶段结束时的缩放
const impactGrowScale = 2.0

// effect 一个激活中的效果（每个请求一个实例）
//
// 阶段状态机：begin → step(阶段1) → ... → step(阶段N) → finish。
// handles 记录本效果创建的所有临时元素，finish 时统一移除。
type effect struct {
	seq     *Sequencer
	req     Request
	phases  []phase
	next    int
	handles []Handle
}

func newEffect(s *Sequencer, req Request) *effect {
	return &effect{seq: s, req: req}
}

// resolve 调用播放函数；渲染层 panic 时 faulted 为 true
func (fx *effect) resolve(play playbackFunc) (phases []phase, resolved bool, faulted bool) {
	ok := fx.guard(func() {
		phases, resolved = play(fx)
	})
	if !ok {
		return nil, false, true
	}
	return phases, resolved, false
}

// begin 进入第一个阶段
func (fx *effect) begin(phases []phase) {
	fx.phases = phases
	fx.next = 0
	fx.step()
}

// step 进入下一个阶段；所有阶段结束后收尾
func (fx *effect) step() {
	if fx.next >= len(fx.phases) {
		fx.finish()
		return
	}

	ph := fx.phases[fx.next]
	fx.next++

	if !fx.guard(func() { ph.enter(fx) }) {
		fx.abort()
		return
	}

	fx.seq.scheduler.After(ph.duration, fx.step)
}

// finish 移除所有临时元素并推进队列
func (fx *effect) finish() {
	fx.removeAll()
	fx.seq.complete(fx.req)
}

// abort 播放途中渲染层出错：清理已创建的元素后跳过
func (fx *effect) abort() {
	fx.removeAll()
	fx.seq.listener.OnSkip(fx.req, SkipSurfaceFault)
	fx.seq.advance()
}

func (fx *effect) removeAll() {
	for _, h := range fx.handles {
		fx.guard(func() { fx.seq.surface.RemoveElement(h) })
	}
	fx.handles = nil
}

// guard 执行 fn，捕获渲染层 panic，保证队列不会卡在播放状态
func (fx *effect) guard(fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[AnimationSequencer] Warning: surface fault during %s (%s): %v",
				fx.req.kindName(), fx.req.ShortID(), r)
			ok = false
		}
	}()
	fn()
	return true
}

// spawn 创建临时元素并放置到 at
func (fx *effect) spawn(style Style, at Point) Handle {
	surface := fx.seq.surface
	h := surface.CreateTransientElement(style)
	fx.handles = append(fx.handles, h)
	surface.PositionElement(h, at)
	return h
}

func (fx *effect) animate(h Handle, target Target, d time.Duration) {
	fx.seq.surface.AnimateElement(h, target, d)
}

// find 查找单位或手牌元素
func (fx *effect) find(entityID string) (Element, bool) {
	if entityID == "" {
		return Element{}, false
	}
	return fx.seq.surface.FindVisualElement(entityID)
}

// wrongPayload 负载类型与效果类型不匹配，按元素缺失处理
func (fx *effect) wrongPayload() ([]phase, bool) {
	log.Printf("[AnimationSequencer] Warning: %s request (%s) carries %T params, skipped",
		fx.req.kindName(), fx.req.ShortID(), fx.req.Params)
	return nil, false
}

// styleFor 根据配置和参照元素构造初始外观
// 矩形保持参照元素的宽高比
func styleFor(sc config.EffectStyleConfig, ref Element) Style {
	style := Style{
		Shape: sc.Shape,
		Color: sc.Color.RGBA(),
		Size:  sc.Size,
		Scale: 1,
		Alpha: 1,
		Glyph: sc.GlyphRune(),
	}
	if sc.Shape == types.ShapeRect && ref.Width > 0 {
		style.Height = sc.Size * ref.Height / ref.Width
	}
	return style
}

// travelImpact 两阶段效果：主元素从 from 飞向 to，然后在 to 显示命中元素
func travelImpact(cfg config.EffectConfig, from, to Element) []phase {
	var projectile Handle
	travel := cfg.Travel()
	impact := cfg.ImpactDuration()

	return []phase{
		{
			duration: travel,
			enter: func(fx *effect) {
				projectile = fx.spawn(styleFor(cfg.Primary, from), from.Center)
				fx.animate(projectile, Target{Position: to.Center, Scale: 1, Alpha: 1}, travel)
			},
		},
		{
			duration: impact,
			enter: func(fx *effect) {
				fx.animate(projectile, Target{Position: to.Center, Scale: 1, Alpha: 0}, impact)
				hit := fx.spawn(styleFor(cfg.Impact, to), to.Center)
				fx.animate(hit, Target{Position: to.Center, Scale: impactGrowScale, Alpha: 0}, impact)
			},
		},
	}
}

func playAttack(fx *effect) ([]phase, bool) {
	p, ok := attackPayload(fx.req.Params)
	if !ok {
		return fx.wrongPayload()
	}
	attacker, ok := fx.find(p.AttackerID)
	if !ok {
		return nil, false
	}
	defender, ok := fx.find(p.DefenderID)
	if !ok {
		return nil, false
	}
	return travelImpact(fx.seq.timings.Attack, attacker, defender), true
}

func playDeathTrigger(fx *effect) ([]phase, bool) {
	p, ok := deathTriggerPayload(fx.req.Params)
	if !ok {
		return fx.wrongPayload()
	}
	source, ok := fx.find(p.SourceID)
	if !ok {
		return nil, false
	}
	target, ok := fx.find(p.TargetID)
	if !ok {
		return nil, false
	}
	return travelImpact(fx.seq.timings.DeathTrigger, source, target), true
}

func playCardPlay(fx *effect) ([]phase, bool) {
	p, ok := cardPlayPayload(fx.req.Params)
	if !ok {
		return fx.wrongPayload()
	}
	card, ok := fx.find(p.CardID)
	if !ok {
		return nil, false
	}
	cell, ok := fx.seq.surface.FindCellElement(p.Row, p.Col)
	if !ok {
		return nil, false
	}
	return travelImpact(fx.seq.timings.CardPlay, card, cell), true
}

// playRallyShout 多重光环从单位中心向外扩散并淡出
func playRallyShout(fx *effect) ([]phase, bool) {
	p, ok := unitPayload(fx.req.Params)
	if !ok {
		return fx.wrongPayload()
	}
	unit, ok := fx.find(p.UnitID)
	if !ok {
		return nil, false
	}

	cfg := fx.seq.timings.RallyShout
	d := cfg.Duration()
	return []phase{{
		duration: d,
		enter: func(fx *effect) {
			style := styleFor(cfg.Primary, unit)
			base := math.Max(style.Size, 1)
			for i := 0; i < cfg.Count; i++ {
				ring := fx.spawn(style, unit.Center)
				reach := float64(i+1) / float64(cfg.Count)
				fx.animate(ring, Target{
					Position: unit.Center,
					Scale:    1 + reach*cfg.Radius/base,
					Alpha:    0,
				}, d)
			}
		},
	}}, true
}

// playDeathBlow 粒子从单位中心向四周均匀放射并淡出
func playDeathBlow(fx *effect) ([]phase, bool) {
	p, ok := unitPayload(fx.req.Params)
	if !ok {
		return fx.wrongPayload()
	}
	unit, ok := fx.find(p.UnitID)
	if !ok {
		return nil, false
	}

	cfg := fx.seq.timings.DeathBlow
	d := cfg.Duration()
	return []phase{{
		duration: d,
		enter: func(fx *effect) {
			style := styleFor(cfg.Primary, unit)
			for i := 0; i < cfg.Count; i++ {
				angle := 2 * math.Pi * float64(i) / float64(cfg.Count)
				particle := fx.spawn(style, unit.Center)
				fx.animate(particle, Target{
					Position: Point{
						X: unit.Center.X + cfg.Radius*math.Cos(angle),
						Y: unit.Center.Y + cfg.Radius*math.Sin(angle),
					},
					Scale: 1,
					Alpha: 0,
				}, d)
			}
		},
	}}, true
}

// playGuard 单位上方的静态护盾图标
func playGuard(fx *effect) ([]phase, bool) {
	p, ok := unitPayload(fx.req.Params)
	if !ok {
		return fx.wrongPayload()
	}
	unit, ok := fx.find(p.UnitID)
	if !ok {
		return nil, false
	}

	cfg := fx.seq.timings.Guard
	return []phase{{
		duration: cfg.Duration(),
		enter: func(fx *effect) {
			fx.spawn(styleFor(cfg.Primary, unit), unit.Center)
		},
	}}, true
}
