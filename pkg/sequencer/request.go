package sequencer

import (
	"github.com/gonewx/gridduel/pkg/config"
	"github.com/gonewx/gridduel/pkg/types"
)

// Params 动画请求的负载
//
// 每种效果类型对应一个负载结构，序列器只读取播放所需的字段，
// 不做额外的形状校验：类型不匹配的负载按"元素缺失"处理。
type Params interface {
	animationParams()
}

// AttackParams 攻击：攻击方 → 防守方
type AttackParams struct {
	AttackerID string
	DefenderID string
}

// DeathTriggerParams 亡语：阵亡单位 → 受影响单位
type DeathTriggerParams struct {
	SourceID string
	TargetID string
}

// CardPlayParams 打出卡牌：手牌 → 棋盘格子
type CardPlayParams struct {
	CardID string
	Row    int
	Col    int
}

// UnitParams 以单个单位为中心的效果（战吼、击杀、守护）
type UnitParams struct {
	UnitID string
}

// UnknownParams 无法识别的请求，保留原始类型名用于日志
type UnknownParams struct {
	Name string
}

func (AttackParams) animationParams()       {}
func (DeathTriggerParams) animationParams() {}
func (CardPlayParams) animationParams()     {}
func (UnitParams) animationParams()         {}
func (UnknownParams) animationParams()      {}

// Request 动画请求
type Request struct {
	// ID 请求的唯一标识（入队时分配），仅用于追踪日志
	ID     string
	Kind   types.AnimationKind
	Params Params
}

// ShortID 返回 ID 的前 8 位，用于日志
func (r Request) ShortID() string {
	if len(r.ID) > 8 {
		return r.ID[:8]
	}
	return r.ID
}

// kindName 返回用于日志的类型名，未知类型优先使用原始名称
func (r Request) kindName() string {
	if !r.Kind.IsKnown() {
		if p, ok := r.Params.(UnknownParams); ok && p.Name != "" {
			return p.Name
		}
	}
	return r.Kind.String()
}

// 以下函数按负载类型取值，同时接受值和非 nil 指针

func attackPayload(p Params) (AttackParams, bool) {
	switch v := p.(type) {
	case AttackParams:
		return v, true
	case *AttackParams:
		if v != nil {
			return *v, true
		}
	}
	return AttackParams{}, false
}

func deathTriggerPayload(p Params) (DeathTriggerParams, bool) {
	switch v := p.(type) {
	case DeathTriggerParams:
		return v, true
	case *DeathTriggerParams:
		if v != nil {
			return *v, true
		}
	}
	return DeathTriggerParams{}, false
}

func cardPlayPayload(p Params) (CardPlayParams, bool) {
	switch v := p.(type) {
	case CardPlayParams:
		return v, true
	case *CardPlayParams:
		if v != nil {
			return *v, true
		}
	}
	return CardPlayParams{}, false
}

func unitPayload(p Params) (UnitParams, bool) {
	switch v := p.(type) {
	case UnitParams:
		return v, true
	case *UnitParams:
		if v != nil {
			return *v, true
		}
	}
	return UnitParams{}, false
}

// StepRequest 将脚本事件转换为动画请求
func StepRequest(step config.ScriptStep) Request {
	kind := step.AnimationKind()

	switch kind {
	case types.AnimationAttack:
		return Request{Kind: kind, Params: AttackParams{AttackerID: step.Source, DefenderID: step.Target}}
	case types.AnimationDeathTrigger:
		return Request{Kind: kind, Params: DeathTriggerParams{SourceID: step.Source, TargetID: step.Target}}
	case types.AnimationCardPlay:
		return Request{Kind: kind, Params: CardPlayParams{CardID: step.Card, Row: step.Row, Col: step.Col}}
	case types.AnimationRallyShout, types.AnimationDeathBlow, types.AnimationGuard:
		return Request{Kind: kind, Params: UnitParams{UnitID: step.Source}}
	default:
		return Request{Kind: types.AnimationUnknown, Params: UnknownParams{Name: step.Kind}}
	}
}
