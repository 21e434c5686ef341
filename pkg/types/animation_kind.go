// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "strings"

// AnimationKind 定义动画请求的效果类型
//
// 取值是一个封闭集合；AnimationUnknown 作为零值保留，
// 用于表示脚本或规则引擎传入的无法识别的类型。
type AnimationKind int

const (
	// AnimationUnknown 未知效果类型
	AnimationUnknown AnimationKind = iota
	// AnimationAttack 单位攻击：攻击方 → 防守方
	AnimationAttack
	// AnimationDeathTrigger 亡语触发：阵亡单位 → 受影响单位
	AnimationDeathTrigger
	// AnimationCardPlay 打出卡牌：手牌 → 棋盘格子
	AnimationCardPlay
	// AnimationRallyShout 战吼：从单位向外扩散的光环
	AnimationRallyShout
	// AnimationDeathBlow 击杀：单位位置的放射粒子
	AnimationDeathBlow
	// AnimationGuard 守护/嘲讽：单位上方的护盾图标
	AnimationGuard
)

// AllAnimationKinds 返回所有可识别的效果类型（不含 AnimationUnknown）
func AllAnimationKinds() []AnimationKind {
	return []AnimationKind{
		AnimationAttack,
		AnimationDeathTrigger,
		AnimationCardPlay,
		AnimationRallyShout,
		AnimationDeathBlow,
		AnimationGuard,
	}
}

// String 返回效果类型的字符串表示（与脚本/配置文件中的名称一致）
func (k AnimationKind) String() string {
	switch k {
	case AnimationAttack:
		return "attack"
	case AnimationDeathTrigger:
		return "death_trigger"
	case AnimationCardPlay:
		return "card_play"
	case AnimationRallyShout:
		return "rally_shout"
	case AnimationDeathBlow:
		return "death_blow"
	case AnimationGuard:
		return "guard"
	default:
		return "unknown"
	}
}

// IsKnown 判断是否为可识别的效果类型
func (k AnimationKind) IsKnown() bool {
	return k >= AnimationAttack && k <= AnimationGuard
}

// ParseAnimationKind 将名称解析为效果类型
//
// 名称不区分大小写，"-" 与 "_" 等价，"taunt" 是 "guard" 的别名。
// 无法识别的名称返回 AnimationUnknown（不报错，由调用方决定如何处理）。
func ParseAnimationKind(name string) AnimationKind {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, "-", "_")

	switch normalized {
	case "attack":
		return AnimationAttack
	case "death_trigger", "deathtrigger":
		return AnimationDeathTrigger
	case "card_play", "cardplay":
		return AnimationCardPlay
	case "rally_shout", "rallyshout", "shout":
		return AnimationRallyShout
	case "death_blow", "deathblow":
		return AnimationDeathBlow
	case "guard", "taunt":
		return AnimationGuard
	default:
		return AnimationUnknown
	}
}

// MarshalText 实现 encoding.TextMarshaler，便于 YAML/JSON 序列化
func (k AnimationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
// 无法识别的名称被解析为 AnimationUnknown 而不是返回错误
func (k *AnimationKind) UnmarshalText(text []byte) error {
	*k = ParseAnimationKind(string(text))
	return nil
}
