package utils

import (
	"log"
	"math"
)

// EasingFunc 缓动函数：输入进度 t ∈ [0, 1]，返回缓动后的进度
type EasingFunc func(t float64) float64

// EaseLinear 匀速
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 先快后慢，f(t) = 1 - (1-t)³
// 投射物和卡牌飞向目标时使用
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 两端慢、中间快
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutQuad f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EasingByName 按名称查找缓动函数，未知名称返回 EaseLinear 和 false
func EasingByName(name string) (EasingFunc, bool) {
	switch name {
	case "linear", "":
		return EaseLinear, true
	case "outCubic":
		return EaseOutCubic, true
	case "inOutCubic":
		return EaseInOutCubic, true
	case "outQuad":
		return EaseOutQuad, true
	default:
		return EaseLinear, false
	}
}

// ResolveEasing 按名称查找缓动函数，未知名称记录警告并使用 EaseOutCubic
func ResolveEasing(name string) EasingFunc {
	if fn, ok := EasingByName(name); ok {
		return fn
	}
	log.Printf("[Easing] Warning: unknown easing %q, using outCubic", name)
	return EaseOutCubic
}

// Clamp01 将 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
