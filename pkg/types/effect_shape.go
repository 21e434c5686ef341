package types

import "strings"

// EffectShape 临时效果元素的几何形状
type EffectShape int

const (
	// ShapeCircle 实心圆（投射物、粒子）
	ShapeCircle EffectShape = iota
	// ShapeRing 空心圆环（战吼光环、命中冲击波）
	ShapeRing
	// ShapeRect 实心矩形（卡牌残影、落点闪光）
	ShapeRect
	// ShapeGlyph 单个字符图标（护盾）
	ShapeGlyph
)

// String 返回形状名称
func (s EffectShape) String() string {
	switch s {
	case ShapeRing:
		return "ring"
	case ShapeRect:
		return "rect"
	case ShapeGlyph:
		return "glyph"
	default:
		return "circle"
	}
}

// ParseEffectShape 解析形状名称，无法识别时返回 false
func ParseEffectShape(name string) (EffectShape, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "circle":
		return ShapeCircle, true
	case "ring":
		return ShapeRing, true
	case "rect":
		return ShapeRect, true
	case "glyph":
		return ShapeGlyph, true
	default:
		return ShapeCircle, false
	}
}

// MarshalText 实现 encoding.TextMarshaler
func (s EffectShape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (s *EffectShape) UnmarshalText(text []byte) error {
	shape, ok := ParseEffectShape(string(text))
	if !ok {
		return &UnknownShapeError{Name: string(text)}
	}
	*s = shape
	return nil
}

// UnknownShapeError 配置中出现了无法识别的形状名称
type UnknownShapeError struct {
	Name string
}

func (e *UnknownShapeError) Error() string {
	return "unknown effect shape: " + e.Name
}
