package components

import (
	"image/color"

	"github.com/gonewx/gridduel/pkg/types"
)

// EffectVisualComponent 临时效果元素的外观
//
// 由序列器创建、仅在一个效果播放期间存在。
// Size 是基础尺寸（圆为半径，矩形为宽度，图标为字号），
// 实际绘制尺寸 = Size * Scale。
type EffectVisualComponent struct {
	Shape types.EffectShape
	Color color.RGBA

	// Size 基础尺寸（像素）
	Size float64
	// Height 矩形高度（像素），仅 ShapeRect 使用；为 0 时绘制正方形
	Height float64

	// Scale 当前缩放（1.0 = 原始大小）
	Scale float64
	// Alpha 当前不透明度（0.0 - 1.0）
	Alpha float64

	Glyph rune
}
