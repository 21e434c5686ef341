package sequencer

import (
	"image/color"
	"time"

	"github.com/gonewx/gridduel/pkg/types"
)

// Point 屏幕坐标
type Point struct {
	X, Y float64
}

// Element 可视元素的位置快照
// 由 Surface 的查找方法返回，Center 是元素的视觉中心
type Element struct {
	Center Point
	Width  float64
	Height float64
}

// Handle 临时效果元素的句柄，由 Surface 分配
type Handle uint64

// Style 临时效果元素的初始外观
type Style struct {
	Shape types.EffectShape
	Color color.RGBA
	// Size 圆/环为半径，矩形为宽度，图标为字号
	Size float64
	// Height 矩形高度，0 表示与 Size 相同
	Height float64
	// Scale 初始缩放
	Scale float64
	// Alpha 初始透明度（0.0 - 1.0）
	Alpha float64
	// Glyph 图标字符，仅 ShapeGlyph 使用
	Glyph rune
}

// Target 元素动画的终点状态
type Target struct {
	Position Point
	Scale    float64
	Alpha    float64
}

// Surface 渲染层能力接口
//
// 序列器只通过这些方法接触画面：查找单位/手牌/格子元素，
// 创建、放置、移动和移除临时效果元素。
// 动画完成不需要回调，序列器用相同时长的 Scheduler 计时器判断。
type Surface interface {
	// FindVisualElement 查找单位或手牌的可视元素
	FindVisualElement(entityID string) (Element, bool)

	// FindCellElement 查找棋盘格子的可视元素
	FindCellElement(row, col int) (Element, bool)

	// CreateTransientElement 创建临时效果元素
	CreateTransientElement(style Style) Handle

	// PositionElement 立即放置元素
	PositionElement(h Handle, p Point)

	// AnimateElement 在 d 时间内把元素过渡到 target 状态
	AnimateElement(h Handle, target Target, d time.Duration)

	// RemoveElement 移除临时效果元素
	RemoveElement(h Handle)
}

// Scheduler 延时回调原语
//
// After 必须立即返回；fn 在 d 之后被调用一次。
// 实现可以在游戏主循环中（ScheduleSystem）或其他 goroutine 中（RealTimeScheduler）调用 fn。
type Scheduler interface {
	After(d time.Duration, fn func())
}
