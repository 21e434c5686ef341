package components

// PositionComponent 实体在屏幕上的中心坐标
type PositionComponent struct {
	X float64
	Y float64
}

// SizeComponent 实体的包围盒尺寸（以中心为锚点）
type SizeComponent struct {
	Width  float64
	Height float64
}
