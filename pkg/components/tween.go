package components

// TweenComponent 补间动画
// 在 Duration 秒内将实体从起始状态插值到目标状态（位置、缩放、透明度）
type TweenComponent struct {
	FromX, FromY float64
	ToX, ToY     float64

	FromScale, ToScale float64
	FromAlpha, ToAlpha float64

	// Duration 动画时长（秒）
	Duration float64
	// Elapsed 已经过的时间（秒）
	Elapsed float64
}

// Done 补间是否已经结束
func (t *TweenComponent) Done() bool {
	return t.Elapsed >= t.Duration
}

// Progress 返回 [0, 1] 范围内的线性进度
func (t *TweenComponent) Progress() float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := t.Elapsed / t.Duration
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}
