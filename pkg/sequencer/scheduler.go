package sequencer

import "time"

// RealTimeScheduler 基于 time.AfterFunc 的调度器
//
// 回调在独立的 goroutine 中执行，适用于没有游戏主循环的宿主（服务端回放、工具程序）。
// 搭配的 Surface 必须能在任意 goroutine 中安全调用。
// 游戏内应使用主循环驱动的 systems.ScheduleSystem。
type RealTimeScheduler struct{}

// After 在 d 之后调用 fn
func (RealTimeScheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}
