package systems

import (
	"sync"
	"time"
)

// scheduledCall 一个待触发的延时回调
type scheduledCall struct {
	due time.Duration
	seq uint64
	fn  func()
}

// ScheduleSystem 帧驱动的延时回调调度器
//
// 实现 sequencer.Scheduler：After 以内部时钟记录到期时间，
// Update(dt) 推进时钟并在主循环中触发到期回调，
// 因此回调中可以安全地操作 ECS。
//
// 触发顺序：按到期时间，同时到期按注册顺序。
// 回调中新注册且在本帧内到期的回调也会在同一次 Update 中触发，
// 回调内调用 After 时以该回调的到期时间为起点计时。
type ScheduleSystem struct {
	mu      sync.Mutex
	now     time.Duration
	nextSeq uint64
	pending []scheduledCall
}

// NewScheduleSystem 创建调度系统
func NewScheduleSystem() *ScheduleSystem {
	return &ScheduleSystem{
		pending: make([]scheduledCall, 0, 16),
	}
}

// After 在 d 之后触发 fn；d <= 0 时在下一次 Update 中触发
func (s *ScheduleSystem) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	s.pending = append(s.pending, scheduledCall{due: s.now + d, seq: s.nextSeq, fn: fn})
}

// Update 推进 deltaTime 秒并触发到期回调
func (s *ScheduleSystem) Update(deltaTime float64) {
	if deltaTime < 0 {
		deltaTime = 0
	}

	s.mu.Lock()
	target := s.now + time.Duration(deltaTime*float64(time.Second))
	s.mu.Unlock()

	for {
		s.mu.Lock()
		idx := s.nextDue(target)
		if idx < 0 {
			s.now = target
			s.mu.Unlock()
			return
		}
		call := s.pending[idx]
		s.pending = append(s.pending[:idx], s.pending[idx+1:]...)
		s.now = call.due
		s.mu.Unlock()

		call.fn()
	}
}

// nextDue 返回最早到期（且不晚于 target）的回调下标，没有时返回 -1
// 调用方持有锁
func (s *ScheduleSystem) nextDue(target time.Duration) int {
	idx := -1
	for i, c := range s.pending {
		if c.due > target {
			continue
		}
		if idx < 0 || c.due < s.pending[idx].due || (c.due == s.pending[idx].due && c.seq < s.pending[idx].seq) {
			idx = i
		}
	}
	return idx
}

// Now 返回调度器内部时钟
func (s *ScheduleSystem) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending 返回待触发回调数量
func (s *ScheduleSystem) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
