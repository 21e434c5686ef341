package sequencer

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// ========== 测试替身 ==========

// fakeElement 记录一个临时元素的状态
type fakeElement struct {
	style    Style
	position Point
	target   *Target
	duration time.Duration
}

// fakeSurface 记录所有调用的内存渲染层
// 加锁以便与 RealTimeScheduler 一起使用
type fakeSurface struct {
	mu       sync.Mutex
	visuals  map[string]Element
	cells    map[[2]int]Element
	live     map[Handle]*fakeElement
	nextID   Handle
	created  int
	removed  int
	lookups  []string
	panicOn  string // 查找该 ID 时 panic
	maxAlive int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		visuals: make(map[string]Element),
		cells:   make(map[[2]int]Element),
		live:    make(map[Handle]*fakeElement),
	}
}

// addVisual 注册一个单位或手牌元素
func (f *fakeSurface) addVisual(id string, x, y float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visuals[id] = Element{Center: Point{X: x, Y: y}, Width: 60, Height: 70}
}

// addCell 注册一个格子元素
func (f *fakeSurface) addCell(row, col int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cells[[2]int{row, col}] = Element{
		Center: Point{X: float64(col)*80 + 40, Y: float64(row)*90 + 45},
		Width:  80,
		Height: 90,
	}
}

func (f *fakeSurface) FindVisualElement(entityID string) (Element, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panicOn != "" && entityID == f.panicOn {
		panic("render context lost")
	}
	f.lookups = append(f.lookups, entityID)
	el, ok := f.visuals[entityID]
	return el, ok
}

func (f *fakeSurface) FindCellElement(row, col int) (Element, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, fmt.Sprintf("cell(%d,%d)", row, col))
	el, ok := f.cells[[2]int{row, col}]
	return el, ok
}

func (f *fakeSurface) CreateTransientElement(style Style) Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.created++
	f.live[f.nextID] = &fakeElement{style: style}
	if len(f.live) > f.maxAlive {
		f.maxAlive = len(f.live)
	}
	return f.nextID
}

func (f *fakeSurface) PositionElement(h Handle, p Point) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if el, ok := f.live[h]; ok {
		el.position = p
	}
}

func (f *fakeSurface) AnimateElement(h Handle, target Target, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if el, ok := f.live[h]; ok {
		t := target
		el.target = &t
		el.duration = d
	}
}

func (f *fakeSurface) RemoveElement(h Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.live[h]; ok {
		delete(f.live, h)
		f.removed++
	}
}

// liveCount 当前存活的临时元素数量
func (f *fakeSurface) liveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

// liveElements 按句柄顺序返回存活元素
func (f *fakeSurface) liveElements() []*fakeElement {
	f.mu.Lock()
	defer f.mu.Unlock()
	handles := make([]Handle, 0, len(f.live))
	for h := range f.live {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	out := make([]*fakeElement, 0, len(handles))
	for _, h := range handles {
		out = append(out, f.live[h])
	}
	return out
}

// clockTimer 手动时钟上的一个待触发回调
type clockTimer struct {
	due time.Duration
	seq int
	fn  func()
}

// manualClock 手动推进的调度器，时间只在 Advance 时流逝
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []clockTimer
}

func (c *manualClock) After(d time.Duration, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.timers = append(c.timers, clockTimer{due: c.now + d, seq: c.seq, fn: fn})
}

// Advance 推进时间 d，按到期时间（同时到期按注册顺序）触发回调
// 回调中新注册且在 d 内到期的计时器也会被触发
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		idx := -1
		for i, t := range c.timers {
			if t.due > target {
				continue
			}
			if idx < 0 || t.due < c.timers[idx].due || (t.due == c.timers[idx].due && t.seq < c.timers[idx].seq) {
				idx = i
			}
		}
		if idx < 0 {
			c.now = target
			c.mu.Unlock()
			return
		}
		t := c.timers[idx]
		c.timers = append(c.timers[:idx], c.timers[idx+1:]...)
		c.now = t.due
		c.mu.Unlock()

		t.fn()
	}
}

// RunAll 触发所有计时器直到没有待触发回调
func (c *manualClock) RunAll() {
	for i := 0; i < 100000; i++ {
		c.mu.Lock()
		if len(c.timers) == 0 {
			c.mu.Unlock()
			return
		}
		next := c.timers[0].due
		for _, t := range c.timers {
			if t.due < next {
				next = t.due
			}
		}
		step := next - c.now
		c.mu.Unlock()
		c.Advance(step)
	}
	panic("manualClock.RunAll: timers never drained")
}

// Now 当前时钟时间
func (c *manualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// PendingTimers 待触发的计时器数量
func (c *manualClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// skipEvent 一次跳过记录
type skipEvent struct {
	req    Request
	reason SkipReason
}

// recorder 记录序列器事件并统计同时激活的效果数量
type recorder struct {
	mu        sync.Mutex
	enqueued  []Request
	started   []Request
	completed []Request
	skipped   []skipEvent
	idle      int
	active    int
	maxActive int
	startedAt []time.Duration
	clock     *manualClock

	// onComplete 可选的完成钩子（在锁外调用）
	onComplete func(Request)
}

func (r *recorder) OnEnqueue(req Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enqueued = append(r.enqueued, req)
}

func (r *recorder) OnStart(req Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, req)
	r.active++
	if r.active > r.maxActive {
		r.maxActive = r.active
	}
	if r.clock != nil {
		r.startedAt = append(r.startedAt, r.clock.Now())
	}
}

func (r *recorder) OnComplete(req Request) {
	r.mu.Lock()
	r.completed = append(r.completed, req)
	r.active--
	hook := r.onComplete
	r.mu.Unlock()

	if hook != nil {
		hook(req)
	}
}

func (r *recorder) OnSkip(req Request, reason SkipReason) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped = append(r.skipped, skipEvent{req: req, reason: reason})
}

func (r *recorder) OnIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idle++
}

// startedKinds 按开始顺序返回效果类型名称
func (r *recorder) startedKinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.started))
	for _, req := range r.started {
		out = append(out, req.Kind.String())
	}
	return out
}

func (r *recorder) completedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.completed)
}
