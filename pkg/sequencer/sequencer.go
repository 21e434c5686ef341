// Package sequencer 实现对战视觉效果序列器
//
// 序列器持有一个 FIFO 动画请求队列和一个"正在播放"标志。
// 规则引擎通过 Enqueue 提交请求；序列器保证：
//   - 效果严格按入队顺序播放，不重排、不合并、无优先级
//   - 任意时刻最多只有一个效果处于激活状态
//   - 每个效果完整播放后才开始下一个
//   - 引用的可视元素缺失或类型未知时跳过该效果，队列继续推进
//
// 推进（advance）只由入队（空闲时）和效果完成触发，生产者无法取消或重排。
package sequencer

import (
	"log"
	"sync"

	"github.com/gonewx/gridduel/pkg/config"
	"github.com/gonewx/gridduel/pkg/types"
	"github.com/google/uuid"
)

// Sequencer 动画序列器
//
// 每局对战一个实例，由场景持有并传给触发动画的代码。
// 队列状态由一个互斥锁保护；调用 Surface、Scheduler 和 Listener 时不持有锁，
// 因此 Scheduler 既可以在主循环中回调，也可以在其他 goroutine 中回调。
type Sequencer struct {
	surface   Surface
	scheduler Scheduler
	timings   *config.EffectsConfig
	listener  Listener
	trace     bool
	playbacks map[types.AnimationKind]playbackFunc

	mu      sync.Mutex
	queue   []Request
	playing bool
	active  *Request
}

// Option 序列器构造选项
type Option func(*Sequencer)

// WithListener 设置事件观察者
func WithListener(l Listener) Option {
	return func(s *Sequencer) {
		if l != nil {
			s.listener = l
		}
	}
}

// WithTrace 启用入队/播放追踪日志
func WithTrace(enabled bool) Option {
	return func(s *Sequencer) {
		s.trace = enabled
	}
}

// New 创建序列器
//
// 参数：
//   - surface: 渲染层
//   - scheduler: 延时回调原语
//   - timings: 效果配置，nil 时使用 config.DefaultEffectsConfig()
//
// 新建的序列器处于空闲状态，队列为空。
func New(surface Surface, scheduler Scheduler, timings *config.EffectsConfig, opts ...Option) *Sequencer {
	if timings == nil {
		timings = config.DefaultEffectsConfig()
	}

	s := &Sequencer{
		surface:   surface,
		scheduler: scheduler,
		timings:   timings,
		listener:  NopListener{},
		playbacks: defaultPlaybacks(),
		queue:     make([]Request, 0, 16),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Enqueue 将动画请求追加到队尾
//
// 空闲时立即同步开始播放；否则请求排队等待。
// 无论队列多长都立即返回，不等待任何效果播放。
func (s *Sequencer) Enqueue(kind types.AnimationKind, params Params) {
	s.EnqueueRequest(Request{Kind: kind, Params: params})
}

// EnqueueRequest 与 Enqueue 相同，用于已构造好的请求（如脚本事件）
// ID 为空时自动分配
func (s *Sequencer) EnqueueRequest(req Request) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	s.mu.Lock()
	s.queue = append(s.queue, req)
	depth := len(s.queue)
	startNow := !s.playing
	var head Request
	if startNow {
		// playing 与 active 在同一临界区内设置
		head = s.popLocked()
	}
	s.mu.Unlock()

	if s.trace {
		log.Printf("[AnimationSequencer] Enqueue %s (%s), queued=%d", req.kindName(), req.ShortID(), depth)
	}
	s.listener.OnEnqueue(req)

	if startNow && !s.dispatch(head) {
		s.advance()
	}
}

// popLocked 取出队首请求并标记为激活，调用方必须持有 mu 且队列非空
func (s *Sequencer) popLocked() Request {
	req := s.queue[0]
	s.queue[0] = Request{}
	s.queue = s.queue[1:]
	active := req
	s.active = &active
	s.playing = true
	return req
}

// IsPlaying 返回是否有效果正在播放
func (s *Sequencer) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Pending 返回排队等待的请求数量（不含正在播放的）
func (s *Sequencer) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Active 返回正在播放的请求
func (s *Sequencer) Active() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return Request{}, false
	}
	return *s.active, true
}

// advance 取出队首请求并开始播放，队列为空时回到空闲状态
//
// 被跳过的请求在循环中连续处理，不会递归增长调用栈。
func (s *Sequencer) advance() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.playing = false
			s.active = nil
			s.mu.Unlock()

			if s.trace {
				log.Printf("[AnimationSequencer] Queue drained, idle")
			}
			s.listener.OnIdle()
			return
		}

		req := s.popLocked()
		s.mu.Unlock()

		if s.dispatch(req) {
			// 效果已开始，完成时再次调用 advance
			return
		}
	}
}

// dispatch 按类型分派到播放函数
// 返回 true 表示效果已开始播放；false 表示被跳过，调用方应继续推进
func (s *Sequencer) dispatch(req Request) bool {
	play, ok := s.playbacks[req.Kind]
	if !ok {
		log.Printf("[AnimationSequencer] Warning: unknown animation kind %q (%s), skipped", req.kindName(), req.ShortID())
		s.listener.OnSkip(req, SkipUnknownKind)
		return false
	}

	fx := newEffect(s, req)
	phases, resolved, faulted := fx.resolve(play)
	switch {
	case faulted:
		s.listener.OnSkip(req, SkipSurfaceFault)
		return false
	case !resolved:
		if s.trace {
			log.Printf("[AnimationSequencer] Skip %s (%s): visual element not found", req.kindName(), req.ShortID())
		}
		s.listener.OnSkip(req, SkipMissingElement)
		return false
	case len(phases) == 0:
		// 没有任何阶段的效果视为立即完成
		s.listener.OnStart(req)
		s.listener.OnComplete(req)
		return false
	}

	if s.trace {
		log.Printf("[AnimationSequencer] Play %s (%s), %d phase(s)", req.kindName(), req.ShortID(), len(phases))
	}
	s.listener.OnStart(req)
	fx.begin(phases)
	return true
}

// complete 效果完成后的收尾：通知观察者并推进队列
func (s *Sequencer) complete(req Request) {
	if s.trace {
		log.Printf("[AnimationSequencer] Complete %s (%s)", req.kindName(), req.ShortID())
	}
	s.listener.OnComplete(req)
	s.advance()
}
