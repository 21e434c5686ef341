package sequencer

// SkipReason 效果被跳过的原因
type SkipReason int

const (
	// SkipMissingElement 引用的可视元素不存在（或负载类型与效果类型不匹配）
	SkipMissingElement SkipReason = iota
	// SkipUnknownKind 无法识别的效果类型
	SkipUnknownKind
	// SkipSurfaceFault 渲染层在播放过程中发生 panic
	SkipSurfaceFault
)

// String 返回跳过原因的名称
func (r SkipReason) String() string {
	switch r {
	case SkipMissingElement:
		return "missing_element"
	case SkipUnknownKind:
		return "unknown_kind"
	case SkipSurfaceFault:
		return "surface_fault"
	default:
		return "unknown"
	}
}

// Listener 序列器事件观察者
//
// 所有回调都在序列器的互斥区之外调用，回调中可以安全地再次调用 Enqueue。
// 回调只用于观察（调试覆盖层、测试、追踪），不影响播放顺序。
type Listener interface {
	// OnEnqueue 请求入队后调用
	OnEnqueue(req Request)
	// OnStart 效果开始播放（第一个阶段进入）时调用
	OnStart(req Request)
	// OnComplete 效果播放完毕、临时元素已移除后调用
	OnComplete(req Request)
	// OnSkip 效果被跳过时调用
	OnSkip(req Request, reason SkipReason)
	// OnIdle 队列清空、序列器回到空闲状态时调用
	OnIdle()
}

// NopListener 空实现，可嵌入以只覆盖需要的回调
type NopListener struct{}

func (NopListener) OnEnqueue(Request)          {}
func (NopListener) OnStart(Request)            {}
func (NopListener) OnComplete(Request)         {}
func (NopListener) OnSkip(Request, SkipReason) {}
func (NopListener) OnIdle()                    {}
