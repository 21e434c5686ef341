package scenes

import (
	"github.com/gonewx/gridduel/pkg/sequencer"
)

// playbackStats 统计播放结果，用于状态栏显示
// 序列器由 ScheduleSystem 驱动，所有回调都在主循环中，无需加锁
type playbackStats struct {
	sequencer.NopListener

	played  int
	skipped int
	current string
}

func (p *playbackStats) OnStart(req sequencer.Request) {
	p.current = req.Kind.String()
}

func (p *playbackStats) OnComplete(req sequencer.Request) {
	p.played++
	p.current = ""
}

func (p *playbackStats) OnSkip(req sequencer.Request, reason sequencer.SkipReason) {
	p.skipped++
}

func (p *playbackStats) OnIdle() {
	p.current = ""
}
