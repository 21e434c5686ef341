package sequencer

import (
	"bytes"
	"log"
	"reflect"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gonewx/gridduel/pkg/config"
	"github.com/gonewx/gridduel/pkg/types"
)

// testRig 一个完整的测试环境：序列器 + 假渲染层 + 手动时钟 + 事件记录
type testRig struct {
	seq     *Sequencer
	surface *fakeSurface
	clock   *manualClock
	rec     *recorder
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()

	surface := newFakeSurface()
	surface.addVisual("knight", 100, 300)
	surface.addVisual("orc", 100, 100)
	surface.addVisual("cleric", 300, 300)
	surface.addVisual("fireball", 200, 500)
	for row := 0; row < 4; row++ {
		for col := 0; col < 6; col++ {
			surface.addCell(row, col)
		}
	}

	clock := &manualClock{}
	rec := &recorder{clock: clock}
	seq := New(surface, clock, config.DefaultEffectsConfig(), WithListener(rec))

	return &testRig{seq: seq, surface: surface, clock: clock, rec: rec}
}

var (
	attackReq   = AttackParams{AttackerID: "orc", DefenderID: "knight"}
	cardPlayReq = CardPlayParams{CardID: "fireball", Row: 1, Col: 2}
	guardReq    = UnitParams{UnitID: "knight"}
)

// TestSequencerStartsIdle 新建的序列器处于空闲状态
func TestSequencerStartsIdle(t *testing.T) {
	rig := newTestRig(t)

	if rig.seq.IsPlaying() {
		t.Error("new sequencer should be idle")
	}
	if rig.seq.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", rig.seq.Pending())
	}
	if _, ok := rig.seq.Active(); ok {
		t.Error("new sequencer should have no active request")
	}
}

// TestFIFOOrder 效果严格按入队顺序播放
func TestFIFOOrder(t *testing.T) {
	rig := newTestRig(t)

	rig.seq.Enqueue(types.AnimationAttack, attackReq)
	rig.seq.Enqueue(types.AnimationCardPlay, cardPlayReq)
	rig.seq.Enqueue(types.AnimationGuard, guardReq)

	// 第一个效果同步开始，其余排队
	if got := rig.rec.startedKinds(); !reflect.DeepEqual(got, []string{"attack"}) {
		t.Fatalf("after enqueue, started = %v, want [attack]", got)
	}
	if rig.seq.Pending() != 2 {
		t.Errorf("Pending() = %d, want 2", rig.seq.Pending())
	}

	rig.clock.RunAll()

	want := []string{"attack", "card_play", "guard"}
	if got := rig.rec.startedKinds(); !reflect.DeepEqual(got, want) {
		t.Errorf("playback order = %v, want %v", got, want)
	}
	if rig.rec.completedCount() != 3 {
		t.Errorf("completed = %d, want 3", rig.rec.completedCount())
	}
}

// TestFIFOOrderEnqueueWhilePlaying 播放途中入队的请求排在已有请求之后
func TestFIFOOrderEnqueueWhilePlaying(t *testing.T) {
	rig := newTestRig(t)

	rig.seq.Enqueue(types.AnimationAttack, attackReq)
	rig.clock.Advance(100 * time.Millisecond)
	rig.seq.Enqueue(types.AnimationDeathBlow, UnitParams{UnitID: "orc"})
	rig.clock.Advance(100 * time.Millisecond)
	rig.seq.Enqueue(types.AnimationRallyShout, UnitParams{UnitID: "cleric"})

	rig.clock.RunAll()

	want := []string{"attack", "death_blow", "rally_shout"}
	if got := rig.rec.startedKinds(); !reflect.DeepEqual(got, want) {
		t.Errorf("playback order = %v, want %v", got, want)
	}
}

// TestSingleFlight 任意时刻最多一个效果处于激活状态
// 包括在完成回调中继续入队的情况
func TestSingleFlight(t *testing.T) {
	rig := newTestRig(t)

	extra := 0
	rig.rec.onComplete = func(req Request) {
		if extra < 5 {
			extra++
			rig.seq.Enqueue(types.AnimationGuard, guardReq)
		}
	}

	kinds := []struct {
		kind   types.AnimationKind
		params Params
	}{
		{types.AnimationAttack, attackReq},
		{types.AnimationDeathTrigger, DeathTriggerParams{SourceID: "orc", TargetID: "cleric"}},
		{types.AnimationCardPlay, cardPlayReq},
		{types.AnimationRallyShout, UnitParams{UnitID: "cleric"}},
		{types.AnimationDeathBlow, UnitParams{UnitID: "orc"}},
		{types.AnimationGuard, guardReq},
	}
	for _, k := range kinds {
		rig.seq.Enqueue(k.kind, k.params)
		rig.clock.Advance(50 * time.Millisecond)
	}

	rig.clock.RunAll()

	if rig.rec.maxActive != 1 {
		t.Errorf("max concurrently active effects = %d, want 1", rig.rec.maxActive)
	}
	if got := rig.rec.completedCount(); got != len(kinds)+5 {
		t.Errorf("completed = %d, want %d", got, len(kinds)+5)
	}

	// 每个效果开始时，前一个效果的全部时长都已过去
	startedAt := rig.rec.startedAt
	for i := 1; i < len(startedAt); i++ {
		prev := rig.rec.started[i-1]
		cfg, _ := config.DefaultEffectsConfig().For(prev.Kind)
		if gap := startedAt[i] - startedAt[i-1]; gap < cfg.Total() {
			t.Errorf("effect %d (%v) started %v after previous %v, which needs %v",
				i, rig.rec.started[i].Kind, gap, prev.Kind, cfg.Total())
		}
	}
}

// TestIdleAfterCompletion 最后一个效果完成后回到空闲状态
func TestIdleAfterCompletion(t *testing.T) {
	rig := newTestRig(t)

	rig.seq.Enqueue(types.AnimationAttack, attackReq)
	if !rig.seq.IsPlaying() {
		t.Fatal("sequencer should be playing right after enqueue")
	}
	active, ok := rig.seq.Active()
	if !ok || active.Kind != types.AnimationAttack {
		t.Fatalf("Active() = %v, %v; want attack", active, ok)
	}

	// 攻击总时长 500ms：499ms 时仍在播放
	rig.clock.Advance(499 * time.Millisecond)
	if !rig.seq.IsPlaying() {
		t.Error("sequencer should still be playing at 499ms")
	}

	rig.clock.Advance(1 * time.Millisecond)
	if rig.seq.IsPlaying() {
		t.Error("sequencer should be idle after the effect completes")
	}
	if rig.seq.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", rig.seq.Pending())
	}
	if rig.rec.idle != 1 {
		t.Errorf("OnIdle called %d times, want 1", rig.rec.idle)
	}
	if rig.clock.PendingTimers() != 0 {
		t.Errorf("%d timers left behind", rig.clock.PendingTimers())
	}
}

// TestMissingElementResilience 引用的元素缺失时跳过，后续效果照常播放
func TestMissingElementResilience(t *testing.T) {
	rig := newTestRig(t)

	rig.seq.Enqueue(types.AnimationAttack, AttackParams{AttackerID: "wraith", DefenderID: "knight"})
	rig.seq.Enqueue(types.AnimationCardPlay, cardPlayReq)

	if got := rig.rec.startedKinds(); !reflect.DeepEqual(got, []string{"card_play"}) {
		t.Fatalf("started = %v, want [card_play]", got)
	}
	if len(rig.rec.skipped) != 1 || rig.rec.skipped[0].reason != SkipMissingElement {
		t.Fatalf("skipped = %+v, want one missing_element", rig.rec.skipped)
	}

	rig.clock.RunAll()

	if rig.seq.IsPlaying() || rig.seq.Pending() != 0 {
		t.Error("queue should drain after the valid card play")
	}
	if rig.rec.completedCount() != 1 {
		t.Errorf("completed = %d, want 1", rig.rec.completedCount())
	}
	// 跳过的效果不创建任何临时元素；卡牌效果创建 2 个
	if rig.surface.created != 2 {
		t.Errorf("transient elements created = %d, want 2", rig.surface.created)
	}
}

// TestMissingCellResilience 落点格子不存在时跳过
func TestMissingCellResilience(t *testing.T) {
	rig := newTestRig(t)

	rig.seq.Enqueue(types.AnimationCardPlay, CardPlayParams{CardID: "fireball", Row: 9, Col: 9})

	if rig.seq.IsPlaying() {
		t.Error("sequencer should be idle after skipping the only request")
	}
	if rig.rec.idle != 1 {
		t.Errorf("OnIdle called %d times, want 1", rig.rec.idle)
	}
}

// TestMissingDefenderSkips 防守方缺失时跳过，只查找请求引用的元素
func TestMissingDefenderSkips(t *testing.T) {
	rig := newTestRig(t)

	rig.seq.Enqueue(types.AnimationAttack, AttackParams{AttackerID: "orc", DefenderID: "ghost"})

	if len(rig.rec.skipped) != 1 {
		t.Fatalf("skipped = %d, want 1", len(rig.rec.skipped))
	}
	want := []string{"orc", "ghost"}
	if !reflect.DeepEqual(rig.surface.lookups, want) {
		t.Errorf("lookups = %v, want %v", rig.surface.lookups, want)
	}
}

// TestUnknownKindResilience 未知类型记录警告并跳过，不阻塞后续请求
func TestUnknownKindResilience(t *testing.T) {
	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	rig := newTestRig(t)

	rig.seq.EnqueueRequest(Request{Kind: types.AnimationUnknown, Params: UnknownParams{Name: "bogus"}})
	rig.seq.Enqueue(types.AnimationKind(42), guardReq)
	rig.seq.Enqueue(types.AnimationGuard, guardReq)

	rig.clock.RunAll()

	if got := rig.rec.startedKinds(); !reflect.DeepEqual(got, []string{"guard"}) {
		t.Errorf("started = %v, want [guard]", got)
	}
	if len(rig.rec.skipped) != 2 {
		t.Fatalf("skipped = %d, want 2", len(rig.rec.skipped))
	}
	for _, s := range rig.rec.skipped {
		if s.reason != SkipUnknownKind {
			t.Errorf("skip reason = %v, want unknown_kind", s.reason)
		}
	}
	if rig.seq.IsPlaying() {
		t.Error("sequencer should be idle")
	}

	out := logs.String()
	if !strings.Contains(out, `[AnimationSequencer] Warning: unknown animation kind "bogus"`) {
		t.Errorf("missing warning for bogus kind, log:\n%s", out)
	}
	if strings.Count(out, "Warning: unknown animation kind") != 2 {
		t.Errorf("want 2 unknown-kind warnings, log:\n%s", out)
	}
}

// TestWrongPayloadSkips 负载类型与效果类型不匹配时按元素缺失处理
func TestWrongPayloadSkips(t *testing.T) {
	rig := newTestRig(t)

	rig.seq.Enqueue(types.AnimationAttack, cardPlayReq)
	rig.seq.Enqueue(types.AnimationCardPlay, nil)
	rig.seq.Enqueue(types.AnimationGuard, &guardReq)

	rig.clock.RunAll()

	if len(rig.rec.skipped) != 2 {
		t.Fatalf("skipped = %d, want 2", len(rig.rec.skipped))
	}
	for _, s := range rig.rec.skipped {
		if s.reason != SkipMissingElement {
			t.Errorf("skip reason = %v, want missing_element", s.reason)
		}
	}
	// 指针负载被接受
	if got := rig.rec.startedKinds(); !reflect.DeepEqual(got, []string{"guard"}) {
		t.Errorf("started = %v, want [guard]", got)
	}
}

// TestNonBlockingEnqueue 大量入队立即返回，不等待任何效果时长
func TestNonBlockingEnqueue(t *testing.T) {
	rig := newTestRig(t)

	begin := time.Now()
	for i := 0; i < 50; i++ {
		rig.seq.Enqueue(types.AnimationAttack, attackReq)
	}
	elapsed := time.Since(begin)

	// 时钟没有推进：入队过程中没有任何效果完成
	if rig.clock.Now() != 0 {
		t.Errorf("clock advanced to %v during enqueue", rig.clock.Now())
	}
	if rig.rec.completedCount() != 0 {
		t.Errorf("completed = %d during enqueue, want 0", rig.rec.completedCount())
	}
	if rig.seq.Pending() != 49 {
		t.Errorf("Pending() = %d, want 49", rig.seq.Pending())
	}
	// 50 个攻击共 25 秒；入队必须远快于此
	if elapsed > time.Second {
		t.Errorf("enqueueing 50 requests took %v", elapsed)
	}

	rig.clock.RunAll()
	if rig.rec.completedCount() != 50 {
		t.Errorf("completed = %d, want 50", rig.rec.completedCount())
	}
	if rig.clock.Now() != 50*500*time.Millisecond {
		t.Errorf("total playback time = %v, want 25s", rig.clock.Now())
	}
}

// TestManySkipsDoNotRecurse 大量连续跳过的请求在循环中处理
func TestManySkipsDoNotRecurse(t *testing.T) {
	rig := newTestRig(t)

	rig.seq.Enqueue(types.AnimationGuard, guardReq)
	for i := 0; i < 10000; i++ {
		rig.seq.Enqueue(types.AnimationAttack, AttackParams{AttackerID: "nobody", DefenderID: "knight"})
	}
	rig.seq.Enqueue(types.AnimationGuard, guardReq)

	rig.clock.RunAll()

	if got := len(rig.rec.skipped); got != 10000 {
		t.Errorf("skipped = %d, want 10000", got)
	}
	if got := rig.rec.completedCount(); got != 2 {
		t.Errorf("completed = %d, want 2", got)
	}
	if rig.seq.IsPlaying() {
		t.Error("sequencer should be idle")
	}
}

// TestRequestIDAssigned 入队时分配唯一ID，已有ID保持不变
func TestRequestIDAssigned(t *testing.T) {
	rig := newTestRig(t)

	rig.seq.Enqueue(types.AnimationGuard, guardReq)
	rig.seq.Enqueue(types.AnimationGuard, guardReq)
	rig.seq.EnqueueRequest(Request{ID: "fixed-id", Kind: types.AnimationGuard, Params: guardReq})

	ids := map[string]bool{}
	for _, req := range rig.rec.enqueued {
		if req.ID == "" {
			t.Error("request ID should be assigned")
		}
		ids[req.ID] = true
	}
	if len(ids) != 3 {
		t.Errorf("expected 3 distinct IDs, got %d", len(ids))
	}
	if !ids["fixed-id"] {
		t.Error("explicit request ID should be preserved")
	}
}

// TestSurfaceFaultDoesNotStall 渲染层 panic 时跳过该效果，队列继续
func TestSurfaceFaultDoesNotStall(t *testing.T) {
	rig := newTestRig(t)
	rig.surface.panicOn = "cleric"

	rig.seq.Enqueue(types.AnimationRallyShout, UnitParams{UnitID: "cleric"})
	rig.seq.Enqueue(types.AnimationGuard, guardReq)

	rig.clock.RunAll()

	if len(rig.rec.skipped) != 1 || rig.rec.skipped[0].reason != SkipSurfaceFault {
		t.Errorf("skipped = %+v, want one surface_fault", rig.rec.skipped)
	}
	if got := rig.rec.startedKinds(); !reflect.DeepEqual(got, []string{"guard"}) {
		t.Errorf("started = %v, want [guard]", got)
	}
	if rig.seq.IsPlaying() {
		t.Error("sequencer should be idle")
	}
}

// TestStepRequest 脚本事件转换为对应负载
func TestStepRequest(t *testing.T) {
	tests := []struct {
		step config.ScriptStep
		want Request
	}{
		{
			config.ScriptStep{Kind: "attack", Source: "a", Target: "b"},
			Request{Kind: types.AnimationAttack, Params: AttackParams{AttackerID: "a", DefenderID: "b"}},
		},
		{
			config.ScriptStep{Kind: "death_trigger", Source: "a", Target: "b"},
			Request{Kind: types.AnimationDeathTrigger, Params: DeathTriggerParams{SourceID: "a", TargetID: "b"}},
		},
		{
			config.ScriptStep{Kind: "card_play", Card: "c", Row: 1, Col: 3},
			Request{Kind: types.AnimationCardPlay, Params: CardPlayParams{CardID: "c", Row: 1, Col: 3}},
		},
		{
			config.ScriptStep{Kind: "taunt", Source: "a"},
			Request{Kind: types.AnimationGuard, Params: UnitParams{UnitID: "a"}},
		},
		{
			config.ScriptStep{Kind: "bogus", Source: "a"},
			Request{Kind: types.AnimationUnknown, Params: UnknownParams{Name: "bogus"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.step.Kind, func(t *testing.T) {
			if got := StepRequest(tt.step); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("StepRequest() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// stateWatcher 在每次回调时检查 IsPlaying 与 Active 是否一致
type stateWatcher struct {
	NopListener
	seq        *Sequencer
	mismatches []string
}

func (p *stateWatcher) check(event string) {
	_, hasActive := p.seq.Active()
	if p.seq.IsPlaying() != hasActive {
		p.mismatches = append(p.mismatches, event)
	}
}

func (p *stateWatcher) OnEnqueue(Request) { p.check("enqueue") }
func (p *stateWatcher) OnStart(Request)   { p.check("start") }

// TestPlayingMatchesActive 观察者看到的 playing 标志始终与激活请求一致
func TestPlayingMatchesActive(t *testing.T) {
	surface := newFakeSurface()
	surface.addVisual("knight", 100, 300)
	clock := &manualClock{}
	watcher := &stateWatcher{}
	seq := New(surface, clock, config.DefaultEffectsConfig(), WithListener(watcher))
	watcher.seq = seq

	seq.Enqueue(types.AnimationGuard, guardReq)
	seq.Enqueue(types.AnimationGuard, guardReq)
	clock.RunAll()
	seq.Enqueue(types.AnimationGuard, guardReq)
	clock.RunAll()

	if len(watcher.mismatches) != 0 {
		t.Errorf("playing != (active != nil) at %v", watcher.mismatches)
	}
	if seq.IsPlaying() {
		t.Error("sequencer should be idle")
	}
}
