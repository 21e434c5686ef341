package sequencer

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gonewx/gridduel/pkg/config"
	"github.com/gonewx/gridduel/pkg/types"
)

// idleSignal 每次 OnIdle 都尝试通知，用于等待真实时钟下的排空
type idleSignal struct {
	*recorder
	ch chan struct{}
}

func (s *idleSignal) OnIdle() {
	s.recorder.OnIdle()
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// TestRealTimeSchedulerConcurrentProducers 多个生产者并发入队
// 每个生产者内部的顺序保持不变，同时激活的效果不超过一个
func TestRealTimeSchedulerConcurrentProducers(t *testing.T) {
	const producers = 4
	const perProducer = 10

	surface := newFakeSurface()
	for p := 0; p < producers; p++ {
		surface.addVisual(fmt.Sprintf("unit-%d", p), float64(p)*10, 0)
	}

	rec := &recorder{}
	listener := &idleSignal{recorder: rec, ch: make(chan struct{}, 1)}
	seq := New(surface, RealTimeScheduler{}, config.DefaultEffectsConfig().Scaled(1000), WithListener(listener))

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			unit := fmt.Sprintf("unit-%d", p)
			for i := 0; i < perProducer; i++ {
				seq.EnqueueRequest(Request{
					ID:     fmt.Sprintf("%d-%02d", p, i),
					Kind:   types.AnimationGuard,
					Params: UnitParams{UnitID: unit},
				})
			}
		}(p)
	}
	wg.Wait()

	deadline := time.After(5 * time.Second)
	for rec.completedCount() < producers*perProducer {
		select {
		case <-listener.ch:
		case <-time.After(10 * time.Millisecond):
		case <-deadline:
			t.Fatalf("completed %d of %d before timeout", rec.completedCount(), producers*perProducer)
		}
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.maxActive != 1 {
		t.Errorf("max concurrently active effects = %d, want 1", rec.maxActive)
	}

	last := make(map[byte]string)
	for _, req := range rec.started {
		producer := req.ID[0]
		if prev, ok := last[producer]; ok && req.ID <= prev {
			t.Errorf("producer %c played %s after %s", producer, req.ID, prev)
		}
		last[producer] = req.ID
	}
	if len(rec.started) != producers*perProducer {
		t.Errorf("started = %d, want %d", len(rec.started), producers*perProducer)
	}
}
