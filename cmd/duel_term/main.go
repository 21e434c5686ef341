// duel_term 在终端中播放对战脚本
//
// 用法：
//
//	go run ./cmd/duel_term -script data/scripts/demo.yaml -speed 1.5
//
// 按键：空格/r 重播，g 切换网格，q/Esc 退出
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/gridduel/pkg/config"
	"github.com/gonewx/gridduel/pkg/ecs"
	"github.com/gonewx/gridduel/pkg/sequencer"
	"github.com/gonewx/gridduel/pkg/surface"
	"github.com/gonewx/gridduel/pkg/systems"
	"github.com/gonewx/gridduel/pkg/termview"
	"github.com/gonewx/gridduel/pkg/utils"
)

const frameInterval = time.Second / 60

// counter 统计播放结果，供状态栏显示
type counter struct {
	sequencer.NopListener
	played  atomic.Int32
	skipped atomic.Int32
}

func (c *counter) OnComplete(sequencer.Request) { c.played.Add(1) }

func (c *counter) OnSkip(req sequencer.Request, reason sequencer.SkipReason) {
	c.skipped.Add(1)
	log.Printf("[duel_term] skipped %s (%s): %s", req.ShortID(), req.Kind, reason)
}

func main() {
	scriptPath := flag.String("script", "data/scripts/demo.yaml", "对战脚本路径")
	effectsPath := flag.String("effects", "data/effects.yaml", "效果时长配置路径")
	speed := flag.Float64("speed", 1.0, "播放速度倍率（0.5 ~ 2.0）")
	logPath := flag.String("log", "", "日志文件（默认丢弃日志，避免破坏终端画面）")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法创建日志文件: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if clamped := config.ClampSpeedScale(*speed); clamped != *speed {
		log.Printf("[duel_term] Warning: speed %v out of range, using %v", *speed, clamped)
		*speed = clamped
	}

	script, err := config.LoadBattleScript(*scriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载脚本失败: %v\n", err)
		os.Exit(1)
	}
	timings, err := config.LoadEffectsConfig(*effectsPath)
	if err != nil {
		log.Printf("[duel_term] Warning: %v, using default timings", err)
		timings = config.DefaultEffectsConfig()
	}

	em := ecs.NewEntityManager()
	board := surface.NewBoardSurface(em)
	if err := board.LoadScript(script); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	scheduler := systems.NewScheduleSystem()
	tweens := systems.NewTweenSystem(em, utils.ResolveEasing(timings.Easing))
	stats := &counter{}
	seq := sequencer.New(board, scheduler, timings.Scaled(*speed), sequencer.WithListener(stats))

	replay := func() {
		for _, step := range script.Steps {
			seq.EnqueueRequest(sequencer.StepRequest(step))
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法创建终端屏幕: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "无法初始化终端: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	renderer := termview.NewRenderer(screen, em)
	showGrid := true

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	replay()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
					return
				case ev.Rune() == ' ', ev.Rune() == 'r':
					replay()
				case ev.Rune() == 'g':
					showGrid = !showGrid
					renderer.SetShowGrid(showGrid)
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			scheduler.Update(dt)
			tweens.Update(dt)
			em.RemoveMarkedEntities()

			renderer.Draw(statusLine(script.Name, seq, stats, *speed, em.EntityCount()))
		}
	}
}

func statusLine(name string, seq *sequencer.Sequencer, stats *counter, speed float64, entities int) string {
	state := "idle"
	if req, ok := seq.Active(); ok {
		state = req.Kind.String()
	}
	return fmt.Sprintf("%s  %s  played:%d skipped:%d queued:%d entities:%d  x%.1f  [space]replay [g]grid [q]quit",
		name, state, stats.played.Load(), stats.skipped.Load(), seq.Pending(), entities, speed)
}
