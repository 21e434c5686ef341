package scenes

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/gonewx/gridduel/pkg/config"
	"github.com/gonewx/gridduel/pkg/ecs"
	"github.com/gonewx/gridduel/pkg/game"
	"github.com/gonewx/gridduel/pkg/sequencer"
	"github.com/gonewx/gridduel/pkg/surface"
	"github.com/gonewx/gridduel/pkg/systems"
	"github.com/gonewx/gridduel/pkg/types"
	"github.com/gonewx/gridduel/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// speedStep 每次按键调整的播放速度
const speedStep = 0.25

var sceneBackgroundColor = color.RGBA{R: 18, G: 20, B: 26, A: 255}

// BattleScene 对战回放场景
//
// 按脚本摆放单位和手牌，并把脚本事件逐个提交给动画序列器。
// 每帧顺序：输入 → 调度系统 → 补间系统 → 清理已销毁实体。
//
// 按键：
//   - Space / R：重新提交整个脚本（排在当前队列之后）
//   - G：切换格子边框
//   - = / -：调整播放速度（当前队列播放完毕后生效）
//   - T：切换追踪日志
//   - 鼠标：先点手牌选中，再点格子打出
type BattleScene struct {
	script      *config.BattleScript
	baseTimings *config.EffectsConfig
	settings    *game.SettingsManager

	entityManager *ecs.EntityManager
	board         *surface.BoardSurface
	scheduler     *systems.ScheduleSystem
	tweenSystem   *systems.TweenSystem
	renderSystem  *systems.BoardRenderSystem

	sequencer *sequencer.Sequencer
	stats     *playbackStats
	// timings 当前序列器使用的（已缩放）效果配置
	timings *config.EffectsConfig
	// appliedSpeed / appliedTrace 当前序列器创建时的设置
	appliedSpeed float64
	appliedTrace bool
	rounds       int

	// selectedCard 已点选、等待落点的手牌
	selectedCard string
}

// NewBattleScene 创建对战场景并立即开始播放脚本
//
// 参数：
//   - script: 已校验的对战脚本
//   - timings: 效果配置（1.0 倍速），nil 时使用默认值
//   - settings: 用户设置，nil 时使用内存中的默认设置
func NewBattleScene(script *config.BattleScript, timings *config.EffectsConfig, settings *game.SettingsManager) (*BattleScene, error) {
	if script == nil {
		return nil, fmt.Errorf("battle scene requires a script")
	}
	if timings == nil {
		timings = config.DefaultEffectsConfig()
	}
	if settings == nil {
		settings = game.NewSettingsManager(nil)
	}

	em := ecs.NewEntityManager()
	board := surface.NewBoardSurface(em)
	if err := board.LoadScript(script); err != nil {
		return nil, err
	}

	s := &BattleScene{
		script:        script,
		baseTimings:   timings,
		settings:      settings,
		entityManager: em,
		board:         board,
		scheduler:     systems.NewScheduleSystem(),
		tweenSystem:   systems.NewTweenSystem(em, utils.ResolveEasing(timings.Easing)),
		renderSystem:  systems.NewBoardRenderSystem(em),
		stats:         &playbackStats{},
	}
	s.renderSystem.SetShowGrid(settings.GetSettings().ShowBoardGrid)
	s.rebuildSequencer()

	log.Printf("[BattleScene] Script %s: %d units, %d cards, %d steps",
		script.Name, len(script.Units), len(script.Cards), len(script.Steps))
	s.Replay()

	return s, nil
}

// rebuildSequencer 按当前设置创建序列器
// 只在序列器空闲时调用，旧序列器上没有待播放的效果
func (s *BattleScene) rebuildSequencer() {
	cfg := s.settings.GetSettings()
	s.appliedSpeed = cfg.SpeedScale
	s.appliedTrace = cfg.TraceAnimations
	s.timings = s.baseTimings.Scaled(cfg.SpeedScale)
	s.sequencer = sequencer.New(s.board, s.scheduler, s.timings,
		sequencer.WithListener(s.stats),
		sequencer.WithTrace(cfg.TraceAnimations))
}

// Replay 将脚本中的所有事件提交给序列器
func (s *BattleScene) Replay() {
	if !s.sequencer.IsPlaying() && s.settingsChanged() {
		s.rebuildSequencer()
	}

	s.rounds++
	for _, step := range s.script.Steps {
		s.sequencer.EnqueueRequest(sequencer.StepRequest(step))
	}
	log.Printf("[BattleScene] Round %d queued (%d steps, %d pending, up to %v)",
		s.rounds, len(s.script.Steps), s.sequencer.Pending(), s.RoundDuration())
}

func (s *BattleScene) settingsChanged() bool {
	cfg := s.settings.GetSettings()
	return cfg.SpeedScale != s.appliedSpeed || cfg.TraceAnimations != s.appliedTrace
}

// RoundDuration 按当前速度估算一轮脚本的播放时长（上限）
// 被跳过的事件不占时间，因此实际时长可能更短；未知类型计为 0
func (s *BattleScene) RoundDuration() time.Duration {
	var total time.Duration
	for _, step := range s.script.Steps {
		if cfg, ok := s.timings.For(step.AnimationKind()); ok {
			total += cfg.Total()
		}
	}
	return total
}

// HandleClick 处理一次点击（屏幕坐标）
//
// 点中手牌时选中该卡牌；已选中卡牌时点中格子则提交 card_play 动画。
// 点击其他位置取消选择。
func (s *BattleScene) HandleClick(x, y float64) {
	if slot, ok := utils.ScreenToHandSlot(x, y); ok {
		if id, ok := s.board.CardInSlot(slot); ok {
			s.selectedCard = id
			log.Printf("[BattleScene] Card %s selected", id)
			return
		}
	}

	row, col, ok := utils.ScreenToCell(x, y)
	if !ok || s.selectedCard == "" {
		s.selectedCard = ""
		return
	}

	s.sequencer.Enqueue(types.AnimationCardPlay, sequencer.CardPlayParams{CardID: s.selectedCard, Row: row, Col: col})
	log.Printf("[BattleScene] Card %s played to (%d, %d)", s.selectedCard, row, col)
	s.selectedCard = ""
}

// SelectedCard 返回当前选中的手牌
func (s *BattleScene) SelectedCard() string {
	return s.selectedCard
}

// Update 处理输入并推进一帧
func (s *BattleScene) Update(deltaTime float64) {
	s.handleInput()
	s.Tick(deltaTime)
}

// Tick 推进一帧：调度 → 补间 → 清理
func (s *BattleScene) Tick(deltaTime float64) {
	s.scheduler.Update(deltaTime)
	s.tweenSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

func (s *BattleScene) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.Replay()
	}
	if utils.IsMobile() && len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		s.Replay()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		s.HandleClick(float64(x), float64(y))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		s.ToggleGrid()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		s.AdjustSpeed(speedStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		s.AdjustSpeed(-speedStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		s.ToggleTrace()
	}
}

// ToggleGrid 切换格子边框显示
func (s *BattleScene) ToggleGrid() {
	show := !s.settings.GetSettings().ShowBoardGrid
	s.settings.SetShowBoardGrid(show)
	s.renderSystem.SetShowGrid(show)
}

// AdjustSpeed 调整播放速度；序列器空闲时立即生效，否则在下一轮生效
func (s *BattleScene) AdjustSpeed(delta float64) {
	speed := s.settings.AdjustSpeed(delta)
	log.Printf("[BattleScene] Speed x%.2f", speed)
	if !s.sequencer.IsPlaying() {
		s.rebuildSequencer()
	}
}

// ToggleTrace 切换追踪日志（下一轮生效）
func (s *BattleScene) ToggleTrace() {
	s.settings.SetTraceAnimations(!s.settings.GetSettings().TraceAnimations)
	if !s.sequencer.IsPlaying() {
		s.rebuildSequencer()
	}
}

// Draw 绘制棋盘和状态栏
func (s *BattleScene) Draw(screen *ebiten.Image) {
	screen.Fill(sceneBackgroundColor)
	s.renderSystem.Draw(screen)
	ebitenutil.DebugPrintAt(screen, s.StatusLine(), 10, config.GameWindowHeight-40)
	ebitenutil.DebugPrintAt(screen, s.hintLine(), 10, config.GameWindowHeight-20)
}

// StatusLine 状态栏文本
func (s *BattleScene) StatusLine() string {
	state := "idle"
	if s.sequencer.IsPlaying() {
		state = "playing"
		if s.stats.current != "" {
			state = "playing " + s.stats.current
		}
	}
	line := fmt.Sprintf("%s | %s | speed x%.2f | pending %d | played %d | skipped %d | entities %d",
		s.script.Name, state, s.settings.GetSettings().SpeedScale,
		s.sequencer.Pending(), s.stats.played, s.stats.skipped, s.entityManager.EntityCount())
	if s.selectedCard != "" {
		line += " | selected " + s.selectedCard
	}
	return line
}

func (s *BattleScene) hintLine() string {
	if utils.IsMobile() {
		return "tap: replay"
	}
	return "space/r: replay  g: grid  +/-: speed  t: trace  click card, then cell: play"
}

// Sequencer 返回当前序列器
func (s *BattleScene) Sequencer() *sequencer.Sequencer {
	return s.sequencer
}

// Board 返回棋盘渲染层
func (s *BattleScene) Board() *surface.BoardSurface {
	return s.board
}

// Close 保存设置（实现 game.Closer）
func (s *BattleScene) Close() error {
	return s.settings.Save()
}
