// Package app 提供游戏应用的核心包装器
//
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/gridduel/pkg/config"
	"github.com/gonewx/gridduel/pkg/game"
	"github.com/gonewx/gridduel/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppName gdata 存储使用的应用名称
const AppName = "gridduel"

// DefaultScript 未指定脚本时播放的嵌入脚本
const DefaultScript = "demo"

// Config 应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Script 对战脚本：嵌入脚本名称或 .yaml 文件路径，为空时使用 DefaultScript
	Script string
	// EffectsPath 效果配置文件路径，为空时使用嵌入的 data/effects.yaml
	EffectsPath string
	// Trace 强制开启序列器追踪日志（覆盖已保存的设置）
	Trace bool
}

// App 游戏应用，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	settings := game.NewSettingsManager(game.OpenStorage(AppName))
	if cfg.Trace {
		settings.SetTraceAnimations(true)
	}

	timings, err := scenes.LoadEffects(cfg.EffectsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load effect config: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(scriptName string) (game.Scene, error) {
		script, err := scenes.LoadScript(scriptName)
		if err != nil {
			return nil, err
		}
		return scenes.NewBattleScene(script, timings, settings)
	})

	scriptName := cfg.Script
	if scriptName == "" {
		scriptName = DefaultScript
	}
	log.Printf("[App] Starting script: %s", scriptName)
	if !sceneManager.LoadScript(scriptName) {
		return nil, fmt.Errorf("failed to start script %s", scriptName)
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 全屏时用黑色填充 letterbox 区域
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸，Ebitengine 负责缩放到实际窗口
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Close 程序退出时收尾：保存当前场景的设置
func (a *App) Close() {
	a.sceneManager.Close()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
