package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gonewx/gridduel/pkg/app"
	"github.com/gonewx/gridduel/pkg/config"
	"github.com/gonewx/gridduel/pkg/embedded"
	"github.com/gonewx/gridduel/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细日志")
	scriptFlag  = flag.String("script", app.DefaultScript, "对战脚本：嵌入脚本名称或 .yaml 文件路径")
	effectsFlag = flag.String("effects", "", "效果配置文件路径（默认使用嵌入的 data/effects.yaml）")
	traceFlag   = flag.Bool("trace", false, "输出动画序列器追踪日志")
	listFlag    = flag.Bool("list", false, "列出嵌入的对战脚本后退出")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	if *listFlag {
		for _, name := range scenes.ListScripts() {
			fmt.Println(name)
		}
		return
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		Script:      *scriptFlag,
		EffectsPath: *effectsFlag,
		Trace:       *traceFlag,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Grid Duel")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(gameApp)
	gameApp.Close()
	if err != nil {
		log.Fatal(err)
	}
}
