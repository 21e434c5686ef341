package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个游戏场景（如对战回放）
// 每个场景拥有独立的更新和绘制逻辑
type Scene interface {
	// Update 推进场景逻辑，deltaTime 为距上一帧的秒数
	Update(deltaTime float64)

	// Draw 将场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Closer 可选接口：场景在程序退出时需要收尾（如保存设置）
type Closer interface {
	// Close 在窗口关闭时调用，返回的错误只记录日志，不阻止退出
	Close() error
}
