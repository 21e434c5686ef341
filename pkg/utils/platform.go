//go:build !mobile

package utils

import "os"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false
// 设置环境变量 GRIDDUEL_MOBILE_EMULATE=1 可在桌面端模拟移动模式（触摸重播、隐藏按键提示）
func IsMobile() bool {
	return os.Getenv("GRIDDUEL_MOBILE_EMULATE") == "1"
}
