package utils

import "github.com/gonewx/gridduel/pkg/config"

// ScreenToCell 将屏幕坐标转换为棋盘格子
// 返回:
//   - row, col: 格子坐标
//   - isValid: 是否落在棋盘内
func ScreenToCell(x, y float64) (row, col int, isValid bool) {
	if x < config.BoardStartX || x >= config.BoardEndX || y < config.BoardStartY || y >= config.BoardEndY {
		return 0, 0, false
	}

	col = int((x - config.BoardStartX) / config.CellWidth)
	row = int((y - config.BoardStartY) / config.CellHeight)

	// 浮点误差可能导致越界
	if col >= config.BoardColumns {
		col = config.BoardColumns - 1
	}
	if row >= config.BoardRows {
		row = config.BoardRows - 1
	}

	return row, col, true
}

// ScreenToHandSlot 将屏幕坐标转换为手牌槽位
func ScreenToHandSlot(x, y float64) (slot int, isValid bool) {
	for i := 0; i < config.HandSlots; i++ {
		cx, cy := config.HandSlotCenter(i)
		if x >= cx-config.CardWidth/2 && x < cx+config.CardWidth/2 &&
			y >= cy-config.CardHeight/2 && y < cy+config.CardHeight/2 {
			return i, true
		}
	}
	return 0, false
}
