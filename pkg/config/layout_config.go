package config

// 布局配置常量
// 本文件定义了对战场景中的布局参数：窗口、棋盘网格、手牌区
// 所有坐标使用屏幕坐标系（相对于窗口左上角），对战场景没有摄像机移动

const (
	// GameWindowWidth 逻辑窗口宽度
	GameWindowWidth = 800
	// GameWindowHeight 逻辑窗口高度
	GameWindowHeight = 600
)

// Board Grid Configuration (棋盘网格配置)
const (
	// BoardRows 棋盘行数（纵向格子数）
	// 第 0-1 行属于对手，第 2-3 行属于玩家
	BoardRows = 4

	// BoardColumns 棋盘列数（横向格子数）
	BoardColumns = 6

	// BoardStartX 棋盘左上角X坐标
	BoardStartX = 160.0

	// BoardStartY 棋盘左上角Y坐标
	BoardStartY = 40.0

	// CellWidth 每个格子的宽度（像素）
	CellWidth = 80.0

	// CellHeight 每个格子的高度（像素）
	CellHeight = 90.0

	// BoardEndX 棋盘右边界X坐标 = 160 + 6*80 = 640
	BoardEndX = BoardStartX + float64(BoardColumns)*CellWidth

	// BoardEndY 棋盘下边界Y坐标 = 40 + 4*90 = 400
	BoardEndY = BoardStartY + float64(BoardRows)*CellHeight

	// UnitWidth 单位图块宽度（略小于格子，保留边距）
	UnitWidth = 60.0

	// UnitHeight 单位图块高度
	UnitHeight = 70.0
)

// Hand Area Configuration (手牌区配置)
const (
	// HandSlots 手牌槽位数量
	HandSlots = 7

	// HandStartX 第一个手牌槽的左边界X坐标
	HandStartX = 155.0

	// HandCenterY 手牌中心Y坐标
	HandCenterY = 500.0

	// HandSlotSpacing 相邻手牌槽中心间距
	HandSlotSpacing = 70.0

	// CardWidth 手牌宽度
	CardWidth = 60.0

	// CardHeight 手牌高度
	CardHeight = 84.0
)

// InBoard 判断格子坐标是否在棋盘范围内
func InBoard(row, col int) bool {
	return row >= 0 && row < BoardRows && col >= 0 && col < BoardColumns
}

// CellCenter 返回格子中心的屏幕坐标
// 调用方负责用 InBoard 校验范围；越界坐标按同样公式外推
func CellCenter(row, col int) (x, y float64) {
	x = BoardStartX + float64(col)*CellWidth + CellWidth/2
	y = BoardStartY + float64(row)*CellHeight + CellHeight/2
	return x, y
}

// HandSlotCenter 返回手牌槽中心的屏幕坐标
func HandSlotCenter(slot int) (x, y float64) {
	x = HandStartX + CardWidth/2 + float64(slot)*HandSlotSpacing
	return x, HandCenterY
}

// GetBoardBounds 返回棋盘的边界
// 返回值：startX, startY, endX, endY
func GetBoardBounds() (float64, float64, float64, float64) {
	return BoardStartX, BoardStartY, BoardEndX, BoardEndY
}
