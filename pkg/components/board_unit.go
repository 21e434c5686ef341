package components

// BoardUnitComponent 棋盘上的单位
// GameID 是规则引擎使用的单位标识，动画请求通过它引用单位
type BoardUnitComponent struct {
	GameID string
	Row    int
	Col    int
}

// HandCardComponent 玩家手中的一张卡牌
type HandCardComponent struct {
	GameID string
	Slot   int
}
