package config

import "testing"

// TestCellCenter 测试格子中心坐标计算
func TestCellCenter(t *testing.T) {
	tests := []struct {
		name  string
		row   int
		col   int
		wantX float64
		wantY float64
	}{
		{"左上角格子", 0, 0, BoardStartX + CellWidth/2, BoardStartY + CellHeight/2},
		{"右下角格子", BoardRows - 1, BoardColumns - 1, BoardEndX - CellWidth/2, BoardEndY - CellHeight/2},
		{"中间格子", 2, 3, 160 + 3*80 + 40, 40 + 2*90 + 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := CellCenter(tt.row, tt.col)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("CellCenter(%d, %d) = (%.1f, %.1f), want (%.1f, %.1f)",
					tt.row, tt.col, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

// TestInBoard 测试棋盘范围判断
func TestInBoard(t *testing.T) {
	tests := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},
		{BoardRows - 1, BoardColumns - 1, true},
		{-1, 0, false},
		{0, -1, false},
		{BoardRows, 0, false},
		{0, BoardColumns, false},
	}

	for _, tt := range tests {
		if got := InBoard(tt.row, tt.col); got != tt.want {
			t.Errorf("InBoard(%d, %d) = %v, want %v", tt.row, tt.col, got, tt.want)
		}
	}
}

// TestHandSlotCenter 手牌槽应位于棋盘下方且互不重叠
func TestHandSlotCenter(t *testing.T) {
	prevX := -1.0
	for slot := 0; slot < HandSlots; slot++ {
		x, y := HandSlotCenter(slot)
		if y <= BoardEndY {
			t.Errorf("slot %d center Y %.1f should be below the board (%.1f)", slot, y, BoardEndY)
		}
		if prevX >= 0 && x-prevX < CardWidth {
			t.Errorf("slot %d overlaps previous slot: dx=%.1f", slot, x-prevX)
		}
		if x+CardWidth/2 > GameWindowWidth {
			t.Errorf("slot %d exceeds window width", slot)
		}
		prevX = x
	}
}
