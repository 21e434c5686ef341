package config

import (
	"fmt"
	"os"

	"github.com/gonewx/gridduel/pkg/types"
	"gopkg.in/yaml.v3"
)

// BattleScript 对战脚本配置
//
// 描述一场演示对战的棋盘初始状态和按顺序触发的动画事件。
// 脚本替代规则引擎，用于演示场景和终端前端。
//
// 配置文件位置: data/scripts/<name>.yaml
type BattleScript struct {
	// Name 脚本名称（用于日志）
	Name string `yaml:"name"`

	// Units 棋盘上的初始单位
	Units []UnitPlacement `yaml:"units"`

	// Cards 初始手牌
	Cards []CardPlacement `yaml:"cards"`

	// Steps 按顺序入队的动画事件
	Steps []ScriptStep `yaml:"steps"`
}

// UnitPlacement 单位摆放
type UnitPlacement struct {
	ID  string `yaml:"id"`
	Row int    `yaml:"row"`
	Col int    `yaml:"col"`
}

// CardPlacement 手牌摆放
type CardPlacement struct {
	ID   string `yaml:"id"`
	Slot int    `yaml:"slot"`
}

// ScriptStep 单个动画事件
//
// 字段按效果类型取用：
//   - attack / death_trigger: Source, Target
//   - card_play: Card, Row, Col
//   - rally_shout / death_blow / guard: Source
//
// Kind 保留原始名称；无法识别的名称不会导致脚本加载失败，
// 而是在播放时由序列器记录警告并跳过。
type ScriptStep struct {
	Kind   string `yaml:"kind"`
	Source string `yaml:"source,omitempty"`
	Target string `yaml:"target,omitempty"`
	Card   string `yaml:"card,omitempty"`
	Row    int    `yaml:"row,omitempty"`
	Col    int    `yaml:"col,omitempty"`
}

// AnimationKind 返回解析后的效果类型
func (s ScriptStep) AnimationKind() types.AnimationKind {
	return types.ParseAnimationKind(s.Kind)
}

// LoadBattleScript 加载对战脚本
//
// 参数:
//   - path: 脚本文件路径（如 "data/scripts/demo.yaml"）
//
// 返回:
//   - *BattleScript: 加载成功后的脚本
//   - error: 读取、解析或验证失败时返回错误
func LoadBattleScript(path string) (*BattleScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read battle script: %w", err)
	}
	return ParseBattleScript(data)
}

// ParseBattleScript 从 YAML 数据解析对战脚本
func ParseBattleScript(data []byte) (*BattleScript, error) {
	var script BattleScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse battle script: %w", err)
	}

	if err := script.Validate(); err != nil {
		return nil, fmt.Errorf("invalid battle script %q: %w", script.Name, err)
	}

	return &script, nil
}

// Validate 验证脚本的棋盘初始状态
//
// 检查：
//   - 单位和手牌 ID 非空且全局唯一
//   - 单位位于棋盘范围内且不重叠
//   - 手牌槽位在 [0, HandSlots) 范围内且不重叠
//
// 事件列表不做验证：引用不存在的单位或未知类型是允许的，
// 用于演示序列器在这些情况下的跳过行为。
func (s *BattleScript) Validate() error {
	ids := make(map[string]bool)
	var cells [BoardRows][BoardColumns]bool

	for i, u := range s.Units {
		if u.ID == "" {
			return fmt.Errorf("units[%d]: id is required", i)
		}
		if ids[u.ID] {
			return fmt.Errorf("units[%d]: duplicate id %q", i, u.ID)
		}
		ids[u.ID] = true

		if !InBoard(u.Row, u.Col) {
			return fmt.Errorf("units[%d] %q: cell (%d, %d) is outside the %dx%d board",
				i, u.ID, u.Row, u.Col, BoardRows, BoardColumns)
		}
		if cells[u.Row][u.Col] {
			return fmt.Errorf("units[%d] %q: cell (%d, %d) already occupied", i, u.ID, u.Row, u.Col)
		}
		cells[u.Row][u.Col] = true
	}

	var slots [HandSlots]bool
	for i, c := range s.Cards {
		if c.ID == "" {
			return fmt.Errorf("cards[%d]: id is required", i)
		}
		if ids[c.ID] {
			return fmt.Errorf("cards[%d]: duplicate id %q", i, c.ID)
		}
		ids[c.ID] = true

		if c.Slot < 0 || c.Slot >= HandSlots {
			return fmt.Errorf("cards[%d] %q: slot %d out of range [0, %d)", i, c.ID, c.Slot, HandSlots)
		}
		if slots[c.Slot] {
			return fmt.Errorf("cards[%d] %q: slot %d already occupied", i, c.ID, c.Slot)
		}
		slots[c.Slot] = true
	}

	return nil
}
