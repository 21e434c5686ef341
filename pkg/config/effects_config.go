package config

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"time"

	"github.com/gonewx/gridduel/pkg/types"
	"gopkg.in/yaml.v3"
)

// EffectsConfig 视觉效果配置
//
// 为每种效果类型定义固定的阶段时长和外观。
// 时长对同一局对战是固定的（速度倍率只在创建序列器时统一应用一次）。
//
// 配置文件位置: data/effects.yaml
// 文件中未出现的字段保留 DefaultEffectsConfig 中的默认值。
type EffectsConfig struct {
	// Attack 攻击：投射物从攻击方飞向防守方，命中后显示冲击
	Attack EffectConfig `yaml:"attack"`

	// DeathTrigger 亡语：光球从阵亡单位飞向受影响单位
	DeathTrigger EffectConfig `yaml:"deathTrigger"`

	// CardPlay 打出卡牌：卡牌残影从手牌飞向落点格子
	CardPlay EffectConfig `yaml:"cardPlay"`

	// RallyShout 战吼：多重光环从单位向外扩散（单阶段）
	RallyShout EffectConfig `yaml:"rallyShout"`

	// DeathBlow 击杀：粒子从单位位置向四周放射（单阶段）
	DeathBlow EffectConfig `yaml:"deathBlow"`

	// Guard 守护/嘲讽：单位上方显示护盾图标（单阶段，静态）
	Guard EffectConfig `yaml:"guard"`

	// Easing 元素位移的缓动曲线：linear、outCubic、inOutCubic、outQuad
	Easing string `yaml:"easing"`
}

// EffectConfig 单个效果类型的配置
type EffectConfig struct {
	// TravelMs 飞行/构建阶段时长（毫秒），仅两阶段效果使用
	TravelMs int `yaml:"travelMs"`

	// ImpactMs 命中阶段时长（毫秒），仅两阶段效果使用
	ImpactMs int `yaml:"impactMs"`

	// DurationMs 单阶段效果的总时长（毫秒）
	DurationMs int `yaml:"durationMs"`

	// Count 光环/粒子数量，仅 RallyShout 和 DeathBlow 使用
	Count int `yaml:"count"`

	// Radius 扩散半径（像素），仅 RallyShout 和 DeathBlow 使用
	Radius float64 `yaml:"radius"`

	// Primary 主元素外观（投射物、光环、粒子、护盾）
	Primary EffectStyleConfig `yaml:"primary"`

	// Impact 命中元素外观，仅两阶段效果使用
	Impact EffectStyleConfig `yaml:"impact"`
}

// EffectStyleConfig 临时效果元素的外观配置
type EffectStyleConfig struct {
	Shape types.EffectShape `yaml:"shape"`
	Color ColorConfig       `yaml:"color"`
	// Size 基准尺寸（像素）：圆/环为半径，矩形为宽度（高度按卡牌比例）
	Size float64 `yaml:"size"`
	// Glyph 图标字符，仅 glyph 形状使用
	Glyph string `yaml:"glyph,omitempty"`
}

// ColorConfig RGBA 颜色
type ColorConfig struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a"`
}

// RGBA 转换为 image/color 颜色
func (c ColorConfig) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// GlyphRune 返回图标的第一个字符，为空时返回 0
func (s EffectStyleConfig) GlyphRune() rune {
	for _, r := range s.Glyph {
		return r
	}
	return 0
}

// Travel 飞行阶段时长
func (c EffectConfig) Travel() time.Duration {
	return time.Duration(c.TravelMs) * time.Millisecond
}

// ImpactDuration 命中阶段时长
func (c EffectConfig) ImpactDuration() time.Duration {
	return time.Duration(c.ImpactMs) * time.Millisecond
}

// Duration 单阶段效果时长
func (c EffectConfig) Duration() time.Duration {
	return time.Duration(c.DurationMs) * time.Millisecond
}

// Total 效果从开始到清理的总时长
func (c EffectConfig) Total() time.Duration {
	if c.DurationMs > 0 {
		return c.Duration()
	}
	return c.Travel() + c.ImpactDuration()
}

// DefaultEasing 默认缓动曲线（先快后慢）
const DefaultEasing = "outCubic"

// DefaultEffectsConfig 返回默认效果配置
//
// 默认时长：
//   - 攻击：300ms 飞行 + 200ms 命中
//   - 亡语、打出卡牌：500ms 飞行 + 300ms 命中
//   - 战吼、击杀、守护：1000ms 单阶段
func DefaultEffectsConfig() *EffectsConfig {
	return &EffectsConfig{
		Attack: EffectConfig{
			TravelMs: 300,
			ImpactMs: 200,
			Primary:  EffectStyleConfig{Shape: types.ShapeCircle, Color: ColorConfig{255, 220, 120, 255}, Size: 8},
			Impact:   EffectStyleConfig{Shape: types.ShapeRing, Color: ColorConfig{255, 120, 60, 255}, Size: 14},
		},
		DeathTrigger: EffectConfig{
			TravelMs: 500,
			ImpactMs: 300,
			Primary:  EffectStyleConfig{Shape: types.ShapeCircle, Color: ColorConfig{170, 90, 255, 230}, Size: 10},
			Impact:   EffectStyleConfig{Shape: types.ShapeRing, Color: ColorConfig{200, 140, 255, 255}, Size: 18},
		},
		CardPlay: EffectConfig{
			TravelMs: 500,
			ImpactMs: 300,
			Primary:  EffectStyleConfig{Shape: types.ShapeRect, Color: ColorConfig{240, 240, 255, 200}, Size: CardWidth},
			Impact:   EffectStyleConfig{Shape: types.ShapeRect, Color: ColorConfig{255, 255, 255, 160}, Size: CellWidth},
		},
		RallyShout: EffectConfig{
			DurationMs: 1000,
			Count:      3,
			Radius:     60,
			Primary:    EffectStyleConfig{Shape: types.ShapeRing, Color: ColorConfig{255, 215, 0, 255}, Size: 10},
		},
		DeathBlow: EffectConfig{
			DurationMs: 1000,
			Count:      8,
			Radius:     50,
			Primary:    EffectStyleConfig{Shape: types.ShapeCircle, Color: ColorConfig{220, 40, 40, 255}, Size: 4},
		},
		Guard: EffectConfig{
			DurationMs: 1000,
			Primary:    EffectStyleConfig{Shape: types.ShapeGlyph, Color: ColorConfig{120, 200, 255, 255}, Size: 24, Glyph: "◆"},
		},
		Easing: DefaultEasing,
	}
}

// For 返回指定效果类型的配置
// 未知类型返回 false
func (c *EffectsConfig) For(kind types.AnimationKind) (EffectConfig, bool) {
	switch kind {
	case types.AnimationAttack:
		return c.Attack, true
	case types.AnimationDeathTrigger:
		return c.DeathTrigger, true
	case types.AnimationCardPlay:
		return c.CardPlay, true
	case types.AnimationRallyShout:
		return c.RallyShout, true
	case types.AnimationDeathBlow:
		return c.DeathBlow, true
	case types.AnimationGuard:
		return c.Guard, true
	default:
		return EffectConfig{}, false
	}
}

// 播放速度倍率范围
const (
	MinSpeedScale = 0.5
	MaxSpeedScale = 2.0
)

// ClampSpeedScale 将速度倍率限制在 [MinSpeedScale, MaxSpeedScale]，非正值视为 1
func ClampSpeedScale(scale float64) float64 {
	if scale <= 0 || math.IsNaN(scale) {
		return 1.0
	}
	return math.Max(MinSpeedScale, math.Min(MaxSpeedScale, scale))
}

// Scaled 返回按速度倍率缩放时长后的配置副本
//
// speed > 1 播放更快（时长变短），speed < 1 播放更慢。
// speed <= 0 视为 1。缩放后的时长在 [1ms, math.MaxInt32 ms] 之间。
// 用户输入的倍率应先经过 ClampSpeedScale。
func (c *EffectsConfig) Scaled(speed float64) *EffectsConfig {
	if speed <= 0 || math.IsNaN(speed) {
		speed = 1
	}

	scale := func(ms int) int {
		if ms <= 0 {
			return ms
		}
		scaled := math.Min(float64(ms)/speed, math.MaxInt32)
		return max(int(scaled), 1)
	}

	scaleEffect := func(e EffectConfig) EffectConfig {
		e.TravelMs = scale(e.TravelMs)
		e.ImpactMs = scale(e.ImpactMs)
		e.DurationMs = scale(e.DurationMs)
		return e
	}

	out := *c
	out.Attack = scaleEffect(c.Attack)
	out.DeathTrigger = scaleEffect(c.DeathTrigger)
	out.CardPlay = scaleEffect(c.CardPlay)
	out.RallyShout = scaleEffect(c.RallyShout)
	out.DeathBlow = scaleEffect(c.DeathBlow)
	out.Guard = scaleEffect(c.Guard)
	return &out
}

// LoadEffectsConfig 加载效果配置
//
// 从指定路径加载 YAML 格式的效果配置文件，未出现的字段使用默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/effects.yaml"）
//
// 返回:
//   - *EffectsConfig: 加载成功后的配置结构
//   - error: 读取、解析或验证失败时返回错误
func LoadEffectsConfig(path string) (*EffectsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read effects config: %w", err)
	}
	return ParseEffectsConfig(data)
}

// ParseEffectsConfig 从 YAML 数据解析效果配置
func ParseEffectsConfig(data []byte) (*EffectsConfig, error) {
	config := DefaultEffectsConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse effects config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid effects config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 两阶段效果（攻击、亡语、打出卡牌）的飞行和命中时长必须为正
//   - 单阶段效果（战吼、击杀、守护）的时长必须为正
//   - 战吼和击杀的数量至少为 1，半径不能为负
func (c *EffectsConfig) Validate() error {
	type namedEffect struct {
		name   string
		effect EffectConfig
	}

	twoPhase := []namedEffect{
		{"attack", c.Attack},
		{"deathTrigger", c.DeathTrigger},
		{"cardPlay", c.CardPlay},
	}
	for _, ne := range twoPhase {
		if ne.effect.TravelMs <= 0 {
			return fmt.Errorf("%s.travelMs must be positive, got %d", ne.name, ne.effect.TravelMs)
		}
		if ne.effect.ImpactMs <= 0 {
			return fmt.Errorf("%s.impactMs must be positive, got %d", ne.name, ne.effect.ImpactMs)
		}
	}

	singlePhase := []namedEffect{
		{"rallyShout", c.RallyShout},
		{"deathBlow", c.DeathBlow},
		{"guard", c.Guard},
	}
	for _, ne := range singlePhase {
		if ne.effect.DurationMs <= 0 {
			return fmt.Errorf("%s.durationMs must be positive, got %d", ne.name, ne.effect.DurationMs)
		}
	}

	// 战吼和击杀需要数量和半径
	for _, ne := range singlePhase[:2] {
		if ne.effect.Count < 1 {
			return fmt.Errorf("%s.count must be at least 1, got %d", ne.name, ne.effect.Count)
		}
		if ne.effect.Radius < 0 {
			return fmt.Errorf("%s.radius cannot be negative, got %.1f", ne.name, ne.effect.Radius)
		}
	}

	return nil
}
