package game

import (
	"fmt"
	"log"

	"github.com/gonewx/gridduel/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 播放速度范围
const (
	MinSpeedScale = config.MinSpeedScale
	MaxSpeedScale = config.MaxSpeedScale
)

// EffectSettings 用户的动画显示设置
type EffectSettings struct {
	// SpeedScale 效果播放速度倍率（0.5 ~ 2.0），所有效果时长除以此值
	SpeedScale float64 `yaml:"speedScale"`
	// TraceAnimations 是否输出序列器入队/播放追踪日志
	TraceAnimations bool `yaml:"traceAnimations"`
	// ShowBoardGrid 是否绘制格子边框
	ShowBoardGrid bool `yaml:"showBoardGrid"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *EffectSettings {
	return &EffectSettings{
		SpeedScale:      1.0,
		TraceAnimations: false,
		ShowBoardGrid:   true,
	}
}

// SettingsManager 设置管理器
// 负责效果设置的加载、保存
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *EffectSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "effects"
)

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil
//
// 加载失败不是致命错误：记录警告并使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// OpenStorage 打开 gdata 存储；失败时返回 nil 并记录警告，调用方进入降级模式
func OpenStorage(appName string) *gdata.Manager {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: Failed to open storage for %s: %v (settings will not persist)", appName, err)
		return nil
	}
	return manager
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或尚未保存过时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 在默认值之上反序列化，旧版本缺少的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.SpeedScale = config.ClampSpeedScale(loaded.SpeedScale)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded (speed=%.2f, trace=%v, grid=%v)",
		loaded.SpeedScale, loaded.TraceAnimations, loaded.ShowBoardGrid)
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *EffectSettings {
	return sm.settings
}

// SetSpeedScale 设置播放速度，超出范围时截断
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetSpeedScale(scale float64) {
	sm.settings.SpeedScale = config.ClampSpeedScale(scale)
}

// AdjustSpeed 在当前速度上增加 delta，返回调整后的速度
func (sm *SettingsManager) AdjustSpeed(delta float64) float64 {
	sm.SetSpeedScale(sm.settings.SpeedScale + delta)
	return sm.settings.SpeedScale
}

// SetTraceAnimations 设置追踪日志开关
func (sm *SettingsManager) SetTraceAnimations(enabled bool) {
	sm.settings.TraceAnimations = enabled
}

// SetShowBoardGrid 设置格子边框开关
func (sm *SettingsManager) SetShowBoardGrid(enabled bool) {
	sm.settings.ShowBoardGrid = enabled
}

