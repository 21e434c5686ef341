package scenes

import (
	"fmt"
	"log"
	"strings"

	"github.com/gonewx/gridduel/pkg/config"
	"github.com/gonewx/gridduel/pkg/embedded"
)

// 嵌入数据路径
const (
	EmbeddedEffectsPath = "data/effects.yaml"
	embeddedScriptsDir  = "data/scripts/"
)

// LoadScript 按名称或路径加载对战脚本
//
//   - 以 .yaml/.yml 结尾：从磁盘读取
//   - 其他：作为嵌入脚本名称，读取 data/scripts/<name>.yaml
func LoadScript(nameOrPath string) (*config.BattleScript, error) {
	if isYAMLPath(nameOrPath) {
		return config.LoadBattleScript(nameOrPath)
	}

	path := embeddedScriptsDir + nameOrPath + ".yaml"
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	return config.ParseBattleScript(data)
}

// LoadEffects 加载效果配置
// path 为空时使用嵌入的 data/effects.yaml；嵌入资源不可用时退回内置默认值
func LoadEffects(path string) (*config.EffectsConfig, error) {
	if path != "" {
		return config.LoadEffectsConfig(path)
	}

	if !embedded.Exists(EmbeddedEffectsPath) {
		log.Printf("[Loader] Warning: %s not embedded, using built-in effect timings", EmbeddedEffectsPath)
		return config.DefaultEffectsConfig(), nil
	}

	data, err := embedded.ReadFile(EmbeddedEffectsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", EmbeddedEffectsPath, err)
	}
	return config.ParseEffectsConfig(data)
}

// ListScripts 返回嵌入脚本名称
func ListScripts() []string {
	matches, err := embedded.Glob(embeddedScriptsDir + "*.yaml")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(m, embeddedScriptsDir), ".yaml"))
	}
	return names
}

func isYAMLPath(s string) bool {
	return strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}
