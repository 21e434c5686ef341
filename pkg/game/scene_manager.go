package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 按对战脚本名称创建场景
// 由 main 注入，避免 game 包依赖 scenes 包
type SceneFactory func(scriptName string) (Scene, error)

// SceneManager 控制当前活动场景
// 任一时刻只有一个场景的 Update 和 Draw 被调用
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 切换到 scene；旧场景实现 Closer 时先收尾
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene != nil && sm.currentScene != scene {
		sm.closeCurrent()
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// LoadScript 创建并切换到指定脚本的对战场景
// 创建失败时保留当前场景，返回 false
func (sm *SceneManager) LoadScript(scriptName string) bool {
	log.Printf("[SceneManager] Loading script: %s", scriptName)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: SceneFactory not set")
		return false
	}

	newScene, err := sm.sceneFactory(scriptName)
	if err != nil {
		log.Printf("[SceneManager] Error: failed to create scene for %s: %v", scriptName, err)
		return false
	}

	sm.SwitchTo(newScene)
	log.Printf("[SceneManager] Switched to script: %s", scriptName)
	return true
}

// Close 收尾当前场景（程序退出时调用）
func (sm *SceneManager) Close() {
	sm.closeCurrent()
}

func (sm *SceneManager) closeCurrent() {
	closer, ok := sm.currentScene.(Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		log.Printf("[SceneManager] Warning: scene close failed: %v", err)
	}
}

// Update 更新当前场景，没有活动场景时什么也不做
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
