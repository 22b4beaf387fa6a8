package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GameSettings 本机设置
// 与玩家档案分开保存：档案属于 Player Service，设置只属于这台设备
type GameSettings struct {
	// PlayerID 上次使用的玩家，启动时未指定玩家则沿用
	PlayerID string `yaml:"playerId"`
	// Fullscreen 启动时是否全屏
	Fullscreen bool `yaml:"fullscreen"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *GameSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "device"
)

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
//
// gdataManager 可为 nil（降级模式，仅内存设置）。
// 加载失败不是致命错误，使用默认设置。
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

// Load 从 gdata 加载设置；没有存档时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded GameSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded (player=%q)", loaded.PlayerID)
	return nil
}

// Save 保存设置到 gdata；降级模式下直接返回 nil
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
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// RememberPlayer 记录当前玩家并保存（玩家未变化时不写盘）
func (sm *SettingsManager) RememberPlayer(playerID string) error {
	if playerID == "" || playerID == sm.settings.PlayerID {
		return nil
	}
	sm.settings.PlayerID = playerID
	log.Printf("[SettingsManager] Remember player %q", playerID)
	return sm.Save()
}

// SetFullscreen 记录全屏状态并保存
func (sm *SettingsManager) SetFullscreen(enabled bool) error {
	if sm.settings.Fullscreen == enabled {
		return nil
	}
	sm.settings.Fullscreen = enabled
	return sm.Save()
}
