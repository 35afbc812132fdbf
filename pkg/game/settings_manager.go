package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GameSettings 全局游戏设置（设备级，不区分玩家）
type GameSettings struct {
	// 音效
	SoundEnabled bool    `yaml:"soundEnabled"` // 音效开关
	SoundVolume  float64 `yaml:"soundVolume"`  // 音效音量 0.0 ~ 1.0

	// 显示
	Fullscreen     bool `yaml:"fullscreen"`     // 启动时是否全屏
	ShowLaneGuides bool `yaml:"showLaneGuides"` // 是否绘制车道分隔线
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		SoundEnabled:   true,
		SoundVolume:    0.8,
		Fullscreen:     false,
		ShowLaneGuides: true,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *GameSettings
}

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式）
//
// 返回：
//   - *SettingsManager: 设置管理器实例，总是可用
//   - error: 读取存档失败的原因；此时实例使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		return sm, fmt.Errorf("load settings: %w", err)
	}
	return sm, nil
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或尚未保存过时使用默认设置；读取失败时同样回退默认值并返回错误
func (sm *SettingsManager) Load() error {
	loaded, err := sm.readStored()
	if err != nil || loaded == nil {
		sm.settings = DefaultSettings()
		return err
	}
	sm.settings = loaded
	log.Printf("[SettingsManager] 已加载设置 (sound=%v volume=%.2f)", loaded.SoundEnabled, loaded.SoundVolume)
	return nil
}

// readStored 读取存档，没有存档时返回 nil, nil
func (sm *SettingsManager) readStored() (*GameSettings, error) {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil, nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	// 以默认值为底，旧版本存档缺少的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)
	return loaded, nil
}

// Save 保存设置到 gdata
// 降级模式下直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	log.Printf("[SettingsManager] 设置已保存")
	return nil
}

// GetSettings 获取当前设置（返回内部实例，修改后需调用 Save 持久化）
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetSoundVolume 设置音效音量，限制在 0.0 ~ 1.0
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetSoundEnabled 设置音效开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// ToggleSound 切换音效开关并返回新状态
func (sm *SettingsManager) ToggleSound() bool {
	sm.settings.SoundEnabled = !sm.settings.SoundEnabled
	return sm.settings.SoundEnabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetShowLaneGuides 设置是否绘制车道分隔线
func (sm *SettingsManager) SetShowLaneGuides(enabled bool) {
	sm.settings.ShowLaneGuides = enabled
}

func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
