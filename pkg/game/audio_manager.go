package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音频管理器
// 职责：
//   - 播放合成音效（无音频资源文件）
//   - 从 SettingsManager 读取开关和音量
//   - 缓存每个音效的播放器
type AudioManager struct {
	context         *audio.Context   // 可为 nil（无声模式）
	settingsManager *SettingsManager // 可为 nil，使用默认设置
	players         map[SoundID]*audio.Player
}

// NewAudioManager 创建音频管理器
//
// ebiten 每个进程只允许一个 audio.Context，已存在时直接复用。
//
// 参数：
//   - sm: SettingsManager 实例（可为 nil）
func NewAudioManager(sm *SettingsManager) *AudioManager {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(ToneSampleRate)
	}
	return newAudioManagerWithContext(ctx, sm)
}

// NewSilentAudioManager 创建不发声的音频管理器（无头运行、测试）
func NewSilentAudioManager(sm *SettingsManager) *AudioManager {
	return newAudioManagerWithContext(nil, sm)
}

func newAudioManagerWithContext(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		players:         make(map[SoundID]*audio.Player),
	}
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否实际播放（音效关闭、无声模式或未知音效时返回 false）
func (am *AudioManager) PlaySound(id SoundID) bool {
	if !am.soundEnabled() || am.context == nil {
		return false
	}

	player := am.getPlayer(id)
	if player == nil {
		return false
	}

	player.SetVolume(am.GetSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", id, err)
	}
	player.Play()
	return true
}

// SetSoundVolume 设置音效音量，同时更新已缓存的播放器
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	for _, player := range am.players {
		player.SetVolume(am.GetSoundVolume())
	}
}

// GetSoundVolume 当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return DefaultSettings().SoundVolume
}

// Preload 预先合成音效，避免首次播放卡顿
func (am *AudioManager) Preload(ids ...SoundID) {
	if am.context == nil {
		return
	}
	for _, id := range ids {
		am.getPlayer(id)
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(ids))
}

func (am *AudioManager) soundEnabled() bool {
	if am.settingsManager == nil {
		return true
	}
	return am.settingsManager.GetSettings().SoundEnabled
}

func (am *AudioManager) getPlayer(id SoundID) *audio.Player {
	if player, ok := am.players[id]; ok {
		return player
	}

	pcm := SynthesizeSound(id, am.context.SampleRate())
	if pcm == nil {
		log.Printf("[AudioManager] Warning: Sound not found: %s", id)
		return nil
	}

	player := am.context.NewPlayerFromBytes(pcm)
	am.players[id] = player
	return player
}
