package game

import (
	"encoding/binary"
	"math"
)

// ToneSampleRate 合成音效使用的采样率
const ToneSampleRate = 44100

// Tone 一段合成音：起止频率之间线性滑音，带淡入淡出包络
type Tone struct {
	StartFreq float64 // 起始频率（Hz）
	EndFreq   float64 // 结束频率（Hz），与起始相同时为单音
	Duration  float64 // 时长（秒）
	Volume    float64 // 峰值音量 0.0 ~ 1.0
}

// SoundID 音效标识
type SoundID string

// 游戏音效
const (
	SoundCatch     SoundID = "catch"
	SoundWrong     SoundID = "wrong"
	SoundCountdown SoundID = "countdown"
	SoundGo        SoundID = "go"
	SoundSpeedUp   SoundID = "speed_up"
	SoundGameOver  SoundID = "game_over"
	SoundNewRecord SoundID = "new_record"
	SoundClick     SoundID = "click"
)

// soundTones 每个音效由一到多段音依次拼接
var soundTones = map[SoundID][]Tone{
	SoundCatch: {
		{StartFreq: 880, EndFreq: 880, Duration: 0.06, Volume: 0.5},
		{StartFreq: 1320, EndFreq: 1320, Duration: 0.09, Volume: 0.5},
	},
	SoundWrong:     {{StartFreq: 220, EndFreq: 160, Duration: 0.35, Volume: 0.6}},
	SoundCountdown: {{StartFreq: 660, EndFreq: 660, Duration: 0.1, Volume: 0.4}},
	SoundGo:        {{StartFreq: 990, EndFreq: 990, Duration: 0.25, Volume: 0.5}},
	SoundSpeedUp:   {{StartFreq: 440, EndFreq: 880, Duration: 0.4, Volume: 0.5}},
	SoundGameOver: {
		{StartFreq: 523, EndFreq: 523, Duration: 0.15, Volume: 0.5},
		{StartFreq: 392, EndFreq: 392, Duration: 0.15, Volume: 0.5},
		{StartFreq: 262, EndFreq: 262, Duration: 0.3, Volume: 0.5},
	},
	SoundNewRecord: {
		{StartFreq: 523, EndFreq: 523, Duration: 0.1, Volume: 0.5},
		{StartFreq: 659, EndFreq: 659, Duration: 0.1, Volume: 0.5},
		{StartFreq: 784, EndFreq: 784, Duration: 0.1, Volume: 0.5},
		{StartFreq: 1047, EndFreq: 1047, Duration: 0.25, Volume: 0.5},
	},
	SoundClick: {{StartFreq: 1200, EndFreq: 1200, Duration: 0.03, Volume: 0.3}},
}

// 淡入淡出时长，避免段首段尾的爆音
const toneFade = 0.005

// SynthesizeTone 生成 16 位小端立体声 PCM（ebiten audio 的原生格式）
func SynthesizeTone(tone Tone, sampleRate int) []byte {
	samples := int(tone.Duration * float64(sampleRate))
	if samples <= 0 {
		return nil
	}

	buf := make([]byte, samples*4)
	volume := math.Max(0, math.Min(1, tone.Volume))
	phase := 0.0
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(sampleRate)
		freq := tone.StartFreq + (tone.EndFreq-tone.StartFreq)*t/tone.Duration

		env := 1.0
		if t < toneFade {
			env = t / toneFade
		}
		if rest := tone.Duration - t; rest < toneFade {
			env = math.Min(env, rest/toneFade)
		}

		v := int16(math.Sin(phase) * env * volume * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))

		phase += 2 * math.Pi * freq / float64(sampleRate)
	}
	return buf
}

// SynthesizeSound 拼接音效的所有段
// 未知音效返回 nil
func SynthesizeSound(id SoundID, sampleRate int) []byte {
	tones, ok := soundTones[id]
	if !ok {
		return nil
	}

	var pcm []byte
	for _, tone := range tones {
		pcm = append(pcm, SynthesizeTone(tone, sampleRate)...)
	}
	return pcm
}
