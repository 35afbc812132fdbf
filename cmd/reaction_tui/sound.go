package main

import (
	"log"
	"time"

	"github.com/decker502/toanvui/pkg/reaction"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// toneSpec 一段由若干等长音符组成的提示音
type toneSpec struct {
	freqs  []float64
	step   time.Duration
	square bool // 方波（错误提示），否则正弦波
}

// toneFor 返回事件对应的提示音，不需要发声的事件返回 false
func toneFor(e reaction.Event) (toneSpec, bool) {
	switch e.Type {
	case reaction.EventCountdownTick:
		if e.Countdown > 0 {
			return toneSpec{freqs: []float64{660}, step: 80 * time.Millisecond}, true
		}
		return toneSpec{freqs: []float64{990}, step: 160 * time.Millisecond}, true
	case reaction.EventCaught:
		return toneSpec{freqs: []float64{880, 1320}, step: 60 * time.Millisecond}, true
	case reaction.EventWrongCatch, reaction.EventTargetMissed:
		return toneSpec{freqs: []float64{180}, step: 200 * time.Millisecond, square: true}, true
	case reaction.EventSpeedUp:
		return toneSpec{freqs: []float64{660, 880, 1100}, step: 70 * time.Millisecond}, true
	case reaction.EventGameOver:
		if e.Result.IsNewHighScore {
			return toneSpec{freqs: []float64{660, 880, 1320, 1760}, step: 90 * time.Millisecond}, true
		}
		return toneSpec{freqs: []float64{440, 330, 220}, step: 120 * time.Millisecond}, true
	}
	return toneSpec{}, false
}

// soundPlayer 通过 beep 扬声器播放提示音
type soundPlayer struct {
	enabled bool
}

// newSoundPlayer 初始化扬声器，失败时静音运行
func newSoundPlayer(enabled bool) *soundPlayer {
	p := &soundPlayer{}
	if !enabled {
		return p
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		// 没有音频设备时继续运行
		log.Printf("[Sound] Audio initialization failed: %v", err)
		return p
	}
	p.enabled = true
	return p
}

// playEvent 播放事件对应的提示音
func (p *soundPlayer) playEvent(e reaction.Event) {
	if !p.enabled {
		return
	}
	tone, ok := toneFor(e)
	if !ok {
		return
	}
	if s := tone.streamer(); s != nil {
		speaker.Play(s)
	}
}

// streamer 把音符串成一个流，音量略低于满幅
func (tone toneSpec) streamer() beep.Streamer {
	parts := make([]beep.Streamer, 0, len(tone.freqs))
	for _, freq := range tone.freqs {
		var (
			gen beep.Streamer
			err error
		)
		if tone.square {
			gen, err = generators.SquareTone(sampleRate, freq)
		} else {
			gen, err = generators.SineTone(sampleRate, freq)
		}
		if err != nil {
			log.Printf("[Sound] tone %.0fHz: %v", freq, err)
			continue
		}
		parts = append(parts, beep.Take(sampleRate.N(tone.step), gen))
	}
	if len(parts) == 0 {
		return nil
	}
	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: -2}
}

func (p *soundPlayer) close() {
	if p.enabled {
		speaker.Close()
	}
}
