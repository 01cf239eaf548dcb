package renderer

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/savanna/telemetry"
)

const sampleRate = beep.SampleRate(44100)

// KillSound plays a short tone whenever a predator kills.
type KillSound struct {
	mu          sync.Mutex
	initialized bool
	freq        float64
	duration    time.Duration
	played      int

	openSpeaker func(beep.SampleRate, int) error
}

// NewKillSound creates a silent player. Call Init to open the speaker.
func NewKillSound() *KillSound {
	return &KillSound{freq: 880, duration: 50 * time.Millisecond, openSpeaker: speaker.Init}
}

// Init opens the speaker. Without it OnEvent only counts kills.
func (k *KillSound) Init() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.initialized {
		return nil
	}
	if err := k.openSpeaker(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	k.initialized = true
	return nil
}

// OnEvent is an event handler; it reacts to kills only.
func (k *KillSound) OnEvent(ev telemetry.Event) {
	if ev.Type != telemetry.EventKill {
		return
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.played++
	if !k.initialized {
		return
	}
	sine, err := generators.SineTone(sampleRate, k.freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(k.duration), sine))
}

// Played returns how many kills were heard.
func (k *KillSound) Played() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.played
}
