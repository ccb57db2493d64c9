// Package sound plays a short click whenever a key is pressed.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/soar/GamepadKeyMouse/internal/keys"
)

const (
	sampleRate    = beep.SampleRate(44100)
	clickFreq     = 1800.0
	clickDuration = 25 * time.Millisecond
	clickVolume   = 0.3
)

// Clicker owns the speaker and mixes clicks into it.
type Clicker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewClicker() *Clicker {
	return &Clicker{mixer: &beep.Mixer{}}
}

// Init opens the audio device.
func (c *Clicker) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return errors.Wrap(err, "init speaker")
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Click queues one click. It never blocks the caller on audio.
func (c *Clicker) Click(keys.Token) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Add(newClick(sampleRate, clickFreq, clickDuration))
	speaker.Unlock()
}

// Close silences pending clicks and releases the audio device.
func (c *Clicker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	c.initialized = false
}

// click is an exponentially decaying sine burst.
type click struct {
	freq     float64
	rate     beep.SampleRate
	length   int
	position int
}

func newClick(rate beep.SampleRate, freq float64, d time.Duration) *click {
	return &click{freq: freq, rate: rate, length: rate.N(d)}
}

func (c *click) Stream(samples [][2]float64) (n int, ok bool) {
	if c.position >= c.length {
		return 0, false
	}
	for i := range samples {
		if c.position >= c.length {
			return i, true
		}
		t := float64(c.position) / float64(c.rate)
		env := math.Exp(-5 * float64(c.position) / float64(c.length))
		v := clickVolume * env * math.Sin(2*math.Pi*c.freq*t)
		samples[i][0] = v
		samples[i][1] = v
		c.position++
	}
	return len(samples), true
}

func (c *click) Err() error { return nil }
