// Package chime plays a short tone each time the snowflake grows a
// generation. The pitch climbs a pentatonic scale with the generation.
package chime

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	SampleRate = beep.SampleRate(48000)

	baseFreq     = 261.63 // C4
	toneDuration = 220 * time.Millisecond
	toneGain     = 0.25
)

// pentatonic holds the major pentatonic ratios within one octave.
var pentatonic = [...]float64{1, 9.0 / 8, 5.0 / 4, 3.0 / 2, 5.0 / 3}

// Frequency returns the tone for a generation; it rises one scale step per
// generation and wraps into the next octave.
func Frequency(generation int) float64 {
	if generation < 0 {
		generation = 0
	}
	octave := generation / len(pentatonic)
	return baseFreq * pentatonic[generation%len(pentatonic)] * math.Exp2(float64(octave))
}

// tone is a sine oscillator with a linear decay envelope.
type tone struct {
	freq     float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

// Tone returns a streamer that plays freq for d and then ends.
func Tone(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, duration: rate.N(d), rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, i > 0
		}
		env := 1 - float64(t.position)/float64(t.duration)
		val := math.Sin(2*math.Pi*t.phase) * env * toneGain
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// Player mixes generation tones onto the default audio device.
type Player struct {
	mixer *beep.Mixer
}

// NewPlayer opens the audio device.
func NewPlayer() (*Player, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	p := &Player{mixer: &beep.Mixer{}}
	speaker.Play(p.mixer)
	return p, nil
}

// Generation queues the tone for generation g.
func (p *Player) Generation(g int) {
	speaker.Lock()
	p.mixer.Add(Tone(Frequency(g), toneDuration, SampleRate))
	speaker.Unlock()
}

// Close releases the audio device.
func (p *Player) Close() {
	speaker.Clear()
	speaker.Close()
}
