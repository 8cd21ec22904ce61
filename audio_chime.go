package main

import (
	"math"
	"sync"

	"kochsnowflake/chime"
)

// chimeStream is an endless 16-bit stereo PCM source for ebiten's audio
// player. It is silent until Trigger starts a decaying sine tone.
type chimeStream struct {
	mu        sync.Mutex
	rate      int
	freq      float64
	phase     float64
	remaining int
	total     int
}

func newChimeStream(rate int) *chimeStream {
	return &chimeStream{rate: rate}
}

// Trigger starts the tone for generation g, cutting off any tone in progress.
func (s *chimeStream) Trigger(g int) {
	s.mu.Lock()
	s.freq = chime.Frequency(g)
	s.phase = 0
	s.total = int(chimeDuration.Seconds() * float64(s.rate))
	s.remaining = s.total
	s.mu.Unlock()
}

func (s *chimeStream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	// Ensure we generate whole stereo frames (4 bytes per frame).
	frameBytes := len(p) - len(p)%4
	if frameBytes == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < frameBytes; i += 4 {
		var sample float64
		if s.remaining > 0 {
			env := float64(s.remaining) / float64(s.total)
			sample = math.Sin(2*math.Pi*s.phase) * env * chimeGain
			s.phase += s.freq / float64(s.rate)
			s.phase -= math.Floor(s.phase)
			s.remaining--
		}
		v := int16(sample * pcm16MaxValue)
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}
	return frameBytes, nil
}

func (s *chimeStream) Close() error {
	return nil
}
