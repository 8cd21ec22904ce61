package main

import "time"

// Window, pacing and audio constants used by the ebiten driver. World size,
// padding, delay and generation count come from the application file.
const (
	defaultTPS           = 60.0
	maxWindowScale       = 4
	debugOverlayInterval = 500 * time.Millisecond
	audioSampleRate      = 48000
	audioBufferDuration  = 80 * time.Millisecond
	chimeDuration        = 220 * time.Millisecond
	chimeGain            = 0.2
	pcm16MaxValue        = 32767
)
