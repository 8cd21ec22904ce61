// Package config loads the application file that sizes the world and paces
// the animation. A default file is compiled into the binary; a path given on
// the command line overrides individual values.
package config

import (
	"fmt"
	"strings"
	"time"

	"kochsnowflake/koch"
)

// MaxIterationsLimit bounds the generation count: 3*4^9 segments is the
// largest curve the renderers are expected to handle.
const MaxIterationsLimit = 9

// Config is the validated application configuration.
type Config struct {
	Title    string
	Subtitle string

	Width   int
	Height  int
	Padding int
	Scale   int

	// ThreadSleepTime is the delay between generations in milliseconds.
	ThreadSleepTime int
	MaxIterations   int
}

// StepDelay returns the pause between two generations.
func (c Config) StepDelay() time.Duration {
	return time.Duration(c.ThreadSleepTime) * time.Millisecond
}

// WindowTitle joins title and subtitle the way the window shows them.
func (c Config) WindowTitle() string {
	if c.Subtitle == "" {
		return c.Title
	}
	return c.Title + " - " + c.Subtitle
}

// Params converts the configuration into session parameters.
func (c Config) Params() koch.Params {
	return koch.Params{
		Width:          c.Width,
		Height:         c.Height,
		Padding:        c.Padding,
		MaxGenerations: c.MaxIterations,
	}
}

// Validate reports the first problem found in c. Values are never clamped.
func (c Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(c.Title) == "" {
		add("view.title is required")
	}
	if c.Width <= 0 {
		add("view.width must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		add("view.height must be positive, got %d", c.Height)
	}
	if c.Padding < 0 {
		add("view.padding must not be negative, got %d", c.Padding)
	} else if c.Width > 0 && c.Height > 0 && 2*c.Padding >= min(c.Width, c.Height) {
		add("view.padding %d leaves no room in a %dx%d world", c.Padding, c.Width, c.Height)
	}
	if c.Scale < 1 {
		add("view.scale must be at least 1, got %d", c.Scale)
	}
	if c.ThreadSleepTime < 0 {
		add("control.threadSleepTime must not be negative, got %d", c.ThreadSleepTime)
	}
	if c.MaxIterations < 0 || c.MaxIterations > MaxIterationsLimit {
		add("control.maxIterations must be within 0..%d, got %d", MaxIterationsLimit, c.MaxIterations)
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", koch.ErrInvalidConfig, strings.Join(problems, "; "))
}
