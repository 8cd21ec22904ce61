package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"kochsnowflake/config"
	"kochsnowflake/export"
	"kochsnowflake/koch"
	"kochsnowflake/raster"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	cfg.Width, cfg.Height, cfg.Padding = 200, 160, 10
	cfg.ThreadSleepTime = 50
	cfg.MaxIterations = 2
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	cfg := testConfig(t)
	g, err := newGame(cfg, discardLogger(), newCPURasterizer(export.DefaultPalette.Table()), false)
	if err != nil {
		t.Fatalf("newGame: %v", err)
	}
	t.Cleanup(g.close)
	return g
}

func TestStepTicksFor(t *testing.T) {
	tests := []struct {
		delay time.Duration
		want  int
	}{
		{0, 1},
		{5 * time.Millisecond, 1},
		{50 * time.Millisecond, 3},
		{250 * time.Millisecond, 15},
		{time.Second, 60},
	}
	for _, tt := range tests {
		if got := stepTicksFor(tt.delay); got != tt.want {
			t.Errorf("stepTicksFor(%v) = %d, want %d", tt.delay, got, tt.want)
		}
	}
}

func TestGameTickPacesGenerations(t *testing.T) {
	g := newTestGame(t)
	if g.stepTicks != 3 {
		t.Fatalf("expected 3 ticks per generation, got %d", g.stepTicks)
	}
	for i := 0; i < 2; i++ {
		if err := g.tick(); err != nil {
			t.Fatalf("tick: %v", err)
		}
	}
	if gen := g.session.Status().Generation; gen != 0 {
		t.Fatalf("generation advanced early: %d", gen)
	}
	if err := g.tick(); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if gen := g.session.Status().Generation; gen != 1 {
		t.Fatalf("expected generation 1, got %d", gen)
	}

	for i := 0; i < 30; i++ {
		if err := g.tick(); err != nil {
			t.Fatalf("tick: %v", err)
		}
	}
	st := g.session.Status()
	if !st.Complete || st.Generation != 2 {
		t.Fatalf("expected complete at generation 2, got %+v", st)
	}
	if g.session.Len() != 48 {
		t.Fatalf("expected 48 segments, got %d", g.session.Len())
	}
}

func TestGamePausedHoldsGeneration(t *testing.T) {
	g := newTestGame(t)
	g.paused = true
	for i := 0; i < 10; i++ {
		if err := g.tick(); err != nil {
			t.Fatalf("tick: %v", err)
		}
	}
	if gen := g.session.Status().Generation; gen != 0 {
		t.Fatalf("paused game advanced to generation %d", gen)
	}
	if err := g.advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if gen := g.session.Status().Generation; gen != 1 {
		t.Fatalf("single step: expected generation 1, got %d", gen)
	}
}

func TestGameRestart(t *testing.T) {
	g := newTestGame(t)
	if err := g.advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	old := g.session
	g.frameDirty = false
	if err := g.restart(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if g.session == old {
		t.Fatalf("restart kept the old session")
	}
	if st := g.session.Status(); st.Generation != 0 || g.session.Len() != 3 {
		t.Fatalf("restart did not reseed: %+v, %d segments", st, g.session.Len())
	}
	if !g.frameDirty {
		t.Fatalf("restart should mark the frame dirty")
	}
}

func TestGameRefreshFrame(t *testing.T) {
	g := newTestGame(t)
	if err := g.refreshFrame(); err != nil {
		t.Fatalf("refreshFrame: %v", err)
	}
	if g.frameDirty {
		t.Fatalf("frame still dirty after refresh")
	}
	if c := g.frame.At(10, 150); c == backgroundColor {
		t.Fatalf("seed corner not drawn")
	}
	if c := g.frame.At(100, 100); c != backgroundColor {
		t.Fatalf("interior pixel drawn: %v", c)
	}
}

func TestCPURasterizerClearsFrame(t *testing.T) {
	r := newCPURasterizer(export.DefaultPalette.Table())
	defer r.Close()
	frame := raster.NewFrame(20, 20)
	segs := []koch.Vector{koch.VectorOf(koch.Pt(1, 1), koch.Pt(18, 1))}
	if err := r.Rasterize(segs, frame); err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	if frame.At(1, 1) == backgroundColor || frame.At(18, 1) == backgroundColor {
		t.Fatalf("segment endpoints not plotted")
	}
	if err := r.Rasterize(nil, frame); err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	if frame.At(1, 1) != backgroundColor {
		t.Fatalf("frame not cleared between passes")
	}
}

func TestSelectRasterizerDefaultsToCPU(t *testing.T) {
	r := selectRasterizer(discardLogger(), false, 10, 10, export.DefaultPalette.Table())
	defer r.Close()
	if r.Name() != "cpu" {
		t.Fatalf("expected cpu rasterizer, got %s", r.Name())
	}
}

func TestChimeStreamSilentUntilTriggered(t *testing.T) {
	s := newChimeStream(audioSampleRate)
	buf := make([]byte, 4*64+3)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != 4*64 {
		t.Fatalf("expected whole frames only, got %d bytes", n)
	}
	for i := 0; i < n; i++ {
		if buf[i] != 0 {
			t.Fatalf("expected silence, byte %d = %d", i, buf[i])
		}
	}

	s.Trigger(1)
	n, _ = s.Read(buf)
	var loud bool
	for i := 0; i < n; i += 4 {
		l := int16(binary.LittleEndian.Uint16(buf[i:]))
		r := int16(binary.LittleEndian.Uint16(buf[i+2:]))
		if l != r {
			t.Fatalf("frame %d: channels differ (%d, %d)", i/4, l, r)
		}
		if l != 0 {
			loud = true
		}
	}
	if !loud {
		t.Fatalf("expected a tone after Trigger")
	}
}

func TestChimeStreamDecaysToSilence(t *testing.T) {
	s := newChimeStream(audioSampleRate)
	s.Trigger(3)
	total := int(chimeDuration.Seconds()*audioSampleRate) * 4
	buf := make([]byte, total)
	if _, err := s.Read(buf); err != nil {
		t.Fatalf("read: %v", err)
	}
	tail := make([]byte, 256)
	if _, err := s.Read(tail); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(tail, make([]byte, len(tail))) {
		t.Fatalf("tone still audible after %v", chimeDuration)
	}
}

func TestWriteExport(t *testing.T) {
	cfg := testConfig(t)

	t.Run("png", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeExport(&buf, cfg, "png", 1); err != nil {
			t.Fatalf("writeExport: %v", err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if img.Bounds() != image.Rect(0, 0, cfg.Width, cfg.Height) {
			t.Fatalf("unexpected bounds %v", img.Bounds())
		}
	})

	t.Run("svg", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeExport(&buf, cfg, "svg", -1); err != nil {
			t.Fatalf("writeExport: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "<svg") || strings.Count(out, "<path") != 1 {
			t.Fatalf("unexpected svg output:\n%s", out)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		err := writeExport(io.Discard, cfg, "gif", 1)
		if !errors.Is(err, koch.ErrInvalidConfig) {
			t.Fatalf("expected invalid config, got %v", err)
		}
	})

	t.Run("too many generations", func(t *testing.T) {
		err := writeExport(io.Discard, cfg, "svg", config.MaxIterationsLimit+1)
		if !errors.Is(err, koch.ErrInvalidConfig) {
			t.Fatalf("expected invalid config, got %v", err)
		}
	})
}

func TestSetupRejectsOversizedScale(t *testing.T) {
	if _, _, err := setup(globalOptions{logFormat: "text"}, maxWindowScale+1); err == nil {
		t.Fatalf("expected an error for scale %d", maxWindowScale+1)
	}
	cfg, _, err := setup(globalOptions{logFormat: "text"}, 2)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if cfg.Scale != 2 {
		t.Fatalf("expected scale 2, got %d", cfg.Scale)
	}
}
