package main

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"kochsnowflake/config"
	"kochsnowflake/koch"
	"kochsnowflake/raster"
)

// Game drives one snowflake session inside the ebiten loop: Update paces the
// generations, Draw shows the last rasterized frame.
type Game struct {
	cfg config.Config
	log *slog.Logger

	session *koch.Session

	stepTimer int
	stepTicks int
	paused    bool

	frame      *raster.Frame
	frameDirty bool
	raster     rasterizer
	lastRaster time.Duration

	debug       bool
	overlayText string
	overlayAt   time.Time

	audioCtx    *audio.Context
	audioStream *chimeStream
	audioPlayer *audio.Player
}

// newGame constructs a fully initialized Game instance.
func newGame(cfg config.Config, log *slog.Logger, r rasterizer, debug bool) (*Game, error) {
	session, err := koch.NewSession(cfg.Params())
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	g := &Game{
		cfg:        cfg,
		log:        log,
		session:    session,
		stepTicks:  stepTicksFor(cfg.StepDelay()),
		frame:      raster.NewFrame(cfg.Width, cfg.Height),
		frameDirty: true,
		raster:     r,
		debug:      debug,
	}
	return g, nil
}

// enableSound starts the generation chime on ebiten's audio context.
func (g *Game) enableSound() {
	ctx := audio.NewContext(audioSampleRate)
	stream := newChimeStream(audioSampleRate)
	player, err := ctx.NewPlayer(stream)
	if err != nil {
		g.log.Warn("audio.player_failed", "err", err)
		return
	}
	player.SetBufferSize(audioBufferDuration)
	player.Play()
	g.audioCtx = ctx
	g.audioStream = stream
	g.audioPlayer = player
}

// stepTicksFor converts the configured delay into update ticks; a generation
// never advances more than once per tick.
func stepTicksFor(delay time.Duration) int {
	ticks := int(math.Round(delay.Seconds() * defaultTPS))
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

// Update handles input, advances the session when its timer fires and
// re-rasterizes the curve after every change.
func (g *Game) Update() error {
	if quit := g.handleControls(); quit {
		return ebiten.Termination
	}
	if err := g.tick(); err != nil {
		return err
	}
	return g.refreshFrame()
}

// tick counts update ticks and steps the session every stepTicks of them.
func (g *Game) tick() error {
	if g.paused || g.session.IsComplete() {
		return nil
	}
	g.stepTimer++
	if g.stepTimer < g.stepTicks {
		return nil
	}
	g.stepTimer = 0
	return g.advance()
}

// advance grows the curve by one generation.
func (g *Game) advance() error {
	st, err := g.session.Step()
	if err != nil {
		return fmt.Errorf("advancing generation: %w", err)
	}
	g.frameDirty = true
	g.log.Debug("generation.advanced", "generation", st.Generation, "segments", g.session.Len())
	if g.audioStream != nil {
		g.audioStream.Trigger(st.Generation)
	}
	if st.Complete {
		g.log.Info("generation.complete", "generation", st.Generation, "segments", g.session.Len())
	}
	return nil
}

// restart replaces the session with a fresh seed triangle.
func (g *Game) restart() error {
	session, err := koch.NewSession(g.cfg.Params())
	if err != nil {
		return fmt.Errorf("restarting session: %w", err)
	}
	g.session = session
	g.stepTimer = 0
	g.frameDirty = true
	g.log.Debug("session.restarted")
	return nil
}

// refreshFrame rasterizes a snapshot of the boundary when it changed.
func (g *Game) refreshFrame() error {
	if !g.frameDirty {
		return nil
	}
	segs, err := g.session.Segments()
	if err != nil {
		return err
	}
	start := time.Now()
	if err := g.raster.Rasterize(segs, g.frame); err != nil {
		return fmt.Errorf("rasterizing with %s: %w", g.raster.Name(), err)
	}
	g.lastRaster = time.Since(start)
	g.frameDirty = false
	return nil
}

// close releases the rasterizer and audio.
func (g *Game) close() {
	if g.audioPlayer != nil {
		_ = g.audioPlayer.Close()
	}
	if g.raster != nil {
		g.raster.Close()
	}
}
