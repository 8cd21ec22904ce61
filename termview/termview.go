// Package termview animates the snowflake in a terminal.
package termview

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"kochsnowflake/export"
	"kochsnowflake/koch"
	"kochsnowflake/logger"
	"kochsnowflake/raster"
)

const (
	frameInterval = 33 * time.Millisecond
	curveRune     = '█'
)

// Notifier is told about every new generation.
type Notifier interface {
	Generation(g int)
}

// Options configure a Viewer.
type Options struct {
	Params    koch.Params
	StepDelay time.Duration
	Title     string
	Palette   export.Palette
	Logger    *slog.Logger
	// Chime is optional.
	Chime Notifier
}

// Viewer owns one session and draws it onto a tcell screen.
type Viewer struct {
	screen   tcell.Screen
	opts     Options
	colors   []tcell.Style
	session  *koch.Session
	paused   bool
	lastStep time.Time
}

// New builds the session and prepares the viewer. The screen must already be
// initialized.
func New(screen tcell.Screen, opts Options) (*Viewer, error) {
	if opts.Logger == nil {
		opts.Logger = logger.L()
	}
	session, err := koch.NewSession(opts.Params)
	if err != nil {
		return nil, err
	}
	table := opts.Palette.Table()
	colors := make([]tcell.Style, len(table))
	for i, c := range table {
		colors[i] = tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}
	return &Viewer{screen: screen, opts: opts, colors: colors, session: session}, nil
}

// Run opens the terminal, animates until the user quits, and restores the
// terminal on return.
func Run(opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer screen.Fini()

	v, err := New(screen, opts)
	if err != nil {
		return err
	}
	return v.loop()
}

func (v *Viewer) loop() error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	v.Draw()
	for {
		select {
		case ev := <-eventChan:
			if !v.HandleEvent(ev) {
				return nil
			}
			v.Draw()
		case now := <-ticker.C:
			stepped, err := v.Tick(now)
			if err != nil {
				return err
			}
			if stepped {
				v.Draw()
			}
		}
	}
}

// Tick advances one generation once the step delay has passed since the last
// one. It reports whether the curve changed.
func (v *Viewer) Tick(now time.Time) (bool, error) {
	if v.paused || v.session.IsComplete() {
		return false, nil
	}
	if !v.lastStep.IsZero() && now.Sub(v.lastStep) < v.opts.StepDelay {
		return false, nil
	}
	return true, v.step(now)
}

func (v *Viewer) step(now time.Time) error {
	st, err := v.session.Step()
	if err != nil {
		return fmt.Errorf("advancing generation: %w", err)
	}
	v.lastStep = now
	v.opts.Logger.Debug("generation.advanced", "generation", st.Generation, "segments", v.session.Len())
	if v.opts.Chime != nil {
		v.opts.Chime.Generation(st.Generation)
	}
	if st.Complete {
		v.opts.Logger.Info("generation.complete", "generation", st.Generation, "segments", v.session.Len())
	}
	return nil
}

// HandleEvent applies a key or resize event. It returns false when the user
// asked to quit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.paused = !v.paused
			case 'n':
				if v.paused && !v.session.IsComplete() {
					if err := v.step(time.Now()); err != nil {
						v.opts.Logger.Error("generation.step_failed", "err", err)
					}
				}
			case 'r':
				v.restart()
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) restart() {
	session, err := koch.NewSession(v.opts.Params)
	if err != nil {
		v.opts.Logger.Error("session.restart_failed", "err", err)
		return
	}
	v.session = session
	v.lastStep = time.Time{}
	v.opts.Logger.Debug("session.restarted")
}

// Paused reports whether automatic stepping is suspended.
func (v *Viewer) Paused() bool {
	return v.paused
}

// Status returns the state of the current session.
func (v *Viewer) Status() koch.Status {
	return v.session.Status()
}

// Draw renders the curve scaled to the screen with a status line beneath it.
func (v *Viewer) Draw() {
	v.screen.Clear()
	cols, rows := v.screen.Size()
	if cols < 2 || rows < 3 {
		v.screen.Show()
		return
	}

	segs, err := v.session.Segments()
	if err != nil {
		v.opts.Logger.Error("session.segments_failed", "err", err)
		return
	}

	b := export.Bounds(segs)
	bw, bh := b.Width(), b.Height()
	if bw == 0 {
		bw = 1
	}
	if bh == 0 {
		bh = 1
	}
	plotRows := rows - 1
	sx := float64(cols-1) / bw
	sy := float64(plotRows-1) / bh
	cell := func(p koch.Point) (int, int) {
		x := int((float64(p.X) - b.Min.X) * sx)
		y := int((float64(p.Y) - b.Min.Y) * sy)
		return raster.ClampCoord(x, 0, cols-1), raster.ClampCoord(y, 0, plotRows-1)
	}

	for i, s := range segs {
		style := v.colors[i%len(v.colors)]
		x0, y0 := cell(s.Start)
		x1, y1 := cell(s.End)
		raster.Line(x0, y0, x1, y1, func(x, y int) {
			v.screen.SetContent(x, y, curveRune, nil, style)
		})
	}

	v.drawStatus(rows-1, cols)
	v.screen.Show()
}

func (v *Viewer) drawStatus(row, cols int) {
	st := v.session.Status()
	state := "growing"
	switch {
	case st.Complete:
		state = "complete"
	case v.paused:
		state = "paused"
	}
	text := fmt.Sprintf("%s  gen %d/%d  segments %d  %s  [space] pause [n] step [r] restart [q] quit",
		v.opts.Title, st.Generation, v.opts.Params.MaxGenerations, v.session.Len(), state)
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range text {
		if x >= cols {
			break
		}
		v.screen.SetContent(x, row, r, nil, style)
		x++
	}
}
