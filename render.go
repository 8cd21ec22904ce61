package main

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Draw writes the last rasterized frame and the optional debug overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	if len(g.frame.Pix) == g.cfg.Width*g.cfg.Height*4 {
		screen.WritePixels(g.frame.Pix)
	}

	if g.debug {
		if now := time.Now(); now.Sub(g.overlayAt) >= debugOverlayInterval {
			g.overlayText = g.overlay()
			g.overlayAt = now
		}
		ebitenutil.DebugPrint(screen, g.overlayText)
	}
}

// overlay formats the debug text. It is rebuilt at most every
// debugOverlayInterval so the numbers stay readable.
func (g *Game) overlay() string {
	st := g.session.Status()
	state := "growing"
	switch {
	case st.Complete:
		state = "complete"
	case g.paused:
		state = "paused"
	}
	return fmt.Sprintf("FPS: %.1f  TPS: %.1f\nGeneration: %d/%d (%s)\nSegments: %d\nRaster: %s %.2f ms",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		st.Generation, g.cfg.MaxIterations, state,
		g.session.Len(),
		g.raster.Name(), g.lastRaster.Seconds()*1000)
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return g.cfg.Width, g.cfg.Height }
