package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// handleControls processes hotkeys and reports whether the window should close.
//
//	Space   pause / resume
//	N       single generation while paused
//	R       restart from the seed triangle
//	Esc, Q  quit
func (g *Game) handleControls() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && g.paused && !g.session.IsComplete() {
		if err := g.advance(); err != nil {
			g.log.Error("generation.step_failed", "err", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.restart(); err != nil {
			g.log.Error("session.restart_failed", "err", err)
		}
	}
	return false
}
