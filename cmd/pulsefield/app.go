package main

import (
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pulsefield/audio"
	"github.com/lixenwraith/pulsefield/engine"
	"github.com/lixenwraith/pulsefield/input"
	"github.com/lixenwraith/pulsefield/render"
)

// app wires one session to a terminal
// handle and frame run on the loop goroutine only
type app struct {
	screen tcell.Screen
	field  *engine.Field
	canvas *render.Canvas
	ctrl   *input.Controller
	loop   *engine.Loop
	sound  *audio.ToneSink // nil when audio is unavailable

	quit     chan struct{}
	quitOnce sync.Once
}

func newApp(screen tcell.Screen, tuning engine.Tuning, tick time.Duration, view render.Viewport, sound *audio.ToneSink, rng *rand.Rand) *app {
	w, h := screen.Size()
	a := &app{
		screen: screen,
		canvas: render.NewCanvas(view, w, h),
		sound:  sound,
		quit:   make(chan struct{}),
	}

	collab := engine.Collaborators{Renderer: a.canvas}
	if sound != nil {
		collab.Audio = sound
	}
	a.field = engine.NewField(tuning, collab)
	a.ctrl = input.NewController(a.field, view, nil, rng)
	a.loop = engine.NewLoop(a.field.Step, a.frame, tick)
	return a
}

// post hands a terminal event to the loop goroutine
func (a *app) post(ev tcell.Event) {
	if !a.loop.Post(func() { a.handle(ev) }) {
		log.Printf("event dropped: loop stopped or queue full")
	}
}

func (a *app) handle(ev tcell.Event) {
	in := a.ctrl.HandleEvent(ev)
	if in == nil {
		return
	}

	switch in.Type {
	case input.IntentQuit:
		a.requestQuit()
	case input.IntentClearPulses:
		a.field.Pulses.Reset()
	case input.IntentClearField:
		a.field.Pulses.Reset()
		a.field.Spots.Clear()
		a.ctrl.Reset()
	case input.IntentTogglePause:
		a.loop.SetPaused(!a.loop.Paused())
	case input.IntentToggleMute:
		if a.sound != nil {
			a.sound.ToggleMute()
		}
	case input.IntentResize:
		a.canvas.Resize(in.X, in.Y)
		a.screen.Sync()
	}
}

func (a *app) frame() {
	spots := a.field.Spots.Spots()
	if id, pos, ok := a.ctrl.Dragging(); ok {
		for i := range spots {
			if spots[i].ID == id {
				spots[i].Position = pos
			}
		}
	}
	a.canvas.Draw(a.screen, spots, a.status())
}

func (a *app) status() render.Status {
	st := render.Status{
		Spots:  a.field.Spots.Len(),
		Active: a.field.Spots.ActiveCount(),
		Pulses: a.field.Pulses.Len(),
		Ticks:  a.loop.Ticks(),
		Paused: a.loop.Paused(),
		Muted:  a.sound == nil || a.sound.IsMuted(),
	}
	if a.sound != nil {
		st.Audio = true
		st.Voices = a.sound.Voices()
		st.Played, st.Dropped = a.sound.Stats()
	}
	return st
}

func (a *app) requestQuit() {
	a.quitOnce.Do(func() { close(a.quit) })
}
