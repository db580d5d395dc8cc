package main

import (
	"bytes"
	"flag"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pulsefield/audio"
	"github.com/lixenwraith/pulsefield/engine"
	"github.com/lixenwraith/pulsefield/parameter"
	"github.com/lixenwraith/pulsefield/render"
)

func newTestApp(t *testing.T) (*app, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	a := newApp(screen, engine.DefaultTuning(), parameter.TickInterval, render.DefaultViewport(), nil, rand.New(rand.NewPCG(1, 2)))
	return a, screen
}

func bottomLine(screen tcell.SimulationScreen) string {
	w, h := screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, h-1)
		sb.WriteRune(r)
	}
	return sb.String()
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestAppPlaceHoverAndClear(t *testing.T) {
	a, _ := newTestApp(t)

	a.handle(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	a.handle(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone))
	require.Equal(t, 1, a.field.Spots.Len())

	a.handle(tcell.NewEventMouse(40, 20, tcell.ButtonNone, tcell.ModNone))
	a.handle(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone))
	require.Equal(t, 1, a.field.Pulses.Len())
	assert.Equal(t, 1, a.canvas.Rings())

	a.handle(key('c'))
	assert.Equal(t, 0, a.field.Pulses.Len())
	assert.Equal(t, 0, a.canvas.Rings())
	assert.Equal(t, 1, a.field.Spots.Len())
}

func TestAppClearField(t *testing.T) {
	a, _ := newTestApp(t)

	a.handle(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	a.handle(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone))
	a.handle(tcell.NewEventMouse(30, 5, tcell.Button1, tcell.ModNone))
	a.handle(tcell.NewEventMouse(30, 5, tcell.ButtonNone, tcell.ModNone))
	a.handle(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone))
	require.Equal(t, 2, a.field.Spots.Len())
	require.Equal(t, 1, a.field.Pulses.Len())

	// Grab a spot, then clear while it is held
	a.handle(tcell.NewEventMouse(30, 5, tcell.Button1, tcell.ModNone))
	_, _, held := a.ctrl.Dragging()
	require.True(t, held)

	a.handle(tcell.NewEventKey(tcell.KeyRune, 'C', tcell.ModNone))
	assert.Equal(t, 0, a.field.Spots.Len())
	assert.Equal(t, 0, a.field.Index.Len())
	assert.Equal(t, 0, a.field.Pulses.Len())
	assert.Equal(t, 0, a.canvas.Rings())
	_, _, held = a.ctrl.Dragging()
	assert.False(t, held)

	// Field is usable again
	a.handle(tcell.NewEventMouse(30, 5, tcell.ButtonNone, tcell.ModNone))
	a.handle(tcell.NewEventMouse(20, 5, tcell.Button1, tcell.ModNone))
	assert.Equal(t, 1, a.field.Spots.Len())
}

func TestAppStatusShowsAudio(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 24)

	// Never initialized, so plays are refused and nothing is counted
	sound := audio.NewToneSink(audio.DefaultConfig())
	a := newApp(screen, engine.DefaultTuning(), parameter.TickInterval, render.DefaultViewport(), sound, rand.New(rand.NewPCG(1, 2)))

	st := a.status()
	assert.True(t, st.Audio)
	assert.False(t, st.Muted)
	assert.Equal(t, 0, st.Voices)

	a.frame()
	assert.Contains(t, bottomLine(screen), "voices 0  played 0  dropped 0")

	a.handle(key('m'))
	assert.True(t, a.status().Muted)
}

func TestAppPauseAndMute(t *testing.T) {
	a, _ := newTestApp(t)

	a.handle(key(' '))
	assert.True(t, a.loop.Paused())
	a.handle(key(' '))
	assert.False(t, a.loop.Paused())

	// No audio device: mute is a no-op and the status reports silence
	a.handle(key('m'))
	assert.True(t, a.status().Muted)
}

func TestAppQuit(t *testing.T) {
	for _, ev := range []tcell.Event{key('q'), tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)} {
		a, _ := newTestApp(t)
		a.handle(ev)
		select {
		case <-a.quit:
		default:
			t.Fatalf("%T did not request quit", ev)
		}
		// Second request must not panic on a closed channel
		a.requestQuit()
	}
}

func TestAppFrame(t *testing.T) {
	a, screen := newTestApp(t)

	a.handle(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	a.handle(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone))
	a.frame()

	r, _, _, _ := screen.GetContent(10, 5)
	assert.Equal(t, parameter.GlyphSpot, r)
	assert.Contains(t, bottomLine(screen), "spots 1  active 1  pulses 0")

	// Held spot follows the pointer
	a.handle(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	a.handle(tcell.NewEventMouse(20, 8, tcell.Button1, tcell.ModNone))
	a.frame()

	r, _, _, _ = screen.GetContent(20, 8)
	assert.Equal(t, parameter.GlyphSpot, r)
	r, _, _, _ = screen.GetContent(10, 5)
	assert.Equal(t, ' ', r)
	assert.Contains(t, bottomLine(screen), "spots 1  active 0")
}

func TestAppResize(t *testing.T) {
	a, screen := newTestApp(t)

	screen.SetSize(100, 30)
	a.handle(tcell.NewEventResize(100, 30))
	w, h := a.canvas.Buffer().Size()
	assert.Equal(t, 100, w)
	assert.Equal(t, 30, h)
}

func TestAppStepCascade(t *testing.T) {
	a, _ := newTestApp(t)
	s1, err := a.field.Spots.Place(render.DefaultViewport().ToPlane(10, 5), 0)
	require.NoError(t, err)
	_, err = a.field.Spots.Place(render.DefaultViewport().ToPlane(20, 5), 1)
	require.NoError(t, err)

	_, err = a.field.Spots.Fire(s1.ID, 1)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		a.field.Step()
	}
	assert.Equal(t, 2, a.field.Pulses.Len())
	assert.Equal(t, 2, a.canvas.Rings())
}

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"-debug", "-mute", "-seed", "42", "-units-per-col", "2.5", "-config", "t.json"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, options{configPath: "t.json", debug: true, mute: true, seed: 42, unitsPerCol: 2.5}, o)

	o, err = parseFlags(nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, parameter.UnitsPerColumn, o.unitsPerCol)

	var out bytes.Buffer
	_, err = parseFlags([]string{"-units-per-col", "0"}, &out)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "units-per-col must be positive")
	assert.Contains(t, out.String(), "-print-config", "usage follows the error")

	out.Reset()
	_, err = parseFlags([]string{"-bogus"}, &out)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, out.String(), "bogus")

	_, err = parseFlags([]string{"-h"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, flag.ErrHelp)

	o, err = parseFlags([]string{"-print-config"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, o.printConfig)
}
