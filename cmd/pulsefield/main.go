package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pulsefield/audio"
	"github.com/lixenwraith/pulsefield/config"
	"github.com/lixenwraith/pulsefield/core"
	"github.com/lixenwraith/pulsefield/engine"
	"github.com/lixenwraith/pulsefield/parameter"
	"github.com/lixenwraith/pulsefield/render"
)

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	if opts.printConfig {
		if err := config.DefaultTuningConfig().Write(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if logFile := setupLogging(opts.debug); logFile != nil {
		defer logFile.Close()
	}

	tuning := engine.DefaultTuning()
	tick := parameter.TickInterval
	if opts.configPath != "" {
		cfg, err := config.LoadTuningConfig(opts.configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		tuning = cfg.Apply(tuning)
		tick = cfg.GetTickInterval()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	core.RegisterTerminal(screen)
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	// Audio is optional, run silent if the device is unavailable
	audioCfg := audio.LoadConfig()
	if opts.mute {
		audioCfg.Enabled = false
	}
	var sound *audio.ToneSink
	ts := audio.NewToneSink(audioCfg)
	if err := ts.Initialize(); err != nil {
		log.Printf("Audio initialization failed: %v (continuing without audio)", err)
	} else {
		sound = ts
		defer sound.Close()
	}

	seed := opts.seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	log.Printf("session start: seed %d tick %s", seed, tick)

	view := render.Viewport{UnitsPerCol: opts.unitsPerCol, UnitsPerRow: 2 * opts.unitsPerCol, SpotRadius: tuning.SpotRadius}
	a := newApp(screen, tuning, tick, view, sound, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))

	a.loop.Start()
	defer a.loop.Stop()

	// Input polling interacts directly with the terminal, events are handed to the loop
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			a.post(ev)
		}
	})

	<-a.quit
	a.loop.Stop()
	log.Printf("session end: %d spots, %d ticks", a.field.Spots.Len(), a.loop.Ticks())
}
