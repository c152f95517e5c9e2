// Command orca runs a grid file: it loads a grid from disk, ticks it at
// a configurable rate, and forwards each tick's output events to MIDI
// audio and/or OSC/UDP transports, optionally rendering the grid live.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"
	getopt "github.com/pborman/getopt/v2"

	"github.com/orcarun/orca/audio"
	"github.com/orcarun/orca/config"
	"github.com/orcarun/orca/engine"
	"github.com/orcarun/orca/gridfile"
	"github.com/orcarun/orca/transport"
	"github.com/orcarun/orca/visualize"
)

func main() {
	optGrid := getopt.StringLong("grid", 'g', "", "Grid file to run")
	optConfig := getopt.StringLong("config", 'c', "orca.cfg", "Preferences file")
	optUDP := getopt.StringLong("udp", 'u', "", "OSC/UDP destination host:port (disabled if empty)")
	optHeadless := getopt.BoolLong("headless", 'H', "Run without a window or audio output")
	optWidth := getopt.IntLong("width", 0, 640, "Window width in pixels")
	optHeight := getopt.IntLong("height", 0, 480, "Window height in pixels")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}
	gridPath := *optGrid
	if gridPath == "" && len(getopt.Args()) > 0 {
		gridPath = getopt.Args()[0]
	}
	if gridPath == "" {
		glog.Exit("orca: a grid file is required (--grid or first argument)")
	}

	grid, err := gridfile.Load(gridPath)
	if err != nil {
		glog.Exitf("orca: loading grid: %v", err)
	}

	cfg, err := config.Load(*optConfig)
	if err != nil {
		glog.Infof("orca: no preferences loaded from %s: %v", *optConfig, err)
		cfg = &config.Config{}
	}
	framesPerSecond := 60
	if v, ok := cfg.Get("fps"); ok {
		if parsed, perr := parsePositiveInt(v); perr == nil {
			framesPerSecond = parsed
		}
	}

	marks := engine.NewMarkPlane(grid.Height, grid.Width)
	bank := engine.NewBank()
	var vars engine.VarSlots
	events := engine.NewEventQueue()

	var udpSink *transport.Sink
	if *optUDP != "" {
		udpSink, err = transport.Dial(*optUDP)
		if err != nil {
			glog.Exitf("orca: dialing udp destination %s: %v", *optUDP, err)
		}
		defer udpSink.Close()
	}

	var synth *audio.Synth
	if !*optHeadless {
		synth = audio.NewSynth()
		if err := synth.Start(); err != nil {
			glog.Errorf("orca: audio disabled: %v", err)
			synth = nil
		} else {
			defer synth.Stop()
		}
	}

	tickNumber := 0
	runTick := func(piano engine.PianoBits) {
		engine.Tick(grid, marks, bank, &vars, events, piano, tickNumber)
		tickNumber++
		out := events.Events()
		if udpSink != nil {
			if err := udpSink.Drain(out); err != nil {
				glog.Warningf("orca: udp send: %v", err)
			}
		}
		if synth != nil {
			transport.DrainMIDI(synth, out)
		}
	}

	if *optHeadless {
		interval := time.Second / time.Duration(framesPerSecond)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			runTick(engine.NoPianoBits)
		}
		return
	}

	if err := visualize.Run(grid, marks, *optWidth, *optHeight, runTick); err != nil {
		glog.Exitf("orca: %v", err)
	}
}

func parsePositiveInt(s string) (int, error) {
	var n int
	if _, err := fmt.Sscan(s, &n); err != nil {
		return 0, err
	}
	if n <= 0 {
		n = 1
	}
	return n, nil
}
