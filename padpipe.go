// This file is part of PadPipe.
//
// PadPipe is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// PadPipe is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with PadPipe.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/padpipe/padpipe/diagnostics"
	"github.com/padpipe/padpipe/hardware/controller"
	"github.com/padpipe/padpipe/hardware/controller/event"
	"github.com/padpipe/padpipe/logger"
	"github.com/padpipe/padpipe/modalflag"
	"github.com/padpipe/padpipe/monitor"
	"github.com/padpipe/padpipe/recorder"
	"github.com/padpipe/padpipe/sdlpad"
	"github.com/padpipe/padpipe/statsview"
	"github.com/padpipe/padpipe/userinput"
	"github.com/padpipe/padpipe/version"
)

// grace period after the last played back event, long enough for any
// timer the classifiers still have in flight to fire.
const playbackGrace = 750 * time.Millisecond

// #mainthread
func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "REPLAY", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "REPLAY":
		err = replay(md)

	case "VERSION":
		vrs, rev, _ := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, vrs, rev)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", md.String(), err)
		os.Exit(20)
	}
}

// run opens the first available game controller and prints the
// classified event stream until the user quits with 'q' or ctrl-c, or
// the controller disconnects.
//
// SDL event servicing happens on the main thread. the keyboard is
// watched from a goroutine.
func run(md *modalflag.Modes) error {
	md.NewMode()

	which := md.AddInt("controller", 0, "which game controller to open")
	record := md.AddBool("record", false, "record raw input to a transcript file")
	transcript := md.AddString("transcript", "transcript.txt", "transcript file to write when recording")
	diag := md.AddString("diag", "", "write a dot graph of the pipeline to file on exit")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run the statsview server (%s)", statsview.Address))
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	mon, err := monitor.NewMonitor(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	ctrl := controller.NewController(controller.DefaultPreferences(), logger.Allow)

	pad, err := sdlpad.NewPad(ctrl, *which)
	if err != nil {
		return err
	}
	defer pad.Destroy()

	if *record {
		f, err := os.Create(*transcript)
		if err != nil {
			return err
		}
		defer f.Close()

		rec, err := recorder.NewRecorder(f)
		if err != nil {
			return err
		}
		pad.Tap(func(ev userinput.Event) {
			if err := rec.RecordEvent(ev); err != nil {
				logger.Logf(logger.Allow, "recorder", "%v", err)
			}
		})
	}

	ctrl.Plug(mon.Sink)
	defer ctrl.Unplug()

	if err := mon.CBreakMode(); err != nil {
		return err
	}
	defer mon.CanonicalMode()

	// 'q' on the keyboard and ctrl-c both end the SDL service loop
	quit := make(chan bool, 1)
	go mon.Service(quit)

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go func() {
		select {
		case <-quit:
		case <-intChan:
		}
		pad.Quit()
	}()

	pad.Service()

	if *diag != "" {
		if err := diagnostics.DumpFile(*diag, ctrl); err != nil {
			return err
		}
	}

	if *record {
		fmt.Println("\r! recording completed")
	}

	return nil
}

// replay feeds a previously recorded transcript through the
// classification pipeline in real time, printing the classified events
// to stdout.
func replay(md *modalflag.Modes) error {
	md.NewMode()

	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("transcript file required for %s mode", md)
	}

	f, err := os.Open(md.GetArg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	plb, err := recorder.NewPlayback(f)
	if err != nil {
		return err
	}

	ctrl := controller.NewController(controller.DefaultPreferences(), logger.Allow)
	ctrl.Plug(func(ev event.Event) {
		if s, ok := ev.(fmt.Stringer); ok {
			fmt.Println(s.String())
		}
	})
	defer ctrl.Unplug()

	// the classifiers run against the wall clock so the transcript must
	// be replayed at its original pace
	start := time.Now()
	for {
		ev, offset, ok := plb.Next()
		if !ok {
			break // for loop
		}
		if d := time.Until(start.Add(offset)); d > 0 {
			time.Sleep(d)
		}
		if userinput.HandleUserInput(ev, ctrl) {
			break // for loop
		}
	}

	// trailing long-hold and double-tap timers may still be pending
	time.Sleep(playbackGrace)

	fmt.Printf("! replayed %s events\n", plb.String())

	return nil
}
