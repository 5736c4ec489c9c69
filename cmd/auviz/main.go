// SPDX-License-Identifier: EPL-2.0

// Command auviz plays a local audio file with a 31-band EQ and a live
// terminal visualizer.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ik5/auviz"
	"github.com/ik5/auviz/graph"
	"github.com/ik5/auviz/visual"
)

func main() {
	fftSize := flag.Int("fft", 2048, "analysis window size (256..4096, power of two)")
	smoothing := flag.Float64("smoothing", 0.8, "analyzer smoothing constant [0, 0.99]")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <audio file>\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "formats: %v\n", auviz.DefaultRegistry.Extensions())
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *fftSize, *smoothing); err != nil {
		fmt.Fprintln(os.Stderr, "auviz:", err)
		os.Exit(1)
	}
}

func run(path string, fftSize int, smoothing float64) error {
	elem, err := auviz.OpenElement(path)
	if err != nil {
		return err
	}
	defer elem.Close()

	mgr := graph.NewManager()
	if err := mgr.SetFFTSize(fftSize); err != nil {
		return err
	}
	mgr.SetSmoothing(smoothing)
	mgr.Attach(elem)
	defer mgr.Close()

	m := newModel(elem, mgr)
	prog := tea.NewProgram(m, tea.WithAltScreen())

	loop := visual.NewLoop(
		33*time.Millisecond,
		visual.NewRenderer(visWidth, visHeight),
		func() visual.Analyzer {
			if an := mgr.Analyzer(); an != nil {
				return an
			}
			return nil
		},
		func(frame string) { prog.Send(frameMsg(frame)) },
	)
	loop.Start()
	defer loop.Stop()
	m.loop = loop

	_, err = prog.Run()
	return err
}
