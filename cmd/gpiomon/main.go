// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// A clone of libgpiod gpiomon.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/warthog618/go-gpioline"
	"github.com/warthog618/go-gpioline/internal/cli"
)

var command = cli.Command{
	Name:    "gpiomon",
	Args:    "<chip> <offset1>...",
	Summary: "Wait for events on GPIO lines and print them to standard output.",
	Options: []cli.Option{
		{Short: 'l', Name: "active-low", IsBool: true, Usage: "treat the lines as active low"},
		{Short: 'n', Name: "num-events", Arg: "num", Usage: "exit after processing num events"},
		{Short: 'e', Name: "edge", Arg: "edge", Usage: "the edges to detect: rising, falling or both", Default: "both"},
		{Short: 'b', Name: "bias", Arg: "bias", Usage: "the line bias: pull-up, pull-down or disable", Default: "disable"},
		{Short: 'p', Name: "debounce", Arg: "period", Usage: "the debounce period in microseconds"},
	},
}

func main() {
	cfg := command.Load()
	log := cfg.Log
	args := cfg.Args()
	if len(args) < 1 {
		log.Fatal("gpiochip must be specified")
	}
	offsets, err := cli.ParseOffsets(args[1:])
	if err != nil {
		log.Fatal(err)
	}
	opts, err := cfg.ChipOptions()
	if err != nil {
		log.Fatal(err)
	}
	edge, err := cli.ParseEdge(cfg.String("edge"))
	if err != nil {
		log.Fatal(err)
	}
	bias, err := cli.ParseBias(cfg.String("bias"))
	if err != nil {
		log.Fatal(err)
	}
	ropts := []gpioline.InputOption{
		gpioline.WithEdgeDetection(edge),
		gpioline.WithBias(bias),
	}
	if cfg.Bool("active-low") {
		ropts = append(ropts, gpioline.AsActiveLow)
	}
	period, err := cfg.Int("debounce")
	if err != nil {
		log.Fatal(err)
	}
	if period > 0 {
		ropts = append(ropts, gpioline.WithDebounce(time.Duration(period)*time.Microsecond))
	}
	c, err := gpioline.Open(cli.ChipPath(args[0]), opts...)
	if err != nil {
		log.Fatal(err)
	}
	r, err := c.RequestInput(offsets, ropts...)
	c.Close()
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	numEvents, err := cfg.Int("num-events")
	if err != nil {
		log.Fatal(err)
	}
	for count := 0; numEvents <= 0 || count < numEvents; count++ {
		evt, err := r.WaitEvent(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Fatal(err)
		}
		printEvent(evt)
	}
}

func printEvent(evt gpioline.Event) {
	edge := "RISING EDGE"
	if evt.Edge == gpioline.EdgeFalling {
		edge = "FALLING EDGE"
	}
	fmt.Printf("event:%12s offset: %d timestamp: [%8d.%09d]\n",
		edge, evt.Offset, evt.Timestamp/time.Second, evt.Timestamp%time.Second)
}
