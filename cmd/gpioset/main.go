// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// A clone of libgpiod gpioset.
//
// The lines are held at the requested values until the process is
// interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/warthog618/go-gpioline"
	"github.com/warthog618/go-gpioline/internal/cli"
)

var command = cli.Command{
	Name:    "gpioset",
	Args:    "<chip> <offset1>=<value1>...",
	Summary: "Set GPIO line values of a GPIO chip and hold them until interrupted.",
	Options: []cli.Option{
		{Short: 'l', Name: "active-low", IsBool: true, Usage: "treat the lines as active low"},
		{Short: 'd', Name: "drive", Arg: "drive", Usage: "the line drive: push-pull, open-drain or open-source", Default: "push-pull"},
		{Short: 'b', Name: "bias", Arg: "bias", Usage: "the line bias: pull-up, pull-down or disable", Default: "disable"},
	},
}

func main() {
	cfg := command.Load()
	log := cfg.Log
	args := cfg.Args()
	if len(args) < 1 {
		log.Fatal("gpiochip must be specified")
	}
	offsets, vv, err := cli.ParseLineValues(args[1:])
	if err != nil {
		log.Fatal(err)
	}
	opts, err := cfg.ChipOptions()
	if err != nil {
		log.Fatal(err)
	}
	drive, err := cli.ParseDrive(cfg.String("drive"))
	if err != nil {
		log.Fatal(err)
	}
	bias, err := cli.ParseBias(cfg.String("bias"))
	if err != nil {
		log.Fatal(err)
	}
	ropts := []gpioline.OutputOption{
		gpioline.WithDrive(drive),
		gpioline.WithBias(bias),
		gpioline.WithDefaultValues(vv),
	}
	if cfg.Bool("active-low") {
		ropts = append(ropts, gpioline.AsActiveLow)
	}
	c, err := gpioline.Open(cli.ChipPath(args[0]), opts...)
	if err != nil {
		log.Fatal(err)
	}
	r, err := c.RequestOutput(offsets, ropts...)
	c.Close()
	if err != nil {
		log.Fatal(err)
	}
	log.WithFields(logrus.Fields{"offsets": offsets, "values": vv.Bits}).Info("holding lines")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	<-ctx.Done()
	stop()
	if err := r.Close(); err != nil {
		log.Fatal(err)
	}
}
