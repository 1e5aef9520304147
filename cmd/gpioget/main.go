// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// A clone of libgpiod gpioget.
package main

import (
	"fmt"
	"strings"

	"github.com/warthog618/go-gpioline"
	"github.com/warthog618/go-gpioline/internal/cli"
)

var command = cli.Command{
	Name:    "gpioget",
	Args:    "<chip> <offset1>...",
	Summary: "Read line value(s) from a GPIO chip.",
	Options: []cli.Option{
		{Short: 'l', Name: "active-low", IsBool: true, Usage: "treat the line as active low"},
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
	offsets, err := cli.ParseOffsets(args[1:])
	if err != nil {
		log.Fatal(err)
	}
	opts, err := cfg.ChipOptions()
	if err != nil {
		log.Fatal(err)
	}
	bias, err := cli.ParseBias(cfg.String("bias"))
	if err != nil {
		log.Fatal(err)
	}
	ropts := []gpioline.InputOption{gpioline.WithBias(bias)}
	if cfg.Bool("active-low") {
		ropts = append(ropts, gpioline.AsActiveLow)
	}
	c, err := gpioline.Open(cli.ChipPath(args[0]), opts...)
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()
	r, err := c.RequestInput(offsets, ropts...)
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()
	vv, err := r.Values()
	if err != nil {
		log.Fatal(err)
	}
	ss := make([]string, len(offsets))
	for i := range offsets {
		if v, _ := vv.Get(uint(i)); v {
			ss[i] = "1"
		} else {
			ss[i] = "0"
		}
	}
	fmt.Println(strings.Join(ss, " "))
}
