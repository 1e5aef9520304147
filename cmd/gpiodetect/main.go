// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// A clone of libgpiod gpiodetect.
package main

import (
	"fmt"
	"os"

	"github.com/warthog618/go-gpioline"
	"github.com/warthog618/go-gpioline/internal/cli"
)

var command = cli.Command{
	Name:    "gpiodetect",
	Summary: "List all GPIO chips, print their labels and number of GPIO lines.",
}

func main() {
	cfg := command.Load()
	opts, err := cfg.ChipOptions()
	if err != nil {
		cfg.Log.Fatal(err)
	}
	rc := 0
	for _, path := range cli.Chips() {
		c, err := gpioline.Open(path, opts...)
		if err != nil {
			cfg.Log.WithField("path", path).Error(err)
			rc = 1
			continue
		}
		fmt.Printf("%s [%s] (%d lines)\n", c.Name(), c.Label(), c.NumLines())
		c.Close()
	}
	os.Exit(rc)
}
