// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// A clone of libgpiod gpioinfo.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/warthog618/go-gpioline"
	"github.com/warthog618/go-gpioline/internal/cli"
)

var command = cli.Command{
	Name:    "gpioinfo",
	Args:    "[<chip>...]",
	Summary: "Print information about all lines of the specified GPIO chip(s) (or all gpiochips if none are specified).",
}

func main() {
	cfg := command.Load()
	opts, err := cfg.ChipOptions()
	if err != nil {
		cfg.Log.Fatal(err)
	}
	cc := cfg.Args()
	if len(cc) == 0 {
		cc = cli.Chips()
	}
	rc := 0
	for _, name := range cc {
		path := cli.ChipPath(name)
		c, err := gpioline.Open(path, opts...)
		if err != nil {
			cfg.Log.WithField("path", path).Error(err)
			rc = 1
			continue
		}
		fmt.Printf("%s - %d lines:\n", c.Name(), c.NumLines())
		for o := 0; o < c.NumLines(); o++ {
			li, err := c.LineInfo(uint32(o))
			if err != nil {
				cfg.Log.WithField("offset", o).Error(err)
				rc = 1
				continue
			}
			printLineInfo(li)
		}
		c.Close()
	}
	os.Exit(rc)
}

func printLineInfo(li gpioline.LineInfo) {
	if len(li.Name) == 0 {
		li.Name = "unnamed"
	}
	if li.Used {
		if len(li.Consumer) == 0 {
			li.Consumer = "kernel"
		}
		if strings.Contains(li.Consumer, " ") {
			li.Consumer = "\"" + li.Consumer + "\""
		}
	} else {
		li.Consumer = "unused"
	}
	active := "active-high"
	if li.Active == gpioline.ActiveLow {
		active = "active-low"
	}
	flags := []string(nil)
	if li.Used {
		flags = append(flags, "used")
	}
	if li.Drive != gpioline.DrivePushPull {
		flags = append(flags, li.Drive.String())
	}
	if li.Bias != gpioline.BiasDisable {
		flags = append(flags, li.Bias.String())
	}
	if li.EdgeDetection != gpioline.EdgeDetectionDisable {
		flags = append(flags, "edge="+li.EdgeDetection.String())
	}
	if li.Debounce != 0 {
		flags = append(flags, "debounce="+li.Debounce.String())
	}
	flstr := ""
	if len(flags) > 0 {
		flstr = "[" + strings.Join(flags, " ") + "]"
	}
	fmt.Printf("\tline %3d:%12s%12s%8s%13s%s\n",
		li.Offset, li.Name, li.Consumer, li.Direction, active, flstr)
}
