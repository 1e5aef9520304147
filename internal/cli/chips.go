// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package cli

import (
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// devDir is where the GPIO character devices are found.
var devDir = "/dev"

// Chips returns the paths of the GPIO character devices in /dev, in
// numerical order.
func Chips() []string {
	ee, err := os.ReadDir(devDir)
	if err != nil {
		return nil
	}
	cc := []string(nil)
	for _, e := range ee {
		p := path.Join(devDir, e.Name())
		if isChip(p) {
			cc = append(cc, p)
		}
	}
	sort.Slice(cc, func(i, j int) bool {
		return chipNumber(cc[i]) < chipNumber(cc[j])
	})
	return cc
}

// ChipPath returns the path of a chip given its name, number or path.
func ChipPath(name string) string {
	if strings.Contains(name, "/") {
		return name
	}
	if _, err := strconv.ParseUint(name, 10, 32); err == nil {
		name = "gpiochip" + name
	}
	return path.Join(devDir, name)
}

func isChip(p string) bool {
	if !strings.HasPrefix(path.Base(p), "gpiochip") {
		return false
	}
	var st unix.Stat_t
	if err := unix.Stat(p, &st); err != nil {
		return false
	}
	return st.Mode&unix.S_IFMT == unix.S_IFCHR
}

// chipNumber returns the number of a gpiochipN path, or -1 if it has none.
func chipNumber(p string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(path.Base(p), "gpiochip"))
	if err != nil {
		return -1
	}
	return n
}
