// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpioline

// RequestInput opens the chip at path, requests the offsets as inputs, and
// closes the chip.
//
// This is a shortcut for tools that only need a single request from a chip.
func RequestInput(path string, offsets []uint32, options ...InputOption) (*Inputs, error) {
	c, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.RequestInput(offsets, options...)
}

// RequestOutput opens the chip at path, requests the offsets as outputs, and
// closes the chip.
func RequestOutput(path string, offsets []uint32, options ...OutputOption) (*Outputs, error) {
	c, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.RequestOutput(offsets, options...)
}
