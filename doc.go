// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

/*
Package gpioline is a library for accessing GPIO lines through the Linux GPIO
character device uAPI (both v1 and v2).

A [Chip] is opened from a device path, such as "/dev/gpiochip0", and provides
the chip details and the state of its lines via [Chip.LineInfo].
Open checks the path refers to a GPIO chip, by comparing the device number
of the node with the one recorded in sysfs, before issuing any ioctl.

Lines are requested from the chip as a set, either as [Inputs] with
[Chip.RequestInput], or as [Outputs] with [Chip.RequestOutput].
Requested lines are bound to the offsets, in the order given, so bit i of any
[Values] read from or written to the request corresponds to offsets[i].
The request remains valid after the chip is closed.

Values can be exchanged as [Values], or as any unsigned integer type using
[GetValues] and [SetValues].

Requests with edge detection enabled report [Event]s, read with ReadEvent,
which blocks, or WaitEvent, which can be cancelled via a context.

The v2 uAPI is used by default. Building with the gpio_uapi_v1 tag selects
v1, and [WithABIVersion] selects the version for a particular chip.
The v1 uAPI only supports edge detection on single line input requests, and
does not support debounce.

# Example Usage

Read the value of line 3 and two other lines:

	c, err := gpioline.Open("/dev/gpiochip0")
	in, err := c.RequestInput([]uint32{3, 5, 9}, gpioline.WithPullUp)
	vv, err := in.Values()
	v3, ok := vv.Get(0)

Drive lines 4 and 7, active low, with line 4 initially active:

	out, err := c.RequestOutput([]uint32{4, 7},
		gpioline.AsActiveLow,
		gpioline.WithDefaultValues(gpioline.ValuesOf(uint8(0b01))),
	)
	err = gpioline.SetValues(out, uint8(0b10))

Wait for edges on line 2:

	in, err := c.RequestInput([]uint32{2}, gpioline.WithBothEdges)
	evt, err := in.WaitEvent(ctx)
*/
package gpioline
