// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpioline

import "time"

// Edge indicates the direction of the transition that triggered an Event.
type Edge int

const (
	// Inactive to active.
	EdgeRising Edge = iota + 1

	// Active to inactive.
	EdgeFalling
)

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	default:
		return "unknown"
	}
}

// Event is an edge event on a requested line.
type Event struct {
	// The position of the line in the request.
	Line int

	// The offset of the line within the chip.
	Offset uint32

	Edge Edge

	// The time the event was detected, in CLOCK_MONOTONIC.
	Timestamp time.Duration

	// The sequence number of the event across all lines in the request.
	//
	// Always zero under the v1 ABI.
	Seqno uint32

	// The sequence number of the event on this line.
	//
	// Always zero under the v1 ABI.
	LineSeqno uint32
}
