// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpioline

import "time"

// LineInfo contains the state of a line as reported by the kernel.
type LineInfo struct {
	// The offset of the line within the chip.
	Offset uint32

	// The system name for the line.
	//
	// Line names do not need to be unique.
	Name string

	// The identifier of the entity holding the line, if any.
	Consumer string

	// True if the line is in use by the kernel or another user.
	Used bool

	Direction Direction

	Active Active

	// Always EdgeDetectionDisable under the v1 ABI.
	EdgeDetection EdgeDetection

	Bias Bias

	Drive Drive

	// The debounce period applied to the line, if any.
	//
	// Only reported by the v2 ABI.
	Debounce time.Duration
}

// Direction indicates whether a line is an input or output.
type Direction int

const (
	// Line is an input.
	DirectionInput Direction = iota

	// Line is an output.
	DirectionOutput
)

func (d Direction) String() string {
	if d == DirectionOutput {
		return "output"
	}
	return "input"
}

// Active indicates the polarity of a line.
type Active int

const (
	// Line is active when the physical level is high.
	ActiveHigh Active = iota

	// Line is active when the physical level is low.
	ActiveLow
)

func (a Active) String() string {
	if a == ActiveLow {
		return "active-low"
	}
	return "active-high"
}

// EdgeDetection indicates which edges of an input line generate events.
type EdgeDetection int

const (
	// No edge events.
	EdgeDetectionDisable EdgeDetection = iota

	// Events on inactive to active transitions.
	EdgeDetectionRising

	// Events on active to inactive transitions.
	EdgeDetectionFalling

	// Events on all transitions.
	EdgeDetectionBoth
)

func (e EdgeDetection) String() string {
	switch e {
	case EdgeDetectionRising:
		return "rising"
	case EdgeDetectionFalling:
		return "falling"
	case EdgeDetectionBoth:
		return "both"
	default:
		return "disable"
	}
}

// Bias indicates the pull applied to a line.
type Bias int

const (
	// No pull is requested.
	//
	// When reported in LineInfo, the line has no pull enabled.
	BiasDisable Bias = iota

	// Line is pulled up.
	BiasPullUp

	// Line is pulled down.
	BiasPullDown
)

func (b Bias) String() string {
	switch b {
	case BiasPullUp:
		return "pull-up"
	case BiasPullDown:
		return "pull-down"
	default:
		return "disable"
	}
}

// Drive indicates how an output line is driven.
type Drive int

const (
	// Line is driven both high and low.
	DrivePushPull Drive = iota

	// Line is driven low and floats when high.
	DriveOpenDrain

	// Line is driven high and floats when low.
	DriveOpenSource
)

func (d Drive) String() string {
	switch d {
	case DriveOpenDrain:
		return "open-drain"
	case DriveOpenSource:
		return "open-source"
	default:
		return "push-pull"
	}
}

// InfoChangeType indicates the type of change to a watched line.
type InfoChangeType int

const (
	// Line has been requested.
	InfoChangeRequested InfoChangeType = iota + 1

	// Line has been released.
	InfoChangeReleased

	// Line has been reconfigured.
	InfoChangeReconfigured
)

func (t InfoChangeType) String() string {
	switch t {
	case InfoChangeRequested:
		return "requested"
	case InfoChangeReleased:
		return "released"
	case InfoChangeReconfigured:
		return "reconfigured"
	default:
		return "unknown"
	}
}

// InfoChange is a change to the info of a watched line.
type InfoChange struct {
	// The updated line info.
	Info LineInfo

	// The time the change occurred, in CLOCK_MONOTONIC.
	Timestamp time.Duration

	Type InfoChangeType
}
