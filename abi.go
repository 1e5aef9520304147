// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpioline

import (
	"io"

	"github.com/pkg/errors"
	"github.com/warthog618/go-gpioline/uapi"
)

const (
	// NameSize is the size of the kernel name, label and consumer fields,
	// including the terminating NUL.
	NameSize = uapi.NameSize

	// LinesMax is the maximum number of lines in a single request.
	LinesMax = uapi.LinesMax
)

// abi is the set of operations that differ between uAPI ABI versions.
//
// Each version maps the common configuration to and from its own structures
// and flag bits.
type abi interface {
	version() int

	lineInfo(fd uintptr, offset uint32) (LineInfo, error)
	watchLineInfo(fd uintptr, offset uint32) (LineInfo, error)
	readInfoChange(r io.Reader) (InfoChange, error)

	// request requests the lines from the chip fd and returns the request
	// fd, and whether the request reports edge events.
	request(fd uintptr, offsets []uint32, dir Direction, cfg *requestConfig) (int, bool, error)

	// reconfigure updates the config of the request fd.
	reconfigure(fd uintptr, offsets []uint32, dir Direction, events bool, cfg *requestConfig) error

	values(fd uintptr, numLines int) (Values, error)
	setValues(fd uintptr, numLines int, vv Values) error
	readEvent(r io.Reader, offsets []uint32) (Event, error)
}

// newABI returns the implementation of the ABI version.
func newABI(version int) (abi, error) {
	switch version {
	case 1:
		return v1ABI{}, nil
	case 2:
		return v2ABI{}, nil
	default:
		return nil, ErrUapiIncompatibility{"unknown ABI version", version}
	}
}

// checkOffsets checks the number of lines in a request is within the limits
// of the uAPI.
func checkOffsets(offsets []uint32) error {
	if len(offsets) == 0 {
		return ErrNoLines
	}
	if len(offsets) > LinesMax {
		return errors.Wrapf(ErrTooManyLines, "%d requested, limit %d", len(offsets), LinesMax)
	}
	return nil
}

// linesMask returns the mask covering the first numLines positions.
func linesMask(numLines int) uint64 {
	return widthMask(numLines)
}
