// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpioline

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/warthog618/go-gpioline/uapi"
)

// Chip represents a single GPIO chip that controls a set of lines.
//
// Lines are identified by offset into the chip, with offsets
// being in the range 0..NumLines()-1.
type Chip struct {
	f *os.File

	// The path to the chip in /dev
	path string

	// The system name for the chip, e.g. gpiochip0.
	name string

	// A more meaningful label provided by the driver.
	label string

	// The number of lines exposed by the chip.
	numLines int

	// The default consumer label for requested lines.
	consumer string

	abi abi

	log logrus.FieldLogger
}

// Open opens the GPIO character device at path.
//
// The path must be a GPIO character device, such as "/dev/gpiochip0".
// The available options are WithABIVersion, WithConsumer and WithLogger.
func Open(path string, options ...ChipOption) (*Chip, error) {
	co := chipOptions{
		abi:      defaultABIVersion,
		consumer: defaultConsumer(),
		log:      logrus.StandardLogger(),
	}
	for _, o := range options {
		o.applyChipOption(&co)
	}
	a, err := newABI(co.abi)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	c, err := newChip(f, path, a)
	if err != nil {
		f.Close()
		return nil, err
	}
	c.consumer = co.consumer
	c.log = co.log.WithFields(logrus.Fields{"chip": c.name, "abi": a.version()})
	c.log.Debug("opened chip")
	return c, nil
}

func newChip(f *os.File, path string, a abi) (*Chip, error) {
	if err := checkChip(path); err != nil {
		return nil, err
	}
	var ci uapi.ChipInfo
	err := control(f, func(fd uintptr) (err error) {
		ci, err = uapi.GetChipInfo(fd)
		return
	})
	if err != nil {
		return nil, err
	}
	name, err := decodeName(ci.Name[:])
	if err != nil {
		return nil, err
	}
	label, err := decodeName(ci.Label[:])
	if err != nil {
		return nil, err
	}
	return &Chip{
		f:        f,
		path:     path,
		name:     name,
		label:    label,
		numLines: int(ci.Lines),
		abi:      a,
	}, nil
}

// Close releases the Chip.
//
// It does not release any requested lines, which remain valid until closed
// themselves.
func (c *Chip) Close() error {
	if c.f == nil {
		return ErrClosed
	}
	err := c.f.Close()
	c.f = nil
	c.log.Debug("closed chip")
	return err
}

// Name returns the system name of the chip, e.g. "gpiochip0".
func (c *Chip) Name() string {
	return c.name
}

// Label returns the label provided by the driver.
func (c *Chip) Label() string {
	return c.label
}

// NumLines returns the number of lines exposed by the chip.
func (c *Chip) NumLines() int {
	return c.numLines
}

// Path returns the path the chip was opened from.
func (c *Chip) Path() string {
	return c.path
}

// UapiAbiVersion returns the version of the uAPI ABI used by the chip.
func (c *Chip) UapiAbiVersion() int {
	return c.abi.version()
}

// LineInfo returns the current state of the line at offset.
//
// The offset is not range checked locally, so an out of range offset fails
// with the error returned by the kernel.
func (c *Chip) LineInfo(offset uint32) (info LineInfo, err error) {
	if c.f == nil {
		return LineInfo{}, ErrClosed
	}
	err = control(c.f, func(fd uintptr) error {
		info, err = c.abi.lineInfo(fd, offset)
		return err
	})
	return
}

// WatchLineInfo returns the current state of the line at offset and enables
// reporting of subsequent changes to it via ReadInfoChange.
func (c *Chip) WatchLineInfo(offset uint32) (info LineInfo, err error) {
	if c.f == nil {
		return LineInfo{}, ErrClosed
	}
	err = control(c.f, func(fd uintptr) error {
		info, err = c.abi.watchLineInfo(fd, offset)
		return err
	})
	if err == nil {
		c.log.WithField("offset", offset).Debug("watching line info")
	}
	return
}

// UnwatchLineInfo disables reporting of changes to the line at offset.
func (c *Chip) UnwatchLineInfo(offset uint32) error {
	if c.f == nil {
		return ErrClosed
	}
	return control(c.f, func(fd uintptr) error {
		return uapi.UnwatchLineInfo(fd, offset)
	})
}

// ReadInfoChange blocks until a change occurs to a watched line, and returns
// the change.
func (c *Chip) ReadInfoChange() (InfoChange, error) {
	if c.f == nil {
		return InfoChange{}, ErrClosed
	}
	return c.abi.readInfoChange(c.f)
}

// RequestInput requests control of a set of lines as inputs.
//
// Bit i of the Values read from the request corresponds to offsets[i].
// The available options are WithConsumer, AsActiveLow, WithActive,
// WithEdgeDetection, WithBias, WithDebounce and WithEventBufferSize.
func (c *Chip) RequestInput(offsets []uint32, options ...InputOption) (*Inputs, error) {
	cfg := requestConfig{consumer: c.consumer}
	for _, o := range options {
		o.applyInputOption(&cfg)
	}
	r, err := c.request(offsets, DirectionInput, &cfg)
	if err != nil {
		return nil, err
	}
	return &Inputs{*r}, nil
}

// RequestOutput requests control of a set of lines as outputs.
//
// Bit i of the Values written to the request corresponds to offsets[i].
// The available options are those of RequestInput, other than WithDebounce,
// plus WithDrive and WithDefaultValues.
func (c *Chip) RequestOutput(offsets []uint32, options ...OutputOption) (*Outputs, error) {
	cfg := requestConfig{consumer: c.consumer}
	for _, o := range options {
		o.applyOutputOption(&cfg)
	}
	r, err := c.request(offsets, DirectionOutput, &cfg)
	if err != nil {
		return nil, err
	}
	return &Outputs{*r}, nil
}

func (c *Chip) request(offsets []uint32, dir Direction, cfg *requestConfig) (*request, error) {
	if c.f == nil {
		return nil, ErrClosed
	}
	var fd int
	var events bool
	err := control(c.f, func(cfd uintptr) (err error) {
		fd, events, err = c.abi.request(cfd, offsets, dir, cfg)
		return
	})
	if err != nil {
		return nil, err
	}
	r, err := newRequest(c.name, offsets, dir, fd, c.abi, *cfg)
	if err != nil {
		return nil, err
	}
	r.events = events
	r.log = c.log.WithFields(logrus.Fields{"offsets": offsets, "dir": dir, "fd": fd})
	r.log.Debug("requested lines")
	return r, nil
}

// control calls fn with the fd of f, without changing the blocking mode of f.
func control(f *os.File, fn func(fd uintptr) error) error {
	rc, err := f.SyscallConn()
	if err != nil {
		return err
	}
	var ferr error
	if err = rc.Control(func(fd uintptr) {
		ferr = fn(fd)
	}); err != nil {
		return err
	}
	return ferr
}
