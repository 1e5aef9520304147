// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpioline

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// request is the state common to Inputs and Outputs.
//
// A request is owned by a single goroutine. Calls from multiple goroutines
// must be serialised by the caller.
type request struct {
	f *os.File

	chip    string
	offsets []uint32
	dir     Direction
	cfg     requestConfig

	// true if the kernel reports edge events for the request.
	events bool

	abi abi
	log logrus.FieldLogger
}

// newRequest takes ownership of the request fd returned by the kernel.
//
// The fd is closed if it cannot be wrapped.
func newRequest(chip string, offsets []uint32, dir Direction, fd int, a abi, cfg requestConfig) (*request, error) {
	// non-blocking so reads are handled by the runtime poller and can be
	// interrupted by a read deadline.
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, err
	}
	f := os.NewFile(uintptr(fd), fmt.Sprintf("%s:%v", chip, offsets))
	return &request{
		f:       f,
		chip:    chip,
		offsets: append([]uint32(nil), offsets...),
		dir:     dir,
		cfg:     cfg,
		abi:     a,
		log:     logrus.StandardLogger(),
	}, nil
}

// ChipName returns the name of the chip the lines belong to.
func (r *request) ChipName() string {
	return r.chip
}

// Lines returns the offsets of the requested lines, in request order.
func (r *request) Lines() []uint32 {
	return append([]uint32(nil), r.offsets...)
}

// Direction returns the direction of the requested lines.
func (r *request) Direction() Direction {
	return r.dir
}

// Close releases the requested lines.
func (r *request) Close() error {
	if r.f == nil {
		return ErrClosed
	}
	err := r.f.Close()
	r.f = nil
	r.log.Debug("released lines")
	return err
}

// Values returns the current logical values of the requested lines.
//
// Bit i of the result corresponds to the line at position i of the request.
func (r *request) Values() (vv Values, err error) {
	if r.f == nil {
		return Values{}, ErrClosed
	}
	err = control(r.f, func(fd uintptr) error {
		vv, err = r.abi.values(fd, len(r.offsets))
		return err
	})
	return
}

// ReadEvent blocks until an edge event is available and returns it.
//
// Requires the request to have edge detection enabled.
func (r *request) ReadEvent() (Event, error) {
	if err := r.checkEvents(); err != nil {
		return Event{}, err
	}
	return r.abi.readEvent(r.f, r.offsets)
}

// aLongTimeAgo is a deadline that has already expired.
var aLongTimeAgo = time.Unix(1, 0)

// WaitEvent waits for an edge event, or for the ctx to be done.
//
// If ctx is done before an event arrives then the ctx error is returned.
func (r *request) WaitEvent(ctx context.Context) (Event, error) {
	if err := r.checkEvents(); err != nil {
		return Event{}, err
	}
	if err := ctx.Err(); err != nil {
		return Event{}, err
	}
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			r.f.SetReadDeadline(aLongTimeAgo)
		case <-stop:
		}
	}()
	evt, err := r.abi.readEvent(r.f, r.offsets)
	close(stop)
	wg.Wait()
	if ctx.Err() != nil {
		r.f.SetReadDeadline(time.Time{})
		if err != nil {
			return Event{}, ctx.Err()
		}
	}
	return evt, err
}

func (r *request) checkEvents() error {
	if r.f == nil {
		return ErrClosed
	}
	if !r.events {
		return ErrEdgeDetectionDisabled
	}
	return nil
}

func (r *request) reconfigure(cfg requestConfig) error {
	if r.f == nil {
		return ErrClosed
	}
	// the consumer is fixed when the lines are requested
	cfg.consumer = r.cfg.consumer
	err := control(r.f, func(fd uintptr) error {
		return r.abi.reconfigure(fd, r.offsets, r.dir, r.events, &cfg)
	})
	if err != nil {
		return err
	}
	r.cfg = cfg
	r.events = cfg.edge != EdgeDetectionDisable
	r.log.Debug("reconfigured lines")
	return nil
}

// ValueReader is the interface implemented by requests that can read line
// values.
type ValueReader interface {
	Values() (Values, error)
}

// Inputs is a set of lines requested as inputs.
type Inputs struct {
	request
}

// Reconfigure updates the configuration of the requested lines.
//
// Options are applied to the existing configuration. WithConsumer is
// ignored. Under the v1 ABI
// requests with edge detection cannot be reconfigured, and edge detection
// cannot be added.
func (i *Inputs) Reconfigure(options ...InputOption) error {
	cfg := i.cfg
	for _, o := range options {
		o.applyInputOption(&cfg)
	}
	return i.reconfigure(cfg)
}

// Outputs is a set of lines requested as outputs.
type Outputs struct {
	request
}

// SetValues sets the logical values of the requested lines.
//
// Bit i of vv corresponds to the line at position i of the request.
// Under the v2 ABI lines not in the mask are unchanged. Under the v1 ABI
// lines not in the mask are set inactive.
func (o *Outputs) SetValues(vv Values) error {
	if o.f == nil {
		return ErrClosed
	}
	return control(o.f, func(fd uintptr) error {
		return o.abi.setValues(fd, len(o.offsets), vv)
	})
}

// Reconfigure updates the configuration of the requested lines.
//
// Options are applied to the existing configuration. WithConsumer is
// ignored.
// Output values are reset to those set by WithDefaultValues.
func (o *Outputs) Reconfigure(options ...OutputOption) error {
	cfg := o.cfg
	for _, opt := range options {
		opt.applyOutputOption(&cfg)
	}
	return o.reconfigure(cfg)
}

// GetValues returns the values of the requested lines as a T.
//
// Bit i of the result corresponds to the line at position i of the request.
func GetValues[T Unsigned](r ValueReader) (T, error) {
	vv, err := r.Values()
	if err != nil {
		return 0, err
	}
	return BitsOf[T](vv), nil
}

// SetValues sets the values of the requested lines from the bits of a T.
//
// Bit i of bits corresponds to the line at position i of the request.
// The mask covers the full width of T.
func SetValues[T Unsigned](o *Outputs, bits T) error {
	return o.SetValues(ValuesOf(bits))
}
