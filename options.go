// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpioline

import (
	"time"

	"github.com/sirupsen/logrus"
)

// ChipOption defines the interface required to provide an option to Open.
type ChipOption interface {
	applyChipOption(*chipOptions)
}

type chipOptions struct {
	abi      int
	consumer string
	log      logrus.FieldLogger
}

// InputOption defines the interface required to provide an option to
// RequestInput and Inputs.Reconfigure.
type InputOption interface {
	applyInputOption(*requestConfig)
}

// OutputOption defines the interface required to provide an option to
// RequestOutput and Outputs.Reconfigure.
type OutputOption interface {
	applyOutputOption(*requestConfig)
}

// requestConfig is the complete configuration of a line request.
type requestConfig struct {
	consumer        string
	active          Active
	edge            EdgeDetection
	bias            Bias
	drive           Drive
	defaults        Values
	debounce        time.Duration
	eventBufferSize uint32
}

// ABIVersionOption selects the version of the uAPI ABI used by a chip.
type ABIVersionOption int

// WithABIVersion returns an option that selects the uAPI ABI version, 1 or 2,
// overriding the version selected at build time.
func WithABIVersion(version int) ABIVersionOption {
	return ABIVersionOption(version)
}

func (o ABIVersionOption) applyChipOption(c *chipOptions) {
	c.abi = int(o)
}

// ConsumerOption defines the consumer label applied to requested lines.
type ConsumerOption string

// WithConsumer returns an option that sets the consumer label.
//
// When applied to a chip it becomes the default for requests from that chip.
// It has no effect on Reconfigure.
// The label is limited to 31 bytes.
func WithConsumer(consumer string) ConsumerOption {
	return ConsumerOption(consumer)
}

func (o ConsumerOption) applyChipOption(c *chipOptions) {
	c.consumer = string(o)
}

func (o ConsumerOption) applyInputOption(c *requestConfig) {
	c.consumer = string(o)
}

func (o ConsumerOption) applyOutputOption(c *requestConfig) {
	c.consumer = string(o)
}

// LoggerOption attaches a logger to a chip.
type LoggerOption struct {
	logrus.FieldLogger
}

// WithLogger returns an option that sets the logger used by the chip and its
// requests.
//
// A nil logger selects the logrus standard logger.
func WithLogger(log logrus.FieldLogger) LoggerOption {
	return LoggerOption{log}
}

func (o LoggerOption) applyChipOption(c *chipOptions) {
	if o.FieldLogger == nil {
		c.log = logrus.StandardLogger()
		return
	}
	c.log = o.FieldLogger
}

// ActiveOption sets the polarity of requested lines.
type ActiveOption Active

const (
	// AsActiveLow requests lines be active low.
	AsActiveLow = ActiveOption(ActiveLow)

	// AsActiveHigh requests lines be active high.
	//
	// This is the default.
	AsActiveHigh = ActiveOption(ActiveHigh)
)

// WithActive returns an option that sets the polarity of requested lines.
func WithActive(a Active) ActiveOption {
	return ActiveOption(a)
}

func (o ActiveOption) applyInputOption(c *requestConfig) {
	c.active = Active(o)
}

func (o ActiveOption) applyOutputOption(c *requestConfig) {
	c.active = Active(o)
}

// EdgeDetectionOption sets the edges that generate events.
type EdgeDetectionOption EdgeDetection

const (
	// WithRisingEdge enables events on rising edges.
	WithRisingEdge = EdgeDetectionOption(EdgeDetectionRising)

	// WithFallingEdge enables events on falling edges.
	WithFallingEdge = EdgeDetectionOption(EdgeDetectionFalling)

	// WithBothEdges enables events on all edges.
	WithBothEdges = EdgeDetectionOption(EdgeDetectionBoth)
)

// WithEdgeDetection returns an option that sets the edges that generate
// events.
//
// Under the v1 ABI edge detection is only available on single line input
// requests.
func WithEdgeDetection(e EdgeDetection) EdgeDetectionOption {
	return EdgeDetectionOption(e)
}

func (o EdgeDetectionOption) applyInputOption(c *requestConfig) {
	c.edge = EdgeDetection(o)
}

func (o EdgeDetectionOption) applyOutputOption(c *requestConfig) {
	c.edge = EdgeDetection(o)
}

// BiasOption sets the pull applied to requested lines.
type BiasOption Bias

const (
	// WithPullUp requests lines be pulled up.
	WithPullUp = BiasOption(BiasPullUp)

	// WithPullDown requests lines be pulled down.
	WithPullDown = BiasOption(BiasPullDown)
)

// WithBias returns an option that sets the pull applied to requested lines.
func WithBias(b Bias) BiasOption {
	return BiasOption(b)
}

func (o BiasOption) applyInputOption(c *requestConfig) {
	c.bias = Bias(o)
}

func (o BiasOption) applyOutputOption(c *requestConfig) {
	c.bias = Bias(o)
}

// DriveOption sets how requested outputs are driven.
type DriveOption Drive

const (
	// AsOpenDrain requests outputs be open drain.
	AsOpenDrain = DriveOption(DriveOpenDrain)

	// AsOpenSource requests outputs be open source.
	AsOpenSource = DriveOption(DriveOpenSource)

	// AsPushPull requests outputs be push-pull.
	//
	// This is the default.
	AsPushPull = DriveOption(DrivePushPull)
)

// WithDrive returns an option that sets how requested outputs are driven.
func WithDrive(d Drive) DriveOption {
	return DriveOption(d)
}

func (o DriveOption) applyOutputOption(c *requestConfig) {
	c.drive = Drive(o)
}

// DefaultValuesOption sets the initial values of requested outputs.
type DefaultValuesOption Values

// WithDefaultValues returns an option that sets the values outputs take when
// requested.
//
// Positions not in the mask default to inactive.
func WithDefaultValues(vv Values) DefaultValuesOption {
	return DefaultValuesOption(vv)
}

func (o DefaultValuesOption) applyOutputOption(c *requestConfig) {
	c.defaults = Values(o)
}

// DebounceOption sets the debounce period of requested inputs.
type DebounceOption time.Duration

// WithDebounce returns an option that sets the debounce period of requested
// inputs.
//
// The period has microsecond resolution. Not available with the v1 ABI.
func WithDebounce(period time.Duration) DebounceOption {
	return DebounceOption(period)
}

func (o DebounceOption) applyInputOption(c *requestConfig) {
	c.debounce = time.Duration(o)
}

// EventBufferSizeOption suggests the number of events the kernel should
// buffer for a request.
type EventBufferSizeOption uint32

// WithEventBufferSize returns an option that suggests the number of events
// the kernel should buffer for the request.
//
// Zero selects the kernel default. Ignored by the v1 ABI.
func WithEventBufferSize(size uint32) EventBufferSizeOption {
	return EventBufferSizeOption(size)
}

func (o EventBufferSizeOption) applyInputOption(c *requestConfig) {
	c.eventBufferSize = uint32(o)
}

func (o EventBufferSizeOption) applyOutputOption(c *requestConfig) {
	c.eventBufferSize = uint32(o)
}
