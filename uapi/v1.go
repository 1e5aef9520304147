// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

//go:build linux

package uapi

import (
	"io"
	"unsafe"
)

var (
	getLineInfoIoctl   = iorw(0x02, unsafe.Sizeof(LineInfo{}))
	getLineHandleIoctl = iorw(0x03, unsafe.Sizeof(HandleRequest{}))
	getLineEventIoctl  = iorw(0x04, unsafe.Sizeof(EventRequest{}))
	getLineValuesIoctl = iorw(0x08, unsafe.Sizeof(HandleData{}))
	setLineValuesIoctl = iorw(0x09, unsafe.Sizeof(HandleData{}))
	setLineConfigIoctl = iorw(0x0A, unsafe.Sizeof(HandleConfig{}))
	watchLineInfoIoctl = iorw(0x0B, unsafe.Sizeof(LineInfo{}))
)

// LineFlag are the flags reported in a v1 LineInfo.
type LineFlag uint32

const (
	// LineFlagUsed indicates the line is already in use.
	LineFlagUsed LineFlag = 1 << iota

	// LineFlagIsOut indicates the line is an output.
	LineFlagIsOut

	// LineFlagActiveLow indicates the line is active low.
	LineFlagActiveLow

	// LineFlagOpenDrain indicates the line will pull low when set low but
	// float when set high.
	LineFlagOpenDrain

	// LineFlagOpenSource indicates the line will pull high when set high but
	// float when set low.
	LineFlagOpenSource

	// LineFlagBiasPullUp indicates the line has pull-up bias enabled.
	LineFlagBiasPullUp

	// LineFlagBiasPullDown indicates the line has pull-down bias enabled.
	LineFlagBiasPullDown

	// LineFlagBiasDisabled indicates the line has bias explicitly disabled.
	LineFlagBiasDisabled
)

// IsUsed returns true if the line is in use by the kernel or user space.
func (f LineFlag) IsUsed() bool {
	return f&LineFlagUsed != 0
}

// IsOut returns true if the line is an output.
func (f LineFlag) IsOut() bool {
	return f&LineFlagIsOut != 0
}

// IsActiveLow returns true if the line is active low.
func (f LineFlag) IsActiveLow() bool {
	return f&LineFlagActiveLow != 0
}

// IsOpenDrain returns true if the line is open-drain.
func (f LineFlag) IsOpenDrain() bool {
	return f&LineFlagOpenDrain != 0
}

// IsOpenSource returns true if the line is open-source.
func (f LineFlag) IsOpenSource() bool {
	return f&LineFlagOpenSource != 0
}

// IsBiasPullUp returns true if the line has pull-up bias.
func (f LineFlag) IsBiasPullUp() bool {
	return f&LineFlagBiasPullUp != 0
}

// IsBiasPullDown returns true if the line has pull-down bias.
func (f LineFlag) IsBiasPullDown() bool {
	return f&LineFlagBiasPullDown != 0
}

// IsBiasDisabled returns true if the line has bias disabled.
func (f LineFlag) IsBiasDisabled() bool {
	return f&LineFlagBiasDisabled != 0
}

// LineInfo contains the details of a single line of a GPIO chip.
type LineInfo struct {
	// The offset of the line within the chip.
	Offset uint32

	// The line flags applied to this line.
	Flags LineFlag

	// The system name for this line.
	Name [NameSize]byte

	// If requested, a string added by the requester to identify the
	// owner of the request.
	Consumer [NameSize]byte
}

// GetLineInfo returns the LineInfo for one line from the GPIO character device.
func GetLineInfo(fd uintptr, offset uint32) (LineInfo, error) {
	li := LineInfo{Offset: offset}
	err := doIoctl(fd, getLineInfoIoctl, unsafe.Pointer(&li))
	return li, err
}

// WatchLineInfo sets a watch on the info of a line.
//
// The li.Offset selects the line, and the remainder of li is populated with
// the current info of the line.
func WatchLineInfo(fd uintptr, li *LineInfo) error {
	return doIoctl(fd, watchLineInfoIoctl, unsafe.Pointer(li))
}

// HandleFlag contains the flags for a v1 line request.
type HandleFlag uint32

const (
	// HandleRequestInput requests the line as an input.
	HandleRequestInput HandleFlag = 1 << iota

	// HandleRequestOutput requests the line as an output.
	HandleRequestOutput

	// HandleRequestActiveLow requests the line be made active low.
	HandleRequestActiveLow

	// HandleRequestOpenDrain requests the line be made open drain.
	HandleRequestOpenDrain

	// HandleRequestOpenSource requests the line be made open source.
	HandleRequestOpenSource

	// HandleRequestPullUp requests the line have pull-up bias.
	HandleRequestPullUp

	// HandleRequestPullDown requests the line have pull-down bias.
	HandleRequestPullDown

	// HandleRequestBiasDisable requests the line have bias disabled.
	HandleRequestBiasDisable
)

// IsInput returns true if the line is requested as an input.
func (f HandleFlag) IsInput() bool {
	return f&HandleRequestInput != 0
}

// IsOutput returns true if the line is requested as an output.
func (f HandleFlag) IsOutput() bool {
	return f&HandleRequestOutput != 0
}

// IsActiveLow returns true if the line is requested as active low.
func (f HandleFlag) IsActiveLow() bool {
	return f&HandleRequestActiveLow != 0
}

// IsOpenDrain returns true if the line is requested as open drain.
func (f HandleFlag) IsOpenDrain() bool {
	return f&HandleRequestOpenDrain != 0
}

// IsOpenSource returns true if the line is requested as open source.
func (f HandleFlag) IsOpenSource() bool {
	return f&HandleRequestOpenSource != 0
}

// IsBiasPullUp returns true if the line is requested with pull-up bias.
func (f HandleFlag) IsBiasPullUp() bool {
	return f&HandleRequestPullUp != 0
}

// IsBiasPullDown returns true if the line is requested with pull-down bias.
func (f HandleFlag) IsBiasPullDown() bool {
	return f&HandleRequestPullDown != 0
}

// IsBiasDisable returns true if the line is requested with bias disabled.
func (f HandleFlag) IsBiasDisable() bool {
	return f&HandleRequestBiasDisable != 0
}

// HandleRequest is a request for control of a set of lines.
//
// The lines must all be on the same GPIO chip.
type HandleRequest struct {
	// The lines to be requested.
	Offsets [LinesMax]uint32

	// The flags to be applied to the lines.
	Flags HandleFlag

	// The default values for output lines, one byte per line.
	DefaultValues [LinesMax]uint8

	// The string identifying the requester to be applied to the lines.
	Consumer [NameSize]byte

	// The number of lines being requested.
	Lines uint32

	// The file handle for the requested lines.
	//
	// Set by the kernel if the request is successful.
	Fd int32
}

// GetLineHandle requests a line from the GPIO character device.
//
// On success the kernel populates request.Fd.
func GetLineHandle(fd uintptr, request *HandleRequest) error {
	return doIoctl(fd, getLineHandleIoctl, unsafe.Pointer(request))
}

// HandleConfig is a request to change the config of an existing request.
type HandleConfig struct {
	// The flags to be applied to the lines.
	Flags HandleFlag

	// The default values for output lines.
	DefaultValues [LinesMax]uint8

	// reserved for future use.
	Padding [4]uint32
}

// SetLineConfig sets the config of an existing handle request.
//
// The fd is the request handle returned by GetLineHandle.
func SetLineConfig(fd uintptr, config *HandleConfig) error {
	return doIoctl(fd, setLineConfigIoctl, unsafe.Pointer(config))
}

// HandleData contains the logical value for each line.
//
// Zero is inactive, non-zero is active.
type HandleData [LinesMax]uint8

// GetLineValues returns the values of a set of requested lines.
//
// The fd is a requested line, as returned by GetLineHandle or GetLineEvent.
func GetLineValues(fd uintptr, values *HandleData) error {
	return doIoctl(fd, getLineValuesIoctl, unsafe.Pointer(values))
}

// SetLineValues sets the values of a set of requested lines.
//
// The fd is a requested line, as returned by GetLineHandle.
func SetLineValues(fd uintptr, values HandleData) error {
	return doIoctl(fd, setLineValuesIoctl, unsafe.Pointer(&values))
}

// EventFlag indicates the types of events that will be reported.
type EventFlag uint32

const (
	// EventRequestRisingEdge requests rising edge events.
	EventRequestRisingEdge EventFlag = 1 << iota

	// EventRequestFallingEdge requests falling edge events.
	EventRequestFallingEdge

	// EventRequestBothEdges requests both rising and falling edge events.
	EventRequestBothEdges = EventRequestRisingEdge | EventRequestFallingEdge
)

// IsRisingEdge returns true if rising edge events have been requested.
func (f EventFlag) IsRisingEdge() bool {
	return f&EventRequestRisingEdge != 0
}

// IsFallingEdge returns true if falling edge events have been requested.
func (f EventFlag) IsFallingEdge() bool {
	return f&EventRequestFallingEdge != 0
}

// EventRequest is a request for control of a line with event reporting enabled.
type EventRequest struct {
	// The line to be requested.
	Offset uint32

	// The line flags applied to this line.
	HandleFlags HandleFlag

	// The type of events to report.
	EventFlags EventFlag

	// The string identifying the requester to be applied to the line.
	Consumer [NameSize]byte

	// The file handle for the requested line.
	//
	// Set by the kernel if the request is successful.
	Fd int32
}

// GetLineEvent requests a line from the GPIO character device with event
// reporting enabled.
//
// On success the kernel populates request.Fd.
func GetLineEvent(fd uintptr, request *EventRequest) error {
	return doIoctl(fd, getLineEventIoctl, unsafe.Pointer(request))
}

// EventID indicates the type of a v1 event.
type EventID uint32

const (
	_ EventID = iota

	// EventRisingEdge indicates an inactive to active event.
	EventRisingEdge

	// EventFallingEdge indicates an active to inactive event.
	EventFallingEdge
)

// ReadEvent reads a single event from a requested line.
//
// The r is the file of a line requested with GetLineEvent.
// This function blocks until an event is available.
func ReadEvent(r io.Reader) (EventData, error) {
	var ed EventData
	err := readRecord(r, &ed)
	return ed, err
}

// LineInfoChanged contains the details of a change to line info.
//
// This is returned via the chip fd in response to changes to watched lines.
type LineInfoChanged struct {
	// The updated info.
	Info LineInfo

	// The time the change occurred.
	Timestamp uint64

	// The type of change.
	Type ChangeType

	// reserved for future use.
	Padding [5]uint32
}

// ReadLineInfoChanged reads a line info changed event from a chip.
//
// The r is the file of the chip.
// This function blocks until an event is available.
func ReadLineInfoChanged(r io.Reader) (LineInfoChanged, error) {
	var lic LineInfoChanged
	err := readRecord(r, &lic)
	return lic, err
}
