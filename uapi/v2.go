// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

//go:build linux

package uapi

import (
	"io"
	"unsafe"

	"github.com/pkg/errors"
)

var (
	getLineInfoV2Ioctl   = iorw(0x05, unsafe.Sizeof(LineInfoV2{}))
	watchLineInfoV2Ioctl = iorw(0x06, unsafe.Sizeof(LineInfoV2{}))
	getLineIoctl         = iorw(0x07, unsafe.Sizeof(LineRequest{}))
	setLineConfigV2Ioctl = iorw(0x0D, unsafe.Sizeof(LineConfig{}))
	getLineValuesV2Ioctl = iorw(0x0E, unsafe.Sizeof(LineValues{}))
	setLineValuesV2Ioctl = iorw(0x0F, unsafe.Sizeof(LineValues{}))
)

// LineFlagV2 are the flags of a line in the v2 ABI.
//
// The bit positions differ from the v1 LineFlag and HandleFlag.
type LineFlagV2 uint64

const (
	// LineFlagV2Used indicates the line is already in use.
	LineFlagV2Used LineFlagV2 = 1 << iota

	// LineFlagV2ActiveLow indicates the line is active low.
	LineFlagV2ActiveLow

	// LineFlagV2Input indicates the line is an input.
	LineFlagV2Input

	// LineFlagV2Output indicates the line is an output.
	LineFlagV2Output

	// LineFlagV2EdgeRising indicates the line will generate rising edge events.
	LineFlagV2EdgeRising

	// LineFlagV2EdgeFalling indicates the line will generate falling edge events.
	LineFlagV2EdgeFalling

	// LineFlagV2OpenDrain indicates the line is an open drain output.
	LineFlagV2OpenDrain

	// LineFlagV2OpenSource indicates the line is an open source output.
	LineFlagV2OpenSource

	// LineFlagV2BiasPullUp indicates the line has pull-up bias enabled.
	LineFlagV2BiasPullUp

	// LineFlagV2BiasPullDown indicates the line has pull-down bias enabled.
	LineFlagV2BiasPullDown

	// LineFlagV2BiasDisabled indicates the line has bias disabled.
	LineFlagV2BiasDisabled

	// LineFlagV2EdgeBoth indicates the line will generate both rising and
	// falling edge events.
	LineFlagV2EdgeBoth = LineFlagV2EdgeRising | LineFlagV2EdgeFalling
)

// IsUsed returns true if the line is not available for request.
func (f LineFlagV2) IsUsed() bool {
	return f&LineFlagV2Used != 0
}

// IsActiveLow returns true if the line is active low.
func (f LineFlagV2) IsActiveLow() bool {
	return f&LineFlagV2ActiveLow != 0
}

// IsInput returns true if the line is an input.
func (f LineFlagV2) IsInput() bool {
	return f&LineFlagV2Input != 0
}

// IsOutput returns true if the line is an output.
func (f LineFlagV2) IsOutput() bool {
	return f&LineFlagV2Output != 0
}

// IsRisingEdge returns true if the line has rising edge detection enabled.
func (f LineFlagV2) IsRisingEdge() bool {
	return f&LineFlagV2EdgeRising != 0
}

// IsFallingEdge returns true if the line has falling edge detection enabled.
func (f LineFlagV2) IsFallingEdge() bool {
	return f&LineFlagV2EdgeFalling != 0
}

// IsOpenDrain returns true if the line is an open drain output.
func (f LineFlagV2) IsOpenDrain() bool {
	return f&LineFlagV2OpenDrain != 0
}

// IsOpenSource returns true if the line is an open source output.
func (f LineFlagV2) IsOpenSource() bool {
	return f&LineFlagV2OpenSource != 0
}

// IsBiasPullUp returns true if the line has pull-up bias.
func (f LineFlagV2) IsBiasPullUp() bool {
	return f&LineFlagV2BiasPullUp != 0
}

// IsBiasPullDown returns true if the line has pull-down bias.
func (f LineFlagV2) IsBiasPullDown() bool {
	return f&LineFlagV2BiasPullDown != 0
}

// IsBiasDisabled returns true if the line has bias disabled.
func (f LineFlagV2) IsBiasDisabled() bool {
	return f&LineFlagV2BiasDisabled != 0
}

// LineAttributeID identifies the type of a configuration attribute.
type LineAttributeID uint32

const (
	_ LineAttributeID = iota

	// LineAttributeIDFlags indicates the attribute contains LineFlagV2.
	LineAttributeIDFlags

	// LineAttributeIDOutputValues indicates the attribute contains a bitmap of
	// output values.
	LineAttributeIDOutputValues

	// LineAttributeIDDebounce indicates the attribute contains a debounce
	// period in microseconds.
	LineAttributeIDDebounce
)

// ErrUnknownAttribute indicates an attribute id that is not recognised.
var ErrUnknownAttribute = errors.New("unknown line attribute")

// LineAttribute is the raw form of a configurable attribute of a line.
//
// The Value is a union whose interpretation depends on the ID, so it is
// accessed via EncodeAttribute and Decode rather than directly.
type LineAttribute struct {
	// The type of attribute stored in Value.
	ID LineAttributeID

	// reserved for future use and must be zero filled.
	Padding uint32

	// The union of flags, output values or debounce period.
	Value uint64
}

// Attribute is a decoded LineAttribute.
//
// It is implemented by FlagsAttribute, OutputValuesAttribute and
// DebounceAttribute.
type Attribute interface {
	// ID returns the id the attribute is stored under.
	ID() LineAttributeID

	encode(la *LineAttribute)
}

// FlagsAttribute overrides the flags of a subset of lines.
type FlagsAttribute LineFlagV2

// ID returns LineAttributeIDFlags.
func (a FlagsAttribute) ID() LineAttributeID {
	return LineAttributeIDFlags
}

func (a FlagsAttribute) encode(la *LineAttribute) {
	la.Value = uint64(a)
}

// OutputValuesAttribute is a bitmap of output values, indexed by position in
// the request.
type OutputValuesAttribute uint64

// ID returns LineAttributeIDOutputValues.
func (a OutputValuesAttribute) ID() LineAttributeID {
	return LineAttributeIDOutputValues
}

func (a OutputValuesAttribute) encode(la *LineAttribute) {
	la.Value = uint64(a)
}

// DebounceAttribute is a debounce period in microseconds.
type DebounceAttribute uint32

// ID returns LineAttributeIDDebounce.
func (a DebounceAttribute) ID() LineAttributeID {
	return LineAttributeIDDebounce
}

// The debounce period is a u32 at the start of the union, so it occupies
// the low or high half of Value depending on the byte order.
func (a DebounceAttribute) encode(la *LineAttribute) {
	la.Value = 0
	*(*uint32)(unsafe.Pointer(&la.Value)) = uint32(a)
}

// EncodeAttribute returns the raw form of the attribute.
func EncodeAttribute(a Attribute) LineAttribute {
	la := LineAttribute{ID: a.ID()}
	a.encode(&la)
	return la
}

// Decode returns the attribute stored in the union.
//
// Returns ErrUnknownAttribute if the ID is not recognised.
func (la LineAttribute) Decode() (Attribute, error) {
	switch la.ID {
	case LineAttributeIDFlags:
		return FlagsAttribute(la.Value), nil
	case LineAttributeIDOutputValues:
		return OutputValuesAttribute(la.Value), nil
	case LineAttributeIDDebounce:
		return DebounceAttribute(*(*uint32)(unsafe.Pointer(&la.Value))), nil
	default:
		return nil, errors.Wrapf(ErrUnknownAttribute, "id %d", la.ID)
	}
}

// LineConfigAttribute is a configuration attribute associated with a subset
// of the requested lines.
type LineConfigAttribute struct {
	// The configurable attribute.
	Attr LineAttribute

	// The lines to which the attribute applies, as a bitmap of positions in
	// the request.
	Mask uint64
}

// ErrTooManyAttributes indicates a LineConfig already holds NumAttrsMax
// attributes.
var ErrTooManyAttributes = errors.New("too many line config attributes")

// LineConfig contains the configuration of a line request.
type LineConfig struct {
	// The flags applied to lines not covered by a flags attribute.
	Flags LineFlagV2

	// The number of populated Attrs.
	NumAttrs uint32

	// reserved for future use.
	Padding [5]uint32

	// The attributes overriding or supplementing Flags.
	Attrs [NumAttrsMax]LineConfigAttribute
}

// AddAttribute appends the attribute to the config, applied to the lines in
// mask.
func (lc *LineConfig) AddAttribute(a Attribute, mask uint64) error {
	if lc.NumAttrs >= NumAttrsMax {
		return ErrTooManyAttributes
	}
	lc.Attrs[lc.NumAttrs] = LineConfigAttribute{Attr: EncodeAttribute(a), Mask: mask}
	lc.NumAttrs++
	return nil
}

// SetLineConfigV2 sets the config of an existing line request.
//
// The fd is the request file returned by GetLine.
func SetLineConfigV2(fd uintptr, config *LineConfig) error {
	return doIoctl(fd, setLineConfigV2Ioctl, unsafe.Pointer(config))
}

// LineRequest is a request for control of a set of lines.
//
// The lines must all be on the same GPIO chip.
type LineRequest struct {
	// The lines to be requested.
	Offsets [LinesMax]uint32

	// The string identifying the requester to be applied to the lines.
	Consumer [NameSize]byte

	// The configuration for the requested lines.
	Config LineConfig

	// The number of lines being requested.
	Lines uint32

	// A suggested minimum number of events the kernel should buffer.
	//
	// Zero selects the kernel default.
	EventBufferSize uint32

	// reserved for future use.
	Padding [5]uint32

	// The file handle for the requested lines.
	//
	// Set by the kernel if the request is successful.
	Fd int32
}

// GetLine requests a line from the GPIO character device.
//
// On success the kernel populates request.Fd.
func GetLine(fd uintptr, request *LineRequest) error {
	return doIoctl(fd, getLineIoctl, unsafe.Pointer(request))
}

// LineValues contains the logical values for a set of lines.
type LineValues struct {
	// The value of each line, indexed by position in the request.
	Bits uint64

	// The lines in Bits that are valid.
	Mask uint64
}

// GetLineValuesV2 returns the values of a set of requested lines.
//
// The values.Mask selects the lines to be read.
func GetLineValuesV2(fd uintptr, values *LineValues) error {
	return doIoctl(fd, getLineValuesV2Ioctl, unsafe.Pointer(values))
}

// SetLineValuesV2 sets the values of a set of requested lines.
//
// Only the lines in values.Mask are set.
func SetLineValuesV2(fd uintptr, values LineValues) error {
	return doIoctl(fd, setLineValuesV2Ioctl, unsafe.Pointer(&values))
}

// LineInfoV2 contains the details of a single line of a GPIO chip.
type LineInfoV2 struct {
	// The system name for this line.
	Name [NameSize]byte

	// If requested, a string added by the requester to identify the
	// owner of the request.
	Consumer [NameSize]byte

	// The offset of the line within the chip.
	Offset uint32

	// The number of populated Attrs.
	NumAttrs uint32

	// The flags for this line.
	Flags LineFlagV2

	// Additional attributes of the line, such as debounce.
	Attrs [NumAttrsMax]LineAttribute

	// reserved for future use.
	Padding [4]uint32
}

// GetLineInfoV2 returns the LineInfoV2 for one line from the GPIO character
// device.
func GetLineInfoV2(fd uintptr, offset uint32) (LineInfoV2, error) {
	li := LineInfoV2{Offset: offset}
	err := doIoctl(fd, getLineInfoV2Ioctl, unsafe.Pointer(&li))
	return li, err
}

// WatchLineInfoV2 sets a watch on the info of a line.
//
// The li.Offset selects the line, and the remainder of li is populated with
// the current info of the line.
func WatchLineInfoV2(fd uintptr, li *LineInfoV2) error {
	return doIoctl(fd, watchLineInfoV2Ioctl, unsafe.Pointer(li))
}

// LineInfoChangedV2 contains the details of a change to line info.
//
// This is returned via the chip fd in response to changes to watched lines.
type LineInfoChangedV2 struct {
	// The updated info.
	Info LineInfoV2

	// The time the change occurred.
	Timestamp uint64

	// The type of change.
	Type ChangeType

	// reserved for future use.
	Padding [5]uint32
}

// ReadLineInfoChangedV2 reads a line info changed event from a chip.
//
// The r is the file of the chip.
// This function blocks until an event is available.
func ReadLineInfoChangedV2(r io.Reader) (LineInfoChangedV2, error) {
	var lic LineInfoChangedV2
	err := readRecord(r, &lic)
	return lic, err
}

// LineEventID indicates the type of a v2 edge event.
type LineEventID uint32

const (
	_ LineEventID = iota

	// LineEventRisingEdge indicates an inactive to active event.
	LineEventRisingEdge

	// LineEventFallingEdge indicates an active to inactive event.
	LineEventFallingEdge
)

// LineEvent contains the details of a particular line edge event.
type LineEvent struct {
	// The best estimate of time of event occurrence, in nanoseconds.
	Timestamp uint64

	// The type of event detected.
	ID LineEventID

	// The offset of the line that triggered the event.
	Offset uint32

	// The sequence number for this event in all events on all lines in this
	// line request.
	Seqno uint32

	// The sequence number for this event in all events on this line.
	LineSeqno uint32

	// reserved for future use.
	Padding [6]uint32
}

// ReadLineEvent reads a single edge event from a line request.
//
// The r is the file returned by GetLine.
// This function blocks until an event is available.
func ReadLineEvent(r io.Reader) (LineEvent, error) {
	var le LineEvent
	err := readRecord(r, &le)
	return le, err
}
