// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpioline

import (
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/go-gpioline/uapi"
)

func TestNewABI(t *testing.T) {
	a, err := newABI(1)
	require.Nil(t, err)
	assert.Equal(t, 1, a.version())
	a, err = newABI(2)
	require.Nil(t, err)
	assert.Equal(t, 2, a.version())
	a, err = newABI(3)
	assert.Nil(t, a)
	assert.Equal(t, ErrUapiIncompatibility{"unknown ABI version", 3}, err)
}

func TestCheckOffsets(t *testing.T) {
	assert.Equal(t, ErrNoLines, checkOffsets(nil))
	assert.Nil(t, checkOffsets([]uint32{0}))
	assert.Nil(t, checkOffsets(make([]uint32, 64)))
	err := checkOffsets(make([]uint32, 65))
	assert.True(t, errors.Is(err, ErrTooManyLines))
}

func TestDriveFlags(t *testing.T) {
	patterns := []struct {
		name  string
		drive Drive
		v1    uapi.HandleFlag
		v2    uapi.LineFlagV2
	}{
		{"push-pull", DrivePushPull, 0, 0},
		{"open-drain", DriveOpenDrain, uapi.HandleRequestOpenDrain, uapi.LineFlagV2OpenDrain},
		{"open-source", DriveOpenSource, uapi.HandleRequestOpenSource, uapi.LineFlagV2OpenSource},
	}
	v1drive := uapi.HandleRequestOpenDrain | uapi.HandleRequestOpenSource
	v2drive := uapi.LineFlagV2OpenDrain | uapi.LineFlagV2OpenSource
	for _, p := range patterns {
		tf := func(t *testing.T) {
			cfg := requestConfig{drive: p.drive}
			hr, err := handleRequestV1([]uint32{1}, DirectionOutput, &cfg)
			require.Nil(t, err)
			assert.Equal(t, p.v1, hr.Flags&v1drive)
			assert.True(t, hr.Flags.IsOutput())
			assert.False(t, hr.Flags.IsInput())

			lr, err := lineRequestV2([]uint32{1}, DirectionOutput, &cfg)
			require.Nil(t, err)
			assert.Equal(t, p.v2, lr.Config.Flags&v2drive)
			assert.True(t, lr.Config.Flags.IsOutput())
		}
		t.Run(p.name, tf)
	}
}

func TestInputFlags(t *testing.T) {
	cfg := requestConfig{active: ActiveLow, bias: BiasPullUp}
	hr, err := handleRequestV1([]uint32{2, 4}, DirectionInput, &cfg)
	require.Nil(t, err)
	assert.Equal(t, uapi.HandleRequestInput|uapi.HandleRequestActiveLow|uapi.HandleRequestPullUp, hr.Flags)
	assert.Equal(t, uint32(2), hr.Lines)
	assert.Equal(t, uint32(4), hr.Offsets[1])
	assert.Equal(t, uapi.HandleData{}, uapi.HandleData(hr.DefaultValues))

	cfg = requestConfig{bias: BiasPullDown, edge: EdgeDetectionBoth}
	lr, err := lineRequestV2([]uint32{2, 4}, DirectionInput, &cfg)
	require.Nil(t, err)
	assert.Equal(t,
		uapi.LineFlagV2Input|uapi.LineFlagV2BiasPullDown|uapi.LineFlagV2EdgeBoth,
		lr.Config.Flags)
	assert.Zero(t, lr.Config.NumAttrs)

	// bias disable requests no bias flag
	cfg = requestConfig{}
	lr, err = lineRequestV2([]uint32{2}, DirectionInput, &cfg)
	require.Nil(t, err)
	assert.Equal(t, uapi.LineFlagV2Input, lr.Config.Flags)
}

func TestConsumerLength(t *testing.T) {
	ok := strings.Repeat("c", 31)
	cfg := requestConfig{consumer: ok}
	hr, err := handleRequestV1([]uint32{1}, DirectionInput, &cfg)
	require.Nil(t, err)
	assert.Equal(t, ok, string(hr.Consumer[:31]))
	assert.Zero(t, hr.Consumer[31])
	lr, err := lineRequestV2([]uint32{1}, DirectionInput, &cfg)
	require.Nil(t, err)
	assert.Equal(t, ok, string(lr.Consumer[:31]))

	for _, n := range []int{32, 33, 100} {
		cfg.consumer = strings.Repeat("c", n)
		_, err = handleRequestV1([]uint32{1}, DirectionInput, &cfg)
		assert.True(t, errors.Is(err, ErrConsumerTooLong), n)
		_, err = lineRequestV2([]uint32{1}, DirectionInput, &cfg)
		assert.True(t, errors.Is(err, ErrConsumerTooLong), n)
		_, err = eventRequestV1([]uint32{1}, DirectionInput, &requestConfig{
			consumer: cfg.consumer,
			edge:     EdgeDetectionRising,
		})
		assert.True(t, errors.Is(err, ErrConsumerTooLong), n)
	}
}

func TestTooManyLines(t *testing.T) {
	offsets := make([]uint32, 65)
	cfg := requestConfig{}
	_, err := handleRequestV1(offsets, DirectionOutput, &cfg)
	assert.True(t, errors.Is(err, ErrTooManyLines))
	_, err = lineRequestV2(offsets, DirectionOutput, &cfg)
	assert.True(t, errors.Is(err, ErrTooManyLines))
	_, err = handleRequestV1(nil, DirectionOutput, &cfg)
	assert.Equal(t, ErrNoLines, err)
}

// offsets [1,3] as active low outputs, with bit0 inactive and bit1 active.
func TestSetValuesScenario(t *testing.T) {
	var vv Values
	vv.Set(0, false)
	vv.Set(1, true)
	assert.Equal(t, Values{Bits: 0b10, Mask: 0b11}, vv)

	hd := encodeHandleData(vv, 2)
	assert.Equal(t, []uint8{0, 1}, hd[:2])
	assert.Equal(t, make([]uint8, 62), hd[2:])

	lv := encodeLineValues(vv, 2)
	assert.Equal(t, uapi.LineValues{Bits: 0b10, Mask: 0b11}, lv)

	// the full width of a uint8 is limited to the requested lines
	lv = encodeLineValues(ValuesOf(uint8(0b10)), 2)
	assert.Equal(t, uapi.LineValues{Bits: 0b10, Mask: 0b11}, lv)

	cfg := requestConfig{active: ActiveLow, defaults: vv}
	hr, err := handleRequestV1([]uint32{1, 3}, DirectionOutput, &cfg)
	require.Nil(t, err)
	assert.True(t, hr.Flags.IsActiveLow())
	assert.Equal(t, []uint8{0, 1}, hr.DefaultValues[:2])

	lr, err := lineRequestV2([]uint32{1, 3}, DirectionOutput, &cfg)
	require.Nil(t, err)
	assert.True(t, lr.Config.Flags.IsActiveLow())
	require.Equal(t, uint32(1), lr.Config.NumAttrs)
	assert.Equal(t, uint64(0b11), lr.Config.Attrs[0].Mask)
	a, err := lr.Config.Attrs[0].Attr.Decode()
	require.Nil(t, err)
	assert.Equal(t, uapi.OutputValuesAttribute(0b10), a)
}

func TestEncodeHandleDataUnmasked(t *testing.T) {
	vv := Values{Bits: 0b111, Mask: 0b101}
	hd := encodeHandleData(vv, 3)
	assert.Equal(t, []uint8{1, 0, 1}, hd[:3])

	// positions beyond the request are ignored
	hd = encodeHandleData(Values{Bits: 0b1111, Mask: 0b1111}, 2)
	assert.Equal(t, []uint8{1, 1, 0, 0}, hd[:4])
}

func TestDecodeHandleData(t *testing.T) {
	var hd uapi.HandleData
	hd[0] = 0
	hd[1] = 1
	hd[2] = 0x80
	// beyond the request, so ignored
	hd[3] = 1
	vv := decodeHandleData(&hd, 3)
	assert.Equal(t, Values{Bits: 0b110, Mask: 0b111}, vv)
	v, ok := vv.Get(3)
	assert.False(t, ok)
	assert.False(t, v)

	for i := range hd {
		hd[i] = 1
	}
	vv = decodeHandleData(&hd, 64)
	assert.Equal(t, Values{Bits: ^uint64(0), Mask: ^uint64(0)}, vv)
}

func TestV1EdgeDetection(t *testing.T) {
	cfg := requestConfig{edge: EdgeDetectionFalling, active: ActiveLow}
	er, err := eventRequestV1([]uint32{5}, DirectionInput, &cfg)
	require.Nil(t, err)
	assert.Equal(t, uint32(5), er.Offset)
	assert.Equal(t, uapi.EventRequestFallingEdge, er.EventFlags)
	assert.Equal(t, uapi.HandleRequestInput|uapi.HandleRequestActiveLow, er.HandleFlags)

	cfg.edge = EdgeDetectionBoth
	er, err = eventRequestV1([]uint32{5}, DirectionInput, &cfg)
	require.Nil(t, err)
	assert.Equal(t, uapi.EventRequestBothEdges, er.EventFlags)

	// multiple lines
	_, err = eventRequestV1([]uint32{1, 2}, DirectionInput, &cfg)
	assert.Equal(t, ErrUapiIncompatibility{"edge detection on multiple lines", 1}, err)

	// outputs
	_, err = eventRequestV1([]uint32{1}, DirectionOutput, &cfg)
	assert.Equal(t, ErrUapiIncompatibility{"edge detection on outputs", 1}, err)

	// reconfigure
	_, err = handleConfigV1(1, DirectionInput, &cfg)
	assert.IsType(t, ErrUapiIncompatibility{}, err)
	err = v1ABI{}.reconfigure(0, []uint32{1}, DirectionInput, true, &requestConfig{})
	assert.IsType(t, ErrUapiIncompatibility{}, err)
}

func TestDebounce(t *testing.T) {
	cfg := requestConfig{debounce: 10 * time.Millisecond}
	_, err := handleRequestV1([]uint32{1}, DirectionInput, &cfg)
	assert.Equal(t, ErrUapiIncompatibility{"debounce", 1}, err)

	lr, err := lineRequestV2([]uint32{1, 2, 3}, DirectionInput, &cfg)
	require.Nil(t, err)
	require.Equal(t, uint32(1), lr.Config.NumAttrs)
	assert.Equal(t, uint64(0b111), lr.Config.Attrs[0].Mask)
	a, err := lr.Config.Attrs[0].Attr.Decode()
	require.Nil(t, err)
	assert.Equal(t, uapi.DebounceAttribute(10000), a)

	cfg.debounce = time.Nanosecond
	_, err = lineRequestV2([]uint32{1}, DirectionInput, &cfg)
	assert.NotNil(t, err)
}

func TestHandleConfigV1(t *testing.T) {
	cfg := requestConfig{drive: DriveOpenDrain, defaults: Values{Bits: 0b01, Mask: 0b11}}
	hc, err := handleConfigV1(2, DirectionOutput, &cfg)
	require.Nil(t, err)
	assert.Equal(t, uapi.HandleRequestOutput|uapi.HandleRequestOpenDrain, hc.Flags)
	assert.Equal(t, []uint8{1, 0}, hc.DefaultValues[:2])
}

func TestDecodeLineInfoV1(t *testing.T) {
	li := uapi.LineInfo{
		Offset: 7,
		Flags: uapi.LineFlagUsed | uapi.LineFlagIsOut | uapi.LineFlagActiveLow |
			uapi.LineFlagOpenSource | uapi.LineFlagBiasPullDown,
	}
	copy(li.Name[:], "LED0")
	copy(li.Consumer[:], "blinker")
	info, err := decodeLineInfoV1(&li)
	require.Nil(t, err)
	assert.Equal(t, LineInfo{
		Offset:    7,
		Name:      "LED0",
		Consumer:  "blinker",
		Used:      true,
		Direction: DirectionOutput,
		Active:    ActiveLow,
		Bias:      BiasPullDown,
		Drive:     DriveOpenSource,
	}, info)

	// bits other than bit 0 are decoded
	li = uapi.LineInfo{Flags: uapi.LineFlagOpenDrain | uapi.LineFlagBiasPullUp}
	info, err = decodeLineInfoV1(&li)
	require.Nil(t, err)
	assert.Equal(t, DriveOpenDrain, info.Drive)
	assert.Equal(t, BiasPullUp, info.Bias)
	assert.Equal(t, DirectionInput, info.Direction)
	assert.False(t, info.Used)
	assert.Equal(t, EdgeDetectionDisable, info.EdgeDetection)

	li.Name[0] = 0xff
	_, err = decodeLineInfoV1(&li)
	assert.True(t, errors.Is(err, ErrInvalidData))
}

func TestDecodeLineInfoV2(t *testing.T) {
	li := uapi.LineInfoV2{
		Offset: 3,
		Flags: uapi.LineFlagV2Used | uapi.LineFlagV2Input | uapi.LineFlagV2EdgeBoth |
			uapi.LineFlagV2BiasPullUp,
		NumAttrs: 2,
	}
	li.Attrs[0] = uapi.LineAttribute{ID: 99, Value: 1}
	li.Attrs[1] = uapi.EncodeAttribute(uapi.DebounceAttribute(1500))
	copy(li.Name[:], "BUTTON")
	info, err := decodeLineInfoV2(&li)
	require.Nil(t, err)
	assert.Equal(t, LineInfo{
		Offset:        3,
		Name:          "BUTTON",
		Used:          true,
		Direction:     DirectionInput,
		EdgeDetection: EdgeDetectionBoth,
		Bias:          BiasPullUp,
		Debounce:      1500 * time.Microsecond,
	}, info)

	li.Flags = uapi.LineFlagV2Output | uapi.LineFlagV2OpenDrain | uapi.LineFlagV2EdgeFalling
	info, err = decodeLineInfoV2(&li)
	require.Nil(t, err)
	assert.Equal(t, DirectionOutput, info.Direction)
	assert.Equal(t, DriveOpenDrain, info.Drive)
	assert.Equal(t, EdgeDetectionFalling, info.EdgeDetection)

	li.NumAttrs = 11
	_, err = decodeLineInfoV2(&li)
	assert.True(t, errors.Is(err, ErrInvalidData))
}

func TestDecodeLineEvent(t *testing.T) {
	offsets := []uint32{4, 9, 2}
	le := uapi.LineEvent{
		Timestamp: 1234,
		ID:        uapi.LineEventFallingEdge,
		Offset:    2,
		Seqno:     7,
		LineSeqno: 3,
	}
	evt, err := decodeLineEvent(&le, offsets)
	require.Nil(t, err)
	assert.Equal(t, Event{
		Line:      2,
		Offset:    2,
		Edge:      EdgeFalling,
		Timestamp: 1234 * time.Nanosecond,
		Seqno:     7,
		LineSeqno: 3,
	}, evt)

	le.Offset = 5
	_, err = decodeLineEvent(&le, offsets)
	assert.True(t, errors.Is(err, ErrInvalidData))

	le.Offset = 4
	le.ID = 3
	_, err = decodeLineEvent(&le, offsets)
	assert.True(t, errors.Is(err, ErrInvalidData))
}

func TestDecodeEventData(t *testing.T) {
	ed := uapi.EventData{Timestamp: 42, ID: uapi.EventRisingEdge}
	evt, err := decodeEventData(&ed, []uint32{6})
	require.Nil(t, err)
	assert.Equal(t, Event{Line: 0, Offset: 6, Edge: EdgeRising, Timestamp: 42}, evt)

	_, err = decodeEventData(&ed, []uint32{6, 7})
	assert.True(t, errors.Is(err, ErrInvalidData))

	ed.ID = 0
	_, err = decodeEventData(&ed, []uint32{6})
	assert.True(t, errors.Is(err, ErrInvalidData))
}

func TestNames(t *testing.T) {
	var b [NameSize]byte
	err := encodeName(b[:], "gpio-sim.0")
	require.Nil(t, err)
	s, err := decodeName(b[:])
	require.Nil(t, err)
	assert.Equal(t, "gpio-sim.0", s)

	// shorter name overwrites remnants of longer
	err = encodeName(b[:], "abc")
	require.Nil(t, err)
	s, err = decodeName(b[:])
	require.Nil(t, err)
	assert.Equal(t, "abc", s)

	s, err = decodeName(make([]byte, NameSize))
	require.Nil(t, err)
	assert.Equal(t, "", s)

	_, err = decodeName([]byte{'a', 0xc3, 0x28, 0})
	assert.True(t, errors.Is(err, ErrInvalidData))
}

func TestDefaultConsumer(t *testing.T) {
	c := defaultConsumer()
	assert.NotEmpty(t, c)
	assert.Less(t, len(c), NameSize)
}
