// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpioline

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/warthog618/go-gpioline/uapi"
)

// v2ABI maps requests onto the v2 "line" uAPI.
type v2ABI struct{}

func (v2ABI) version() int {
	return 2
}

func (v2ABI) lineInfo(fd uintptr, offset uint32) (LineInfo, error) {
	li, err := uapi.GetLineInfoV2(fd, offset)
	if err != nil {
		return LineInfo{}, err
	}
	return decodeLineInfoV2(&li)
}

func (v2ABI) watchLineInfo(fd uintptr, offset uint32) (LineInfo, error) {
	li := uapi.LineInfoV2{Offset: offset}
	if err := uapi.WatchLineInfoV2(fd, &li); err != nil {
		return LineInfo{}, err
	}
	return decodeLineInfoV2(&li)
}

func (v2ABI) readInfoChange(r io.Reader) (InfoChange, error) {
	lic, err := uapi.ReadLineInfoChangedV2(r)
	if err != nil {
		return InfoChange{}, err
	}
	info, err := decodeLineInfoV2(&lic.Info)
	if err != nil {
		return InfoChange{}, err
	}
	return InfoChange{
		Info:      info,
		Timestamp: time.Duration(lic.Timestamp),
		Type:      InfoChangeType(lic.Type),
	}, nil
}

func (v2ABI) request(fd uintptr, offsets []uint32, dir Direction, cfg *requestConfig) (int, bool, error) {
	lr, err := lineRequestV2(offsets, dir, cfg)
	if err != nil {
		return -1, false, err
	}
	if err = uapi.GetLine(fd, &lr); err != nil {
		return -1, false, err
	}
	return int(lr.Fd), cfg.edge != EdgeDetectionDisable, nil
}

func (v2ABI) reconfigure(fd uintptr, offsets []uint32, dir Direction, events bool, cfg *requestConfig) error {
	lc, err := lineConfigV2(len(offsets), dir, cfg)
	if err != nil {
		return err
	}
	return uapi.SetLineConfigV2(fd, &lc)
}

func (v2ABI) values(fd uintptr, numLines int) (Values, error) {
	lv := uapi.LineValues{Mask: linesMask(numLines)}
	if err := uapi.GetLineValuesV2(fd, &lv); err != nil {
		return Values{}, err
	}
	return Values{Bits: lv.Bits, Mask: lv.Mask}, nil
}

func (v2ABI) setValues(fd uintptr, numLines int, vv Values) error {
	return uapi.SetLineValuesV2(fd, encodeLineValues(vv, numLines))
}

func (v2ABI) readEvent(r io.Reader, offsets []uint32) (Event, error) {
	le, err := uapi.ReadLineEvent(r)
	if err != nil {
		return Event{}, err
	}
	return decodeLineEvent(&le, offsets)
}

// lineFlagsV2 returns the v2 line flags for the config.
func lineFlagsV2(dir Direction, cfg *requestConfig) uapi.LineFlagV2 {
	var flags uapi.LineFlagV2
	if dir == DirectionOutput {
		flags |= uapi.LineFlagV2Output
		switch cfg.drive {
		case DriveOpenDrain:
			flags |= uapi.LineFlagV2OpenDrain
		case DriveOpenSource:
			flags |= uapi.LineFlagV2OpenSource
		}
	} else {
		flags |= uapi.LineFlagV2Input
	}
	if cfg.active == ActiveLow {
		flags |= uapi.LineFlagV2ActiveLow
	}
	switch cfg.edge {
	case EdgeDetectionRising:
		flags |= uapi.LineFlagV2EdgeRising
	case EdgeDetectionFalling:
		flags |= uapi.LineFlagV2EdgeFalling
	case EdgeDetectionBoth:
		flags |= uapi.LineFlagV2EdgeBoth
	}
	switch cfg.bias {
	case BiasPullUp:
		flags |= uapi.LineFlagV2BiasPullUp
	case BiasPullDown:
		flags |= uapi.LineFlagV2BiasPullDown
	}
	return flags
}

func lineConfigV2(numLines int, dir Direction, cfg *requestConfig) (uapi.LineConfig, error) {
	var lc uapi.LineConfig
	lc.Flags = lineFlagsV2(dir, cfg)
	mask := linesMask(numLines)
	if dir == DirectionOutput {
		// unmasked positions are inactive
		ov := cfg.defaults.Bits & cfg.defaults.Mask & mask
		if err := lc.AddAttribute(uapi.OutputValuesAttribute(ov), mask); err != nil {
			return lc, err
		}
	}
	if cfg.debounce != 0 {
		us := cfg.debounce.Microseconds()
		if us <= 0 || us > int64(^uint32(0)) {
			return lc, errors.Errorf("debounce period %s out of range", cfg.debounce)
		}
		if err := lc.AddAttribute(uapi.DebounceAttribute(us), mask); err != nil {
			return lc, err
		}
	}
	return lc, nil
}

func lineRequestV2(offsets []uint32, dir Direction, cfg *requestConfig) (uapi.LineRequest, error) {
	var lr uapi.LineRequest
	if err := checkOffsets(offsets); err != nil {
		return lr, err
	}
	if err := encodeName(lr.Consumer[:], cfg.consumer); err != nil {
		return lr, err
	}
	lc, err := lineConfigV2(len(offsets), dir, cfg)
	if err != nil {
		return lr, err
	}
	copy(lr.Offsets[:], offsets)
	lr.Lines = uint32(len(offsets))
	lr.Config = lc
	lr.EventBufferSize = cfg.eventBufferSize
	return lr, nil
}

func decodeLineInfoV2(li *uapi.LineInfoV2) (LineInfo, error) {
	name, err := decodeName(li.Name[:])
	if err != nil {
		return LineInfo{}, err
	}
	consumer, err := decodeName(li.Consumer[:])
	if err != nil {
		return LineInfo{}, err
	}
	info := LineInfo{
		Offset:   li.Offset,
		Name:     name,
		Consumer: consumer,
		Used:     li.Flags.IsUsed(),
	}
	if li.Flags.IsOutput() {
		info.Direction = DirectionOutput
	}
	if li.Flags.IsActiveLow() {
		info.Active = ActiveLow
	}
	switch {
	case li.Flags.IsRisingEdge() && li.Flags.IsFallingEdge():
		info.EdgeDetection = EdgeDetectionBoth
	case li.Flags.IsRisingEdge():
		info.EdgeDetection = EdgeDetectionRising
	case li.Flags.IsFallingEdge():
		info.EdgeDetection = EdgeDetectionFalling
	}
	switch {
	case li.Flags.IsOpenDrain():
		info.Drive = DriveOpenDrain
	case li.Flags.IsOpenSource():
		info.Drive = DriveOpenSource
	}
	switch {
	case li.Flags.IsBiasPullUp():
		info.Bias = BiasPullUp
	case li.Flags.IsBiasPullDown():
		info.Bias = BiasPullDown
	}
	n := int(li.NumAttrs)
	if n > len(li.Attrs) {
		return LineInfo{}, errors.Wrapf(ErrInvalidData, "%d attributes", li.NumAttrs)
	}
	for _, la := range li.Attrs[:n] {
		a, err := la.Decode()
		if err != nil {
			// attributes added by newer kernels
			continue
		}
		if d, ok := a.(uapi.DebounceAttribute); ok {
			info.Debounce = time.Duration(d) * time.Microsecond
		}
	}
	return info, nil
}

// encodeLineValues returns the packed values, with the mask limited to the
// requested lines.
func encodeLineValues(vv Values, numLines int) uapi.LineValues {
	mask := vv.Mask & linesMask(numLines)
	return uapi.LineValues{Bits: vv.Bits & mask, Mask: mask}
}

// decodeLineEvent converts a v2 event to an Event, mapping the offset back to
// its position in the request.
func decodeLineEvent(le *uapi.LineEvent, offsets []uint32) (Event, error) {
	evt := Event{
		Line:      -1,
		Offset:    le.Offset,
		Timestamp: time.Duration(le.Timestamp),
		Seqno:     le.Seqno,
		LineSeqno: le.LineSeqno,
	}
	for i, o := range offsets {
		if o == le.Offset {
			evt.Line = i
			break
		}
	}
	if evt.Line < 0 {
		return Event{}, errors.Wrapf(ErrInvalidData, "event offset %d not in request", le.Offset)
	}
	switch le.ID {
	case uapi.LineEventRisingEdge:
		evt.Edge = EdgeRising
	case uapi.LineEventFallingEdge:
		evt.Edge = EdgeFalling
	default:
		return Event{}, errors.Wrapf(ErrInvalidData, "unknown event id %d", le.ID)
	}
	return evt, nil
}
