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

// v1ABI maps requests onto the v1 "handle" uAPI.
//
// Edge detection is only available on single line input requests, which are
// made with GetLineEvent rather than GetLineHandle.
type v1ABI struct{}

func (v1ABI) version() int {
	return 1
}

func (v1ABI) lineInfo(fd uintptr, offset uint32) (LineInfo, error) {
	li, err := uapi.GetLineInfo(fd, offset)
	if err != nil {
		return LineInfo{}, err
	}
	return decodeLineInfoV1(&li)
}

func (v1ABI) watchLineInfo(fd uintptr, offset uint32) (LineInfo, error) {
	li := uapi.LineInfo{Offset: offset}
	if err := uapi.WatchLineInfo(fd, &li); err != nil {
		return LineInfo{}, err
	}
	return decodeLineInfoV1(&li)
}

func (v1ABI) readInfoChange(r io.Reader) (InfoChange, error) {
	lic, err := uapi.ReadLineInfoChanged(r)
	if err != nil {
		return InfoChange{}, err
	}
	info, err := decodeLineInfoV1(&lic.Info)
	if err != nil {
		return InfoChange{}, err
	}
	return InfoChange{
		Info:      info,
		Timestamp: time.Duration(lic.Timestamp),
		Type:      InfoChangeType(lic.Type),
	}, nil
}

func (v1ABI) request(fd uintptr, offsets []uint32, dir Direction, cfg *requestConfig) (int, bool, error) {
	if cfg.edge != EdgeDetectionDisable {
		er, err := eventRequestV1(offsets, dir, cfg)
		if err != nil {
			return -1, false, err
		}
		if err = uapi.GetLineEvent(fd, &er); err != nil {
			return -1, false, err
		}
		return int(er.Fd), true, nil
	}
	hr, err := handleRequestV1(offsets, dir, cfg)
	if err != nil {
		return -1, false, err
	}
	if err = uapi.GetLineHandle(fd, &hr); err != nil {
		return -1, false, err
	}
	return int(hr.Fd), false, nil
}

func (v1ABI) reconfigure(fd uintptr, offsets []uint32, dir Direction, events bool, cfg *requestConfig) error {
	if events {
		return ErrUapiIncompatibility{"reconfiguring edge detection requests", 1}
	}
	hc, err := handleConfigV1(len(offsets), dir, cfg)
	if err != nil {
		return err
	}
	return uapi.SetLineConfig(fd, &hc)
}

func (v1ABI) values(fd uintptr, numLines int) (Values, error) {
	var hd uapi.HandleData
	if err := uapi.GetLineValues(fd, &hd); err != nil {
		return Values{}, err
	}
	return decodeHandleData(&hd, numLines), nil
}

func (v1ABI) setValues(fd uintptr, numLines int, vv Values) error {
	return uapi.SetLineValues(fd, encodeHandleData(vv, numLines))
}

func (v1ABI) readEvent(r io.Reader, offsets []uint32) (Event, error) {
	ed, err := uapi.ReadEvent(r)
	if err != nil {
		return Event{}, err
	}
	return decodeEventData(&ed, offsets)
}

// handleFlagsV1 returns the v1 request flags for the config.
func handleFlagsV1(dir Direction, cfg *requestConfig) uapi.HandleFlag {
	var flags uapi.HandleFlag
	if dir == DirectionOutput {
		flags |= uapi.HandleRequestOutput
		switch cfg.drive {
		case DriveOpenDrain:
			flags |= uapi.HandleRequestOpenDrain
		case DriveOpenSource:
			flags |= uapi.HandleRequestOpenSource
		}
	} else {
		flags |= uapi.HandleRequestInput
	}
	if cfg.active == ActiveLow {
		flags |= uapi.HandleRequestActiveLow
	}
	switch cfg.bias {
	case BiasPullUp:
		flags |= uapi.HandleRequestPullUp
	case BiasPullDown:
		flags |= uapi.HandleRequestPullDown
	}
	return flags
}

// checkConfigV1 rejects config the v1 ABI cannot express.
func checkConfigV1(cfg *requestConfig) error {
	if cfg.debounce != 0 {
		return ErrUapiIncompatibility{"debounce", 1}
	}
	return nil
}

func handleRequestV1(offsets []uint32, dir Direction, cfg *requestConfig) (uapi.HandleRequest, error) {
	var hr uapi.HandleRequest
	if err := checkOffsets(offsets); err != nil {
		return hr, err
	}
	if err := checkConfigV1(cfg); err != nil {
		return hr, err
	}
	if err := encodeName(hr.Consumer[:], cfg.consumer); err != nil {
		return hr, err
	}
	copy(hr.Offsets[:], offsets)
	hr.Lines = uint32(len(offsets))
	hr.Flags = handleFlagsV1(dir, cfg)
	if dir == DirectionOutput {
		hr.DefaultValues = encodeHandleData(cfg.defaults, len(offsets))
	}
	return hr, nil
}

func handleConfigV1(numLines int, dir Direction, cfg *requestConfig) (uapi.HandleConfig, error) {
	var hc uapi.HandleConfig
	if cfg.edge != EdgeDetectionDisable {
		return hc, ErrUapiIncompatibility{"adding edge detection to a request", 1}
	}
	if err := checkConfigV1(cfg); err != nil {
		return hc, err
	}
	hc.Flags = handleFlagsV1(dir, cfg)
	if dir == DirectionOutput {
		hc.DefaultValues = encodeHandleData(cfg.defaults, numLines)
	}
	return hc, nil
}

func eventRequestV1(offsets []uint32, dir Direction, cfg *requestConfig) (uapi.EventRequest, error) {
	var er uapi.EventRequest
	if err := checkOffsets(offsets); err != nil {
		return er, err
	}
	if len(offsets) != 1 {
		return er, ErrUapiIncompatibility{"edge detection on multiple lines", 1}
	}
	if dir != DirectionInput {
		return er, ErrUapiIncompatibility{"edge detection on outputs", 1}
	}
	if err := checkConfigV1(cfg); err != nil {
		return er, err
	}
	if err := encodeName(er.Consumer[:], cfg.consumer); err != nil {
		return er, err
	}
	er.Offset = offsets[0]
	er.HandleFlags = handleFlagsV1(dir, cfg)
	switch cfg.edge {
	case EdgeDetectionRising:
		er.EventFlags = uapi.EventRequestRisingEdge
	case EdgeDetectionFalling:
		er.EventFlags = uapi.EventRequestFallingEdge
	default:
		er.EventFlags = uapi.EventRequestBothEdges
	}
	return er, nil
}

// decodeHandleData converts the one byte per line values to Values.
//
// Only the first numLines positions are set in the mask.
func decodeHandleData(hd *uapi.HandleData, numLines int) Values {
	var vv Values
	for i := 0; i < numLines && i < len(hd); i++ {
		vv.Set(uint(i), hd[i] != 0)
	}
	return vv
}

// encodeHandleData converts Values to one byte per line.
//
// Positions not in the mask are inactive.
func encodeHandleData(vv Values, numLines int) uapi.HandleData {
	var hd uapi.HandleData
	for i := 0; i < numLines && i < len(hd); i++ {
		if v, ok := vv.Get(uint(i)); ok && v {
			hd[i] = 1
		}
	}
	return hd
}

func decodeLineInfoV1(li *uapi.LineInfo) (LineInfo, error) {
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
	if li.Flags.IsOut() {
		info.Direction = DirectionOutput
	}
	if li.Flags.IsActiveLow() {
		info.Active = ActiveLow
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
	return info, nil
}

// decodeEventData converts a v1 event to an Event.
//
// v1 events carry no offset, so the request must contain exactly one line.
func decodeEventData(ed *uapi.EventData, offsets []uint32) (Event, error) {
	if len(offsets) != 1 {
		return Event{}, errors.Wrapf(ErrInvalidData, "v1 event from request of %d lines", len(offsets))
	}
	evt := Event{
		Offset:    offsets[0],
		Timestamp: time.Duration(ed.Timestamp),
	}
	switch ed.ID {
	case uapi.EventRisingEdge:
		evt.Edge = EdgeRising
	case uapi.EventFallingEdge:
		evt.Edge = EdgeFalling
	default:
		return Event{}, errors.Wrapf(ErrInvalidData, "unknown event id %d", ed.ID)
	}
	return evt, nil
}
