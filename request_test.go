// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpioline

import (
	"context"
	"os"
	"testing"
	"time"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/go-gpioline/uapi"
	"golang.org/x/sys/unix"
)

// pipeRequest returns a request wrapping the read end of a pipe, and the
// write end, so events can be injected without a GPIO chip.
func pipeRequest(t *testing.T, offsets []uint32, a abi) (*request, *os.File) {
	var p [2]int
	err := unix.Pipe2(p[:], unix.O_CLOEXEC)
	require.Nil(t, err)
	w := os.NewFile(uintptr(p[1]), "pipe")
	t.Cleanup(func() { w.Close() })
	r, err := newRequest("gpiochip0", offsets, DirectionInput, p[0], a, requestConfig{})
	require.Nil(t, err)
	t.Cleanup(func() { r.Close() })
	r.events = true
	return r, w
}

func recordBytes[T any](rec T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&rec)), unsafe.Sizeof(rec))
}

func writeRecord[T any](t *testing.T, w *os.File, rec T) {
	b := recordBytes(rec)
	n, err := w.Write(b)
	require.Nil(t, err)
	require.Equal(t, len(b), n)
}

func TestRequestAccessors(t *testing.T) {
	offsets := []uint32{3, 1, 2}
	r, _ := pipeRequest(t, offsets, v2ABI{})
	assert.Equal(t, "gpiochip0", r.ChipName())
	assert.Equal(t, offsets, r.Lines())
	assert.Equal(t, DirectionInput, r.Direction())

	// copies
	offsets[0] = 9
	assert.Equal(t, []uint32{3, 1, 2}, r.Lines())
	ll := r.Lines()
	ll[1] = 7
	assert.Equal(t, []uint32{3, 1, 2}, r.Lines())
}

func TestReadEventV2(t *testing.T) {
	r, w := pipeRequest(t, []uint32{5, 8}, v2ABI{})
	writeRecord(t, w, uapi.LineEvent{
		Timestamp: 100,
		ID:        uapi.LineEventRisingEdge,
		Offset:    8,
		Seqno:     1,
		LineSeqno: 1,
	})
	evt, err := r.ReadEvent()
	require.Nil(t, err)
	assert.Equal(t, Event{Line: 1, Offset: 8, Edge: EdgeRising, Timestamp: 100, Seqno: 1, LineSeqno: 1}, evt)

	// offset not in request
	writeRecord(t, w, uapi.LineEvent{ID: uapi.LineEventRisingEdge, Offset: 6})
	_, err = r.ReadEvent()
	assert.True(t, errors.Is(err, ErrInvalidData))
}

func TestReadEventV1(t *testing.T) {
	r, w := pipeRequest(t, []uint32{4}, v1ABI{})
	writeRecord(t, w, uapi.EventData{Timestamp: 200, ID: uapi.EventFallingEdge})
	evt, err := r.ReadEvent()
	require.Nil(t, err)
	assert.Equal(t, Event{Line: 0, Offset: 4, Edge: EdgeFalling, Timestamp: 200}, evt)
}

func TestWaitEvent(t *testing.T) {
	r, w := pipeRequest(t, []uint32{5}, v2ABI{})
	go func() {
		time.Sleep(20 * time.Millisecond)
		w.Write(recordBytes(uapi.LineEvent{ID: uapi.LineEventFallingEdge, Offset: 5}))
	}()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	evt, err := r.WaitEvent(ctx)
	require.Nil(t, err)
	assert.Equal(t, EdgeFalling, evt.Edge)
	assert.Equal(t, 0, evt.Line)
}

func TestWaitEventCancel(t *testing.T) {
	r, w := pipeRequest(t, []uint32{5}, v2ABI{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := r.WaitEvent(ctx)
	assert.Equal(t, context.DeadlineExceeded, err)
	assert.Less(t, time.Since(start), time.Second)

	// already done
	ctx, cancel = context.WithCancel(context.Background())
	cancel()
	_, err = r.WaitEvent(ctx)
	assert.Equal(t, context.Canceled, err)

	// the deadline is cleared, so subsequent reads block as normal
	writeRecord(t, w, uapi.LineEvent{ID: uapi.LineEventRisingEdge, Offset: 5})
	evt, err := r.ReadEvent()
	require.Nil(t, err)
	assert.Equal(t, EdgeRising, evt.Edge)
}

func TestEdgeDetectionDisabled(t *testing.T) {
	r, _ := pipeRequest(t, []uint32{5}, v2ABI{})
	r.events = false
	_, err := r.ReadEvent()
	assert.Equal(t, ErrEdgeDetectionDisabled, err)
	_, err = r.WaitEvent(context.Background())
	assert.Equal(t, ErrEdgeDetectionDisabled, err)
}

func TestRequestIoctlError(t *testing.T) {
	// a pipe is not a line request, so the errno is returned unchanged
	r, _ := pipeRequest(t, []uint32{5}, v2ABI{})
	_, err := r.Values()
	assert.Equal(t, unix.ENOTTY, err)
	o := Outputs{*r}
	err = o.SetValues(Values{Bits: 1, Mask: 1})
	assert.Equal(t, unix.ENOTTY, err)
	_, err = GetValues[uint8](&o)
	assert.Equal(t, unix.ENOTTY, err)
	err = SetValues(&o, uint16(3))
	assert.Equal(t, unix.ENOTTY, err)

	r1, _ := pipeRequest(t, []uint32{5}, v1ABI{})
	_, err = r1.Values()
	assert.Equal(t, unix.ENOTTY, err)
	r1.events = false
	i := Inputs{*r1}
	err = i.Reconfigure(WithPullUp)
	assert.Equal(t, unix.ENOTTY, err)
	// config unchanged on failure
	assert.Equal(t, BiasDisable, i.cfg.bias)
}

func TestClosedRequest(t *testing.T) {
	r, _ := pipeRequest(t, []uint32{5}, v2ABI{})
	require.Nil(t, r.Close())
	assert.Equal(t, ErrClosed, r.Close())
	_, err := r.Values()
	assert.Equal(t, ErrClosed, err)
	_, err = r.ReadEvent()
	assert.Equal(t, ErrClosed, err)
	_, err = r.WaitEvent(context.Background())
	assert.Equal(t, ErrClosed, err)
	o := Outputs{*r}
	assert.Equal(t, ErrClosed, o.SetValues(Values{}))
	assert.Equal(t, ErrClosed, o.Reconfigure(AsOpenDrain))
	i := Inputs{*r}
	assert.Equal(t, ErrClosed, i.Reconfigure(WithPullDown))
}

type fakeReader Values

func (f fakeReader) Values() (Values, error) {
	return Values(f), nil
}

func TestGetValues(t *testing.T) {
	v8, err := GetValues[uint8](fakeReader{Bits: 0x1ff, Mask: 0x0ff})
	require.Nil(t, err)
	assert.Equal(t, uint8(0xff), v8)

	v64, err := GetValues[uint64](fakeReader{Bits: 0b1011, Mask: 0b0011})
	require.Nil(t, err)
	assert.Equal(t, uint64(0b11), v64)
}
