// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpioline

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotCharacterDevice indicates the path does not refer to a character
	// device.
	ErrNotCharacterDevice = errors.New("not a character device")

	// ErrNoSysfsRecord indicates the device has no corresponding entry in
	// /sys/bus/gpio/devices, so is not a GPIO chip.
	ErrNoSysfsRecord = errors.New("no sysfs record for device")

	// ErrDeviceMismatch indicates the device number reported by sysfs does not
	// match that of the opened device.
	ErrDeviceMismatch = errors.New("device number mismatch")

	// ErrTooManyLines indicates more lines were requested than the uAPI
	// supports in a single request.
	ErrTooManyLines = errors.New("too many lines")

	// ErrNoLines indicates a request contained no lines.
	ErrNoLines = errors.New("no lines requested")

	// ErrConsumerTooLong indicates the consumer label does not fit in the
	// kernel consumer field.
	ErrConsumerTooLong = errors.New("consumer too long")

	// ErrEdgeDetectionDisabled indicates an event was read from a request
	// without edge detection.
	ErrEdgeDetectionDisabled = errors.New("edge detection not enabled")

	// ErrInvalidData indicates the kernel returned data that could not be
	// decoded.
	ErrInvalidData = errors.New("invalid data")

	// ErrClosed indicates the chip or request has been closed.
	ErrClosed = errors.New("already closed")
)

// ErrUapiIncompatibility indicates a feature is not supported by the uAPI
// ABI version in use.
type ErrUapiIncompatibility struct {
	Feature    string
	AbiVersion int
}

func (e ErrUapiIncompatibility) Error() string {
	return fmt.Sprintf("uAPI ABI v%d is incompatible with %s", e.AbiVersion, e.Feature)
}
