// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

//go:build linux && 386

package uapi

// EventData contains the details of a particular line event.
//
// This is returned via the event request fd in response to events.
// The 386 kernel ABI aligns the timestamp to 4 bytes, so there is no
// trailing padding.
type EventData struct {
	// The time the event was detected.
	Timestamp uint64

	// The type of event detected.
	ID EventID
}
