// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpioline

import (
	"bytes"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// decodeName converts a NUL padded kernel name field to a string.
func decodeName(b []byte) (string, error) {
	b = bytes.TrimRight(b, "\x00")
	if !utf8.Valid(b) {
		return "", errors.Wrapf(ErrInvalidData, "name %q is not UTF-8", b)
	}
	return string(b), nil
}

// encodeName copies s into the kernel name field dst.
//
// The field must retain a terminating NUL, so s is limited to len(dst)-1
// bytes.
func encodeName(dst []byte, s string) error {
	if len(s) >= len(dst) {
		return errors.Wrapf(ErrConsumerTooLong, "%d bytes, limit %d", len(s), len(dst)-1)
	}
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
	return nil
}
