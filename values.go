// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpioline

import "unsafe"

// Values is a set of line values, indexed by position in a request.
//
// Bit i of Bits is the value of the line at position i of the request, and is
// only meaningful if bit i of Mask is set.
type Values struct {
	Bits uint64
	Mask uint64
}

// Unsigned is the set of fixed width unsigned integers that can be
// converted to and from Values.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// ValuesOf returns the Values with Bits set to v and Mask covering the full
// width of T.
func ValuesOf[T Unsigned](v T) Values {
	return Values{Bits: uint64(v), Mask: widthMask(unsafe.Sizeof(v) * 8)}
}

// BitsOf returns the Bits of vv truncated to the width of T.
//
// Bits not in the Mask are returned as zero.
func BitsOf[T Unsigned](vv Values) T {
	return T(vv.Bits & vv.Mask)
}

// Get returns the value at the bit position, and whether it is set in the mask.
func (vv Values) Get(bit uint) (value bool, ok bool) {
	if bit >= 64 {
		return false, false
	}
	m := uint64(1) << bit
	if vv.Mask&m == 0 {
		return false, false
	}
	return vv.Bits&m != 0, true
}

// Set sets the value at the bit position and adds it to the mask.
//
// Bit positions beyond 63 are ignored.
func (vv *Values) Set(bit uint, value bool) {
	if bit >= 64 {
		return
	}
	m := uint64(1) << bit
	vv.Mask |= m
	if value {
		vv.Bits |= m
	} else {
		vv.Bits &^= m
	}
}

// widthMask returns a mask with the low n bits set.
func widthMask[N ~int | ~uintptr](n N) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<uint(n) - 1
}
