// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpioline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warthog618/go-gpioline"
)

func TestValuesOf(t *testing.T) {
	for _, v := range []uint8{0, 1, 0x5a, 0xff} {
		vv := gpioline.ValuesOf(v)
		assert.Equal(t, uint64(0xff), vv.Mask)
		assert.Equal(t, v, gpioline.BitsOf[uint8](vv))
	}
	for _, v := range []uint16{0, 0x8001, 0xffff} {
		vv := gpioline.ValuesOf(v)
		assert.Equal(t, uint64(0xffff), vv.Mask)
		assert.Equal(t, v, gpioline.BitsOf[uint16](vv))
	}
	for _, v := range []uint32{0, 0xdeadbeef, 0xffffffff} {
		vv := gpioline.ValuesOf(v)
		assert.Equal(t, uint64(0xffffffff), vv.Mask)
		assert.Equal(t, v, gpioline.BitsOf[uint32](vv))
	}
	for _, v := range []uint64{0, 0x8000000000000001, ^uint64(0)} {
		vv := gpioline.ValuesOf(v)
		assert.Equal(t, ^uint64(0), vv.Mask)
		assert.Equal(t, v, gpioline.BitsOf[uint64](vv))
	}
}

func TestBitsOfMasked(t *testing.T) {
	vv := gpioline.Values{Bits: 0xff, Mask: 0x0f}
	assert.Equal(t, uint8(0x0f), gpioline.BitsOf[uint8](vv))

	// truncated to width
	vv = gpioline.Values{Bits: 0x1234, Mask: 0xffff}
	assert.Equal(t, uint8(0x34), gpioline.BitsOf[uint8](vv))
}

func TestValuesSetGet(t *testing.T) {
	for _, value := range []bool{true, false} {
		for bit := uint(0); bit < 64; bit++ {
			var vv gpioline.Values
			vv.Set(bit, value)
			v, ok := vv.Get(bit)
			assert.True(t, ok, bit)
			assert.Equal(t, value, v, bit)
			assert.Equal(t, uint64(1)<<bit, vv.Mask, bit)
		}
	}

	// overwrite
	var vv gpioline.Values
	vv.Set(5, true)
	vv.Set(5, false)
	v, ok := vv.Get(5)
	assert.True(t, ok)
	assert.False(t, v)
	assert.Zero(t, vv.Bits)

	// unmasked
	v, ok = vv.Get(4)
	assert.False(t, ok)
	assert.False(t, v)
}

func TestValuesOutOfRange(t *testing.T) {
	vv := gpioline.Values{Bits: ^uint64(0), Mask: ^uint64(0)}
	for _, bit := range []uint{64, 65, 100, ^uint(0)} {
		vv.Set(bit, false)
		assert.Equal(t, ^uint64(0), vv.Bits)
		assert.Equal(t, ^uint64(0), vv.Mask)
		v, ok := vv.Get(bit)
		assert.False(t, ok)
		assert.False(t, v)
	}
}
