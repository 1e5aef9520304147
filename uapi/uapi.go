// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

//go:build linux

package uapi

import (
	"encoding/binary"
	"io"
	"unsafe"

	"golang.org/x/sys/unix"
)

// From the asm-generic/ioctl.h kernel header.
//
// This is the encoding used by arm, arm64, riscv and x86.
const (
	iocWrite = 1
	iocRead  = 2

	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits
)

// Magic is the ioctl type reserved for the GPIO subsystem.
const Magic = 0xB4

const (
	// NameSize is the size of the name, label and consumer fields.
	//
	// Strings stored in these fields are NUL terminated, so at most
	// NameSize-1 bytes are usable.
	NameSize = 32

	// LinesMax is the maximum number of lines that can be requested in a
	// single request.
	LinesMax = 64

	// NumAttrsMax is the maximum number of attributes in a v2 line config or
	// line info.
	NumAttrsMax = 10
)

// ioctl is an ioctl command code.
type ioctl uintptr

func ioc(dir, nr, size uintptr) ioctl {
	return ioctl(dir<<iocDirShift |
		Magic<<iocTypeShift |
		nr<<iocNRShift |
		size<<iocSizeShift)
}

func ior(nr, size uintptr) ioctl {
	return ioc(iocRead, nr, size)
}

func iorw(nr, size uintptr) ioctl {
	return ioc(iocRead|iocWrite, nr, size)
}

// doIoctl issues the ioctl and returns the errno, unchanged, on failure.
func doIoctl(fd uintptr, cmd ioctl, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, uintptr(cmd), uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

var getChipInfoIoctl = ior(0x01, unsafe.Sizeof(ChipInfo{}))

// ChipInfo contains the details of a GPIO chip.
//
// It is common to both ABI versions.
type ChipInfo struct {
	// The system name of the device.
	Name [NameSize]byte

	// An identifying label added by the device driver.
	Label [NameSize]byte

	// The number of lines supported by this chip.
	Lines uint32
}

// GetChipInfo returns the ChipInfo for the GPIO character device.
//
// The fd is an open GPIO character device.
func GetChipInfo(fd uintptr) (ChipInfo, error) {
	var ci ChipInfo
	err := doIoctl(fd, getChipInfoIoctl, unsafe.Pointer(&ci))
	return ci, err
}

// ChangeType indicates the type of change that has occurred to a line.
type ChangeType uint32

const (
	_ ChangeType = iota

	// LineChangedRequested indicates the line has been requested.
	LineChangedRequested

	// LineChangedReleased indicates the line has been released.
	LineChangedReleased

	// LineChangedConfig indicates the line configuration has changed.
	LineChangedConfig
)

var unwatchLineInfoIoctl = iorw(0x0C, unsafe.Sizeof(uint32(0)))

// UnwatchLineInfo clears a watch on the info of a line.
//
// The command is shared by both ABI versions.
func UnwatchLineInfo(fd uintptr, offset uint32) error {
	return doIoctl(fd, unwatchLineInfoIoctl, unsafe.Pointer(&offset))
}

// nativeEndian is the byte order of records read from the kernel.
var nativeEndian binary.ByteOrder = binary.LittleEndian

func init() {
	x := uint16(0x0102)
	if *(*byte)(unsafe.Pointer(&x)) == 0x01 {
		nativeEndian = binary.BigEndian
	}
}

// readRecord reads one fixed size record from r.
//
// The kernel returns whole records, so a short read is an error.
func readRecord(r io.Reader, rec interface{}) error {
	return binary.Read(r, nativeEndian, rec)
}
