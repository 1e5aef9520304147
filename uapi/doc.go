// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

/*
Package uapi provides the Linux GPIO character device uAPI definitions.

Both generations of the uAPI are covered:

  - v1, the "handle" ABI, where lines are requested with GetLineHandle or
    GetLineEvent and values are exchanged as one byte per line.
  - v2, the "line" ABI, where lines are requested with GetLine and values are
    exchanged as packed bitmaps with a mask.

The structures mirror the layouts in include/uapi/linux/gpio.h field for field,
including padding, and the ioctl command codes are derived from the structure
sizes. The functions here are thin wrappers around the ioctls and reads; they
perform no validation and return the kernel errno unchanged.

See https://docs.kernel.org/userspace-api/gpio/chardev.html
*/
package uapi
