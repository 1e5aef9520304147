// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpioline

import (
	"bytes"
	"fmt"
	"os"
	"path"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// sysfsGPIODevices is where the kernel lists the devices on the GPIO bus.
var sysfsGPIODevices = "/sys/bus/gpio/devices"

// checkChip confirms the path refers to a GPIO character device.
//
// The node must be a character device, and the device number recorded in
// sysfs for a GPIO device of the same name must match the node.
// Symlinks are not followed, so a symlink masking a chip is rejected.
func checkChip(p string) error {
	var st unix.Stat_t
	if err := unix.Lstat(p, &st); err != nil {
		return &os.PathError{Op: "lstat", Path: p, Err: err}
	}
	if st.Mode&unix.S_IFMT != unix.S_IFCHR {
		return errors.Wrapf(ErrNotCharacterDevice, "%s", p)
	}
	name := path.Base(p)
	sysdev, err := readAttr(path.Join(sysfsGPIODevices, name), "dev")
	if err != nil {
		return errors.Wrapf(ErrNoSysfsRecord, "%s", name)
	}
	rdev := uint64(st.Rdev)
	dev := fmt.Sprintf("%d:%d", unix.Major(rdev), unix.Minor(rdev))
	if sysdev != dev {
		return errors.Wrapf(ErrDeviceMismatch, "%s is %s but sysfs reports %s", p, dev, sysdev)
	}
	return nil
}

// readAttr returns the first line of the sysfs attribute.
func readAttr(p, attr string) (string, error) {
	data, err := os.ReadFile(path.Join(p, attr))
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		data = data[:i]
	}
	return string(data), nil
}

// defaultConsumer returns a consumer label identifying the running process,
// using the appname and PID.
func defaultConsumer() string {
	c := fmt.Sprintf("%s-p%d", appName(), os.Getpid())
	if len(c) >= NameSize {
		c = c[len(c)-NameSize+1:]
	}
	return c
}

// appName returns the name of the running executable.
//
// Falls back to "gpioline" if that can't be determined.
func appName() string {
	str, err := os.Executable()
	if err != nil {
		return "gpioline"
	}
	return path.Base(str)
}
