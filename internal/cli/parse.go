// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package cli

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/warthog618/go-gpioline"
)

// ErrInvalidArg indicates a command line argument could not be parsed.
var ErrInvalidArg = errors.New("invalid argument")

// ParseOffsets parses a list of line offsets.
func ParseOffsets(args []string) ([]uint32, error) {
	if len(args) == 0 {
		return nil, errors.Wrap(ErrInvalidArg, "at least one line offset must be specified")
	}
	oo := make([]uint32, 0, len(args))
	for _, arg := range args {
		o, err := parseOffset(arg)
		if err != nil {
			return nil, err
		}
		oo = append(oo, o)
	}
	return oo, nil
}

// ParseLineValues parses a list of offset=value pairs.
//
// The returned values are indexed by position in the returned offsets.
func ParseLineValues(args []string) ([]uint32, gpioline.Values, error) {
	var vv gpioline.Values
	if len(args) == 0 {
		return nil, vv, errors.Wrap(ErrInvalidArg, "at least one line value must be specified")
	}
	oo := make([]uint32, 0, len(args))
	for i, arg := range args {
		lhs, rhs, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, vv, errors.Wrapf(ErrInvalidArg, "'%s' is not of the form offset=value", arg)
		}
		o, err := parseOffset(lhs)
		if err != nil {
			return nil, vv, err
		}
		v, err := parseValue(rhs)
		if err != nil {
			return nil, vv, err
		}
		oo = append(oo, o)
		vv.Set(uint(i), v)
	}
	return oo, vv, nil
}

// ParseDrive parses a drive name.
func ParseDrive(s string) (gpioline.Drive, error) {
	switch strings.ToLower(s) {
	case "", "push-pull":
		return gpioline.DrivePushPull, nil
	case "open-drain":
		return gpioline.DriveOpenDrain, nil
	case "open-source":
		return gpioline.DriveOpenSource, nil
	}
	return 0, errors.Wrapf(ErrInvalidArg, "unknown drive '%s'", s)
}

// ParseBias parses a bias name.
func ParseBias(s string) (gpioline.Bias, error) {
	switch strings.ToLower(s) {
	case "", "disable", "as-is":
		return gpioline.BiasDisable, nil
	case "pull-up":
		return gpioline.BiasPullUp, nil
	case "pull-down":
		return gpioline.BiasPullDown, nil
	}
	return 0, errors.Wrapf(ErrInvalidArg, "unknown bias '%s'", s)
}

// ParseEdge parses an edge detection name.
func ParseEdge(s string) (gpioline.EdgeDetection, error) {
	switch strings.ToLower(s) {
	case "", "both":
		return gpioline.EdgeDetectionBoth, nil
	case "rising":
		return gpioline.EdgeDetectionRising, nil
	case "falling":
		return gpioline.EdgeDetectionFalling, nil
	}
	return 0, errors.Wrapf(ErrInvalidArg, "unknown edge '%s'", s)
}

func parseOffset(s string) (uint32, error) {
	o, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidArg, "invalid offset '%s'", s)
	}
	return uint32(o), nil
}

func parseValue(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "0", "inactive", "off", "false":
		return false, nil
	case "1", "active", "on", "true":
		return true, nil
	}
	return false, errors.Wrapf(ErrInvalidArg, "invalid value '%s'", s)
}
