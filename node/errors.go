// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package node

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Boundary error codes of §6. Each wraps the real errno via %w so callers
// can errors.Is(err, unix.EINVAL) exactly as a C caller would test -EINVAL,
// while Go call sites see an idiomatic wrapped error.
var (
	// ErrInvalid is configuration/capability errors: unknown key, missing
	// required key, wrong value type, or no format/rate/channel
	// combination maps to the slave.
	ErrInvalid = unix.EINVAL
	// ErrNoMem is allocation failure.
	ErrNoMem = unix.ENOMEM
	// ErrNotImplemented marks interleaved surround fan-out, not yet
	// implemented per §4.8.
	ErrNotImplemented = unix.EIO
	// ErrBroken is per-slave disagreement in a surround transfer; the
	// stream transitions to StateBroken until the next Prepare.
	ErrBroken = unix.EPIPE
)

// Invalid wraps ErrInvalid with context.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalid)
}

// NoMem wraps ErrNoMem with context.
func NoMem(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNoMem)
}

// NotImplemented wraps ErrNotImplemented with context.
func NotImplemented(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotImplemented)
}

// Broken wraps ErrBroken with context.
func Broken(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrBroken)
}
