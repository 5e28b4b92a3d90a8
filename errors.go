// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/xpress

package xpress

import "errors"

// Sentinel errors for compression.
var (
	// ErrOutputOverrun is returned when the destination buffer is too small
	// for the compressed stream. Size destinations with MaxCompressedSize to
	// avoid it. Callers can use errors.Is(err, xpress.ErrOutputOverrun).
	ErrOutputOverrun = errors.New("output overrun")
)
