// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package enetc

import (
	"errors"
	"fmt"
)

var (
	// A control ring command did not complete. Filter state must be
	// re-synchronized by applying the full desired state again.
	ErrControlRing = errors.New("control ring failure")

	// The phy interface mode has no register mapping.
	ErrUnsupportedInterface = errors.New("unsupported phy interface mode")

	ErrNotSupported = errors.New("not supported")
	ErrInvalidSi    = errors.New("invalid station interface")
)

// RingError describes a failed control ring command.
type RingError struct {
	Op    string
	Index int
	Err   error
}

func (e *RingError) Error() string {
	return fmt.Sprintf("%s entry %d: %v: %v", e.Op, e.Index,
		ErrControlRing, e.Err)
}

func (e *RingError) Unwrap() error { return e.Err }

func (e *RingError) Is(target error) bool { return target == ErrControlRing }
