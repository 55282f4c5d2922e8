// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"errors"

	"github.com/ava-labs/countervm/tstate"
)

var (
	// Parsing errors
	ErrInvalidObject = errors.New("invalid object")
	ErrNoActions     = errors.New("no actions")

	// Execution errors
	ErrMisalignedTime    = errors.New("misaligned time")
	ErrTimestampTooLate  = errors.New("timestamp too late")
	ErrTimestampTooEarly = errors.New("timestamp too early")
	ErrInvalidChainID    = errors.New("invalid chain id")
	ErrTooManyActions    = errors.New("too many actions")
	ErrMaxFeeExceeded    = errors.New("max fee exceeded")
	ErrFeeOverflow       = errors.New("fee overflow")
	ErrNotVerified       = errors.New("transaction not verified")
)

// ErrInvalidKeyValue is [tstate.ErrInvalidKeyValue].
var ErrInvalidKeyValue = tstate.ErrInvalidKeyValue
