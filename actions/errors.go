// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import "errors"

var (
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrCounterOverflow        = errors.New("counter overflow")
	ErrCounterAddressMismatch = errors.New("counter address does not match owner")
	ErrNotCounterOwner        = errors.New("actor does not own counter")
)
