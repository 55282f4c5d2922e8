// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrCounterNotFound      = errors.New("counter not found")
	ErrAlreadyInitialized   = errors.New("counter already initialized")
	ErrInvalidCounterRecord = errors.New("invalid counter record")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInvalidBalance       = errors.New("invalid balance")
)
