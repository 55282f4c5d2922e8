// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import "errors"

var (
	// ErrInvalidKeyOrPermission is returned when a view touches a key outside
	// of its scope or without the permission the operation needs.
	ErrInvalidKeyOrPermission = errors.New("invalid key or key permission")
	// ErrInvalidKeyValue is returned for a key without a chunk suffix or a
	// value larger than the chunks the key allows.
	ErrInvalidKeyValue = errors.New("invalid key or value")
)
