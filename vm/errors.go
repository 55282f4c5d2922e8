// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import "errors"

var (
	ErrClosed  = errors.New("vm closed")
	ErrNoTxs   = errors.New("no transactions")
	ErrTxIndex = errors.New("transaction failed verification")

	ErrDuplicateTx = errors.New("duplicate transaction")
)
