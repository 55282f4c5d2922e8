// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import "errors"

var (
	errInvalidKey   = errors.New("invalid private key")
	errInputEmpty   = errors.New("input is empty")
	errNoAllocation = errors.New("no allocation given")
	errTxFailed     = errors.New("transaction failed")
)
