// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/codec"
)

// Result is the outcome of one transaction. A failed transaction leaves no
// trace in state and pays no fee.
type Result struct {
	TxID    ids.ID        `json:"txId"`
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Outputs []codec.Typed `json:"outputs"`
	Fee     uint64        `json:"fee"`

	err error
}

func NewFailedResult(txID ids.ID, err error) *Result {
	return &Result{
		TxID:  txID,
		Error: err.Error(),
		err:   err,
	}
}

// Err returns the error that failed the transaction, if any.
func (r *Result) Err() error {
	return r.err
}
