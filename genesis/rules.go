// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/chain"
)

var _ chain.Rules = (*Rules)(nil)

type Rules struct {
	// Tx Parameters
	ValidityWindow  int64 `json:"validityWindow" yaml:"validityWindow"` // ms
	MaxActionsPerTx uint8 `json:"maxActionsPerTx" yaml:"maxActionsPerTx"`

	// Tx Fee Parameters
	BaseFee                 uint64 `json:"baseFee" yaml:"baseFee"`
	StorageKeyAllocateFee   uint64 `json:"storageKeyAllocateFee" yaml:"storageKeyAllocateFee"`
	StorageValueAllocateFee uint64 `json:"storageValueAllocateFee" yaml:"storageValueAllocateFee"`
	StorageKeyWriteFee      uint64 `json:"storageKeyWriteFee" yaml:"storageKeyWriteFee"`
	StorageValueWriteFee    uint64 `json:"storageValueWriteFee" yaml:"storageValueWriteFee"`

	// Counters can be mutated by any signer unless this is set.
	EnforceCounterOwnership bool `json:"enforceCounterOwnership" yaml:"enforceCounterOwnership"`

	chainID ids.ID
}

func NewDefaultRules() *Rules {
	return &Rules{
		ValidityWindow:  60 * 1000, // ms
		MaxActionsPerTx: 16,

		BaseFee:                 100,
		StorageKeyAllocateFee:   20,
		StorageValueAllocateFee: 5,
		StorageKeyWriteFee:      10,
		StorageValueWriteFee:    3,
	}
}

// WithChainID returns a copy of [r] bound to [chainID].
func (r *Rules) WithChainID(chainID ids.ID) *Rules {
	c := *r
	c.chainID = chainID
	return &c
}

func (r *Rules) GetChainID() ids.ID {
	return r.chainID
}

func (r *Rules) GetValidityWindow() int64 {
	return r.ValidityWindow
}

func (r *Rules) GetMaxActionsPerTx() uint8 {
	return r.MaxActionsPerTx
}

func (r *Rules) GetBaseFee() uint64 {
	return r.BaseFee
}

func (r *Rules) GetStorageKeyAllocateFee() uint64 {
	return r.StorageKeyAllocateFee
}

func (r *Rules) GetStorageValueAllocateFee() uint64 {
	return r.StorageValueAllocateFee
}

func (r *Rules) GetStorageKeyWriteFee() uint64 {
	return r.StorageKeyWriteFee
}

func (r *Rules) GetStorageValueWriteFee() uint64 {
	return r.StorageValueWriteFee
}

func (r *Rules) GetEnforceCounterOwnership() bool {
	return r.EnforceCounterOwnership
}
