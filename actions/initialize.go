// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
)

var _ chain.Action = (*Initialize)(nil)

// Initialize creates the counter of the actor. The sponsor pays for the
// allocation.
type Initialize struct {
	// Counter is optional. When set it must be the address derived for the
	// actor.
	Counter codec.Address `json:"counter"`
}

func (*Initialize) GetTypeID() uint8 {
	return consts.InitializeID
}

func (*Initialize) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	addr, _, err := storage.CounterAddress(actor)
	if err != nil {
		// Execute surfaces the derivation error.
		return state.Keys{}
	}
	return state.Keys{
		string(storage.CounterKey(addr)): state.All,
	}
}

func (i *Initialize) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	addr, bump, err := storage.CounterAddress(actor)
	if err != nil {
		return nil, err
	}
	if i.Counter != codec.EmptyAddress && i.Counter != addr {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrCounterAddressMismatch, addr, i.Counter)
	}
	if _, err := storage.CreateCounter(ctx, mu, addr, bump); err != nil {
		return nil, err
	}
	return &InitializeResult{
		Counter: addr,
		Bump:    bump,
	}, nil
}

func (*Initialize) Size() int {
	return codec.AddressLen
}

func (i *Initialize) Marshal(p *codec.Packer) {
	p.PackAddress(i.Counter)
}

func UnmarshalInitialize(p *codec.Packer) (chain.Action, error) {
	var initialize Initialize
	p.UnpackAddress(false, &initialize.Counter)
	return &initialize, p.Err()
}

var _ codec.Typed = (*InitializeResult)(nil)

type InitializeResult struct {
	Counter codec.Address `json:"counter"`
	Bump    uint8         `json:"bump"`
}

func (*InitializeResult) GetTypeID() uint8 {
	return consts.InitializeResultID
}
