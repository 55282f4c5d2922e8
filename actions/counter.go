// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
)

// loadCounter reads [counter] and, when the rules require it, checks that it
// was derived for [actor].
func loadCounter(
	ctx context.Context,
	r chain.Rules,
	im state.Immutable,
	actor codec.Address,
	counter codec.Address,
) (*storage.Counter, error) {
	c, err := storage.GetCounter(ctx, im, counter)
	if err != nil {
		return nil, err
	}
	if r.GetEnforceCounterOwnership() {
		if err := storage.VerifyCounterAddress(actor, c.Bump, counter); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotCounterOwner, err)
		}
	}
	return c, nil
}

var _ codec.Typed = (*CountResult)(nil)

type CountResult struct {
	Count uint64 `json:"count"`
}

func (*CountResult) GetTypeID() uint8 {
	return consts.CountResultID
}

// NewRegistry returns a parser for every counter action.
func NewRegistry() (chain.ActionRegistry, error) {
	registry := codec.NewTypeParser[chain.Action]()
	for typeID, f := range map[uint8]func(*codec.Packer) (chain.Action, error){
		consts.InitializeID: UnmarshalInitialize,
		consts.IncreaseID:   UnmarshalIncrease,
		consts.DecreaseID:   UnmarshalDecrease,
	} {
		if err := registry.Register(typeID, f); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
