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

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var _ chain.Action = (*Increase)(nil)

// Increase adds [Amount] to [Counter]. [Amount] must be positive and at
// least the current count.
type Increase struct {
	Counter codec.Address `json:"counter"`
	Amount  uint64        `json:"amount"`
}

func (*Increase) GetTypeID() uint8 {
	return consts.IncreaseID
}

func (i *Increase) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.CounterKey(i.Counter)): state.Read | state.Write,
	}
}

func (i *Increase) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	c, err := loadCounter(ctx, r, mu, actor, i.Counter)
	if err != nil {
		return nil, err
	}
	if i.Amount == 0 || i.Amount < c.Count {
		return nil, fmt.Errorf("%w: increase by %d with count %d", ErrInvalidAmount, i.Amount, c.Count)
	}
	count, err := smath.Add64(c.Count, i.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %d + %d: %w", ErrCounterOverflow, c.Count, i.Amount, err)
	}
	c.Count = count
	if err := storage.SetCounter(ctx, mu, i.Counter, c); err != nil {
		return nil, err
	}
	return &CountResult{Count: count}, nil
}

func (*Increase) Size() int {
	return codec.AddressLen + consts.Uint64Len
}

func (i *Increase) Marshal(p *codec.Packer) {
	p.PackAddress(i.Counter)
	p.PackUint64(i.Amount)
}

func UnmarshalIncrease(p *codec.Packer) (chain.Action, error) {
	var increase Increase
	p.UnpackAddress(true, &increase.Counter)
	// zero is rejected on execution so it is reported as ErrInvalidAmount
	increase.Amount = p.UnpackUint64(false)
	return &increase, p.Err()
}
