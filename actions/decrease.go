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

var _ chain.Action = (*Decrease)(nil)

// Decrease subtracts [Amount] from [Counter]. [Amount] must be positive and
// at most the current count.
type Decrease struct {
	Counter codec.Address `json:"counter"`
	Amount  uint64        `json:"amount"`
}

func (*Decrease) GetTypeID() uint8 {
	return consts.DecreaseID
}

func (d *Decrease) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.CounterKey(d.Counter)): state.Read | state.Write,
	}
}

func (d *Decrease) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	c, err := loadCounter(ctx, r, mu, actor, d.Counter)
	if err != nil {
		return nil, err
	}
	if d.Amount == 0 || d.Amount > c.Count {
		return nil, fmt.Errorf("%w: decrease by %d with count %d", ErrInvalidAmount, d.Amount, c.Count)
	}
	count, err := smath.Sub(c.Count, d.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %d - %d: %w", ErrCounterOverflow, c.Count, d.Amount, err)
	}
	c.Count = count
	if err := storage.SetCounter(ctx, mu, d.Counter, c); err != nil {
		return nil, err
	}
	return &CountResult{Count: count}, nil
}

func (*Decrease) Size() int {
	return codec.AddressLen + consts.Uint64Len
}

func (d *Decrease) Marshal(p *codec.Packer) {
	p.PackAddress(d.Counter)
	p.PackUint64(d.Amount)
}

func UnmarshalDecrease(p *codec.Packer) (chain.Action, error) {
	var decrease Decrease
	p.UnpackAddress(true, &decrease.Counter)
	decrease.Amount = p.UnpackUint64(false)
	return &decrease, p.Err()
}
