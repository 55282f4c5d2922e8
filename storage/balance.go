// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/keys"
	"github.com/ava-labs/countervm/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// [balancePrefix] + [address] + [chunks]
func BalanceKey(addr codec.Address) []byte {
	k := make([]byte, 0, consts.ByteLen+codec.AddressLen+consts.Uint16Len)
	k = append(k, balancePrefix)
	k = append(k, addr[:]...)
	return keys.EncodeChunks(k, BalanceChunks)
}

// GetBalance returns the balance of [addr]. A missing account holds 0.
func GetBalance(ctx context.Context, im state.Immutable, addr codec.Address) (uint64, error) {
	bal, _, err := getBalance(ctx, im, BalanceKey(addr))
	return bal, err
}

func getBalance(ctx context.Context, im state.Immutable, key []byte) (uint64, bool, error) {
	v, err := im.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(v) != consts.Uint64Len {
		return 0, false, fmt.Errorf("%w: length %d", ErrInvalidBalance, len(v))
	}
	return binary.BigEndian.Uint64(v), true, nil
}

func SetBalance(ctx context.Context, mu state.Mutable, addr codec.Address, balance uint64) error {
	return setBalance(ctx, mu, BalanceKey(addr), balance)
}

func setBalance(ctx context.Context, mu state.Mutable, key []byte, balance uint64) error {
	return mu.Insert(ctx, key, binary.BigEndian.AppendUint64(nil, balance))
}

func AddBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) (uint64, error) {
	key := BalanceKey(addr)
	bal, _, err := getBalance(ctx, mu, key)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Add64(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not add balance (bal=%d, addr=%s, amount=%d)",
			ErrInvalidBalance,
			bal,
			addr,
			amount,
		)
	}
	return nbal, setBalance(ctx, mu, key, nbal)
}

// SubBalance debits [amount] from [addr]. The account is removed once it is
// drained.
func SubBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) (uint64, error) {
	key := BalanceKey(addr)
	bal, exists, err := getBalance(ctx, mu, key)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Sub(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not subtract balance (bal=%d, addr=%s, amount=%d)",
			ErrInsufficientBalance,
			bal,
			addr,
			amount,
		)
	}
	if nbal == 0 {
		if !exists {
			return 0, nil
		}
		return 0, mu.Remove(ctx, key)
	}
	return nbal, setBalance(ctx, mu, key, nbal)
}
