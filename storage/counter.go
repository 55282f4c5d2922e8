// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/near/borsh-go"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/keys"
	"github.com/ava-labs/countervm/pda"
	"github.com/ava-labs/countervm/state"
)

const (
	DiscriminatorLen  = 8
	CounterPayloadLen = consts.Uint64Len + consts.Uint8Len
	CounterRecordLen  = DiscriminatorLen + CounterPayloadLen
)

// counterDiscriminator tags every counter record so a record of another type
// stored at the same key is never mistaken for a counter.
var counterDiscriminator = hashing.ComputeHash256([]byte("account:Counter"))[:DiscriminatorLen]

// Counter is the persisted state of a single owner's counter.
type Counter struct {
	Count uint64 `json:"count"`
	Bump  uint8  `json:"bump"`
}

// CounterSeeds returns the seeds that derive the counter address of [owner].
func CounterSeeds(owner codec.Address) [][]byte {
	return [][]byte{[]byte(CounterLabel), owner[:]}
}

// CounterAddress returns the derived address of [owner]'s counter and the
// bump that made it valid.
func CounterAddress(owner codec.Address) (codec.Address, uint8, error) {
	return pda.FindProgramAddress(CounterSeeds(owner), consts.ID)
}

// VerifyCounterAddress checks that [addr] is the counter of [owner] under
// [bump] without searching.
func VerifyCounterAddress(owner codec.Address, bump uint8, addr codec.Address) error {
	return pda.VerifyProgramAddress(CounterSeeds(owner), bump, consts.ID, addr)
}

// [counterPrefix] + [address] + [chunks]
func CounterKey(addr codec.Address) []byte {
	k := make([]byte, 0, consts.ByteLen+codec.AddressLen+consts.Uint16Len)
	k = append(k, counterPrefix)
	k = append(k, addr[:]...)
	return keys.EncodeChunks(k, CounterChunks)
}

// MarshalCounter returns the on-disk layout of [c].
func MarshalCounter(c *Counter) ([]byte, error) {
	payload, err := borsh.Serialize(*c)
	if err != nil {
		return nil, err
	}
	b := make([]byte, 0, CounterRecordLen)
	b = append(b, counterDiscriminator...)
	return append(b, payload...), nil
}

// UnmarshalCounter parses a record produced by [MarshalCounter].
func UnmarshalCounter(b []byte) (*Counter, error) {
	if len(b) != CounterRecordLen {
		return nil, fmt.Errorf("%w: length %d != %d", ErrInvalidCounterRecord, len(b), CounterRecordLen)
	}
	if !bytes.Equal(b[:DiscriminatorLen], counterDiscriminator) {
		return nil, fmt.Errorf("%w: unexpected discriminator", ErrInvalidCounterRecord)
	}
	var c Counter
	if err := borsh.Deserialize(&c, b[DiscriminatorLen:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCounterRecord, err)
	}
	return &c, nil
}

// GetCounter returns the counter stored at [addr] or [ErrCounterNotFound].
func GetCounter(ctx context.Context, im state.Immutable, addr codec.Address) (*Counter, error) {
	v, err := im.GetValue(ctx, CounterKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrCounterNotFound, addr)
	}
	if err != nil {
		return nil, err
	}
	return UnmarshalCounter(v)
}

// CreateCounter allocates a zeroed counter at [addr]. It fails with
// [ErrAlreadyInitialized] if a record already exists there.
func CreateCounter(ctx context.Context, mu state.Mutable, addr codec.Address, bump uint8) (*Counter, error) {
	k := CounterKey(addr)
	_, err := mu.GetValue(ctx, k)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", ErrAlreadyInitialized, addr)
	case !errors.Is(err, database.ErrNotFound):
		return nil, err
	}
	c := &Counter{Count: 0, Bump: bump}
	return c, setCounter(ctx, mu, k, c)
}

// SetCounter overwrites the record at [addr].
func SetCounter(ctx context.Context, mu state.Mutable, addr codec.Address, c *Counter) error {
	return setCounter(ctx, mu, CounterKey(addr), c)
}

func setCounter(ctx context.Context, mu state.Mutable, key []byte, c *Counter) error {
	v, err := MarshalCounter(c)
	if err != nil {
		return err
	}
	return mu.Insert(ctx, key, v)
}
