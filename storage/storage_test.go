// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"math"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/pda"
	"github.com/ava-labs/countervm/pebble"
	"github.com/ava-labs/countervm/state"
)

func testAddress(b byte) codec.Address {
	return codec.CreateAddress(consts.ED25519ID, ids.ID{b})
}

func TestCounterAddressDeterministic(t *testing.T) {
	require := require.New(t)

	owner := testAddress(1)
	addr, bump, err := CounterAddress(owner)
	require.NoError(err)
	require.Equal(consts.DerivedID, addr[0])

	addr2, bump2, err := CounterAddress(owner)
	require.NoError(err)
	require.Equal(addr, addr2)
	require.Equal(bump, bump2)

	require.NoError(VerifyCounterAddress(owner, bump, addr))

	other, _, err := CounterAddress(testAddress(2))
	require.NoError(err)
	require.NotEqual(addr, other)
	require.ErrorIs(VerifyCounterAddress(testAddress(2), bump, addr), pda.ErrAddressMismatch)
}

func TestCounterRecordLayout(t *testing.T) {
	require := require.New(t)

	b, err := MarshalCounter(&Counter{Count: 0x0102, Bump: 254})
	require.NoError(err)
	require.Len(b, CounterRecordLen)
	require.Equal(counterDiscriminator, b[:DiscriminatorLen])
	// count is little endian
	require.Equal([]byte{0x02, 0x01, 0, 0, 0, 0, 0, 0}, b[DiscriminatorLen:DiscriminatorLen+8])
	require.Equal(byte(254), b[CounterRecordLen-1])

	c, err := UnmarshalCounter(b)
	require.NoError(err)
	require.Equal(uint64(0x0102), c.Count)
	require.Equal(uint8(254), c.Bump)
}

func TestUnmarshalCounterInvalid(t *testing.T) {
	tests := []struct {
		name string
		b    func() []byte
	}{
		{
			name: "short",
			b:    func() []byte { return make([]byte, CounterRecordLen-1) },
		},
		{
			name: "long",
			b:    func() []byte { return make([]byte, CounterRecordLen+1) },
		},
		{
			name: "wrong discriminator",
			b: func() []byte {
				b, _ := MarshalCounter(&Counter{Count: 1})
				b[0] ^= 0xff
				return b
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalCounter(tt.b())
			require.ErrorIs(t, err, ErrInvalidCounterRecord)
		})
	}
}

func TestCreateCounter(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	addr, bump, err := CounterAddress(testAddress(3))
	require.NoError(err)

	_, err = GetCounter(ctx, mu, addr)
	require.ErrorIs(err, ErrCounterNotFound)

	c, err := CreateCounter(ctx, mu, addr, bump)
	require.NoError(err)
	require.Equal(&Counter{Count: 0, Bump: bump}, c)

	_, err = CreateCounter(ctx, mu, addr, bump)
	require.ErrorIs(err, ErrAlreadyInitialized)

	c.Count = 42
	require.NoError(SetCounter(ctx, mu, addr, c))
	stored, err := GetCounter(ctx, mu, addr)
	require.NoError(err)
	require.Equal(uint64(42), stored.Count)
	require.Equal(bump, stored.Bump)
}

func TestBalance(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}
	addr := testAddress(4)

	bal, err := GetBalance(ctx, mu, addr)
	require.NoError(err)
	require.Zero(bal)

	bal, err = AddBalance(ctx, mu, addr, 100)
	require.NoError(err)
	require.Equal(uint64(100), bal)

	_, err = AddBalance(ctx, mu, addr, math.MaxUint64)
	require.ErrorIs(err, ErrInvalidBalance)

	_, err = SubBalance(ctx, mu, addr, 101)
	require.ErrorIs(err, ErrInsufficientBalance)

	bal, err = SubBalance(ctx, mu, addr, 40)
	require.NoError(err)
	require.Equal(uint64(60), bal)

	bal, err = SubBalance(ctx, mu, addr, 60)
	require.NoError(err)
	require.Zero(bal)
	require.Empty(mu)
}

func TestNew(t *testing.T) {
	require := require.New(t)

	db, registry, err := New(pebble.NewDefaultConfig(), t.TempDir(), "state")
	require.NoError(err)
	require.NotNil(registry)

	require.NoError(db.Put([]byte("k"), []byte("v")))
	v, err := db.Get([]byte("k"))
	require.NoError(err)
	require.Equal([]byte("v"), v)
	require.NoError(db.Close())
}
