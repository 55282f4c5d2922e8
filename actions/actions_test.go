// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"math"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/chain/chaintest"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/tstate"
)

func newOwner() codec.Address {
	return codec.CreateAddress(consts.ED25519ID, ids.GenerateTestID())
}

// storeWithCounter returns a store holding the counter of [owner] at [count].
func storeWithCounter(t *testing.T, owner codec.Address, count uint64) (*chaintest.InMemoryStore, codec.Address) {
	require := require.New(t)
	ctx := context.Background()

	store := chaintest.NewInMemoryStore()
	addr, bump, err := storage.CounterAddress(owner)
	require.NoError(err)
	_, err = storage.CreateCounter(ctx, store, addr, bump)
	require.NoError(err)
	require.NoError(storage.SetCounter(ctx, store, addr, &storage.Counter{Count: count, Bump: bump}))
	return store, addr
}

func requireCount(expected uint64, addr codec.Address) func(context.Context, *testing.T, state.Mutable) {
	return func(ctx context.Context, t *testing.T, mu state.Mutable) {
		c, err := storage.GetCounter(ctx, mu, addr)
		require.NoError(t, err)
		require.Equal(t, expected, c.Count)
	}
}

func TestInitialize(t *testing.T) {
	owner := newOwner()
	addr, bump, err := storage.CounterAddress(owner)
	require.NoError(t, err)
	existing, _ := storeWithCounter(t, owner, 7)
	rules := genesis.NewDefaultRules()

	tests := []chaintest.ActionTest{
		{
			Name:            "Initialize",
			Action:          &Initialize{},
			Rules:           rules,
			State:           chaintest.NewInMemoryStore(),
			Actor:           owner,
			ExpectedOutputs: &InitializeResult{Counter: addr, Bump: bump},
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				require := require.New(t)
				c, err := storage.GetCounter(ctx, mu, addr)
				require.NoError(err)
				require.Zero(c.Count)
				require.Equal(bump, c.Bump)
				require.NoError(storage.VerifyCounterAddress(owner, c.Bump, addr))
			},
		},
		{
			Name:            "InitializeWithCounter",
			Action:          &Initialize{Counter: addr},
			Rules:           rules,
			State:           chaintest.NewInMemoryStore(),
			Actor:           owner,
			ExpectedOutputs: &InitializeResult{Counter: addr, Bump: bump},
		},
		{
			Name:        "CounterMismatch",
			Action:      &Initialize{Counter: newOwner()},
			Rules:       rules,
			State:       chaintest.NewInMemoryStore(),
			Actor:       owner,
			ExpectedErr: ErrCounterAddressMismatch,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				_, err := storage.GetCounter(ctx, mu, addr)
				require.ErrorIs(t, err, storage.ErrCounterNotFound)
			},
		},
		{
			Name:        "AlreadyInitialized",
			Action:      &Initialize{},
			Rules:       rules,
			State:       existing,
			Actor:       owner,
			ExpectedErr: storage.ErrAlreadyInitialized,
			Assertion:   requireCount(7, addr),
		},
	}
	ctx := context.Background()
	for _, test := range tests {
		test.Run(ctx, t)
	}
}

// unscopedIncrease declares no keys.
type unscopedIncrease struct {
	Increase
}

func (*unscopedIncrease) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{}
}

func TestUndeclaredKey(t *testing.T) {
	owner := newOwner()
	store, addr := storeWithCounter(t, owner, 1)
	test := chaintest.ActionTest{
		Name:        "UndeclaredKey",
		Action:      &unscopedIncrease{Increase{Counter: addr, Amount: 1}},
		Rules:       genesis.NewDefaultRules(),
		State:       store,
		Actor:       owner,
		ExpectedErr: tstate.ErrInvalidKeyOrPermission,
		Assertion:   requireCount(1, addr),
	}
	test.Run(context.Background(), t)
}

func TestIncrease(t *testing.T) {
	owner := newOwner()
	rules := genesis.NewDefaultRules()

	type testCase struct {
		name     string
		count    uint64
		amount   uint64
		expected uint64
		err      error
	}
	cases := []testCase{
		{name: "FromZero", count: 0, amount: 5, expected: 5},
		{name: "EqualToCount", count: 5, amount: 5, expected: 10},
		{name: "BelowCount", count: 5, amount: 3, expected: 5, err: ErrInvalidAmount},
		{name: "Zero", count: 5, amount: 0, expected: 5, err: ErrInvalidAmount},
		{name: "ZeroOnZero", count: 0, amount: 0, expected: 0, err: ErrInvalidAmount},
		{name: "Overflow", count: 1 << 63, amount: 1 << 63, expected: 1 << 63, err: ErrCounterOverflow},
		{name: "MaxFromZero", count: 0, amount: math.MaxUint64, expected: math.MaxUint64},
	}
	ctx := context.Background()
	for _, tc := range cases {
		store, addr := storeWithCounter(t, owner, tc.count)
		test := chaintest.ActionTest{
			Name:        tc.name,
			Action:      &Increase{Counter: addr, Amount: tc.amount},
			Rules:       rules,
			State:       store,
			Actor:       owner,
			ExpectedErr: tc.err,
			Assertion:   requireCount(tc.expected, addr),
		}
		if tc.err == nil {
			test.ExpectedOutputs = &CountResult{Count: tc.expected}
		}
		test.Run(ctx, t)
	}
}

func TestDecrease(t *testing.T) {
	owner := newOwner()
	rules := genesis.NewDefaultRules()

	type testCase struct {
		name     string
		count    uint64
		amount   uint64
		expected uint64
		err      error
	}
	cases := []testCase{
		{name: "Partial", count: 15, amount: 5, expected: 10},
		{name: "ToZero", count: 10, amount: 10, expected: 0},
		{name: "AboveCount", count: 10, amount: 20, expected: 10, err: ErrInvalidAmount},
		{name: "Zero", count: 10, amount: 0, expected: 10, err: ErrInvalidAmount},
		{name: "OnZero", count: 0, amount: 1, expected: 0, err: ErrInvalidAmount},
	}
	ctx := context.Background()
	for _, tc := range cases {
		store, addr := storeWithCounter(t, owner, tc.count)
		test := chaintest.ActionTest{
			Name:        tc.name,
			Action:      &Decrease{Counter: addr, Amount: tc.amount},
			Rules:       rules,
			State:       store,
			Actor:       owner,
			ExpectedErr: tc.err,
			Assertion:   requireCount(tc.expected, addr),
		}
		if tc.err == nil {
			test.ExpectedOutputs = &CountResult{Count: tc.expected}
		}
		test.Run(ctx, t)
	}
}

func TestMissingCounter(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	rules := genesis.NewDefaultRules()
	owner := newOwner()
	addr, _, err := storage.CounterAddress(owner)
	require.NoError(err)

	for _, action := range []chain.Action{
		&Increase{Counter: addr, Amount: 1},
		&Decrease{Counter: addr, Amount: 1},
	} {
		_, err := action.Execute(ctx, rules, chaintest.NewInMemoryStore(), 0, owner, ids.Empty)
		require.ErrorIs(err, storage.ErrCounterNotFound)
	}
}

// Follows a single counter through the lifecycle described for the program.
func TestScenarios(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	rules := genesis.NewDefaultRules()
	owner := newOwner()
	store := chaintest.NewInMemoryStore()

	out, err := (&Initialize{}).Execute(ctx, rules, store, 0, owner, ids.Empty)
	require.NoError(err)
	addr := out.(*InitializeResult).Counter
	requireCount(0, addr)(ctx, t, store)

	steps := []struct {
		action   chain.Action
		expected uint64
		err      error
	}{
		{&Increase{Counter: addr, Amount: 5}, 5, nil},
		{&Increase{Counter: addr, Amount: 3}, 5, ErrInvalidAmount},
		{&Increase{Counter: addr, Amount: 10}, 15, nil},
		{&Decrease{Counter: addr, Amount: 5}, 10, nil},
		{&Decrease{Counter: addr, Amount: 20}, 10, ErrInvalidAmount},
		{&Increase{Counter: addr, Amount: 0}, 10, ErrInvalidAmount},
	}
	for _, step := range steps {
		before := store.Snapshot()
		_, err := step.action.Execute(ctx, rules, store, 0, owner, ids.Empty)
		require.ErrorIs(err, step.err)
		if step.err != nil {
			require.Equal(before, store.Storage)
		}
		requireCount(step.expected, addr)(ctx, t, store)
	}
}

func TestCounterOwnership(t *testing.T) {
	owner := newOwner()
	stranger := newOwner()
	open := genesis.NewDefaultRules()
	enforced := genesis.NewDefaultRules()
	enforced.EnforceCounterOwnership = true

	ctx := context.Background()
	for _, test := range []func(*chaintest.InMemoryStore, codec.Address) chaintest.ActionTest{
		func(store *chaintest.InMemoryStore, addr codec.Address) chaintest.ActionTest {
			return chaintest.ActionTest{
				Name:            "StrangerAllowedByDefault",
				Action:          &Increase{Counter: addr, Amount: 1},
				Rules:           open,
				State:           store,
				Actor:           stranger,
				ExpectedOutputs: &CountResult{Count: 2},
				Assertion:       requireCount(2, addr),
			}
		},
		func(store *chaintest.InMemoryStore, addr codec.Address) chaintest.ActionTest {
			return chaintest.ActionTest{
				Name:        "StrangerRejected",
				Action:      &Decrease{Counter: addr, Amount: 1},
				Rules:       enforced,
				State:       store,
				Actor:       stranger,
				ExpectedErr: ErrNotCounterOwner,
				Assertion:   requireCount(1, addr),
			}
		},
		func(store *chaintest.InMemoryStore, addr codec.Address) chaintest.ActionTest {
			return chaintest.ActionTest{
				Name:            "OwnerAllowed",
				Action:          &Increase{Counter: addr, Amount: 1},
				Rules:           enforced,
				State:           store,
				Actor:           owner,
				ExpectedOutputs: &CountResult{Count: 2},
				Assertion:       requireCount(2, addr),
			}
		},
	} {
		store, addr := storeWithCounter(t, owner, 1)
		tt := test(store, addr)
		tt.Run(ctx, t)
	}
}

func TestActionCodec(t *testing.T) {
	require := require.New(t)

	registry, err := NewRegistry()
	require.NoError(err)

	addr := newOwner()
	for _, action := range []chain.Action{
		&Initialize{},
		&Initialize{Counter: addr},
		&Increase{Counter: addr, Amount: 42},
		&Decrease{Counter: addr, Amount: 7},
	} {
		p := codec.NewWriter(action.Size(), action.Size())
		action.Marshal(p)
		require.NoError(p.Err())
		require.Len(p.Bytes(), action.Size())

		unmarshal, ok := registry.LookupIndex(action.GetTypeID())
		require.True(ok)
		parsed, err := unmarshal(codec.NewReader(p.Bytes(), action.Size()))
		require.NoError(err)
		require.Equal(action, parsed)
	}

	p := codec.NewWriter(codec.AddressLen+consts.Uint64Len, consts.NetworkSizeLimit)
	p.PackAddress(codec.EmptyAddress)
	p.PackUint64(1)
	_, err = UnmarshalIncrease(codec.NewReader(p.Bytes(), consts.NetworkSizeLimit))
	require.ErrorIs(err, codec.ErrFieldNotPopulated)
}
