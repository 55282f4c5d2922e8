// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/maps"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/trace"
	"github.com/ava-labs/countervm/tstate"
)

var (
	_ state.Mutable                  = (*InMemoryStore)(nil)
	_ database.KeyValueWriterDeleter = (*InMemoryStore)(nil)
)

// InMemoryStore is committed state held in a map. It can be read and
// written directly or receive the changes of a [tstate.TState].
type InMemoryStore struct {
	Storage state.MutableStorage
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{Storage: state.MutableStorage{}}
}

func (i *InMemoryStore) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	return i.Storage.GetValue(ctx, key)
}

func (i *InMemoryStore) Insert(ctx context.Context, key []byte, value []byte) error {
	return i.Storage.Insert(ctx, key, value)
}

func (i *InMemoryStore) Remove(ctx context.Context, key []byte) error {
	return i.Storage.Remove(ctx, key)
}

func (i *InMemoryStore) Put(key []byte, value []byte) error {
	i.Storage[string(key)] = value
	return nil
}

func (i *InMemoryStore) Delete(key []byte) error {
	delete(i.Storage, string(key))
	return nil
}

// Snapshot copies the current contents of the store.
func (i *InMemoryStore) Snapshot() state.MutableStorage {
	return maps.Clone(i.Storage)
}

// ActionTest executes [Action] in a view scoped to the keys the action
// declares, so touching any other key fails the test. Changes reach [State]
// only when the action succeeds.
type ActionTest struct {
	Name string

	Action chain.Action

	Rules     chain.Rules
	State     *InMemoryStore
	Timestamp int64
	Actor     codec.Address
	ActionID  ids.ID

	ExpectedOutputs codec.Typed
	ExpectedErr     error

	Assertion func(context.Context, *testing.T, state.Mutable)
}

func (test *ActionTest) Run(ctx context.Context, t *testing.T) {
	t.Run(test.Name, func(t *testing.T) {
		require := require.New(t)

		output, err := execute(ctx, test.Action, test.Rules, test.State, test.Timestamp, test.Actor, test.ActionID)
		require.ErrorIs(err, test.ExpectedErr)
		require.Equal(test.ExpectedOutputs, output)

		if test.Assertion != nil {
			test.Assertion(ctx, t, test.State)
		}
	})
}

func execute(
	ctx context.Context,
	action chain.Action,
	r chain.Rules,
	store *InMemoryStore,
	timestamp int64,
	actor codec.Address,
	actionID ids.ID,
) (codec.Typed, error) {
	scope := action.StateKeys(actor, actionID)
	prefetched, err := chain.Prefetch(ctx, store, scope)
	if err != nil {
		return nil, err
	}
	ts := tstate.New(len(scope))
	view := ts.NewView(scope, prefetched)
	output, err := action.Execute(ctx, r, view, timestamp, actor, actionID)
	if err != nil {
		return output, err
	}
	view.Commit()

	tracer, err := trace.New(&trace.Config{})
	if err != nil {
		return nil, err
	}
	return output, ts.WriteChanges(ctx, tracer, store)
}

// ActionBenchmark executes [Action] b.N times, each against a fresh state
// from [CreateState].
type ActionBenchmark struct {
	Name   string
	Action chain.Action

	Rules       chain.Rules
	CreateState func() *InMemoryStore
	Timestamp   int64
	Actor       codec.Address
	ActionID    ids.ID

	ExpectedOutputs codec.Typed
	ExpectedErr     error
}

func (test *ActionBenchmark) Run(ctx context.Context, b *testing.B) {
	require := require.New(b)

	states := make([]*InMemoryStore, b.N)
	for i := range states {
		states[i] = test.CreateState()
	}

	b.ResetTimer()
	for _, store := range states {
		output, err := execute(ctx, test.Action, test.Rules, store, test.Timestamp, test.Actor, test.ActionID)
		require.ErrorIs(err, test.ExpectedErr)
		require.Equal(test.ExpectedOutputs, output)
	}
}
