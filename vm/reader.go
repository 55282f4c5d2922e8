// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/patrickmn/go-cache"

	"github.com/ava-labs/countervm/state"
)

var _ state.Immutable = (*cachedReader)(nil)

// cachedReader serves committed state, keeping recently read values in
// memory. Writers must call [cachedReader.update] after every commit.
type cachedReader struct {
	db    database.KeyValueReader
	cache *cache.Cache
}

func newCachedReader(db database.KeyValueReader, ttl time.Duration, cleanup time.Duration) *cachedReader {
	return &cachedReader{
		db:    db,
		cache: cache.New(ttl, cleanup),
	}
}

func (r *cachedReader) GetValue(_ context.Context, key []byte) ([]byte, error) {
	k := string(key)
	if v, ok := r.cache.Get(k); ok {
		return v.([]byte), nil
	}
	v, err := r.db.Get(key)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(k, v)
	return v, nil
}

// update drops [keys] so the next read observes the committed value.
func (r *cachedReader) update(keys state.Keys) {
	for k := range keys {
		r.cache.Delete(k)
	}
}
