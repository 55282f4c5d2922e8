// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/stretchr/testify/require"
)

func randBytes() []byte {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return b
}

func newTestDB(t testing.TB) *Database {
	cfg := NewDefaultConfig()
	cfg.CacheSize = 1024 * 1024
	cfg.Sync = false
	db, registry, err := New(t.TempDir(), cfg)
	require.NoError(t, err)
	require.NotNil(t, registry)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func TestGetPutDelete(t *testing.T) {
	require := require.New(t)
	db := newTestDB(t)
	k, v := randBytes(), randBytes()

	_, err := db.Get(k)
	require.ErrorIs(err, database.ErrNotFound)
	has, err := db.Has(k)
	require.NoError(err)
	require.False(has)

	require.NoError(db.Put(k, v))
	got, err := db.Get(k)
	require.NoError(err)
	require.Equal(v, got)

	require.NoError(db.Delete(k))
	has, err = db.Has(k)
	require.NoError(err)
	require.False(has)
}

func TestBatch(t *testing.T) {
	require := require.New(t)
	db := newTestDB(t)
	existing := randBytes()
	require.NoError(db.Put(existing, []byte{1}))

	b := db.NewBatch()
	k1, k2 := randBytes(), randBytes()
	require.NoError(b.Put(k1, []byte{2}))
	require.NoError(b.Put(k2, []byte{3}))
	require.NoError(b.Delete(existing))
	require.Positive(b.Size())

	// Nothing is visible before Write.
	has, err := db.Has(k1)
	require.NoError(err)
	require.False(has)

	require.NoError(b.Write())
	v, err := db.Get(k2)
	require.NoError(err)
	require.Equal([]byte{3}, v)
	has, err = db.Has(existing)
	require.NoError(err)
	require.False(has)

	b.Reset()
	require.Zero(b.Size())
}

func TestCloseIdempotent(t *testing.T) {
	require := require.New(t)
	db, _, err := New(t.TempDir(), NewDefaultConfig())
	require.NoError(err)
	require.NoError(db.Close())
	require.NoError(db.Close())
}

func BenchmarkBatchInsertion(b *testing.B) {
	const batchSize = 10_000
	for _, sync := range []bool{false, true} {
		b.Run(fmt.Sprintf("sync=%t", sync), func(b *testing.B) {
			b.StopTimer()
			cfg := NewDefaultConfig()
			cfg.Sync = sync
			db, _, err := New(b.TempDir(), cfg)
			if err != nil {
				b.Fatal(err)
			}
			defer db.Close()

			keys := make([][]byte, batchSize)
			for i := 0; i < batchSize; i++ {
				keys[i] = randBytes()
			}

			b.StartTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				batch := db.NewBatch()
				for j := 0; j < batchSize; j++ {
					if err := batch.Put(keys[j], randBytes()); err != nil {
						b.Fatal(err)
					}
				}
				if err := batch.Write(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
