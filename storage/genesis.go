// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
)

var ErrGenesisMismatch = errors.New("database holds another genesis")

func GenesisKey() []byte {
	return []byte{genesisPrefix}
}

// GetGenesisChainID returns the chain ID the database was initialized with
// and false if it was never initialized.
func GetGenesisChainID(db database.KeyValueReader) (ids.ID, bool, error) {
	v, err := db.Get(GenesisKey())
	if errors.Is(err, database.ErrNotFound) {
		return ids.Empty, false, nil
	}
	if err != nil {
		return ids.Empty, false, err
	}
	id, err := ids.ToID(v)
	return id, true, err
}

func SetGenesisChainID(db database.KeyValueWriter, chainID ids.ID) error {
	return db.Put(GenesisKey(), chainID[:])
}
