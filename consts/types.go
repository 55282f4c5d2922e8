// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/version"
)

const (
	HRP  = "counter"
	Name = "countervm"

	// Action TypeIDs
	InitializeID uint8 = 0
	IncreaseID   uint8 = 1
	DecreaseID   uint8 = 2

	// Output TypeIDs
	InitializeResultID uint8 = 0
	CountResultID      uint8 = 1

	// Auth TypeIDs
	ED25519ID   uint8 = 0
	SponsoredID uint8 = 1

	// Address TypeIDs not produced by an auth module.
	//
	// Derived addresses are never curve points, so they get their own prefix
	// to avoid colliding with an [ED25519ID] address.
	DerivedID uint8 = 0xff
)

// ID identifies this program. It is the program ID fed into address
// derivation, so changing [Name] moves every counter.
var ID ids.ID

func init() {
	b := make([]byte, ids.IDLen)
	copy(b, []byte(Name))
	vmID, err := ids.ToID(b)
	if err != nil {
		panic(err)
	}
	ID = vmID
}

var Version = &version.Semantic{
	Major: 0,
	Minor: 0,
	Patch: 1,
}
