// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
)

const ED25519Key = "ed25519"

// NewRegistry returns a parser for every supported auth type.
func NewRegistry() (chain.AuthRegistry, error) {
	registry := codec.NewTypeParser[chain.Auth]()
	if err := registry.Register(consts.ED25519ID, UnmarshalED25519); err != nil {
		return nil, err
	}
	if err := registry.Register(consts.SponsoredID, UnmarshalSponsored); err != nil {
		return nil, err
	}
	return registry, nil
}
