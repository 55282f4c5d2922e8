// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/samber/lo"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/trace"
	"github.com/ava-labs/countervm/utils"

	safemath "github.com/ava-labs/avalanchego/utils/math"
)

var (
	ErrDuplicateAllocation = errors.New("duplicate allocation")
	ErrMissingRules        = errors.New("missing rules")
)

type CustomAllocation struct {
	Address string `json:"address" yaml:"address"`
	Balance uint64 `json:"balance" yaml:"balance"`
}

type Genesis struct {
	CustomAllocation []*CustomAllocation `json:"customAllocation" yaml:"customAllocation"`
	Rules            *Rules              `json:"initialRules" yaml:"initialRules"`
}

func NewDefaultGenesis(customAllocations []*CustomAllocation) *Genesis {
	return &Genesis{
		CustomAllocation: customAllocations,
		Rules:            NewDefaultRules(),
	}
}

// ParseAddress accepts both the bech32 and the hex form of an address.
func ParseAddress(s string) (codec.Address, error) {
	if strings.HasPrefix(s, consts.HRP) {
		return codec.ParseAddressBech32(consts.HRP, s)
	}
	return codec.StringToAddress(s)
}

func (g *Genesis) Verify() error {
	if g.Rules == nil {
		return ErrMissingRules
	}
	dups := lo.FindDuplicatesBy(g.CustomAllocation, func(a *CustomAllocation) string {
		return a.Address
	})
	if len(dups) > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateAllocation, dups[0].Address)
	}
	return nil
}

func (g *Genesis) InitializeState(ctx context.Context, tracer trace.Tracer, mu state.Mutable, balanceHandler chain.BalanceHandler) error {
	_, span := tracer.Start(ctx, "Genesis.InitializeState")
	defer span.End()

	supply := uint64(0)
	for _, alloc := range g.CustomAllocation {
		addr, err := ParseAddress(alloc.Address)
		if err != nil {
			return fmt.Errorf("%w: %s", err, alloc.Address)
		}
		supply, err = safemath.Add64(supply, alloc.Balance)
		if err != nil {
			return err
		}
		if err := balanceHandler.AddBalance(ctx, addr, mu, alloc.Balance); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.Address, alloc.Balance)
		}
	}
	return nil
}

// ChainID identifies the chain created from [genesisBytes].
func ChainID(genesisBytes []byte) ids.ID {
	return utils.ToID(genesisBytes)
}

// Parse decodes [genesisBytes] as YAML when [format] is "yaml" or "yml" and
// as JSON otherwise. The returned rules are bound to [ChainID].
func Parse(genesisBytes []byte, format string) (*Genesis, error) {
	g := &Genesis{}
	var err error
	switch strings.ToLower(format) {
	case "yaml", "yml":
		err = yaml.Unmarshal(genesisBytes, g)
	default:
		err = json.Unmarshal(genesisBytes, g)
	}
	if err != nil {
		return nil, err
	}
	if err := g.Verify(); err != nil {
		return nil, err
	}
	g.Rules = g.Rules.WithChainID(ChainID(genesisBytes))
	return g, nil
}

// Load reads a genesis file. The format is picked from the extension.
func Load(path string) (*Genesis, []byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	g, err := Parse(b, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, nil, err
	}
	return g, b, nil
}

// Bytes encodes [g] in [format] ("yaml", "yml" or "json").
func (g *Genesis) Bytes(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return yaml.Marshal(g)
	default:
		return json.MarshalIndent(g, "", "  ")
	}
}
