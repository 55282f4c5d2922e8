// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/utils"
)

var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Manage the genesis of the ledger",
}

var genesisGenerateCmd = &cobra.Command{
	Use:   "generate [address...]",
	Short: "Write a genesis funding every address with --balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errNoAllocation
		}
		path, err := getConfigValue(cmd, "genesis", true)
		if err != nil {
			return err
		}
		balanceString, err := cmd.Flags().GetString("balance")
		if err != nil {
			return err
		}
		balance, err := utils.ParseBalance(balanceString)
		if err != nil {
			return fmt.Errorf("failed to parse balance: %w", err)
		}
		ownership, err := cmd.Flags().GetBool("enforce-ownership")
		if err != nil {
			return err
		}
		for _, arg := range args {
			if _, err := genesis.ParseAddress(arg); err != nil {
				return fmt.Errorf("failed to parse address %s: %w", arg, err)
			}
		}

		allocs := lo.Map(lo.Uniq(args), func(addr string, _ int) *genesis.CustomAllocation {
			return &genesis.CustomAllocation{Address: addr, Balance: balance}
		})
		g := genesis.NewDefaultGenesis(allocs)
		g.Rules.EnforceCounterOwnership = ownership
		b, err := g.Bytes(strings.TrimPrefix(filepath.Ext(path), "."))
		if err != nil {
			return fmt.Errorf("failed to encode genesis: %w", err)
		}
		if err := utils.SaveBytes(path, b); err != nil {
			return fmt.Errorf("failed to write genesis: %w", err)
		}
		if err := setConfigValue("genesis", path); err != nil {
			return err
		}
		return printValue(cmd, genesisResponse{
			Path:    path,
			ChainID: genesis.ChainID(b).String(),
		})
	},
}

type genesisResponse struct {
	Path    string `json:"path"`
	ChainID string `json:"chainId"`
}

func (r genesisResponse) String() string {
	return fmt.Sprintf("wrote %s (chainID=%s)", r.Path, r.ChainID)
}

func init() {
	genesisGenerateCmd.Flags().String("balance", "1,000,000,000", "Balance of every allocation")
	genesisGenerateCmd.Flags().Bool("enforce-ownership", false, "Only the owner of a counter may mutate it")
	genesisCmd.AddCommand(genesisGenerateCmd)
	rootCmd.AddCommand(genesisCmd)
}
