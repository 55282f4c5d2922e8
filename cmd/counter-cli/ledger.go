// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/config"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/utils"
	"github.com/ava-labs/countervm/vm"
)

func openVM(cmd *cobra.Command) (*vm.VM, error) {
	genesisPath, err := getConfigValue(cmd, "genesis", true)
	if err != nil {
		return nil, err
	}
	g, _, err := genesis.Load(genesisPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load genesis: %w", err)
	}

	cfg := config.NewConfig()
	configPath, err := getConfigValue(cmd, "config", false)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	log, err := cfg.NewLogger("counter-cli", os.Stderr)
	if err != nil {
		return nil, err
	}

	dataDir, err := getConfigValue(cmd, "data-dir", true)
	if err != nil {
		return nil, err
	}
	return vm.Open(dataDir, g, cfg, log)
}

// submit signs [actions] with the configured key, paying from --payer when set.
func submit(cmd *cobra.Command, v *vm.VM, actions ...chain.Action) (*chain.Result, error) {
	key, err := loadKey(cmd)
	if err != nil {
		return nil, err
	}
	var factory chain.AuthFactory = auth.NewED25519Factory(key)
	payerString, err := cmd.Flags().GetString("payer")
	if err == nil && payerString != "" {
		payer, err := privateKeyFromString(payerString)
		if err != nil {
			return nil, err
		}
		factory = auth.NewSponsoredFactory(key, payer)
	}
	maxFeeString, err := cmd.Flags().GetString("max-fee")
	if err != nil {
		return nil, err
	}
	maxFee, err := utils.ParseBalance(maxFeeString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse max fee: %w", err)
	}

	rules := v.Rules()
	tx, err := chain.NewTx(&chain.Base{
		Timestamp: utils.UnixRMilli(-1, rules.GetValidityWindow()),
		ChainID:   rules.GetChainID(),
		MaxFee:    maxFee,
	}, actions).Sign(factory, v.ActionRegistry(), v.AuthRegistry())
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	result, err := v.Submit(context.Background(), tx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errTxFailed, tx.ID(), err)
	}
	return result, nil
}

func addTxFlags(cmd *cobra.Command) {
	cmd.Flags().String("payer", "", "Private ED25519 key of the fee payer as hex string")
	cmd.Flags().String("max-fee", "1,000", "Max fee the payer accepts")
}

type txResponse struct {
	TxID    string         `json:"txId"`
	Fee     uint64         `json:"fee"`
	Outputs []codec.Typed  `json:"outputs"`
	Counter *counterStatus `json:"counter,omitempty"`
}

func newTxResponse(result *chain.Result) txResponse {
	return txResponse{
		TxID:    result.TxID.String(),
		Fee:     result.Fee,
		Outputs: result.Outputs,
	}
}

func (r txResponse) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("✅ Transaction %s succeeded (fee=%s)\n", r.TxID, utils.FormatBalance(r.Fee)))
	if r.Counter != nil {
		b.WriteString(r.Counter.String())
	}
	return b.String()
}
