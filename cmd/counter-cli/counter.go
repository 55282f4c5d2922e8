// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/utils"
	"github.com/ava-labs/countervm/vm"
)

var initializeCmd = &cobra.Command{
	Use:   "initialize",
	Short: "Create the counter owned by the current key",
	RunE: func(cmd *cobra.Command, _ []string) error {
		v, err := openVM(cmd)
		if err != nil {
			return err
		}
		defer v.Close()

		result, err := submit(cmd, v, &actions.Initialize{})
		if err != nil {
			return err
		}
		resp := newTxResponse(result)
		out := result.Outputs[0].(*actions.InitializeResult)
		resp.Counter, err = getCounterStatus(v, out.Counter)
		if err != nil {
			return err
		}
		return printValue(cmd, resp)
	},
}

func mutateCmd(use string, short string, newAction func(codec.Address, uint64) chain.Action) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [amount]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				amount uint64
				err    error
			)
			if len(args) == 1 {
				amount, err = utils.ParseBalance(args[0])
			} else {
				amount, err = promptAmount("amount")
			}
			if err != nil {
				return fmt.Errorf("failed to parse amount: %w", err)
			}

			v, err := openVM(cmd)
			if err != nil {
				return err
			}
			defer v.Close()

			counter, err := resolveCounter(cmd)
			if err != nil {
				return err
			}
			result, err := submit(cmd, v, newAction(counter, amount))
			if err != nil {
				return err
			}
			resp := newTxResponse(result)
			resp.Counter, err = getCounterStatus(v, counter)
			if err != nil {
				return err
			}
			return printValue(cmd, resp)
		},
	}
	cmd.Flags().String("counter", "", "Counter address (defaults to the counter of the current key)")
	addTxFlags(cmd)
	return cmd
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print a counter",
	RunE: func(cmd *cobra.Command, _ []string) error {
		v, err := openVM(cmd)
		if err != nil {
			return err
		}
		defer v.Close()

		counter, err := resolveCounter(cmd)
		if err != nil {
			return err
		}
		status, err := getCounterStatus(v, counter)
		if err != nil {
			return err
		}
		return printValue(cmd, status)
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Print the fee balance of an address (defaults to the current key)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			addr codec.Address
			err  error
		)
		if len(args) == 1 {
			addr, err = genesis.ParseAddress(args[0])
		} else {
			addr, err = keyAddress(cmd)
		}
		if err != nil {
			return err
		}

		v, err := openVM(cmd)
		if err != nil {
			return err
		}
		defer v.Close()

		bal, err := v.GetBalance(context.Background(), addr)
		if err != nil {
			return err
		}
		return printValue(cmd, balanceResponse{Address: addr.String(), Balance: bal})
	},
}

type balanceResponse struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

func (r balanceResponse) String() string {
	return fmt.Sprintf("%s: %s", r.Address, utils.FormatBalance(r.Balance))
}

type counterStatus struct {
	Address string `json:"address"`
	Count   uint64 `json:"count"`
	Bump    uint8  `json:"bump"`
}

func (s counterStatus) String() string {
	return fmt.Sprintf("counter %s: count=%s bump=%d", s.Address, utils.FormatBalance(s.Count), s.Bump)
}

func getCounterStatus(v *vm.VM, addr codec.Address) (*counterStatus, error) {
	c, err := v.GetCounter(context.Background(), addr)
	if err != nil {
		return nil, fmt.Errorf("failed to get counter %s: %w", addr, err)
	}
	return &counterStatus{Address: addr.String(), Count: c.Count, Bump: c.Bump}, nil
}

func keyAddress(cmd *cobra.Command) (codec.Address, error) {
	key, err := loadKey(cmd)
	if err != nil {
		return codec.EmptyAddress, err
	}
	return auth.NewED25519Address(key.PublicKey()), nil
}

// resolveCounter reads --counter, falling back to the counter of the
// current key and then to a prompt.
func resolveCounter(cmd *cobra.Command) (codec.Address, error) {
	if s, err := cmd.Flags().GetString("counter"); err == nil && s != "" {
		return genesis.ParseAddress(s)
	}
	owner, err := keyAddress(cmd)
	if err != nil {
		return promptAddress("counter")
	}
	counter, _, err := storage.CounterAddress(owner)
	return counter, err
}

func init() {
	addTxFlags(initializeCmd)
	getCmd.Flags().String("counter", "", "Counter address (defaults to the counter of the current key)")
	rootCmd.AddCommand(
		initializeCmd,
		mutateCmd("increase", "Increase a counter by [amount]", func(c codec.Address, amount uint64) chain.Action {
			return &actions.Increase{Counter: c, Amount: amount}
		}),
		mutateCmd("decrease", "Decrease a counter by [amount]", func(c codec.Address, amount uint64) chain.Action {
			return &actions.Decrease{Counter: c, Amount: amount}
		}),
		getCmd,
		balanceCmd,
	)
}
