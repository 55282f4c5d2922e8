// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/utils"
)

func promptAmount(label string) (uint64, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) == 0 {
				return errInputEmpty
			}
			_, err := utils.ParseBalance(input)
			return err
		},
	}
	amount, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return utils.ParseBalance(strings.TrimSpace(amount))
}

func promptAddress(label string) (codec.Address, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := genesis.ParseAddress(strings.TrimSpace(input))
			return err
		},
	}
	addr, err := promptText.Run()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return genesis.ParseAddress(strings.TrimSpace(addr))
}
