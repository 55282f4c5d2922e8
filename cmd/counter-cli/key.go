// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/utils"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage keys",
}

var keyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new key and store it in the config",
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := ed25519.GeneratePrivateKey()
		if err != nil {
			return fmt.Errorf("failed to generate key: %w", err)
		}
		if err := setConfigValue("key", key.ToHex()); err != nil {
			return fmt.Errorf("failed to store key: %w", err)
		}
		resp, err := newKeyAddressResponse(key)
		if err != nil {
			return err
		}
		return printValue(cmd, resp)
	},
}

var keySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the key given by --key in the config",
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := loadKey(cmd)
		if err != nil {
			return err
		}
		if err := setConfigValue("key", key.ToHex()); err != nil {
			return fmt.Errorf("failed to store key: %w", err)
		}
		resp, err := newKeyAddressResponse(key)
		if err != nil {
			return err
		}
		return printValue(cmd, resp)
	},
}

var keyImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Store the raw private key in [file] in the config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := utils.LoadBytes(args[0], ed25519.PrivateKeyLen)
		if err != nil {
			return fmt.Errorf("failed to load key: %w", err)
		}
		key := ed25519.PrivateKey(b)
		if err := setConfigValue("key", key.ToHex()); err != nil {
			return fmt.Errorf("failed to store key: %w", err)
		}
		resp, err := newKeyAddressResponse(key)
		if err != nil {
			return err
		}
		return printValue(cmd, resp)
	},
}

var keyExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the raw private key to [file]",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := loadKey(cmd)
		if err != nil {
			return err
		}
		if err := utils.SaveBytes(args[0], key[:]); err != nil {
			return fmt.Errorf("failed to write key: %w", err)
		}
		resp, err := newKeyAddressResponse(key)
		if err != nil {
			return err
		}
		return printValue(cmd, resp)
	},
}

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print current key address",
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := loadKey(cmd)
		if err != nil {
			return err
		}
		resp, err := newKeyAddressResponse(key)
		if err != nil {
			return err
		}
		return printValue(cmd, resp)
	},
}

type keyAddressResponse struct {
	Address string `json:"address"`
	Bech32  string `json:"bech32"`
}

func newKeyAddressResponse(key ed25519.PrivateKey) (keyAddressResponse, error) {
	addr := auth.NewED25519Address(key.PublicKey())
	bech32, err := codec.AddressBech32(consts.HRP, addr)
	if err != nil {
		return keyAddressResponse{}, fmt.Errorf("failed to encode address: %w", err)
	}
	return keyAddressResponse{Address: addr.String(), Bech32: bech32}, nil
}

func (r keyAddressResponse) String() string {
	return fmt.Sprintf("%s (%s)", r.Bech32, r.Address)
}

func init() {
	keyCmd.AddCommand(keyGenerateCmd, keySetCmd, keyImportCmd, keyExportCmd)
	rootCmd.AddCommand(keyCmd, addressCmd)
}
