// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "counter-cli",
	Short: "CLI for a local counter ledger",
	Long:  `A CLI application for creating and mutating counters on a local counter ledger.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}

func init() {
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text or json)")
	rootCmd.PersistentFlags().String("key", "", "Private ED25519 key as hex string")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory of the ledger database")
	rootCmd.PersistentFlags().String("genesis", "", "Path of the genesis file (json or yaml)")
	rootCmd.PersistentFlags().String("config", "", "Path of the node config file")
}

func main() {
	// .env is optional
	_ = godotenv.Load()
	Execute()
}
