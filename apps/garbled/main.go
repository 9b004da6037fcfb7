//
// Copyright (c) 2019 Markku Rossi
//
// All rights reserved.
//

// Command garbled drives a Yao's garbled circuit session: the garbler
// subcommand garbles a logic circuit, and the evaluator subcommand
// obliviously evaluates the resulting garbled circuit.
package main

import (
	"os"

	"github.com/getamis/sirius/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "garbled",
	Short: "Yao's garbled circuit garbler and evaluator",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("garbled: command failed", "err", err)
		os.Exit(1)
	}
}
