//
// Copyright (c) 2019 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrkgarbler/yaogc/circuit"
)

var evaluatorCmd = &cobra.Command{
	Use:   "evaluator <garbled_circuit_path>",
	Short: "Obliviously evaluate a garbled circuit",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvaluator,
}

func init() {
	rootCmd.AddCommand(evaluatorCmd)
}

func runEvaluator(cmd *cobra.Command, args []string) error {
	gc, err := circuit.LoadGarbledCircuit(args[0])
	if err != nil {
		return fmt.Errorf("evaluator: %w", err)
	}

	labels, err := gc.Evaluate()
	if err != nil {
		return fmt.Errorf("evaluator: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, l := range labels {
		fmt.Fprintln(out, l.String())
	}
	return nil
}
