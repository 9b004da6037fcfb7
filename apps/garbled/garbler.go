//
// Copyright (c) 2019 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/getamis/sirius/log"
	"github.com/spf13/cobra"

	"github.com/mrkgarbler/yaogc/circuit"
	"github.com/mrkgarbler/yaogc/envcfg"
	"github.com/mrkgarbler/yaogc/label"
)

var (
	garblerOut    string
	garblerVerify bool
)

var garblerCmd = &cobra.Command{
	Use:   "garbler <logic_circuit_path> <input_bits_string>",
	Short: "Garble a logic circuit and decode the evaluator's output labels",
	Args:  cobra.ExactArgs(2),
	RunE:  runGarbler,
}

func init() {
	garblerCmd.Flags().StringVarP(&garblerOut, "out", "o", "gc_out.json",
		"path to write the garbled circuit JSON to")
	garblerCmd.Flags().BoolVarP(&garblerVerify, "verify", "v", false,
		"also evaluate the circuit in plaintext and report whether the result matches")
	rootCmd.AddCommand(garblerCmd)
}

func runGarbler(cmd *cobra.Command, args []string) error {
	circuitPath, bitString := args[0], args[1]

	lc, err := circuit.LoadLogicCircuit(circuitPath)
	if err != nil {
		return fmt.Errorf("garbler: %w", err)
	}

	inputBits, err := circuit.ParseBitString(bitString)
	if err != nil {
		return fmt.Errorf("garbler: %w", err)
	}

	g, err := circuit.NewGarblerFromEntropy(envcfg.Default.GetRandom())
	if err != nil {
		return fmt.Errorf("garbler: %w", err)
	}

	gc, err := g.Garble(lc, inputBits)
	if err != nil {
		return fmt.Errorf("garbler: %w", err)
	}

	if err := gc.StoreInFile(garblerOut); err != nil {
		return fmt.Errorf("garbler: %w", err)
	}
	log.Info("garbled circuit written", "path", garblerOut)

	outputLabels, err := readOutputLabels(cmd.InOrStdin(), len(lc.OutputIDs()))
	if err != nil {
		return fmt.Errorf("garbler: %w", err)
	}

	outputBits, err := g.Decrypt(lc.OutputIDs(), outputLabels)
	if err != nil {
		return fmt.Errorf("garbler: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), circuit.FormatBits(outputBits))

	if garblerVerify {
		want, err := lc.Evaluate(inputBits)
		if err != nil {
			return fmt.Errorf("garbler: verify: %w", err)
		}
		match := circuit.FormatBits(want) == circuit.FormatBits(outputBits)
		log.Info("verification against plaintext evaluation", "match", match,
			"plaintext", circuit.FormatBits(want), "decoded", circuit.FormatBits(outputBits))
	}

	return nil
}

func readOutputLabels(r io.Reader, want int) ([]label.Label, error) {
	scanner := bufio.NewScanner(r)
	labels := make([]label.Label, 0, want)
	for scanner.Scan() && len(labels) < want {
		l, err := label.FromHex(scanner.Text())
		if err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading output labels: %w", err)
	}
	if len(labels) != want {
		return nil, fmt.Errorf("%w: got %d output labels on stdin, want %d",
			circuit.ErrShapeMismatch, len(labels), want)
	}
	return labels, nil
}
