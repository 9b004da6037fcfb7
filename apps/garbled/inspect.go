//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrkgarbler/yaogc/circuit"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <circuit_path>...",
	Short: "Print wire and gate statistics for one or more circuit files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

// circuitKind probes a persisted circuit's top-level JSON object for the
// field that distinguishes a plaintext circuit ("gates") from a garbled
// one ("garbled_gates"), without fully decoding either shape.
func circuitKind(data []byte) (garbled bool, err error) {
	var probe struct {
		Gates        json.RawMessage `json:"gates"`
		GarbledGates json.RawMessage `json:"garbled_gates"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false, fmt.Errorf("%w: %v", circuit.ErrDomain, err)
	}
	switch {
	case probe.GarbledGates != nil:
		return true, nil
	case probe.Gates != nil:
		return false, nil
	default:
		return false, fmt.Errorf("%w: neither \"gates\" nor \"garbled_gates\" present", circuit.ErrDomain)
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	entries := make([]circuit.NamedStats, 0, len(args))

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("inspect: %w", err)
		}

		garbled, err := circuitKind(data)
		if err != nil {
			return fmt.Errorf("inspect: %s: %w", path, err)
		}

		var stats circuit.Stats
		if garbled {
			var gc circuit.GarbledCircuit
			if err := gc.UnmarshalJSON(data); err != nil {
				return fmt.Errorf("inspect: %s: %w", path, err)
			}
			stats = gc.Stats()
		} else {
			var lc circuit.LogicCircuit
			if err := lc.UnmarshalJSON(data); err != nil {
				return fmt.Errorf("inspect: %s: %w", path, err)
			}
			stats = lc.Stats()
		}

		entries = append(entries, circuit.NamedStats{Name: path, Stats: stats})
	}

	circuit.PrintStatsTable(cmd.OutOrStdout(), entries)
	return nil
}
