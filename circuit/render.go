//
// Copyright (c) 2019 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"io"
	"strconv"

	"github.com/markkurossi/tabulate"
	"github.com/markkurossi/text/superscript"
)

// Stats summarizes a circuit's shape: how many wires, inputs, outputs,
// and gates of each arity it has. It is the same information the CLI's
// inspect subcommand reports, factored out so it applies equally to a
// LogicCircuit or a GarbledCircuit.
type Stats struct {
	NumWires   int
	NumInputs  int
	NumOutputs int
	Arity1     int
	Arity2     int
}

// NumGates returns the total gate count (Arity1 + Arity2).
func (s Stats) NumGates() int { return s.Arity1 + s.Arity2 }

func statsFromGates[V any, G Gate[V]](c *Circuit[V, G]) Stats {
	s := Stats{
		NumWires:   c.NumWires(),
		NumInputs:  len(c.InputIDs()),
		NumOutputs: len(c.OutputIDs()),
	}
	for _, g := range c.Gates() {
		switch len(g.InputIDs()) {
		case 1:
			s.Arity1++
		case 2:
			s.Arity2++
		}
	}
	return s
}

// Stats summarizes the LogicCircuit's shape.
func (lc *LogicCircuit) Stats() Stats { return statsFromGates(lc.Circuit) }

// Stats summarizes the GarbledCircuit's shape.
func (gc *GarbledCircuit) Stats() Stats { return statsFromGates(gc.Circuit) }

// NamedStats pairs a Stats with the label it should be reported under
// (typically the source file path).
type NamedStats struct {
	Name  string
	Stats Stats
}

// PrintStatsTable renders a table of circuit statistics, one row per
// entry, to w.
func PrintStatsTable(w io.Writer, entries []NamedStats) {
	tab := tabulate.New(tabulate.Github)
	tab.Header("File")
	tab.Header("Wires").SetAlign(tabulate.MR)
	tab.Header("Inputs").SetAlign(tabulate.MR)
	tab.Header("Outputs").SetAlign(tabulate.MR)
	tab.Header(fmt.Sprintf("Gates%s", superscript.Itoa(1))).SetAlign(tabulate.MR)
	tab.Header(fmt.Sprintf("Gates%s", superscript.Itoa(2))).SetAlign(tabulate.MR)
	tab.Header("Gates").SetAlign(tabulate.MR)

	for _, e := range entries {
		row := tab.Row()
		row.Column(e.Name)
		row.Column(strconv.Itoa(e.Stats.NumWires))
		row.Column(strconv.Itoa(e.Stats.NumInputs))
		row.Column(strconv.Itoa(e.Stats.NumOutputs))
		row.Column(strconv.Itoa(e.Stats.Arity1))
		row.Column(strconv.Itoa(e.Stats.Arity2))
		row.Column(strconv.Itoa(e.Stats.NumGates()))
	}

	tab.Print(w)
}
