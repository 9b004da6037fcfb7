//
// Copyright (c) 2019 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"strings"

	"github.com/mrkgarbler/yaogc/label"
)

// Bit is a single boolean wire value, 0 or 1.
type Bit uint8

// Valid reports whether b is a well-formed bit.
func (b Bit) Valid() bool {
	return b == 0 || b == 1
}

// Gate is the tagged-union replacement the design calls for: instead of
// a runtime-polymorphic gate interface dispatched per evaluation, the
// Circuit type is parameterized over the concrete gate kind G and the
// value domain V that kind operates on (Bit for LogicGate, label.Label
// for GarbledGate). Both gate kinds implement this same shape.
type Gate[V any] interface {
	// ID returns the wire id this gate produces.
	ID() int
	// InputIDs returns the gate's 1 or 2 input wire ids, in order.
	InputIDs() []int
	// Evaluate computes this gate's output value from its input
	// values, supplied in the same order as InputIDs.
	Evaluate(inputs []V) (V, error)
}

func validateShape(id int, inputs []int, tableLen int) error {
	if len(inputs) != 1 && len(inputs) != 2 {
		return fmt.Errorf("%w: gate %d has arity %d, want 1 or 2",
			ErrStructural, id, len(inputs))
	}
	for _, in := range inputs {
		if in >= id {
			return fmt.Errorf("%w: gate %d has input %d >= its own id",
				ErrStructural, id, in)
		}
	}
	want := 1 << len(inputs)
	if tableLen != want {
		return fmt.Errorf("%w: gate %d has %d values, want %d for arity %d",
			ErrDomain, id, tableLen, want, len(inputs))
	}
	return nil
}

// LogicGate is a plaintext truth-table gate.
type LogicGate struct {
	id     int
	inputs []int
	table  []Bit
}

// NewLogicGate constructs a LogicGate, validating arity, topology, and
// the truth table's length and values.
func NewLogicGate(id int, inputs []int, table []Bit) (*LogicGate, error) {
	if err := validateShape(id, inputs, len(table)); err != nil {
		return nil, err
	}
	for _, v := range table {
		if !v.Valid() {
			return nil, fmt.Errorf("%w: gate %d truth table value %d not in {0,1}",
				ErrDomain, id, v)
		}
	}
	ins := append([]int(nil), inputs...)
	tbl := append([]Bit(nil), table...)
	return &LogicGate{id: id, inputs: ins, table: tbl}, nil
}

// ID implements Gate[Bit].
func (g *LogicGate) ID() int { return g.id }

// InputIDs implements Gate[Bit].
func (g *LogicGate) InputIDs() []int { return g.inputs }

// Table returns the gate's truth table, indexed MSB-first by input bits.
func (g *LogicGate) Table() []Bit { return g.table }

// Evaluate implements Gate[Bit]: looks up the truth table row selected
// by the input bits, concatenated MSB-first (the left-most input
// supplies the high bit of the index).
func (g *LogicGate) Evaluate(inputs []Bit) (Bit, error) {
	if len(inputs) != len(g.inputs) {
		return 0, fmt.Errorf("%w: gate %d got %d inputs, want %d",
			ErrShapeMismatch, g.id, len(inputs), len(g.inputs))
	}
	idx := 0
	for _, b := range inputs {
		if !b.Valid() {
			return 0, fmt.Errorf("%w: gate %d input value %d not in {0,1}",
				ErrDomain, g.id, b)
		}
		idx = (idx << 1) | int(b)
	}
	return g.table[idx], nil
}

// String renders the gate the way the truth-table logic of a small
// circuit reads in a trace: id, inputs, and the table as a bit string.
func (g *LogicGate) String() string {
	var sb strings.Builder
	for _, v := range g.table {
		fmt.Fprintf(&sb, "%d", v)
	}
	return fmt.Sprintf("Logic(%d)<%s>[%s]", g.id, joinInts(g.inputs), sb.String())
}

// GarbledGate is the encrypted equivalent of a LogicGate: its rows are
// the AES-256-ECB encryptions of (output label || PadZeros), uniformly
// permuted by the garbler so their order no longer matches the
// plaintext truth-table order.
type GarbledGate struct {
	id     int
	inputs []int
	rows   [][]byte
}

// RowSize is the byte width of one garbled row: two labels
// back-to-back (the output label plus its zero pad).
const RowSize = 2 * label.Size

// NewGarbledGate constructs a GarbledGate, validating arity, topology,
// row count, and row width.
func NewGarbledGate(id int, inputs []int, rows [][]byte) (*GarbledGate, error) {
	if err := validateShape(id, inputs, len(rows)); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != RowSize {
			return nil, fmt.Errorf("%w: gate %d row %d has %d bytes, want %d",
				ErrDomain, id, i, len(row), RowSize)
		}
	}
	ins := append([]int(nil), inputs...)
	rs := make([][]byte, len(rows))
	for i, row := range rows {
		rs[i] = append([]byte(nil), row...)
	}
	return &GarbledGate{id: id, inputs: ins, rows: rs}, nil
}

// ID implements Gate[label.Label].
func (g *GarbledGate) ID() int { return g.id }

// InputIDs implements Gate[label.Label].
func (g *GarbledGate) InputIDs() []int { return g.inputs }

// Rows returns the gate's ciphertext rows, in their stored (permuted)
// order.
func (g *GarbledGate) Rows() [][]byte { return g.rows }

func joinInts(ids []int) string {
	var sb strings.Builder
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", id)
	}
	return sb.String()
}
