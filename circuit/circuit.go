//
// Copyright (c) 2019 Markku Rossi
//
// All rights reserved.
//

// Package circuit implements the boolean circuit representation, its
// topological evaluator, the garbling transformation, and the oblivious
// evaluation of a garbled circuit, per Yao's garbled circuit protocol.
package circuit

import (
	"fmt"

	"github.com/mrkgarbler/yaogc/label"
)

// Circuit is an indexed collection of gates plus the designated
// input/output wire ids, generic over the gate kind G and the value
// domain V that kind of gate operates on. This replaces runtime
// dispatch between logic and garbled gates with a single code path
// instantiated twice: Circuit[Bit, *LogicGate] and
// Circuit[label.Label, *GarbledGate].
type Circuit[V any, G Gate[V]] struct {
	inputIDs  []int
	outputIDs []int
	gates     []G
	gateByID  []G
	n         int
}

// New validates (input_ids, output_ids, gates) against the data model's
// structural invariants and builds the id-indexed gate lookup table.
//
// Construction fails if the ids are not exactly {0..n-1}, if any output
// id falls outside that range, or if any gate's own shape validation
// failed (arity, topology) — gate constructors validate that before a
// Circuit ever sees the gate, so New only re-checks the cross-gate
// invariant: wire ids must be unique, disjoint from input ids, and
// together cover {0..n-1} with no gaps.
func New[V any, G Gate[V]](inputIDs, outputIDs []int, gates []G) (*Circuit[V, G], error) {
	n := len(inputIDs) + len(gates)

	seen := make([]bool, n)
	for _, id := range inputIDs {
		if id < 0 || id >= n || seen[id] {
			return nil, fmt.Errorf("%w: input ids are not unique and within [0,%d)", ErrStructural, n)
		}
		seen[id] = true
	}
	for _, g := range gates {
		id := g.ID()
		if id < 0 || id >= n || seen[id] {
			return nil, fmt.Errorf("%w: gate ids are not unique and within [0,%d)", ErrStructural, n)
		}
		seen[id] = true
	}
	for _, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("%w: ids must be exactly {0..%d}", ErrStructural, n-1)
		}
	}

	for _, id := range outputIDs {
		if id < 0 || id >= n {
			return nil, fmt.Errorf("%w: output id %d is outside [0,%d)", ErrStructural, id, n)
		}
	}

	gateByID := make([]G, n)
	for _, g := range gates {
		gateByID[g.ID()] = g
	}

	c := &Circuit[V, G]{
		inputIDs:  append([]int(nil), inputIDs...),
		outputIDs: append([]int(nil), outputIDs...),
		gates:     append([]G(nil), gates...),
		gateByID:  gateByID,
		n:         n,
	}
	return c, nil
}

// InputIDs returns the circuit's input wire ids, in order.
func (c *Circuit[V, G]) InputIDs() []int { return c.inputIDs }

// OutputIDs returns the circuit's output wire ids, in order.
func (c *Circuit[V, G]) OutputIDs() []int { return c.outputIDs }

// Gates returns the circuit's gates, one per non-input wire.
func (c *Circuit[V, G]) Gates() []G { return c.gates }

// NumWires returns the total number of wire ids, |input_ids| + |gates|.
func (c *Circuit[V, G]) NumWires() int { return c.n }

// Evaluate runs the topological evaluator: it seeds the wire array with
// inputValues at the input ids, then scans wire ids in ascending order.
// Ascending-id order is a valid topological order under the
// topological invariant (every gate's inputs have strictly smaller
// ids), so no explicit graph traversal is needed; at the moment wire w
// is read, wires 0..w-1 are already final.
func (c *Circuit[V, G]) Evaluate(inputValues []V) ([]V, error) {
	if len(inputValues) != len(c.inputIDs) {
		return nil, fmt.Errorf("%w: got %d input values, want %d",
			ErrShapeMismatch, len(inputValues), len(c.inputIDs))
	}

	wire := make([]V, c.n)
	computed := make([]bool, c.n)

	for k, v := range inputValues {
		wire[c.inputIDs[k]] = v
		computed[c.inputIDs[k]] = true
	}

	for w := 0; w < c.n; w++ {
		if computed[w] {
			continue
		}
		gate := c.gateByID[w]
		ids := gate.InputIDs()
		gathered := make([]V, len(ids))
		for i, id := range ids {
			if !computed[id] {
				return nil, fmt.Errorf("%w: wire %d read before it was computed", ErrStructural, id)
			}
			gathered[i] = wire[id]
		}
		out, err := gate.Evaluate(gathered)
		if err != nil {
			return nil, err
		}
		wire[w] = out
		computed[w] = true
	}

	out := make([]V, len(c.outputIDs))
	for i, id := range c.outputIDs {
		out[i] = wire[id]
	}
	return out, nil
}

// LogicCircuit is a Circuit of plaintext truth-table gates, evaluating
// over Bit values.
type LogicCircuit struct {
	*Circuit[Bit, *LogicGate]
}

// NewLogicCircuit validates and builds a LogicCircuit.
func NewLogicCircuit(inputIDs, outputIDs []int, gates []*LogicGate) (*LogicCircuit, error) {
	c, err := New[Bit, *LogicGate](inputIDs, outputIDs, gates)
	if err != nil {
		return nil, err
	}
	return &LogicCircuit{Circuit: c}, nil
}

// GarbledCircuit is the garbled equivalent of a LogicCircuit: its gates
// carry encrypted rows instead of plaintext truth tables, and it owns
// the evaluator-visible input labels selected by the garbler — it
// carries no plaintext truth tables and no label-pair table.
type GarbledCircuit struct {
	*Circuit[label.Label, *GarbledGate]
	inputKeys []label.Label
}

// NewGarbledCircuit validates and builds a GarbledCircuit.
func NewGarbledCircuit(inputIDs, outputIDs []int, gates []*GarbledGate,
	inputKeys []label.Label) (*GarbledCircuit, error) {

	c, err := New[label.Label, *GarbledGate](inputIDs, outputIDs, gates)
	if err != nil {
		return nil, err
	}
	if len(inputKeys) != len(inputIDs) {
		return nil, fmt.Errorf("%w: got %d input keys, want %d",
			ErrShapeMismatch, len(inputKeys), len(inputIDs))
	}
	return &GarbledCircuit{
		Circuit:   c,
		inputKeys: append([]label.Label(nil), inputKeys...),
	}, nil
}

// InputKeys returns the evaluator-visible input labels, one per input
// id, in order.
func (gc *GarbledCircuit) InputKeys() []label.Label { return gc.inputKeys }

// Evaluate runs the oblivious evaluator over the garbled circuit's own
// input labels, dispatching each non-input wire through GarbledGate's
// AES decryption, and returns the labels at the output ids.
func (gc *GarbledCircuit) Evaluate() ([]label.Label, error) {
	return gc.Circuit.Evaluate(gc.inputKeys)
}
