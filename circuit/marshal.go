//
// Copyright (c) 2019 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mrkgarbler/yaogc/label"
)

// JSON wire formats, per the persisted circuit schema: field names and
// hex encodings must round-trip exactly.

type logicGateJSON struct {
	ID     int   `json:"id"`
	Inputs []int `json:"inputs"`
	Values []int `json:"values"`
}

type logicCircuitJSON struct {
	InputIDs  []int           `json:"input_ids"`
	OutputIDs []int           `json:"output_ids"`
	Gates     []logicGateJSON `json:"gates"`
}

type garbledGateJSON struct {
	ID     int      `json:"id"`
	Inputs []int    `json:"inputs"`
	Values []string `json:"values"`
}

type garbledCircuitJSON struct {
	InputIDs     []int             `json:"input_ids"`
	OutputIDs    []int             `json:"output_ids"`
	GarbledGates []garbledGateJSON `json:"garbled_gates"`
	InputKeys    []string          `json:"input_keys"`
}

// MarshalJSON implements json.Marshaler for LogicCircuit.
func (lc *LogicCircuit) MarshalJSON() ([]byte, error) {
	doc := logicCircuitJSON{
		InputIDs:  lc.InputIDs(),
		OutputIDs: lc.OutputIDs(),
	}
	for _, g := range lc.Gates() {
		values := make([]int, len(g.Table()))
		for i, v := range g.Table() {
			values[i] = int(v)
		}
		doc.Gates = append(doc.Gates, logicGateJSON{
			ID:     g.ID(),
			Inputs: g.InputIDs(),
			Values: values,
		})
	}
	return json.MarshalIndent(doc, "", "    ")
}

// UnmarshalJSON implements json.Unmarshaler for LogicCircuit.
func (lc *LogicCircuit) UnmarshalJSON(data []byte) error {
	var doc logicCircuitJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("logic circuit: %w", err)
	}
	gates := make([]*LogicGate, len(doc.Gates))
	for i, g := range doc.Gates {
		table := make([]Bit, len(g.Values))
		for j, v := range g.Values {
			if v != 0 && v != 1 {
				return fmt.Errorf("%w: gate %d truth table value %d not in {0,1}",
					ErrDomain, g.ID, v)
			}
			table[j] = Bit(v)
		}
		lg, err := NewLogicGate(g.ID, g.Inputs, table)
		if err != nil {
			return err
		}
		gates[i] = lg
	}
	c, err := NewLogicCircuit(doc.InputIDs, doc.OutputIDs, gates)
	if err != nil {
		return err
	}
	*lc = *c
	return nil
}

// StoreInFile writes the LogicCircuit's JSON encoding to filepath.
func (lc *LogicCircuit) StoreInFile(filepath string) error {
	data, err := lc.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0o644)
}

// LoadLogicCircuit reads and parses a LogicCircuit from filepath.
func LoadLogicCircuit(filepath string) (*LogicCircuit, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("logic circuit file %q: %w", filepath, err)
	}
	var lc LogicCircuit
	if err := lc.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return &lc, nil
}

// MarshalJSON implements json.Marshaler for GarbledCircuit.
func (gc *GarbledCircuit) MarshalJSON() ([]byte, error) {
	doc := garbledCircuitJSON{
		InputIDs:  gc.InputIDs(),
		OutputIDs: gc.OutputIDs(),
	}
	for _, g := range gc.Gates() {
		values := make([]string, len(g.Rows()))
		for i, row := range g.Rows() {
			values[i] = hex.EncodeToString(row)
		}
		doc.GarbledGates = append(doc.GarbledGates, garbledGateJSON{
			ID:     g.ID(),
			Inputs: g.InputIDs(),
			Values: values,
		})
	}
	for _, k := range gc.InputKeys() {
		doc.InputKeys = append(doc.InputKeys, k.String())
	}
	return json.MarshalIndent(doc, "", "    ")
}

// UnmarshalJSON implements json.Unmarshaler for GarbledCircuit.
func (gc *GarbledCircuit) UnmarshalJSON(data []byte) error {
	var doc garbledCircuitJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("garbled circuit: %w", err)
	}

	gates := make([]*GarbledGate, len(doc.GarbledGates))
	for i, g := range doc.GarbledGates {
		rows := make([][]byte, len(g.Values))
		for j, hexVal := range g.Values {
			row, err := hex.DecodeString(hexVal)
			if err != nil {
				return fmt.Errorf("%w: gate %d row %d: %v", ErrDomain, g.ID, j, err)
			}
			rows[j] = row
		}
		gg, err := NewGarbledGate(g.ID, g.Inputs, rows)
		if err != nil {
			return err
		}
		gates[i] = gg
	}

	inputKeys := make([]label.Label, len(doc.InputKeys))
	for i, h := range doc.InputKeys {
		l, err := label.FromHex(h)
		if err != nil {
			return fmt.Errorf("%w: input key %d: %v", ErrDomain, i, err)
		}
		inputKeys[i] = l
	}

	c, err := NewGarbledCircuit(doc.InputIDs, doc.OutputIDs, gates, inputKeys)
	if err != nil {
		return err
	}
	*gc = *c
	return nil
}

// StoreInFile writes the GarbledCircuit's JSON encoding to filepath.
func (gc *GarbledCircuit) StoreInFile(filepath string) error {
	data, err := gc.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0o644)
}

// LoadGarbledCircuit reads and parses a GarbledCircuit from filepath.
func LoadGarbledCircuit(filepath string) (*GarbledCircuit, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("garbled circuit file %q: %w", filepath, err)
	}
	var gc GarbledCircuit
	if err := gc.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return &gc, nil
}
