//
// Copyright (c) 2019 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"crypto/aes"
	"fmt"
	"io"
	"math/rand"

	"github.com/mrkgarbler/yaogc/label"
)

// Garbler is a stateful transformer: it generates per-wire label pairs,
// produces a garbled circuit, and decodes output labels back to bits.
// Its keys table is owned exclusively by this instance; concurrent
// garbling requires distinct Garbler instances (or external mutual
// exclusion), since each call to Garble discards and regenerates it.
type Garbler struct {
	rng  *rand.Rand
	keys []label.Pair
}

// NewGarbler builds a Garbler seeded deterministically. Given the same
// seed, circuit, and input bits, Garble produces byte-identical garbled
// circuits, including row permutation — the rng is the Garbler's sole
// source of nondeterminism.
func NewGarbler(seed int64) *Garbler {
	return &Garbler{rng: rand.New(rand.NewSource(seed))}
}

// NewGarblerFromEntropy builds a non-deterministic Garbler, seeding its
// PRG from 8 bytes read off src (typically crypto/rand.Reader via
// envcfg.Config.GetRandom). Use NewGarbler directly when reproducible
// output is required.
func NewGarblerFromEntropy(src io.Reader) (*Garbler, error) {
	var buf [8]byte
	if _, err := io.ReadFull(src, buf[:]); err != nil {
		return nil, fmt.Errorf("garbler: %w", err)
	}
	var seed int64
	for _, b := range buf {
		seed = seed<<8 | int64(b)
	}
	return NewGarbler(seed), nil
}

// Garble transforms a LogicCircuit and the garbler's input bits into a
// GarbledCircuit. It discards any keys table left over from a previous
// call and samples a fresh one.
func (g *Garbler) Garble(lc *LogicCircuit, inputBits []Bit) (*GarbledCircuit, error) {
	inputIDs := lc.InputIDs()
	if len(inputBits) != len(inputIDs) {
		return nil, fmt.Errorf("%w: got %d input bits, want %d",
			ErrShapeMismatch, len(inputBits), len(inputIDs))
	}
	for _, b := range inputBits {
		if !b.Valid() {
			return nil, fmt.Errorf("%w: input bit %d not in {0,1}", ErrDomain, b)
		}
	}

	n := lc.NumWires()
	g.keys = make([]label.Pair, n)
	for w := 0; w < n; w++ {
		p, err := label.NewPair(g.rng)
		if err != nil {
			return nil, err
		}
		g.keys[w] = p
	}

	gates := lc.Gates()
	garbledGates := make([]*GarbledGate, len(gates))
	for i, gate := range gates {
		gg, err := g.garbleGate(gate)
		if err != nil {
			return nil, err
		}
		garbledGates[i] = gg
	}

	inputKeys := make([]label.Label, len(inputIDs))
	for k, id := range inputIDs {
		inputKeys[k] = g.keys[id].Select(int(inputBits[k]))
	}

	return NewGarbledCircuit(inputIDs, lc.OutputIDs(), garbledGates, inputKeys)
}

// garbleGate garbles one gate: for every possible input-bit
// combination it looks up the corresponding output label, derives the
// AES-256 key from the input label(s) for that combination, and
// encrypts (output label || PadZeros). For a 1-input gate the single
// input label is doubled to form the key, as in decryptionKey; this adds
// no security and only keeps one AES code path for both arities. The
// resulting rows are then
// uniformly shuffled from the Garbler's rng, hiding the row-to-truth-
// table correspondence from the evaluator (this scheme has no
// point-and-permute: the evaluator must attempt every row).
func (g *Garbler) garbleGate(gate *LogicGate) (*GarbledGate, error) {
	inputs := gate.InputIDs()
	table := gate.Table()
	arity := len(inputs)
	numRows := 1 << arity

	rows := make([][]byte, numRows)
	plaintext := make([]byte, RowSize)
	ciphertext := make([]byte, RowSize)

	for inBits := 0; inBits < numRows; inBits++ {
		outBit := table[inBits]
		keyOut := g.keys[gate.ID()].Select(int(outBit))

		var keyIn []byte
		if arity == 1 {
			l := g.keys[inputs[0]].Select(inBits)
			keyIn = append(append([]byte(nil), l.Bytes()...), l.Bytes()...)
		} else {
			bitLeft := (inBits >> 1) & 1
			bitRight := inBits & 1
			left := g.keys[inputs[0]].Select(bitLeft)
			right := g.keys[inputs[1]].Select(bitRight)
			keyIn = append(append([]byte(nil), left.Bytes()...), right.Bytes()...)
		}

		block, err := aes.NewCipher(keyIn)
		if err != nil {
			return nil, fmt.Errorf("gate %d: %w", gate.ID(), err)
		}

		copy(plaintext, keyOut.Bytes())
		copy(plaintext[label.Size:], PadZeros)
		ecbEncrypt(block, ciphertext, plaintext)

		row := make([]byte, RowSize)
		copy(row, ciphertext)
		rows[inBits] = row
	}

	g.rng.Shuffle(len(rows), func(i, j int) {
		rows[i], rows[j] = rows[j], rows[i]
	})

	return NewGarbledGate(gate.ID(), inputs, rows)
}

// Decrypt looks up each (output id, output label) pair against this
// Garbler's keys table and reports the bit it represents.
func (g *Garbler) Decrypt(outputIDs []int, outputLabels []label.Label) ([]Bit, error) {
	if len(outputIDs) != len(outputLabels) {
		return nil, fmt.Errorf("%w: got %d output labels, want %d",
			ErrShapeMismatch, len(outputLabels), len(outputIDs))
	}
	bits := make([]Bit, len(outputIDs))
	for i, id := range outputIDs {
		if id < 0 || id >= len(g.keys) {
			return nil, fmt.Errorf("%w: output id %d has no keys (call Garble first)",
				ErrStructural, id)
		}
		pair := g.keys[id]
		switch {
		case outputLabels[i].Equal(pair.Zero):
			bits[i] = 0
		case outputLabels[i].Equal(pair.One):
			bits[i] = 1
		default:
			return nil, fmt.Errorf("%w: label for output %d matches neither wire label",
				ErrUnknownLabel, id)
		}
	}
	return bits, nil
}
