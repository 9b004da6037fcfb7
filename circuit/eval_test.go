//
// Copyright (c) 2019 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"crypto/aes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrkgarbler/yaogc/label"
)

// TestGarbledGateEvaluateExactlyOneRowMatches checks invariant 4: for a
// correctly garbled gate evaluated with one of the two labels the
// garbler actually issued for each input wire, exactly one row
// decrypts to a zero-padded plaintext, and it names the correct output
// bit.
func TestGarbledGateEvaluateExactlyOneRowMatches(t *testing.T) {
	and, err := NewLogicGate(2, []int{0, 1}, []Bit{0, 0, 0, 1})
	require.NoError(t, err)
	lc, err := NewLogicCircuit([]int{0, 1}, []int{2}, []*LogicGate{and})
	require.NoError(t, err)

	g := NewGarbler(7)
	gc, err := g.Garble(lc, []Bit{1, 1})
	require.NoError(t, err)

	gg := gc.Gates()[0]

	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			out, err := gg.Evaluate([]label.Label{
				g.keys[0].Select(a),
				g.keys[1].Select(b),
			})
			require.NoError(t, err)

			want := g.keys[2].Select(int(and.table[2*a+b]))
			assert.True(t, out.Equal(want))

			block, err := aes.NewCipher(decryptionKey([]label.Label{
				g.keys[0].Select(a),
				g.keys[1].Select(b),
			}))
			require.NoError(t, err)
			matches := 0
			plaintext := make([]byte, RowSize)
			for _, row := range gg.Rows() {
				ecbDecrypt(block, plaintext, row)
				if bytes.Equal(plaintext[label.Size:], PadZeros) {
					matches++
				}
			}
			assert.Equal(t, 1, matches)
		}
	}
}

// TestGarbledGateEvaluateRejectsWrongArity checks that supplying the
// wrong number of input labels is rejected before any decryption is
// attempted.
func TestGarbledGateEvaluateRejectsWrongArity(t *testing.T) {
	and, err := NewLogicGate(2, []int{0, 1}, []Bit{0, 0, 0, 1})
	require.NoError(t, err)
	lc, err := NewLogicCircuit([]int{0, 1}, []int{2}, []*LogicGate{and})
	require.NoError(t, err)

	g := NewGarbler(7)
	gc, err := g.Garble(lc, []Bit{0, 0})
	require.NoError(t, err)

	gg := gc.Gates()[0]
	_, err = gg.Evaluate([]label.Label{g.keys[0].Select(0)})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

// TestGarbledGateEvaluateFailsOnForeignLabels checks that decrypting
// with labels the gate was not garbled under fails with
// ErrDecryptionFailed rather than silently returning a wrong label.
func TestGarbledGateEvaluateFailsOnForeignLabels(t *testing.T) {
	and, err := NewLogicGate(2, []int{0, 1}, []Bit{0, 0, 0, 1})
	require.NoError(t, err)
	lc, err := NewLogicCircuit([]int{0, 1}, []int{2}, []*LogicGate{and})
	require.NoError(t, err)

	g := NewGarbler(7)
	gc, err := g.Garble(lc, []Bit{0, 0})
	require.NoError(t, err)

	other := NewGarbler(8)
	_, err = other.Garble(lc, []Bit{0, 0})
	require.NoError(t, err)

	gg := gc.Gates()[0]
	_, err = gg.Evaluate([]label.Label{
		other.keys[0].Select(0),
		other.keys[1].Select(0),
	})
	require.ErrorIs(t, err, ErrDecryptionFailed)
}
