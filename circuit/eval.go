//
// Copyright (c) 2019 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"crypto/aes"
	"fmt"

	"github.com/mrkgarbler/yaogc/label"
)

// PadZeros is the fixed zero marker appended to an output label before
// encryption. A row decrypts correctly iff its plaintext ends in
// PadZeros; there is no authentication beyond this, so a ciphertext
// that happens to decrypt to a trailing run of zeros under the wrong
// key is a false positive. Its probability is 2^-128, treated as zero.
var PadZeros = make([]byte, label.Size)

// decryptionKey builds the AES-256 key for one row: the input label(s)
// concatenated. For a 1-input gate the single label is doubled — this
// does not add security, it only makes the construction uniform with
// the 2-input case so a single code path handles both arities.
func decryptionKey(inputs []label.Label) []byte {
	if len(inputs) == 1 {
		return append(append([]byte(nil), inputs[0].Bytes()...), inputs[0].Bytes()...)
	}
	return append(append([]byte(nil), inputs[0].Bytes()...), inputs[1].Bytes()...)
}

// Evaluate implements Gate[label.Label]: it derives the decryption key
// from the input labels, attempts to AES-256-ECB decrypt every row (in
// stored order, without short-circuiting, so a passive observer cannot
// learn which row matched from timing), and returns the output label
// from the one row whose plaintext tail is PadZeros.
func (g *GarbledGate) Evaluate(inputs []label.Label) (label.Label, error) {
	if len(inputs) != 1 && len(inputs) != 2 {
		return label.Label{}, fmt.Errorf("%w: gate %d got %d input labels, want 1 or 2",
			ErrShapeMismatch, g.id, len(inputs))
	}
	if len(inputs) != len(g.inputs) {
		return label.Label{}, fmt.Errorf("%w: gate %d got %d input labels, want %d",
			ErrShapeMismatch, g.id, len(inputs), len(g.inputs))
	}

	key := decryptionKey(inputs)
	block, err := aes.NewCipher(key)
	if err != nil {
		return label.Label{}, fmt.Errorf("gate %d: %w", g.id, err)
	}

	var out label.Label
	found := false
	plaintext := make([]byte, RowSize)
	for _, row := range g.rows {
		ecbDecrypt(block, plaintext, row)
		if bytes.Equal(plaintext[label.Size:], PadZeros) {
			l, err := label.FromBytes(plaintext[:label.Size])
			if err != nil {
				return label.Label{}, err
			}
			out = l
			found = true
		}
	}
	if !found {
		return label.Label{}, fmt.Errorf("%w: gate %d: no row decrypted to a zero-padded label",
			ErrDecryptionFailed, g.id)
	}
	return out, nil
}
