//
// Copyright (c) 2019 Markku Rossi
//
// All rights reserved.
//

package label

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBytesLength(t *testing.T) {
	_, err := FromBytes(make([]byte, 15))
	require.Error(t, err)

	_, err = FromBytes(make([]byte, Size))
	require.NoError(t, err)
}

func TestHexRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	l, err := Random(rng)
	require.NoError(t, err)

	back, err := FromHex(l.String())
	require.NoError(t, err)
	assert.Equal(t, l, back)
}

func TestPairDistinct(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p, err := NewPair(rng)
	require.NoError(t, err)
	assert.False(t, p.Zero.Equal(p.One))
}

func TestSelect(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	p, err := NewPair(rng)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(p.Select(0).Bytes(), p.Zero.Bytes()))
	assert.True(t, bytes.Equal(p.Select(1).Bytes(), p.One.Bytes()))
}

func TestRandomDeterministicUnderSeed(t *testing.T) {
	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))

	la, err := Random(a)
	require.NoError(t, err)
	lb, err := Random(b)
	require.NoError(t, err)

	assert.Equal(t, la, lb)
}
