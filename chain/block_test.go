/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainkit/chainkit/chain"
)

func codirectedChain(t *testing.T) chain.Chain {
	t.Helper()
	c, err := chain.FromBytes(
		[]byte("chain 1000 chr1 2000000 + 1000000 1001010 chrTest 1000000 + 5000000 5001000 1"),
		[]byte("500\t10\t0\n500\n"),
	)
	require.NoError(t, err)
	return c
}

func antiparallelChain(t *testing.T) chain.Chain {
	t.Helper()
	c, err := chain.FromBytes(
		[]byte("chain 1000 chr1 2000000 + 1000000 1001010 chrTest 10000000 - 5000000 5001000 1"),
		[]byte("500\t10\t0\n500\n"),
	)
	require.NoError(t, err)
	return c
}

func TestBlockIterCodirected(t *testing.T) {
	c := codirectedChain(t)
	it := chain.NewBlockIter(&c)

	b1, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, chain.Block{ID: "1", Kind: chain.BlockAligned, RStart: 1000000, REnd: 1000500, QStart: 5000000, QEnd: 5000500}, b1)

	b2, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, chain.Block{ID: "1_2", Kind: chain.BlockGap, RStart: 1000500, REnd: 1000510, QStart: 5000500, QEnd: 5000500}, b2)

	b3, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, chain.Block{ID: "2", Kind: chain.BlockAligned, RStart: 1000510, REnd: 1001010, QStart: 5000500, QEnd: 5001000}, b3)

	_, ok = it.Next()
	assert.False(t, ok)
}

func TestBlockIterAntiparallel(t *testing.T) {
	// Query strand '-': the header's Start/End (5000000,5001000) are given
	// on the reverse strand, so blocks materialize from the cursor
	// Size-Start=5000000 downward as ref bases are consumed.
	c := antiparallelChain(t)
	it := chain.NewBlockIter(&c)

	b1, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, chain.BlockAligned, b1.Kind)
	assert.Equal(t, uint64(1000000), b1.RStart)
	assert.Equal(t, uint64(1000500), b1.REnd)
	assert.Equal(t, uint64(4999500), b1.QStart)
	assert.Equal(t, uint64(5000000), b1.QEnd)

	b2, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, chain.BlockGap, b2.Kind)
	assert.Equal(t, uint64(4999500), b2.QStart)
	assert.Equal(t, uint64(4999500), b2.QEnd)

	b3, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, chain.BlockAligned, b3.Kind)
	assert.Equal(t, uint64(4999000), b3.QStart)
	assert.Equal(t, uint64(4999500), b3.QEnd)

	_, ok = it.Next()
	assert.False(t, ok)

	assert.Equal(t, uint64(4999000), c.Query.ForwardStart())
	assert.Equal(t, uint64(5000000), c.Query.ForwardEnd())
}
