/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chainkit/chainkit/chain"
)

func TestChromosomeIndexLookup(t *testing.T) {
	m := chain.NewChainMap()
	m.Insert(1, chain.Chain{ID: 1, Refs: chain.ChainHead{Chr: "chr1", Start: 1000, End: 2000}})
	m.Insert(2, chain.Chain{ID: 2, Refs: chain.ChainHead{Chr: "chr2", Start: 500, End: 600}})

	idx := chain.BuildChromosomeIndex(m)

	c, ok := idx.Lookup("1", 1500)
	assert.True(t, ok)
	assert.Equal(t, uint32(1), c.ID)

	c, ok = idx.Lookup("chr2", 550)
	assert.True(t, ok)
	assert.Equal(t, uint32(2), c.ID)

	_, ok = idx.Lookup("1", 50)
	assert.False(t, ok)

	_, ok = idx.Lookup("9", 0)
	assert.False(t, ok)
}
