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

func TestParseHeader(t *testing.T) {
	line := []byte("chain 1000 chr1 2000000 + 1000000 1001010 chrTest 1000000 + 5000000 5001000 1")

	score, refs, query, id, err := chain.ParseHeader(line)
	require.NoError(t, err)

	assert.Equal(t, uint64(1000), score)
	assert.Equal(t, uint32(1), id)

	assert.Equal(t, chain.ChainHead{Chr: "chr1", Size: 2000000, Strand: '+', Start: 1000000, End: 1001010}, refs)
	assert.Equal(t, chain.ChainHead{Chr: "chrTest", Size: 1000000, Strand: '+', Start: 5000000, End: 5001000}, query)
}

func TestParseHeaderReverseStrandForward(t *testing.T) {
	_, _, query, _, err := chain.ParseHeader([]byte("chain 1 chr1 100 + 0 100 chr2 1000 - 100 200 7"))
	require.NoError(t, err)

	assert.Equal(t, uint64(800), query.ForwardStart())
	assert.Equal(t, uint64(900), query.ForwardEnd())
}

func TestParseHeaderErrors(t *testing.T) {
	cases := map[string]string{
		"too few fields":  "chain 1 chr1 100 + 0 100 chr2 1000 - 100 200",
		"not chain":       "chian 1 chr1 100 + 0 100 chr2 1000 - 100 200 7",
		"bad score":       "chain x chr1 100 + 0 100 chr2 1000 - 100 200 7",
		"bad strand":      "chain 1 chr1 100 ? 0 100 chr2 1000 - 100 200 7",
		"bad ref start":   "chain 1 chr1 100 + x 100 chr2 1000 - 100 200 7",
		"bad id":          "chain 1 chr1 100 + 0 100 chr2 1000 - 100 200 x",
	}

	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, _, _, err := chain.ParseHeader([]byte(line))
			require.Error(t, err)
			assert.ErrorIs(t, err, chain.ErrMalformedHeader)
		})
	}
}
