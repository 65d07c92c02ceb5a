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

type interval struct {
	name       string
	start, end uint64
	hasBounds  bool
}

func (i interval) Start() (uint64, bool)  { return i.start, i.hasBounds }
func (i interval) End() (uint64, bool)    { return i.end, i.hasBounds }
func (i interval) Name() (string, bool)   { return i.name, true }
func (i interval) Length() (uint64, bool) { return i.end - i.start, i.hasBounds }

func named(name string, start, end uint64) interval {
	return interval{name: name, start: start, end: end, hasBounds: true}
}

func TestIntersectRef(t *testing.T) {
	c, err := chain.FromBytes(
		[]byte("chain 1000 chr1 2000000 + 1000000 1001010 chrTest 1000000 + 5000000 5001000 1"),
		[]byte("500\t10\t0\n500\n"),
	)
	require.NoError(t, err)

	intervals := []chain.Interval{
		named("before", 0, 999000),
		named("overlap-left", 999999, 1000100),
		named("inside", 1000100, 1000200),
		named("overlap-right", 1001000, 1002000),
		named("after", 2000000, 2000100),
	}

	kept := chain.IntersectRef(&c, intervals)

	var names []string
	for _, iv := range kept {
		n, _ := iv.Name()
		names = append(names, n)
	}
	assert.ElementsMatch(t, []string{"overlap-left", "inside", "overlap-right"}, names)
}

func TestIntersectQueryForwardStrand(t *testing.T) {
	c, err := chain.FromBytes(
		[]byte("chain 1000 chr1 2000000 + 1000000 1001010 chrTest 10000000 - 5000000 5001000 1"),
		[]byte("500\t10\t0\n500\n"),
	)
	require.NoError(t, err)

	// Forward-strand query span is [4999000,5000000).
	intervals := []chain.Interval{
		named("inside", 4999500, 4999600),
		named("outside", 0, 100),
	}

	kept := chain.IntersectQuery(&c, intervals)
	require.Len(t, kept, 1)
	name, _ := kept[0].Name()
	assert.Equal(t, "inside", name)
}

func TestIntersectSkipsUnbounded(t *testing.T) {
	c, err := chain.FromBytes(
		[]byte("chain 1000 chr1 2000000 + 1000000 1001010 chrTest 1000000 + 5000000 5001000 1"),
		[]byte("500\t10\t0\n500\n"),
	)
	require.NoError(t, err)

	intervals := []chain.Interval{
		interval{name: "no-bounds", hasBounds: false},
	}

	assert.Empty(t, chain.IntersectRef(&c, intervals))
}
