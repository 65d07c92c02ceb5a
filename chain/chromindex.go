/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

package chain

import (
	"github.com/Workiva/go-datastructures/augmentedtree"

	"github.com/chainkit/chainkit/names"
)

// chainSpan adapts a *Chain to augmentedtree.Interval over its reference
// span, so a ChromosomeIndex can query it by position.
type chainSpan struct {
	chain *Chain
}

func (s *chainSpan) LowAtDimension(uint64) int64  { return int64(s.chain.Refs.Start) }
func (s *chainSpan) HighAtDimension(uint64) int64 { return int64(s.chain.Refs.End) }

func (s *chainSpan) OverlapsAtDimension(augmentedtree.Interval, uint64) bool { return true }
func (s *chainSpan) ID() uint64                                             { return uint64(s.chain.ID) }

// point is a single-position augmentedtree.Interval used to query a
// ChromosomeIndex.
type point struct {
	at int64
}

func (p *point) LowAtDimension(uint64) int64  { return p.at }
func (p *point) HighAtDimension(uint64) int64 { return p.at }

func (p *point) OverlapsAtDimension(augmentedtree.Interval, uint64) bool { return true }
func (p *point) ID() uint64                                              { return uint64(p.at) }

// ChromosomeIndex is a single-position chain lookup layered on top of a
// ChainMap: chromosome name to an interval tree over chain reference
// spans. It is a convenience for "which chain covers this one base"
// queries; Project and Coverage never consult it, since they require a
// plain ordered sweep over a chosen chain's own blocks.
type ChromosomeIndex struct {
	trees map[string]augmentedtree.Tree
}

// BuildChromosomeIndex constructs a ChromosomeIndex from every chain in
// m, keyed by the canonicalized reference chromosome name.
func BuildChromosomeIndex(m *ChainMap) *ChromosomeIndex {
	idx := &ChromosomeIndex{trees: make(map[string]augmentedtree.Tree)}

	m.Each(func(_ uint32, c Chain) {
		key := names.Canonical(c.Refs.Chr)

		tree, ok := idx.trees[key]
		if !ok {
			tree = augmentedtree.New(1)
			idx.trees[key] = tree
		}

		cp := c
		tree.Add(&chainSpan{chain: &cp})
	})

	return idx
}

// Lookup returns the chain whose reference span covers chromosome/pos, if
// any.
func (idx *ChromosomeIndex) Lookup(chromosome string, pos uint64) (*Chain, bool) {
	tree, ok := idx.trees[names.Canonical(chromosome)]
	if !ok {
		return nil, false
	}

	hits := tree.Query(&point{at: int64(pos)})
	if len(hits) == 0 {
		return nil, false
	}

	span, ok := hits[0].(*chainSpan)
	if !ok {
		return nil, false
	}

	return span.chain, true
}
