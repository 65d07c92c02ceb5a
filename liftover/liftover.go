/* SPDX-License-Identifier: MPL-2.0
 *
 * chainkit - A chain-file liftover library for Go.
 */

// Package liftover provides a single-position convenience layer over a
// chain.ChainMap: given a chromosome and a reference-genome position, find
// the chain that covers it and project that position through the chain's
// alignment blocks into the query genome. Batch work over many positions
// or whole intervals belongs in chain.Project directly; this package
// exists for the common "where does this one base land" query.
package liftover

import (
	"fmt"

	"github.com/chainkit/chainkit/chain"
)

// point is the minimal chain.Interval implementation for a single
// reference-genome base.
type point struct {
	pos uint64
}

func (p point) Start() (uint64, bool)  { return p.pos, true }
func (p point) End() (uint64, bool)    { return p.pos + 1, true }
func (p point) Name() (string, bool)   { return "point", true }
func (p point) Length() (uint64, bool) { return 1, true }

// Lifter pairs a chromosome-indexed chain lookup with the projection
// options to apply on every query, so repeated single-base lookups don't
// re-walk the whole chain collection to find which chain covers them.
type Lifter struct {
	index *chain.ChromosomeIndex
	opts  chain.ProjectOptions
}

// NewLifter builds a Lifter over m. Building the chromosome index is the
// expensive part of a Lift call; construct one Lifter and reuse it across
// many positions against the same ChainMap.
func NewLifter(m *chain.ChainMap, opts chain.ProjectOptions) *Lifter {
	return &Lifter{
		index: chain.BuildChromosomeIndex(m),
		opts:  opts,
	}
}

// Lift returns the query-genome chromosome and position that chromosome/
// position maps to under whichever chain's reference span covers it.
func (l *Lifter) Lift(chromosome string, position uint64) (string, uint64, error) {
	c, ok := l.index.Lookup(chromosome, position)
	if !ok {
		return "", 0, fmt.Errorf("%s:%d: %w", chromosome, position, chain.ErrMissingChain)
	}

	projected, err := chain.Project(c, []chain.Interval{point{pos: position}}, l.opts)
	if err != nil {
		return "", 0, fmt.Errorf("projecting %s:%d through chain %d: %w", chromosome, position, c.ID, err)
	}

	result, ok := projected["point"]
	if !ok || result.Start == nil {
		return "", 0, fmt.Errorf("%s:%d: position falls outside chain %d's aligned coverage: %w", chromosome, position, c.ID, chain.ErrMissingChain)
	}

	return result.Chrom, *result.Start, nil
}

// Lift is a convenience for a single one-off query against m. Building a
// Lifter amortizes the chromosome index across repeated calls; prefer it
// when lifting more than a handful of positions.
func Lift(m *chain.ChainMap, opts chain.ProjectOptions, chromosome string, position uint64) (string, uint64, error) {
	return NewLifter(m, opts).Lift(chromosome, position)
}
