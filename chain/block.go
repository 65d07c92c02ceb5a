/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

package chain

import (
	"fmt"
	"strconv"
)

// BlockKind distinguishes an aligned run from the unaligned gap that
// optionally follows it. The string form of a Block's ID is the signal
// consumers use to tell them apart (an aligned block's ID is a bare
// 1-based ordinal; a gap block's is "i_i+1"), but callers that already
// have a Block in hand should prefer Kind.
type BlockKind int

const (
	BlockAligned BlockKind = iota
	BlockGap
)

// Block is one materialized segment of a chain, with coordinates kept on
// the forward strand of both sides.
type Block struct {
	ID             string
	Kind           BlockKind
	RStart, REnd   uint64
	QStart, QEnd   uint64
}

// BlockIter materializes a chain's blocks one at a time on demand; it
// never allocates a block slice. It carries cursors (r, q, record index,
// half) and advances them with each call to Next, the state-machine
// design favored over an async block generator.
type BlockIter struct {
	chain      *Chain
	rCursor    uint64
	qCursor    uint64
	recordIdx  int
	onGapHalf  bool
	codirected bool
	done       bool
}

// NewBlockIter returns a BlockIter positioned before chain c's first
// block.
func NewBlockIter(c *Chain) *BlockIter {
	codirected := c.Query.Strand == '+'

	qCursor := c.Query.Start
	if !codirected {
		qCursor = c.Query.Size - c.Query.Start
	}

	return &BlockIter{
		chain:      c,
		rCursor:    c.Refs.Start,
		qCursor:    qCursor,
		codirected: codirected,
	}
}

// Next returns the next materialized block, or ok=false once the chain's
// alignment has been fully walked.
func (it *BlockIter) Next() (Block, bool) {
	if it.done || it.recordIdx >= len(it.chain.Alignment) {
		return Block{}, false
	}

	rec := it.chain.Alignment[it.recordIdx]

	if !it.onGapHalf {
		return it.nextAligned(rec), true
	}
	return it.nextGap(rec), true
}

func (it *BlockIter) nextAligned(rec AlignmentRecord) Block {
	size := uint64(rec.Size)

	block := Block{
		ID:     strconv.Itoa(it.recordIdx + 1),
		Kind:   BlockAligned,
		RStart: it.rCursor,
		REnd:   it.rCursor + size,
	}

	if it.codirected {
		block.QStart = it.qCursor
		block.QEnd = it.qCursor + size
		it.qCursor += size
	} else {
		block.QStart = saturatingSub(it.qCursor, size)
		block.QEnd = it.qCursor
		it.qCursor = block.QStart
	}

	it.rCursor += size

	switch {
	case rec.IsLast:
		it.recordIdx++
		it.done = true
	case rec.Dt == 0 && rec.Dq == 0:
		it.recordIdx++
	default:
		it.onGapHalf = true
	}

	return block
}

func (it *BlockIter) nextGap(rec AlignmentRecord) Block {
	dt := uint64(rec.Dt)
	dq := uint64(rec.Dq)

	block := Block{
		ID:     fmt.Sprintf("%d_%d", it.recordIdx+1, it.recordIdx+2),
		Kind:   BlockGap,
		RStart: it.rCursor,
		REnd:   it.rCursor + dt,
	}

	if it.codirected {
		block.QStart = it.qCursor
		block.QEnd = it.qCursor + dq
		it.qCursor += dq
	} else {
		block.QStart = saturatingSub(it.qCursor, dq)
		block.QEnd = it.qCursor
		it.qCursor = block.QStart
	}

	it.rCursor += dt
	it.onGapHalf = false
	it.recordIdx++

	return block
}

// saturatingSub returns a-b, or 0 when b > a. Every subtraction on the
// antiparallel path must saturate rather than wrap past zero.
func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
