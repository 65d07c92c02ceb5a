/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

package chain

import (
	"fmt"
	"sort"
)

// Interval is the capability set the projection engine requires of an
// input record. Implementations wrap a caller's own interval type; the
// engine never retains a value beyond the call.
type Interval interface {
	Start() (uint64, bool)
	End() (uint64, bool)
	Name() (string, bool)
	Length() (uint64, bool)
}

// Projected is one projection output. Chrom is always the chain's query
// chromosome; either endpoint may be nil when it could not be determined.
type Projected struct {
	Name  string
	Chrom string
	Start *uint64
	End   *uint64
}

// ProjectOptions carries the projection engine's tunables. AbsThreshold
// and RelThreshold govern the gap and chain-edge crop-vs-extrapolate
// decision; IgnoreUndefined discards projections for intervals fully
// enclosed in a single unaligned gap.
type ProjectOptions struct {
	AbsThreshold    uint64
	RelThreshold    float64
	IgnoreUndefined bool
}

type intervalView struct {
	name   string
	start  uint64
	end    uint64
	length uint64
}

// resolveIntervals validates and sorts the capability-set intervals into
// the form the sweep consumes: sorted by start asc, then end asc, stable
// with respect to equal (start,end) pairs.
func resolveIntervals(intervals []Interval) ([]intervalView, error) {
	if len(intervals) == 0 {
		return nil, ErrEmptyInput
	}

	views := make([]intervalView, len(intervals))
	for i, iv := range intervals {
		name, ok := iv.Name()
		if !ok {
			return nil, fmt.Errorf("interval %d: missing name: %w", i, ErrInputMissingField)
		}
		start, ok := iv.Start()
		if !ok {
			return nil, fmt.Errorf("interval %q: missing start: %w", name, ErrInputMissingField)
		}
		end, ok := iv.End()
		if !ok {
			return nil, fmt.Errorf("interval %q: missing end: %w", name, ErrInputMissingField)
		}
		length, ok := iv.Length()
		if !ok {
			return nil, fmt.Errorf("interval %q: missing length: %w", name, ErrInputMissingField)
		}
		views[i] = intervalView{name: name, start: start, end: end, length: length}
	}

	sort.SliceStable(views, func(i, j int) bool {
		if views[i].start != views[j].start {
			return views[i].start < views[j].start
		}
		return views[i].end < views[j].end
	})

	return views, nil
}

// gapHit records which gap block (by ID) last supplied an interval's
// start and end, so ignore_undefined can detect both endpoints landing in
// the very same gap.
type gapHit struct {
	startBlock string
	endBlock   string
	hasStart   bool
	hasEnd     bool
}

const (
	chainEdgeLeft  = "chain-edge-left"
	chainEdgeRight = "chain-edge-right"
)

// Project sweeps chain c's alignment blocks, materialized on the fly by a
// BlockIter, against the sorted interval batch, and returns each
// interval's projected query-side coordinates keyed by name.
func Project(c *Chain, intervals []Interval, opts ProjectOptions) (map[string]Projected, error) {
	views, err := resolveIntervals(intervals)
	if err != nil {
		return nil, err
	}

	codirected := c.Query.Strand == '+'
	querySize := c.Query.Size

	out := make(map[string]Projected, len(views))
	gaps := make(map[string]*gapHit, len(views))
	for _, v := range views {
		out[v.name] = Projected{Name: v.name, Chrom: c.Query.Chr}
	}

	var maxEnd uint64
	for _, v := range views {
		if v.end > maxEnd {
			maxEnd = v.end
		}
	}

	curr, currEnd := 0, uint64(0)

	it := NewBlockIter(c)
	for {
		block, ok := it.Next()
		if !ok {
			break
		}

		isFirstBlock := block.Kind == BlockAligned && block.RStart == c.Refs.Start
		isLastBlock := it.done && block.Kind == BlockAligned

		for j := curr; j < len(views); j++ {
			inter := views[j]
			if block.REnd < inter.start {
				break
			}

			if inter.end > currEnd {
				currEnd = inter.end
			}

			result := out[inter.name]
			gh := gaps[inter.name]
			if gh == nil {
				gh = &gapHit{}
				gaps[inter.name] = gh
			}

			switch block.Kind {
			case BlockAligned:
				projectAlignedEndpoints(block, inter, codirected, querySize, &result)
			case BlockGap:
				projectGapEndpoints(block, inter, codirected, querySize, opts, &result, gh)
			}

			if isFirstBlock {
				projectLeftChainEdge(block, c.Refs, inter, codirected, querySize, opts, &result, gh)
			}
			if isLastBlock {
				projectRightChainEdge(block, c.Refs, inter, codirected, querySize, opts, &result, gh)
			}

			out[inter.name] = result

			if block.RStart > inter.end && inter.end == currEnd {
				curr = j + 1
			}
		}

		if block.RStart > maxEnd || curr >= len(views) || isLastBlock {
			break
		}
	}

	if opts.IgnoreUndefined {
		for name, gh := range gaps {
			if gh.hasStart && gh.hasEnd && gh.startBlock == gh.endBlock {
				result := out[name]
				result.Start = nil
				result.End = nil
				out[name] = result
			}
		}
	}

	return out, nil
}

// Coverage runs the same block/interval sweep as Project, but sums the
// length of aligned-block overlap per interval instead of projecting
// endpoints. Gap blocks contribute nothing.
func Coverage(c *Chain, intervals []Interval) (map[string]uint64, error) {
	views, err := resolveIntervals(intervals)
	if err != nil {
		return nil, err
	}

	out := make(map[string]uint64, len(views))
	for _, v := range views {
		out[v.name] = 0
	}

	var maxEnd uint64
	for _, v := range views {
		if v.end > maxEnd {
			maxEnd = v.end
		}
	}

	curr, currEnd := 0, uint64(0)

	it := NewBlockIter(c)
	for {
		block, ok := it.Next()
		if !ok {
			break
		}
		isLastBlock := it.done && block.Kind == BlockAligned

		for j := curr; j < len(views); j++ {
			inter := views[j]
			if block.REnd < inter.start {
				break
			}

			if inter.end > currEnd {
				currEnd = inter.end
			}

			if block.Kind == BlockAligned {
				out[inter.name] += overlapLen(block.RStart, block.REnd, inter.start, inter.end)
			}

			if block.RStart > inter.end && inter.end == currEnd {
				curr = j + 1
			}
		}

		if block.RStart > maxEnd || curr >= len(views) || isLastBlock {
			break
		}
	}

	return out, nil
}

func overlapLen(aStart, aEnd, bStart, bEnd uint64) uint64 {
	start, end := aStart, aEnd
	if bStart > start {
		start = bStart
	}
	if bEnd < end {
		end = bEnd
	}
	if end <= start {
		return 0
	}
	return end - start
}

func clampQ(v, max uint64) uint64 {
	if v > max {
		return max
	}
	return v
}

// thresholdCrop decides crop (true) vs extrapolate (false) for an
// endpoint off bases from the edge it is measured against.
func thresholdCrop(off, length, absThreshold uint64, relThreshold float64) bool {
	rel := uint64(float64(length) * relThreshold)
	return off > absThreshold && off > rel
}

// projectAlignedEndpoints maps whichever of inter's endpoints fall inside
// an aligned block. The offset is always measured from the block's
// reference start; which output field and which query edge it resolves
// against flips with strand, per the chain's codirected/antiparallel
// convention.
func projectAlignedEndpoints(block Block, inter intervalView, codirected bool, querySize uint64, out *Projected) {
	if inter.start >= block.RStart && inter.start < block.REnd {
		off := inter.start - block.RStart
		if codirected {
			v := clampQ(block.QStart+off, querySize)
			out.Start = &v
		} else {
			v := clampQ(saturatingSub(block.QEnd, off), querySize)
			out.End = &v
		}
	}

	if inter.end > block.RStart && inter.end <= block.REnd {
		off := inter.end - block.RStart
		if codirected {
			v := clampQ(block.QStart+off, querySize)
			out.End = &v
		} else {
			v := clampQ(saturatingSub(block.QEnd, off), querySize)
			out.Start = &v
		}
	}
}

// projectGapEndpoints snaps whichever of inter's endpoints fall inside an
// unaligned gap block, per §4.8: the start endpoint is measured from the
// gap's right edge, the end endpoint from its left edge, and each either
// crops to the gap's corresponding query edge or extrapolates past it.
func projectGapEndpoints(block Block, inter intervalView, codirected bool, querySize uint64, opts ProjectOptions, out *Projected, gh *gapHit) {
	if inter.start >= block.RStart && inter.start < block.REnd {
		off := block.REnd - inter.start
		var v uint64
		if thresholdCrop(off, inter.length, opts.AbsThreshold, opts.RelThreshold) {
			v = block.QEnd
		} else {
			v = clampQ(saturatingSub(block.QEnd, off), querySize)
		}
		if codirected {
			out.Start = &v
		} else {
			out.End = &v
		}
		gh.hasStart = true
		gh.startBlock = block.ID
	}

	if inter.end > block.RStart && inter.end <= block.REnd {
		off := inter.end - block.RStart
		var v uint64
		if thresholdCrop(off, inter.length, opts.AbsThreshold, opts.RelThreshold) {
			v = block.QStart
		} else {
			v = clampQ(block.QStart+off, querySize)
		}
		if codirected {
			out.End = &v
		} else {
			out.Start = &v
		}
		gh.hasEnd = true
		gh.endBlock = block.ID
	}
}

// projectLeftChainEdge handles a start endpoint that falls before the
// chain's reference span, only reachable while the first block is
// current.
func projectLeftChainEdge(block Block, refs ChainHead, inter intervalView, codirected bool, querySize uint64, opts ProjectOptions, out *Projected, gh *gapHit) {
	if inter.start >= refs.Start {
		return
	}

	off := refs.Start - inter.start
	var v uint64
	if thresholdCrop(off, inter.length, opts.AbsThreshold, opts.RelThreshold) {
		v = block.QStart
	} else {
		v = clampQ(saturatingSub(block.QStart, off), querySize)
	}
	if codirected {
		out.Start = &v
	} else {
		out.End = &v
	}
	gh.hasStart = true
	gh.startBlock = chainEdgeLeft
}

// projectRightChainEdge handles an end endpoint that falls past the
// chain's reference span, only reachable while the last block is
// current.
func projectRightChainEdge(block Block, refs ChainHead, inter intervalView, codirected bool, querySize uint64, opts ProjectOptions, out *Projected, gh *gapHit) {
	if inter.end <= refs.End {
		return
	}

	off := inter.end - refs.End
	var v uint64
	if thresholdCrop(off, inter.length, opts.AbsThreshold, opts.RelThreshold) {
		v = block.QEnd
	} else {
		v = clampQ(block.QEnd+off, querySize)
	}
	if codirected {
		out.End = &v
	} else {
		out.Start = &v
	}
	gh.hasEnd = true
	gh.endBlock = chainEdgeRight
}
