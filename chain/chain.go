/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

package chain

import (
	"fmt"
	"strings"
)

// ChainHead describes one side (reference or query) of a chain header.
//
// For the query side, when Strand is '-', Start/End are given on the
// reverse strand; ForwardStart/ForwardEnd convert them to the forward
// strand. The reference side is conventionally '+' and callers may assume
// Start/End are already forward-strand.
type ChainHead struct {
	Chr    string
	Size   uint64
	Strand byte
	Start  uint64
	End    uint64
}

// ForwardStart returns the forward-strand start coordinate, converting
// from the reverse strand when Strand is '-'.
func (h ChainHead) ForwardStart() uint64 {
	if h.Strand == '-' {
		return h.Size - h.End
	}
	return h.Start
}

// ForwardEnd returns the forward-strand end coordinate, converting from
// the reverse strand when Strand is '-'.
func (h ChainHead) ForwardEnd() uint64 {
	if h.Strand == '-' {
		return h.Size - h.Start
	}
	return h.End
}

func (h ChainHead) String() string {
	return fmt.Sprintf("%s %d %c %d %d", h.Chr, h.Size, h.Strand, h.Start, h.End)
}

// AlignmentRecord is one (size, dt, dq) triple from a chain body, or the
// terminal (size)-only record that closes it.
type AlignmentRecord struct {
	Size   uint32
	Dt     uint32
	Dq     uint32
	IsLast bool
}

// AlignmentTriple is the tabular view of a non-terminal AlignmentRecord.
type AlignmentTriple struct {
	Size, Dt, Dq uint32
}

// Chain is the in-memory representation of one chain: a header plus its
// ordered alignment records. Chains are immutable once built; all render
// views below are pure derivations.
type Chain struct {
	Score     uint64
	Refs      ChainHead
	Query     ChainHead
	Alignment []AlignmentRecord
	ID        uint32
}

// FromBytes parses a chain from its header line and body, as produced by a
// streaming splitter. header must not include its trailing newline; body
// is everything after it up to (but not including) the blank-line
// terminator.
func FromBytes(header, body []byte) (Chain, error) {
	score, refs, query, id, err := ParseHeader(header)
	if err != nil {
		return Chain{}, err
	}

	records, err := ParseAlignment(body)
	if err != nil {
		return Chain{}, fmt.Errorf("chain %d: %w", id, err)
	}

	return Chain{Score: score, Refs: refs, Query: query, Alignment: records, ID: id}, nil
}

// HeaderString renders the chain line exactly as §4.2 describes it.
func (c Chain) HeaderString() string {
	return fmt.Sprintf("chain %d %s %d %c %d %d %s %d %c %d %d %d",
		c.Score,
		c.Refs.Chr, c.Refs.Size, c.Refs.Strand, c.Refs.Start, c.Refs.End,
		c.Query.Chr, c.Query.Size, c.Query.Strand, c.Query.Start, c.Query.End,
		c.ID)
}

// HeaderFields is the tabular view of the header line: one string token
// per space-separated field, "chain" included.
func (c Chain) HeaderFields() []string {
	return strings.Fields(c.HeaderString())
}

// AlignmentString renders the chain body: zero or more "size\tdt\tdq\n"
// lines followed by the terminal "size\n" line.
func (c Chain) AlignmentString() string {
	var b strings.Builder
	for _, r := range c.Alignment {
		if r.IsLast {
			fmt.Fprintf(&b, "%d\n", r.Size)
		} else {
			fmt.Fprintf(&b, "%d\t%d\t%d\n", r.Size, r.Dt, r.Dq)
		}
	}
	return b.String()
}

// AlignmentTriples is the tabular view of the non-terminal alignment
// records.
func (c Chain) AlignmentTriples() []AlignmentTriple {
	out := make([]AlignmentTriple, 0, len(c.Alignment))
	for _, r := range c.Alignment {
		if r.IsLast {
			continue
		}
		out = append(out, AlignmentTriple{Size: r.Size, Dt: r.Dt, Dq: r.Dq})
	}
	return out
}

// String renders the whole chain: header, alignment body, and the
// blank-line terminator. Parsing String's output back through FromBytes
// (after splitting on the blank line) reproduces an equal Chain.
func (c Chain) String() string {
	return c.HeaderString() + "\n" + c.AlignmentString() + "\n"
}

// Bytes is String as a byte slice.
func (c Chain) Bytes() []byte {
	return []byte(c.String())
}
