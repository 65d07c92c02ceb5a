/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

package chainio

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chainkit/chainkit/chain"
	"github.com/chainkit/chainkit/compress"
)

// gobChain mirrors chain.Chain's exported fields. Keeping the wire shape
// local avoids coupling the binary dump's shape to chain.Chain's field
// order.
type gobChain struct {
	Score     uint64
	Refs      chain.ChainHead
	Query     chain.ChainHead
	Alignment []chain.AlignmentRecord
	ID        uint32
}

// WriteBinary writes the whole contents of m as an opaque binary dump to
// path. A path ending in .gz is gzip-compressed on write. The binary form
// is an implementation detail, not a stable wire format.
func WriteBinary(path string, m *chain.ChainMap) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", chain.ErrIO, path, err)
	}
	defer f.Close()

	var w io.WriteCloser = nopWriteCloser{f}
	if strings.HasSuffix(path, ".gz") {
		cw, err := compress.Compress(path, f)
		if err != nil {
			return fmt.Errorf("%w: compressing %s: %v", chain.ErrSerialization, path, err)
		}
		w = cw
	}
	defer w.Close()

	entries := make(map[uint32]gobChain, m.Len())
	m.Each(func(id uint32, c chain.Chain) {
		entries[id] = gobChain{Score: c.Score, Refs: c.Refs, Query: c.Query, Alignment: c.Alignment, ID: c.ID}
	})

	if err := gob.NewEncoder(w).Encode(entries); err != nil {
		return fmt.Errorf("%w: encoding %s: %v", chain.ErrSerialization, path, err)
	}

	return nil
}

// ReadBinary reads back a ChainMap written by WriteBinary.
func ReadBinary(path string) (*chain.ChainMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", chain.ErrIO, path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		dr, err := compress.Decompress(f)
		if err != nil {
			return nil, fmt.Errorf("%w: decompressing %s: %v", chain.ErrSerialization, path, err)
		}
		defer dr.Close()
		r = dr
	}

	var entries map[uint32]gobChain
	if err := gob.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", chain.ErrSerialization, path, err)
	}

	out := chain.NewChainMap()
	for id, gc := range entries {
		out.Insert(id, chain.Chain{Score: gc.Score, Refs: gc.Refs, Query: gc.Query, Alignment: gc.Alignment, ID: gc.ID})
	}

	return out, nil
}

// WriteChainBinary writes a single chain as a one-entry binary dump.
func WriteChainBinary(path string, c chain.Chain) error {
	return WriteBinary(path, chain.NewChainMap().Insert(c.ID, c))
}

// ReadChainBinary reads back a single chain written by WriteChainBinary
// (or extracted from a larger dump written by WriteBinary).
func ReadChainBinary(path string, id uint32) (chain.Chain, error) {
	m, err := ReadBinary(path)
	if err != nil {
		return chain.Chain{}, err
	}

	c, ok := m.Get(id)
	if !ok {
		return chain.Chain{}, fmt.Errorf("chain %d: %w", id, chain.ErrMissingChain)
	}

	return c, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
