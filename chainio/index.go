/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

package chainio

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chainkit/chainkit/chain"
)

// OffsetRange is the byte range of one chain in its source file: [Start,
// End), beginning at the chain keyword and ending at (but not including)
// the next chain or EOF.
type OffsetRange struct {
	Start, End uint64
}

// BuildIndex scans the chain file at path and writes a plain-text sidecar
// file "<path>.ix" with one "id\tstart\tend\n" line per chain. Byte
// offsets refer to the decompressed content when path ends in .gz.
func BuildIndex(path string, opts ...IndexOption) error {
	cfg := indexConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	data, err := readAll(path)
	if err != nil {
		return err
	}

	out, err := os.Create(path + ".ix")
	if err != nil {
		return fmt.Errorf("%w: creating index for %s: %v", chain.ErrIO, path, err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)

	offset := 0
	for offset < len(data) {
		start := offset

		sep := bytes.IndexByte(data[offset:], '\n')
		if sep < 0 {
			return fmt.Errorf("chainio: header at byte %d has no newline terminator: %w", offset, chain.ErrMalformedHeader)
		}
		headerEnd := offset + sep

		id := lastField(data[offset:headerEnd])

		rest := data[headerEnd:]
		idx := bytes.IndexByte(rest, 'c')

		var end int
		if idx < 0 {
			end = len(data)
		} else {
			end = headerEnd + idx
		}

		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\n", id, start, end); err != nil {
			return fmt.Errorf("%w: writing index for %s: %v", chain.ErrIO, path, err)
		}
		if cfg.progress != nil {
			cfg.progress.Increment()
		}

		if idx < 0 {
			break
		}
		offset = end
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: flushing index for %s: %v", chain.ErrIO, path, err)
	}

	return nil
}

// ReadIndex parses the sidecar index at indexPath into a mapping of chain
// id to byte range. When ids is non-empty, only those ids are retained
// (bounding memory); an empty ids reads every entry.
func ReadIndex(indexPath string, ids []uint64) (map[uint64]OffsetRange, error) {
	f, err := os.Open(indexPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening index %s: %v", chain.ErrIO, indexPath, err)
	}
	defer f.Close()

	all := len(ids) == 0
	want := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	index := make(map[uint64]OffsetRange)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) != 3 {
			continue
		}

		id, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			continue
		}
		start, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}
		end, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			continue
		}

		if _, ok := want[id]; ok || all {
			index[id] = OffsetRange{Start: start, End: end}
		}
		if !all && len(index) == len(want) {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading index %s: %v", chain.ErrIO, indexPath, err)
	}

	return index, nil
}

// ExtractIndexed reads the chain file at path's sidecar index and, for
// each requested id, seeks directly to its byte range and parses it.
// Fails with ErrMissingChain the moment a requested id is absent from the
// index.
func ExtractIndexed(path string, ids []uint64) (*chain.ChainMap, error) {
	out := chain.NewChainMap()
	if len(ids) == 0 {
		return out, nil
	}

	index, err := ReadIndex(path+".ix", ids)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", chain.ErrIO, path, err)
	}
	defer f.Close()

	for _, id := range ids {
		rng, ok := index[id]
		if !ok {
			return nil, fmt.Errorf("chain %d: %w", id, chain.ErrMissingChain)
		}

		buf := make([]byte, rng.End-rng.Start)
		if _, err := f.ReadAt(buf, int64(rng.Start)); err != nil {
			return nil, fmt.Errorf("%w: reading chain %d at [%d,%d): %v", chain.ErrIO, id, rng.Start, rng.End, err)
		}

		sep := bytes.IndexByte(buf, '\n')
		if sep < 0 {
			return nil, fmt.Errorf("chain %d: %w", id, chain.ErrMalformedHeader)
		}

		c, err := chain.FromBytes(buf[:sep], buf[sep+1:])
		if err != nil {
			return nil, err
		}
		out.Insert(c.ID, c)
	}

	return out, nil
}
