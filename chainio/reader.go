/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

package chainio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/chainkit/chainkit/chain"
	"github.com/chainkit/chainkit/compress"
)

// FromFile reads the chain file at path (gzip-decompressed when path ends
// in .gz) and fully parses it into a ChainMap.
func FromFile(path string, opts ...ReadOption) (*chain.ChainMap, error) {
	data, err := readAll(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, opts...)
}

// Parse splits data into (header, body) pairs and parses them, optionally
// across several goroutines, into a ChainMap. The first malformed chain
// aborts the whole call.
func Parse(data []byte, opts ...ReadOption) (*chain.ChainMap, error) {
	cfg := defaultReadConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	pairs, err := split(data)
	if err != nil {
		return nil, err
	}

	out := chain.NewChainMap()
	if len(pairs) == 0 {
		return out, nil
	}

	workers := cfg.parallelism
	if workers > len(pairs) {
		workers = len(pairs)
	}
	if workers < 1 {
		workers = 1
	}

	shardSize := (len(pairs) + workers - 1) / workers
	shards := make([]map[uint32]chain.Chain, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			start := w * shardSize
			if start >= len(pairs) {
				return nil
			}
			end := start + shardSize
			if end > len(pairs) {
				end = len(pairs)
			}

			local := make(map[uint32]chain.Chain, end-start)
			for _, pair := range pairs[start:end] {
				c, err := chain.FromBytes(pair[0], pair[1])
				if err != nil {
					return err
				}
				local[c.ID] = c
				if cfg.progress != nil {
					cfg.progress.Increment()
				}
			}
			shards[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, shard := range shards {
		for id, c := range shard {
			out.Insert(id, c)
		}
	}

	return out, nil
}

// Extract scans path for headers only, parsing and inserting a chain into
// the returned ChainMap only when its trailing id token is in ids. It
// exits as soon as every requested id has been found.
func Extract(path string, ids []string) (*chain.ChainMap, error) {
	out := chain.NewChainMap()
	if len(ids) == 0 {
		return out, nil
	}

	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	data, err := readAll(path)
	if err != nil {
		return nil, err
	}

	for len(data) > 0 {
		sep := bytes.IndexByte(data, '\n')
		if sep < 0 {
			return nil, fmt.Errorf("chainio: header has no newline terminator: %w", chain.ErrMalformedHeader)
		}

		rest := data[sep:]
		idx := bytes.IndexByte(rest, 'c')

		header := data[:sep]
		idToken := lastField(header)

		var body []byte
		var next int
		if idx < 0 {
			body = data[sep+1:]
			next = len(data)
		} else {
			body = data[sep+1 : sep+idx-1]
			next = sep + idx
		}

		if _, ok := want[idToken]; ok {
			c, err := chain.FromBytes(header, body)
			if err != nil {
				return nil, err
			}
			out.Insert(c.ID, c)
			if out.Len() == len(want) {
				break
			}
		}

		if idx < 0 {
			break
		}
		data = data[next:]
	}

	return out, nil
}

// split locates the newline closing each header and the next occurrence
// of the 'c' that starts the following chain keyword, producing
// (header,body) byte-slice pairs into data without per-line allocation.
// Body slices omit the blank-line terminator.
func split(data []byte) ([][2][]byte, error) {
	var pairs [][2][]byte

	for len(data) > 0 {
		sep := bytes.IndexByte(data, '\n')
		if sep < 0 {
			return nil, fmt.Errorf("chainio: header has no newline terminator: %w", chain.ErrMalformedHeader)
		}

		rest := data[sep:]
		idx := bytes.IndexByte(rest, 'c')
		if idx < 0 {
			header := data[:sep]
			body := data[sep+1:]
			pairs = append(pairs, [2][]byte{header, body})
			break
		}

		header := data[:sep]
		body := data[sep+1 : sep+idx-1]
		pairs = append(pairs, [2][]byte{header, body})
		data = data[sep+idx:]
	}

	return pairs, nil
}

func lastField(header []byte) string {
	trimmed := bytes.TrimRight(header, "\r\n")
	idx := bytes.LastIndexByte(trimmed, ' ')
	if idx < 0 {
		return string(trimmed)
	}
	return string(trimmed[idx+1:])
}

func readAll(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", chain.ErrIO, path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		dr, err := compress.Decompress(f)
		if err != nil {
			return nil, fmt.Errorf("%w: decompressing %s: %v", chain.ErrIO, path, err)
		}
		defer dr.Close()
		r = dr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", chain.ErrIO, path, err)
	}

	return data, nil
}
