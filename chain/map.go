/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

package chain

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ChainMap is an owning, id-keyed collection of chains. Keys are unique;
// iteration order is unspecified.
type ChainMap struct {
	entries map[uint32]Chain
}

// NewChainMap returns an empty ChainMap.
func NewChainMap() *ChainMap {
	return &ChainMap{entries: make(map[uint32]Chain)}
}

// Get returns the chain for id, if present.
func (m *ChainMap) Get(id uint32) (Chain, bool) {
	c, ok := m.entries[id]
	return c, ok
}

// GetMut calls fn with a pointer to the chain for id and writes the
// (possibly mutated) result back. It reports whether id was present.
func (m *ChainMap) GetMut(id uint32, fn func(c *Chain)) bool {
	c, ok := m.entries[id]
	if !ok {
		return false
	}
	fn(&c)
	m.entries[id] = c
	return true
}

// Insert adds or replaces the chain at id.
func (m *ChainMap) Insert(id uint32, c Chain) *ChainMap {
	m.entries[id] = c
	return m
}

// Remove deletes the chain at id, if any.
func (m *ChainMap) Remove(id uint32) *ChainMap {
	delete(m.entries, id)
	return m
}

// Len returns the number of chains in the map.
func (m *ChainMap) Len() int {
	return len(m.entries)
}

// Keys returns every chain id in unspecified order.
func (m *ChainMap) Keys() []uint32 {
	keys := make([]uint32, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys
}

// Values returns a copy of every chain in unspecified order.
func (m *ChainMap) Values() []Chain {
	values := make([]Chain, 0, len(m.entries))
	for _, v := range m.entries {
		values = append(values, v)
	}
	return values
}

// Each calls fn once per entry, in unspecified order.
func (m *ChainMap) Each(fn func(id uint32, c Chain)) {
	for k, v := range m.entries {
		fn(k, v)
	}
}

// EachMut calls fn once per entry with a pointer to a working copy, then
// writes the result back into the map.
func (m *ChainMap) EachMut(fn func(id uint32, c *Chain)) {
	for k, v := range m.entries {
		fn(k, &v)
		m.entries[k] = v
	}
}

// Filter returns a new ChainMap holding only the chains for which pred
// returns true. Evaluation is parallelized across entries; pred must not
// mutate its argument.
func (m *ChainMap) Filter(pred func(Chain) bool) *ChainMap {
	return m.filterParallel(pred)
}

// FilterByScore keeps chains with Score >= score.
func (m *ChainMap) FilterByScore(score uint64) *ChainMap {
	return m.filterParallel(func(c Chain) bool { return c.Score >= score })
}

// FilterRefBySize keeps chains whose reference Size >= size.
func (m *ChainMap) FilterRefBySize(size uint64) *ChainMap {
	return m.filterParallel(func(c Chain) bool { return c.Refs.Size >= size })
}

// FilterQueryBySize keeps chains whose query Size >= size.
func (m *ChainMap) FilterQueryBySize(size uint64) *ChainMap {
	return m.filterParallel(func(c Chain) bool { return c.Query.Size >= size })
}

// FilterID keeps chains whose id appears in ids.
func (m *ChainMap) FilterID(ids []uint32) *ChainMap {
	set := make(map[uint32]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return m.filterParallel(func(c Chain) bool {
		_, ok := set[c.ID]
		return ok
	})
}

type chainEntry struct {
	id uint32
	c  Chain
}

// filterParallel shards entries across a worker pool, each producing an
// independent partial result merged once every worker has finished. The
// reduction is associative because ids are unique, so merge order never
// matters.
func (m *ChainMap) filterParallel(pred func(Chain) bool) *ChainMap {
	all := make([]chainEntry, 0, len(m.entries))
	for id, c := range m.entries {
		all = append(all, chainEntry{id: id, c: c})
	}

	out := NewChainMap()
	if len(all) == 0 {
		return out
	}

	workers := runtime.NumCPU()
	if workers > len(all) {
		workers = len(all)
	}
	if workers < 1 {
		workers = 1
	}

	shardSize := (len(all) + workers - 1) / workers
	shards := make([][]chainEntry, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			start := w * shardSize
			if start >= len(all) {
				return nil
			}
			end := start + shardSize
			if end > len(all) {
				end = len(all)
			}

			var local []chainEntry
			for _, entry := range all[start:end] {
				if pred(entry.c) {
					local = append(local, entry)
				}
			}
			shards[w] = local
			return nil
		})
	}
	_ = g.Wait()

	for _, shard := range shards {
		for _, entry := range shard {
			out.entries[entry.id] = entry.c
		}
	}
	return out
}
