/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

package chainio

import (
	"runtime"

	"github.com/cheggaaa/pb/v3"
)

type readConfig struct {
	parallelism int
	progress    *pb.ProgressBar
}

func defaultReadConfig() readConfig {
	return readConfig{parallelism: runtime.NumCPU()}
}

// ReadOption tunes FromFile/Parse's ambient behavior (parallelism,
// progress reporting). It never affects parsing semantics.
type ReadOption func(*readConfig)

// WithParallelism caps the number of parse workers. The default is
// runtime.NumCPU().
func WithParallelism(n int) ReadOption {
	return func(c *readConfig) { c.parallelism = n }
}

// WithReadProgress reports one increment per parsed chain on bar. Silent
// by default; the library never logs on its own.
func WithReadProgress(bar *pb.ProgressBar) ReadOption {
	return func(c *readConfig) { c.progress = bar }
}

type indexConfig struct {
	progress *pb.ProgressBar
}

// IndexOption tunes BuildIndex's ambient behavior.
type IndexOption func(*indexConfig)

// WithIndexProgress reports one increment per indexed chain on bar.
func WithIndexProgress(bar *pb.ProgressBar) IndexOption {
	return func(c *indexConfig) { c.progress = bar }
}
