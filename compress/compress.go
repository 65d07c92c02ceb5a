/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

// Package compress picks a compression codec from a file name's extension
// on write, and sniffs the codec from a magic-number prefix on read, so
// callers never need to know in advance whether a chain file (or its
// binary dump) arrived plain, gzipped, or under one of the other formats
// genomics pipelines tend to produce.
package compress

import (
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	pgzip "github.com/klauspost/pgzip"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// codecWriteCloser adapts whichever codec-specific writer Compress picked
// to a plain io.WriteCloser.
type codecWriteCloser struct {
	io.WriteCloser
}

// Compress picks a codec from name's extension (.lz4, .xz, .zst; anything
// else, including .gz, falls back to gzip) and returns a writer that
// compresses everything written to it into w. Callers must Close the
// returned writer to flush trailing codec state.
func Compress(name string, w io.Writer) (io.WriteCloser, error) {
	switch {
	case strings.HasSuffix(name, ".lz4"):
		return &codecWriteCloser{WriteCloser: lz4.NewWriter(w)}, nil

	case strings.HasSuffix(name, ".xz"):
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, err
		}
		return &codecWriteCloser{WriteCloser: xw}, nil

	case strings.HasSuffix(name, ".zst"):
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, err
		}
		return &codecWriteCloser{WriteCloser: zw}, nil

	default:
		return &codecWriteCloser{WriteCloser: pgzip.NewWriter(w)}, nil
	}
}
