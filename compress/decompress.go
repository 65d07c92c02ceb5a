/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

package compress

import (
	"bytes"
	"compress/bzip2"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	pgzip "github.com/klauspost/pgzip"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// codecReadCloser wraps a codec reader that may or may not itself need
// closing (bzip2.Reader, lz4.Reader and xz.Reader expose no Close method).
type codecReadCloser struct {
	io.Reader
	close func() error
}

func (r *codecReadCloser) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

var magicPrefixes = []struct {
	prefix []byte
}{
	{[]byte{0x42, 0x5A, 0x68}},             // BZIP2
	{[]byte{0x1F, 0x8B}},                   // GZIP
	{[]byte{0x04, 0x22, 0x4D, 0x18}},       // LZ4
	{[]byte{0xFD, 0x37, 0x7A, 0x58, 0x5A}}, // XZ
	{[]byte{0x78, 0x01}},                   // ZLIB, low compression
	{[]byte{0x78, 0x9C}},                   // ZLIB, default compression
	{[]byte{0x78, 0xDA}},                   // ZLIB, best compression
	{[]byte{0x28, 0xB5, 0x2F, 0xFD}},       // ZSTD
}

// Decompress peeks at the first bytes of r to identify a codec by magic
// number (bzip2, gzip, lz4, xz, zlib, zstd) and returns a reader that
// transparently decompresses r's full contents. Unrecognized input is
// passed through unchanged, so callers can always route a maybe-compressed
// file through Decompress rather than branching on it themselves.
func Decompress(r io.Reader) (io.ReadCloser, error) {
	peek := make([]byte, 512)
	n, err := io.ReadFull(r, peek)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	peek = peek[:n]

	full := io.MultiReader(bytes.NewReader(peek), r)

	switch {
	case bytes.HasPrefix(peek, magicPrefixes[0].prefix):
		return &codecReadCloser{Reader: bzip2.NewReader(full)}, nil

	case bytes.HasPrefix(peek, magicPrefixes[1].prefix):
		gz, err := pgzip.NewReader(full)
		if err != nil {
			return nil, err
		}
		return &codecReadCloser{Reader: gz, close: gz.Close}, nil

	case bytes.HasPrefix(peek, magicPrefixes[2].prefix):
		return &codecReadCloser{Reader: lz4.NewReader(full)}, nil

	case bytes.HasPrefix(peek, magicPrefixes[3].prefix):
		xzr, err := xz.NewReader(full)
		if err != nil {
			return nil, err
		}
		return &codecReadCloser{Reader: xzr}, nil

	case bytes.HasPrefix(peek, magicPrefixes[4].prefix),
		bytes.HasPrefix(peek, magicPrefixes[5].prefix),
		bytes.HasPrefix(peek, magicPrefixes[6].prefix):
		zr, err := zlib.NewReader(full)
		if err != nil {
			return nil, err
		}
		return &codecReadCloser{Reader: zr, close: zr.Close}, nil

	case bytes.HasPrefix(peek, magicPrefixes[7].prefix):
		zr, err := zstd.NewReader(full)
		if err != nil {
			return nil, err
		}
		return &codecReadCloser{Reader: zr, close: func() error { zr.Close(); return nil }}, nil

	default:
		return &codecReadCloser{Reader: full}, nil
	}
}
