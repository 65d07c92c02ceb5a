/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

package compress_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainkit/chainkit/compress"
)

const decompressFixture = "Hello, World!\n"

func TestDecompressAutoDetect(t *testing.T) {
	names := []string{"test.gz", "test.lz4", "test.xz", "test.zst"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer

			w, err := compress.Compress(name, &buf)
			require.NoError(t, err)
			_, err = w.Write([]byte(decompressFixture))
			require.NoError(t, err)
			require.NoError(t, w.Close())

			dr, err := compress.Decompress(&buf)
			require.NoError(t, err)
			t.Cleanup(func() { require.NoError(t, dr.Close()) })

			got, err := io.ReadAll(dr)
			require.NoError(t, err)
			assert.Equal(t, decompressFixture, string(got))
		})
	}
}

func TestDecompressZlib(t *testing.T) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write([]byte(decompressFixture))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	dr, err := compress.Decompress(&buf)
	require.NoError(t, err)
	defer dr.Close()

	got, err := io.ReadAll(dr)
	require.NoError(t, err)
	assert.Equal(t, decompressFixture, string(got))
}

func TestDecompressPassthrough(t *testing.T) {
	dr, err := compress.Decompress(bytes.NewReader([]byte(decompressFixture)))
	require.NoError(t, err)
	defer dr.Close()

	got, err := io.ReadAll(dr)
	require.NoError(t, err)
	assert.Equal(t, decompressFixture, string(got))
}
