/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

package chainio_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainkit/chainkit/chainio"
)

func TestWriteReadBinaryRoundTrip(t *testing.T) {
	m, err := chainio.Parse([]byte(threeChainFile))
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "dump.bin")

	require.NoError(t, chainio.WriteBinary(path, m))

	got, err := chainio.ReadBinary(path)
	require.NoError(t, err)
	assert.Equal(t, m.Len(), got.Len())

	for _, id := range m.Keys() {
		want, _ := m.Get(id)
		gotChain, ok := got.Get(id)
		require.True(t, ok)
		assert.Equal(t, want, gotChain)
	}
}

func TestWriteReadBinaryRoundTripGzip(t *testing.T) {
	m, err := chainio.Parse([]byte(threeChainFile))
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "dump.bin.gz")

	require.NoError(t, chainio.WriteBinary(path, m))

	got, err := chainio.ReadBinary(path)
	require.NoError(t, err)
	assert.Equal(t, m.Len(), got.Len())
}

func TestWriteReadChainBinary(t *testing.T) {
	m, err := chainio.Parse([]byte(threeChainFile))
	require.NoError(t, err)

	c, ok := m.Get(38)
	require.True(t, ok)

	dir := t.TempDir()
	path := filepath.Join(dir, "chain38.bin")

	require.NoError(t, chainio.WriteChainBinary(path, c))

	got, err := chainio.ReadChainBinary(path, 38)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	_, err = chainio.ReadChainBinary(path, 999)
	require.Error(t, err)
}
