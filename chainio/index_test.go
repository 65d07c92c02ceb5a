/* SPDX-License-Identifier: AGPL-3.0-or-later
 *
 * chainkit - A chain-file liftover library for Go.
 */

package chainio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainkit/chainkit/chain"
	"github.com/chainkit/chainkit/chainio"
)

func TestBuildAndReadIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.chain")
	require.NoError(t, os.WriteFile(path, []byte(threeChainFile), 0o644))

	require.NoError(t, chainio.BuildIndex(path))

	index, err := chainio.ReadIndex(path+".ix", nil)
	require.NoError(t, err)
	assert.Len(t, index, 3)

	_, ok := index[38]
	assert.True(t, ok)
}

func TestExtractIndexedMatchesFullParse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.chain")
	require.NoError(t, os.WriteFile(path, []byte(threeChainFile), 0o644))
	require.NoError(t, chainio.BuildIndex(path))

	full, err := chainio.FromFile(path)
	require.NoError(t, err)

	extracted, err := chainio.ExtractIndexed(path, []uint64{38})
	require.NoError(t, err)
	require.Equal(t, 1, extracted.Len())

	want, ok := full.Get(38)
	require.True(t, ok)
	got, ok := extracted.Get(38)
	require.True(t, ok)

	assert.Equal(t, want, got)
}

func TestExtractIndexedMissingChain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.chain")
	require.NoError(t, os.WriteFile(path, []byte(threeChainFile), 0o644))
	require.NoError(t, chainio.BuildIndex(path))

	_, err := chainio.ExtractIndexed(path, []uint64{7})
	require.Error(t, err)
	assert.ErrorIs(t, err, chain.ErrMissingChain)
}
