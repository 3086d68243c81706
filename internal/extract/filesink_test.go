package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/actpak/internal/paktype"
)

func TestFileSinkCommit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink := NewFileSink(dir)

	w, err := sink.Writer("File #0.wav", paktype.AssetAudio)
	require.NoError(t, err)
	_, err = w.Write([]byte("RIFF"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "File #0.wav"))
	require.ErrorIs(t, err, os.ErrNotExist, "asset must not be visible before commit")

	require.NoError(t, w.Commit())
	got, err := os.ReadFile(filepath.Join(dir, "File #0.wav"))
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF"), got)

	leftovers, err := filepath.Glob(filepath.Join(dir, ".actpak-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileSinkOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "Stream #0.bin")
	require.NoError(t, os.WriteFile(path, []byte("stale contents"), 0o600))

	sink := NewFileSink(dir)
	w, err := sink.Writer("Stream #0.bin", paktype.AssetStreamed)
	require.NoError(t, err)
	_, err = w.Write([]byte("new"))
	require.NoError(t, err)
	require.NoError(t, w.Commit())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestFileSinkDiscard(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink := NewFileSink(dir)

	w, err := sink.Writer("File #1.png", paktype.AssetTexture)
	require.NoError(t, err)
	_, err = w.Write([]byte("partial"))
	require.NoError(t, err)
	require.NoError(t, w.Discard())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileSinkGroupByType(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "File")
	sink := NewFileSink(dir, WithGroupByType(true))
	require.NoError(t, sink.Prepare(paktype.KindFile.AssetKinds()))

	for _, name := range []string{"Audio", "Texture"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	assert.Equal(t, filepath.Join(dir, "Audio"), sink.Dir(paktype.AssetAudio))
	assert.Equal(t, filepath.Join(dir, "Texture"), sink.Dir(paktype.AssetTexture))

	w, err := sink.Writer("File #3.png", paktype.AssetTexture)
	require.NoError(t, err)
	_, err = w.Write([]byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	require.NoError(t, w.Commit())

	_, err = os.Stat(filepath.Join(dir, "Texture", "File #3.png"))
	require.NoError(t, err)
}

func TestFileSinkFlat(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "Stream")
	sink := NewFileSink(dir)
	require.NoError(t, sink.Prepare(paktype.KindStream.AssetKinds()))

	assert.Equal(t, dir, sink.Dir(paktype.AssetStreamed))
	_, err := os.Stat(filepath.Join(dir, "Streamed"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSinkPrepareFailure(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	sink := NewFileSink(filepath.Join(blocker, "out"))
	require.Error(t, sink.Prepare(nil))
}

func TestStatsAdd(t *testing.T) {
	t.Parallel()

	s := Stats{Extracted: 1, Skipped: 2, TotalBytes: 10}
	s.Add(Stats{Extracted: 3, TotalBytes: 5})
	assert.Equal(t, Stats{Extracted: 4, Skipped: 2, TotalBytes: 15}, s)
}
