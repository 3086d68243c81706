package container

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/actpak/internal/paktype"
	"github.com/meigma/actpak/internal/testutil"
)

func streamHeader() []byte {
	sig := paktype.KindStream.Signature()
	return append(sig[:], make([]byte, 48)...)
}

func fileHeader() []byte {
	sig := paktype.KindFile.Signature()
	return append(sig[:], make([]byte, 48)...)
}

func names(containers []paktype.Container) []string {
	out := make([]string, 0, len(containers))
	for _, c := range containers {
		out = append(out, c.Name)
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "b.actstr", streamHeader())
	testutil.WriteFile(t, dir, "a.actstr", streamHeader())
	testutil.WriteFile(t, dir, "wrong.actstr", fileHeader())
	testutil.WriteFile(t, dir, "short.actstr", []byte("ACTKOOL"))
	testutil.WriteFile(t, dir, "empty.actstr", nil)
	testutil.WriteFile(t, dir, "data.actbin", fileHeader())
	testutil.WriteFile(t, dir, "readme.txt", streamHeader())
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.actstr"), 0o750))

	r := NewRegistry()
	require.NoError(t, r.Discover(dir, paktype.KindStream))
	require.NoError(t, r.Discover(dir, paktype.KindFile))

	assert.Equal(t, []string{"a.actstr", "b.actstr"}, names(r.Containers(paktype.KindStream)))
	assert.Equal(t, []string{"data.actbin"}, names(r.Containers(paktype.KindFile)))

	c := r.Containers(paktype.KindStream)[0]
	assert.True(t, filepath.IsAbs(c.Path))
	assert.Equal(t, int64(64), c.Size)
	assert.Equal(t, paktype.KindStream, c.Kind)
}

func TestDiscoverExtensionIgnoresCase(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "UPPER.ACTSTR", streamHeader())

	r := NewRegistry()
	require.NoError(t, r.Discover(dir, paktype.KindStream))
	assert.Equal(t, 1, r.Len(paktype.KindStream))
}

func TestDiscoverDeduplicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "a.actstr", streamHeader())
	testutil.WriteFile(t, dir, "b.actstr", streamHeader())

	r := NewRegistry()
	require.NoError(t, r.Discover(dir, paktype.KindStream))
	require.NoError(t, r.Discover(dir, paktype.KindStream))

	assert.Equal(t, []string{"a.actstr", "b.actstr"}, names(r.Containers(paktype.KindStream)))
}

func TestDiscoverDeduplicatesIgnoringCase(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "a.actstr", streamHeader())

	r := NewRegistry()
	require.NoError(t, r.addIfValid(path, paktype.KindStream))
	require.NoError(t, r.addIfValid(filepath.Join(filepath.Dir(path), "A.ACTSTR"), paktype.KindStream))

	assert.Equal(t, 1, r.Len(paktype.KindStream))
}

func TestDiscoverIdempotentAfterClear(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "a.actstr", streamHeader())
	testutil.WriteFile(t, dir, "b.actstr", streamHeader())

	r := NewRegistry()
	require.NoError(t, r.Discover(dir, paktype.KindStream))
	first := append([]paktype.Container(nil), r.Containers(paktype.KindStream)...)

	r.Clear(paktype.KindStream)
	assert.Zero(t, r.Len(paktype.KindStream))

	require.NoError(t, r.Discover(dir, paktype.KindStream))
	assert.Equal(t, first, r.Containers(paktype.KindStream))
}

func TestDiscoverAcceptsIdenticalContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "one.actbin", fileHeader())
	testutil.WriteFile(t, dir, "two.actbin", fileHeader())

	r := NewRegistry()
	require.NoError(t, r.Discover(dir, paktype.KindFile))
	assert.Equal(t, 2, r.Len(paktype.KindFile))
}

func TestDiscoverMissingRoot(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	err := r.Discover(filepath.Join(t.TempDir(), "missing"), paktype.KindStream)
	require.ErrorIs(t, err, paktype.ErrIO)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		kind paktype.Kind
		want bool
	}{
		{"stream signature", streamHeader(), paktype.KindStream, true},
		{"file signature", fileHeader(), paktype.KindFile, true},
		{"wrong kind", fileHeader(), paktype.KindStream, false},
		{"exact signature only", []byte("ACTKOOL_STRMHEAD"), paktype.KindStream, true},
		{"short", []byte("ACTKOOL_STRM"), paktype.KindStream, false},
		{"empty", nil, paktype.KindFile, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, err := Validate(testutil.NewMockByteSource(tt.data), tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "a.actstr", streamHeader())

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, int64(64), f.Size())

	_, err = Open(filepath.Join(dir, "missing.actstr"))
	require.ErrorIs(t, err, paktype.ErrIO)
}
