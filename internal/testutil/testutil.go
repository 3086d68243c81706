// Package testutil provides in-memory sources and container builders for tests.
package testutil

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/meigma/actpak/internal/paktype"
	"github.com/meigma/actpak/internal/sizing"
)

// MockByteSource implements a simple in-memory container source for tests.
type MockByteSource struct {
	data   []byte
	closed atomic.Bool
}

// NewMockByteSource returns a byte source backed by the provided data.
func NewMockByteSource(data []byte) *MockByteSource {
	return &MockByteSource{data: data}
}

// ReadAt implements io.ReaderAt semantics over the backing slice.
func (m *MockByteSource) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Size returns the total size of the backing data.
func (m *MockByteSource) Size() int64 {
	return int64(len(m.data))
}

// Close marks the source closed.
func (m *MockByteSource) Close() error {
	m.closed.Store(true)
	return nil
}

// Closed reports whether Close was called.
func (m *MockByteSource) Closed() bool {
	return m.closed.Load()
}

// Bytes returns the backing slice for tests that need to mutate data.
func (m *MockByteSource) Bytes() []byte {
	return m.data
}

// headerSize is the fixed region before the first stream chunk.
const headerSize = 64

var (
	audioMarker   = []byte("MODULE_SE_______")
	textureMarker = []byte("MODULE_WALL_____")
)

// BuildStream returns a stream container holding payloads as consecutive
// chunks, and the entries an indexer should report for it.
func BuildStream(payloads ...[]byte) ([]byte, []paktype.Entry) {
	sig := paktype.KindStream.Signature()
	buf := make([]byte, headerSize)
	copy(buf, sig[:])

	var entries []paktype.Entry
	for _, p := range payloads {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(p))) //nolint:gosec // test payloads are small
		entries = append(entries, paktype.NewEntry(0, paktype.AssetStreamed, int64(len(buf)), int64(len(p))))
		buf = append(buf, p...)
		buf = pad(buf)
	}
	return buf, entries
}

// FileContainer describes a file container to synthesize.
// A nil table omits its marker entirely.
type FileContainer struct {
	// Audio holds the payloads of the audio table.
	Audio [][]byte

	// Texture holds the payloads of the texture table.
	Texture [][]byte

	// Gap is the number of zero bytes inserted before the markers, rounded up
	// to a multiple of 16.
	Gap int

	// TextureFirst places the texture marker before the audio marker.
	TextureFirst bool
}

// Build returns the container bytes and the entries an indexer should report,
// audio entries first.
func (c FileContainer) Build() ([]byte, []paktype.Entry) {
	sig := paktype.KindFile.Signature()
	buf := make([]byte, headerSize)
	copy(buf, sig[:])
	buf = append(buf, make([]byte, sizing.Align(int64(c.Gap), sizing.AlignUnit))...)

	type pending struct {
		patchAt int
		kind    paktype.AssetKind
		table   [][]byte
		skip    int
	}
	var tables []pending

	writeMarker := func(magic []byte, kind paktype.AssetKind, table [][]byte, headerSkip, entrySkip int) {
		if table == nil {
			return
		}
		buf = append(buf, magic...)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(table))) //nolint:gosec // test tables are small
		buf = append(buf, make([]byte, headerSkip)...)
		tables = append(tables, pending{patchAt: len(buf), kind: kind, table: table, skip: entrySkip})
		buf = append(buf, 0, 0, 0, 0)
		buf = pad(buf)
	}
	if c.TextureFirst {
		writeMarker(textureMarker, paktype.AssetTexture, c.Texture, 8, 8)
		writeMarker(audioMarker, paktype.AssetAudio, c.Audio, 16, 0)
	} else {
		writeMarker(audioMarker, paktype.AssetAudio, c.Audio, 16, 0)
		writeMarker(textureMarker, paktype.AssetTexture, c.Texture, 8, 8)
	}

	byKind := make(map[paktype.AssetKind][]paktype.Entry)
	for _, t := range tables {
		binary.LittleEndian.PutUint32(buf[t.patchAt:], uint32(len(buf))) //nolint:gosec // test containers are small
		for _, p := range t.table {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(len(p))) //nolint:gosec // test payloads are small
			buf = append(buf, make([]byte, t.skip)...)
			byKind[t.kind] = append(byKind[t.kind], paktype.NewEntry(0, t.kind, int64(len(buf)), int64(len(p))))
			buf = append(buf, p...)
			buf = pad(buf)
		}
	}
	return buf, append(byKind[paktype.AssetAudio], byKind[paktype.AssetTexture]...)
}

// WriteFile writes data to name inside dir and returns the full path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Payload returns n deterministic bytes seeded by seed.
func Payload(n int, seed byte) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = seed + byte(i*7)
	}
	return p
}

func pad(buf []byte) []byte {
	aligned := sizing.Align(int64(len(buf)), sizing.AlignUnit)
	return append(buf, make([]byte, aligned-int64(len(buf)))...)
}
