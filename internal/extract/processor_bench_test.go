package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/meigma/actpak/internal/paktype"
	"github.com/meigma/actpak/internal/sizing"
	"github.com/meigma/actpak/internal/testutil"
)

var benchSinkBytes int64

type benchCase struct {
	name      string
	count     int
	assetSize int
}

type benchSource struct {
	name string
	new  func(b *testing.B, data []byte) Opener
}

func BenchmarkProcess(b *testing.B) {
	cases := []benchCase{
		{name: "assets=512/size=16k/tier=small", count: 512, assetSize: 16 << 10},
		{name: "assets=64/size=256k/tier=large", count: 64, assetSize: 256 << 10},
		{name: "assets=2/size=65m/tier=oversized", count: 2, assetSize: sizing.LargeTierLimit + 1<<20},
	}

	for _, bc := range cases {
		data, entries, totalBytes := buildBenchStream(bc)
		for _, source := range benchSources() {
			b.Run(fmt.Sprintf("%s/%s", bc.name, source.name), func(b *testing.B) {
				proc := NewProcessor(WithOpener(source.new(b, data)))
				containers := []paktype.Container{{Path: "bench.actstr", Name: "bench.actstr"}}
				sink := &benchDiscardSink{}

				b.SetBytes(totalBytes)
				b.ReportAllocs()
				b.ResetTimer()

				for b.Loop() {
					if _, err := proc.Process(paktype.KindStream, containers, entries, sink); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func buildBenchStream(bc benchCase) ([]byte, []paktype.Entry, int64) {
	payloads := make([][]byte, bc.count)
	for i := range payloads {
		payloads[i] = bytes.Repeat([]byte{byte('a' + (i % 26))}, bc.assetSize)
	}
	data, entries := testutil.BuildStream(payloads...)
	return data, entries, int64(bc.count * bc.assetSize)
}

func benchSources() []benchSource {
	return []benchSource{
		{
			name: "source=memory",
			new: func(_ *testing.B, data []byte) Opener {
				return func(string) (Source, error) {
					return testutil.NewMockByteSource(data), nil
				}
			},
		},
		{
			name: "source=file",
			new: func(b *testing.B, data []byte) Opener {
				path := filepath.Join(b.TempDir(), "bench.actstr")
				if err := os.WriteFile(path, data, 0o600); err != nil {
					b.Fatal(err)
				}
				return func(string) (Source, error) {
					return openContainer(path)
				}
			},
		},
	}
}

type benchDiscardSink struct{}

func (s *benchDiscardSink) Writer(string, paktype.AssetKind) (Committer, error) {
	return &benchDiscardCommitter{}, nil
}

type benchDiscardCommitter struct{}

func (c *benchDiscardCommitter) Write(p []byte) (int, error) {
	atomic.AddInt64(&benchSinkBytes, int64(len(p)))
	return len(p), nil
}

func (c *benchDiscardCommitter) Commit() error  { return nil }
func (c *benchDiscardCommitter) Discard() error { return nil }
