package index

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/meigma/actpak/internal/paktype"
)

// Source provides random access to container bytes.
type Source interface {
	io.ReaderAt
	Size() int64
}

// Indexer produces asset entries for containers.
type Indexer struct {
	logger       *slog.Logger
	logFrequency int
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithLogger sets the logger for scan diagnostics.
// If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) {
		ix.logger = logger
	}
}

// WithLogFrequency logs only every n-th added entry.
// Values <= 0 log every entry.
func WithLogFrequency(n int) Option {
	return func(ix *Indexer) {
		ix.logFrequency = n
	}
}

// New creates an Indexer.
func New(opts ...Option) *Indexer {
	ix := &Indexer{}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// log returns the logger, falling back to a discard logger if nil.
func (ix *Indexer) log() *slog.Logger {
	if ix.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return ix.logger
}

// Scan dispatches to the scanner for kind.
func (ix *Indexer) Scan(kind paktype.Kind, container uint32, src Source) ([]paktype.Entry, error) {
	switch kind {
	case paktype.KindStream:
		return ix.Stream(container, src)
	case paktype.KindFile:
		return ix.File(container, src)
	default:
		return nil, fmt.Errorf("index: unknown container kind %d", kind)
	}
}

// logEntry records an added entry, honouring the log frequency.
func (ix *Indexer) logEntry(kind paktype.Kind, n int, e paktype.Entry) {
	if ix.logFrequency > 0 && n%ix.logFrequency != 0 {
		return
	}
	ix.log().Debug("added asset pointer",
		"kind", kind,
		"offset", fmt.Sprintf("0x%08X", e.Offset),
		"size", sizeString(e.Length),
		"container", e.Container,
		"buffer", e.Tier,
	)
}

// readInt32 reads a little-endian int32 at off.
// ok is false when fewer than 4 bytes are available.
func readInt32(src Source, off int64) (v int32, ok bool, err error) {
	var buf [4]byte
	n, err := src.ReadAt(buf[:], off)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, false, fmt.Errorf("%w: read at 0x%08X: %w", paktype.ErrIO, off, err)
	}
	if n < len(buf) {
		return 0, false, nil
	}
	return int32(binary.LittleEndian.Uint32(buf[:])), true, nil //nolint:gosec // two's complement reinterpretation
}

// mustReadInt32 reads a structural int32 field; a short read is an I/O failure.
func mustReadInt32(src Source, off int64, field string) (int32, error) {
	v, ok, err := readInt32(src, off)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: read %s at 0x%08X: %w", paktype.ErrIO, field, off, io.ErrUnexpectedEOF)
	}
	return v, nil
}
