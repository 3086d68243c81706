package extract

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/meigma/actpak/internal/container"
	"github.com/meigma/actpak/internal/paktype"
	"github.com/meigma/actpak/internal/sizing"
	"github.com/meigma/actpak/internal/sniff"
)

// Source is an open container handle.
type Source interface {
	io.ReaderAt
	io.Closer
	Size() int64
}

// Opener opens the container at path.
type Opener func(path string) (Source, error)

// openContainer is the default Opener.
func openContainer(path string) (Source, error) {
	f, err := container.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Processor reads indexed assets and writes them to a sink.
//
// A Processor owns the scratch regions used for buffer tiers; reuse one
// Processor for every kind of a single extraction call. It is not safe for
// concurrent use.
type Processor struct {
	open         Opener
	scratch      *scratch
	logFrequency int
	progress     paktype.ProgressFunc
	logger       *slog.Logger
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithOpener replaces the function used to open containers.
func WithOpener(open Opener) ProcessorOption {
	return func(p *Processor) {
		p.open = open
	}
}

// WithLogFrequency logs only every n-th extracted asset.
// Values <= 0 log every asset.
func WithLogFrequency(n int) ProcessorOption {
	return func(p *Processor) {
		p.logFrequency = n
	}
}

// WithProgress sets a callback that receives one event per asset.
func WithProgress(fn paktype.ProgressFunc) ProcessorOption {
	return func(p *Processor) {
		p.progress = fn
	}
}

// WithProcessorLogger sets the logger for extraction operations.
// If not set, logging is disabled.
func WithProcessorLogger(logger *slog.Logger) ProcessorOption {
	return func(p *Processor) {
		p.logger = logger
	}
}

// NewProcessor creates a new extraction processor.
func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{
		open:    openContainer,
		scratch: newScratch(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// log returns the logger, falling back to a discard logger if nil.
func (p *Processor) log() *slog.Logger {
	if p.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.logger
}

// Process extracts entries of kind, in order, into sink.
//
// Entries are expected to be grouped by container: a handle is opened when
// the container index changes and the previous one is closed, so at most one
// container is open at a time. Assets are named "<kind> #<i><ext>" where i is
// the entry's position in entries and ext is sniffed from its bytes. Entries
// that yield no bytes are skipped. Failing to open a container, a missing
// handle, or a failed read or write stops processing with an error wrapping
// paktype.ErrIO.
func (p *Processor) Process(kind paktype.Kind, containers []paktype.Container, entries []paktype.Entry, sink Sink) (Stats, error) {
	var (
		stats Stats
		src   Source
		cur   = int64(-1)
	)
	closeCurrent := func() {
		if src != nil {
			_ = src.Close() //nolint:errcheck // read-only handle
			src = nil
		}
	}
	defer closeCurrent()

	for i, e := range entries {
		if int64(e.Container) != cur {
			closeCurrent()
			if int(e.Container) >= len(containers) {
				return stats, fmt.Errorf("%w: %s container #%d is not registered", paktype.ErrIO, kind, e.Container)
			}
			opened, err := p.open(containers[e.Container].Path)
			if err != nil {
				return stats, ioError(err)
			}
			src = opened
			cur = int64(e.Container)
		}

		if src == nil {
			p.log().Error("container handle is nil", "kind", kind, "container", e.Container)
			return stats, fmt.Errorf("%w: %s container #%d has no open handle", paktype.ErrIO, kind, e.Container)
		}

		n, name, err := p.processEntry(kind, i, e, src, sink)
		if err != nil {
			return stats, err
		}
		if n == 0 {
			stats.Skipped++
			p.log().Warn("nothing to extract", "kind", kind, "index", i, "offset", fmt.Sprintf("0x%08X", e.Offset))
			continue
		}

		stats.Extracted++
		stats.TotalBytes += uint64(n) //nolint:gosec // n is always non-negative
		if p.logFrequency <= 0 || i%p.logFrequency == 0 {
			p.log().Debug("extracted asset", "name", name, "size", humanize.IBytes(uint64(n))) //nolint:gosec // n is always non-negative
		}
		if p.progress != nil {
			p.progress(paktype.ProgressEvent{
				Stage:      paktype.StageExtracting,
				Kind:       kind,
				Path:       name,
				BytesDone:  stats.TotalBytes,
				FilesDone:  i + 1,
				FilesTotal: len(entries),
			})
		}
	}
	return stats, nil
}

// processEntry reads one asset and writes it to the sink.
// It returns the number of bytes written, which is zero for skipped entries.
func (p *Processor) processEntry(kind paktype.Kind, i int, e paktype.Entry, src Source, sink Sink) (int, string, error) {
	if _, ok := sizing.AddInt64(e.Offset, e.Length); !ok {
		return 0, "", fmt.Errorf("%w: %s #%d: %w", paktype.ErrIO, kind, i, paktype.ErrSizeOverflow)
	}

	buf, err := p.scratch.acquire(e)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %s #%d: %w", paktype.ErrIO, kind, i, err)
	}

	n, err := src.ReadAt(buf, e.Offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, "", fmt.Errorf("%w: read %s #%d: %w", paktype.ErrIO, kind, i, err)
	}
	if n < 1 {
		return 0, "", nil
	}
	data := buf[:n]

	name := fmt.Sprintf("%s #%d%s", kind, i, sniff.Extension(data))
	w, err := sink.Writer(name, e.AssetKind)
	if err != nil {
		return 0, name, fmt.Errorf("%w: %s: %w", paktype.ErrIO, name, err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Discard() //nolint:errcheck // best-effort cleanup
		return 0, name, fmt.Errorf("%w: write %s: %w", paktype.ErrIO, name, err)
	}
	if err := w.Commit(); err != nil {
		return 0, name, fmt.Errorf("%w: commit %s: %w", paktype.ErrIO, name, err)
	}
	return n, name, nil
}

// ioError wraps err in paktype.ErrIO unless it already is one.
func ioError(err error) error {
	if errors.Is(err, paktype.ErrIO) {
		return err
	}
	return fmt.Errorf("%w: %w", paktype.ErrIO, err)
}
