package actpak

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/meigma/actpak/internal/container"
	"github.com/meigma/actpak/internal/extract"
	"github.com/meigma/actpak/internal/index"
)

// defaultOutputName is the directory created under the root when no output
// directory is configured.
const defaultOutputName = "Output"

// Project holds the containers and asset index of one game directory.
//
// The phases are meant to run in order: FindContainers, ReadAssets, then
// ExtractAssets. Each phase operates on the kinds selected by its flags and
// leaves the state of other kinds untouched. A Project is not safe for
// concurrent use.
type Project struct {
	root         string
	outputDir    string
	registry     *container.Registry
	assets       map[Kind][]Entry
	logFrequency int
	progress     ProgressFunc
	logger       *slog.Logger
}

// New creates a Project rooted at root. The root is normalized with
// NormalizeDir and is not checked until FindContainers runs.
func New(root string, opts ...Option) *Project {
	p := &Project{
		root:   NormalizeDir(root),
		assets: make(map[Kind][]Entry),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.registry = container.NewRegistry(container.WithLogger(p.logger))
	return p
}

// log returns the logger, falling back to a discard logger if nil.
func (p *Project) log() *slog.Logger {
	if p.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.logger
}

// Root returns the normalized project directory.
func (p *Project) Root() string {
	return p.root
}

// OutputDir returns the directory assets are extracted under.
func (p *Project) OutputDir() string {
	if p.outputDir == "" {
		return filepath.Join(p.root, defaultOutputName)
	}
	return p.outputDir
}

// Containers returns the registered containers of kind in discovery order.
// The returned slice must not be modified.
func (p *Project) Containers(kind Kind) []Container {
	return p.registry.Containers(kind)
}

// Assets returns the indexed assets of kind in extraction order.
// The returned slice must not be modified.
func (p *Project) Assets(kind Kind) []Entry {
	return p.assets[kind]
}

// ClearContainers drops the registered containers of every kind in flags.
func (p *Project) ClearContainers(flags Flags) {
	for _, kind := range flags.Kinds() {
		p.registry.Clear(kind)
	}
}

// ClearAssets drops the indexed assets of every kind in flags.
func (p *Project) ClearAssets(flags Flags) {
	for _, kind := range flags.Kinds() {
		delete(p.assets, kind)
	}
}

// FindContainers registers the valid containers in the project root for
// every kind in flags, stream containers first.
//
// A missing or unreadable root returns an error wrapping ErrIO before any
// state is cleared. When clear is false, newly found containers are appended
// to the existing ones; already registered paths are skipped.
func (p *Project) FindContainers(flags Flags, clear bool) error {
	info, err := os.Stat(p.root)
	if err != nil {
		return fmt.Errorf("%w: directory %q doesn't exist or is unavailable: %w", ErrIO, p.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %q is not a directory", ErrIO, p.root)
	}
	if clear {
		p.ClearContainers(flags)
	}

	for _, kind := range flags.Kinds() {
		p.log().Info(fmt.Sprintf("[%s - Containers]", kind), "root", p.root)
		if err := p.registry.Discover(p.root, kind); err != nil {
			return err
		}
		p.log().Info("containers found", "kind", kind, "count", p.registry.Len(kind))
		p.emit(ProgressEvent{
			Stage:      StageDiscovering,
			Kind:       kind,
			Path:       p.root,
			FilesDone:  p.registry.Len(kind),
			FilesTotal: p.registry.Len(kind),
		})
	}
	return nil
}

// ReadAssets indexes the registered containers of every kind in flags.
//
// When clear is false, new entries are appended to the existing index. The
// first failing container stops the pass with an error wrapping ErrIO;
// entries read before the failure are kept.
func (p *Project) ReadAssets(flags Flags, clear bool) error {
	if clear {
		p.ClearAssets(flags)
	}
	ix := index.New(index.WithLogger(p.logger), index.WithLogFrequency(p.logFrequency))

	for _, kind := range flags.Kinds() {
		p.log().Info(fmt.Sprintf("[%s - Asset Pointers]", kind))
		containers := p.registry.Containers(kind)
		var total int64
		for i, c := range containers {
			n, err := p.readContainer(ix, kind, uint32(i), c) //nolint:gosec // container count is bounded by directory size
			if err != nil {
				return err
			}
			total += n
			p.emit(ProgressEvent{
				Stage:      StageIndexing,
				Kind:       kind,
				Path:       c.Path,
				FilesDone:  i + 1,
				FilesTotal: len(containers),
			})
		}
		p.log().Info("assets indexed",
			"kind", kind,
			"count", len(p.assets[kind]),
			"size", humanize.IBytes(uint64(total))) //nolint:gosec // lengths are non-negative
	}
	return nil
}

// readContainer indexes one container and appends its entries.
// It returns the total payload length of the new entries.
func (p *Project) readContainer(ix *index.Indexer, kind Kind, idx uint32, c Container) (int64, error) {
	f, err := container.Open(c.Path)
	if err != nil {
		return 0, err
	}
	defer f.Close() //nolint:errcheck // read-only handle

	entries, err := ix.Scan(kind, idx, f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", c.Name, err)
	}
	p.assets[kind] = append(p.assets[kind], entries...)

	var total int64
	for _, e := range entries {
		total += e.Length
	}
	p.log().Info("container indexed", "kind", kind, "name", c.Name, "assets", len(entries))
	return total, nil
}

// ExtractAssets writes the indexed assets of every kind in flags, stream
// assets first, to "<output>/<kind>". With FlagGroupByType each asset goes
// into a subdirectory named after its asset kind. Existing files with the
// same name are replaced.
//
// The returned Stats cover every asset written before a failure.
func (p *Project) ExtractAssets(flags Flags) (Stats, error) {
	var total Stats
	proc := extract.NewProcessor(
		extract.WithLogFrequency(p.logFrequency),
		extract.WithProgress(p.progress),
		extract.WithProcessorLogger(p.logger),
	)

	for _, kind := range flags.Kinds() {
		p.log().Info(fmt.Sprintf("[%s - Asset Extraction]", kind))
		dir := filepath.Join(p.OutputDir(), kind.String())
		sink := extract.NewFileSink(dir,
			extract.WithGroupByType(flags.Has(FlagGroupByType)),
			extract.WithSinkLogger(p.logger),
		)
		if err := sink.Prepare(kind.AssetKinds()); err != nil {
			return total, fmt.Errorf("%w: %w", ErrIO, err)
		}

		stats, err := proc.Process(kind, p.registry.Containers(kind), p.assets[kind], sink)
		total.Add(stats)
		if err != nil {
			return total, err
		}
		p.log().Info("assets extracted",
			"kind", kind,
			"extracted", stats.Extracted,
			"skipped", stats.Skipped,
			"size", humanize.IBytes(stats.TotalBytes),
			"dir", dir)
	}
	return total, nil
}

// emit forwards ev to the progress callback, if any.
func (p *Project) emit(ev ProgressEvent) {
	if p.progress != nil {
		p.progress(ev)
	}
}
