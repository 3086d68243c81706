// Package container discovers and validates container files and keeps the
// per-kind list of accepted containers.
package container

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/meigma/actpak/internal/paktype"
)

// Registry holds the accepted containers for each kind.
//
// Registry is not safe for concurrent use.
type Registry struct {
	containers map[paktype.Kind][]paktype.Container
	logger     *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger for discovery diagnostics.
// If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		containers: make(map[paktype.Kind][]paktype.Container),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// log returns the logger, falling back to a discard logger if nil.
func (r *Registry) log() *slog.Logger {
	if r.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.logger
}

// Containers returns the accepted containers of kind in discovery order.
// The returned slice must not be modified.
func (r *Registry) Containers(kind paktype.Kind) []paktype.Container {
	return r.containers[kind]
}

// Len returns the number of accepted containers of kind.
func (r *Registry) Len(kind paktype.Kind) int {
	return len(r.containers[kind])
}

// Clear drops every container of kind.
func (r *Registry) Clear(kind paktype.Kind) {
	delete(r.containers, kind)
}

// Discover validates every file in root whose extension matches kind and
// appends the accepted ones. The directory is not searched recursively.
//
// Candidates that are already registered, too short, or carry the wrong
// signature are logged and skipped. A missing root or an unreadable directory
// or candidate returns an error wrapping paktype.ErrIO; containers accepted
// before the failure stay registered.
func (r *Registry) Discover(root string, kind paktype.Kind) error {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("%w: directory %q doesn't exist or is unavailable: %w", paktype.ErrIO, root, err)
	}

	for _, de := range dirEntries {
		if !de.Type().IsRegular() || !strings.EqualFold(filepath.Ext(de.Name()), kind.Ext()) {
			continue
		}
		path, err := filepath.Abs(filepath.Join(root, de.Name()))
		if err != nil {
			return fmt.Errorf("%w: resolve %s: %w", paktype.ErrIO, de.Name(), err)
		}
		if err := r.addIfValid(path, kind); err != nil {
			return err
		}
	}
	return nil
}

// addIfValid registers path under kind when it is new and carries the kind's signature.
func (r *Registry) addIfValid(path string, kind paktype.Kind) error {
	name := filepath.Base(path)
	if r.contains(kind, path) {
		r.log().Warn("container already registered", "kind", kind, "name", name)
		return nil
	}

	f, err := Open(path)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // read-only handle

	ok, err := Validate(f, kind)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if !ok {
		r.log().Warn("not a container of this kind", "kind", kind, "name", name)
		return nil
	}

	r.containers[kind] = append(r.containers[kind], paktype.Container{
		Path: path,
		Name: name,
		Size: f.Size(),
		Kind: kind,
	})
	r.log().Info("added container", "kind", kind, "name", name, "size", humanize.IBytes(uint64(f.Size()))) //nolint:gosec // size is non-negative
	return nil
}

// contains reports whether path is registered under kind, ignoring case.
func (r *Registry) contains(kind paktype.Kind, path string) bool {
	for _, c := range r.containers[kind] {
		if strings.EqualFold(c.Path, path) {
			return true
		}
	}
	return false
}
