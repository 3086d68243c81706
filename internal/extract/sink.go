// Package extract reads indexed assets out of their containers and writes them
// through a Sink.
package extract

import (
	"io"

	"github.com/meigma/actpak/internal/paktype"
)

// Sink receives the bytes of each extracted asset.
//
// Implementations determine where content is written and how it is named on disk.
type Sink interface {
	// Writer returns a writer for the asset called name.
	// The returned Committer must have Commit() called after a successful
	// write, or Discard() called on any error.
	Writer(name string, kind paktype.AssetKind) (Committer, error)
}

// Committer is a writer that can be committed or discarded.
//
// Implementations should buffer or stage writes until Commit is called.
// For example, a file-based implementation might write to a temp file
// and rename it on Commit, or delete it on Discard.
type Committer interface {
	io.Writer

	// Commit finalizes the write, making content available.
	Commit() error

	// Discard aborts the write and cleans up any temporary resources.
	Discard() error
}
