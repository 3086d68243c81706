package container

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/meigma/actpak/internal/paktype"
)

// Source provides random access to container bytes.
type Source interface {
	io.ReaderAt
	Size() int64
}

// File is an open container file.
type File struct {
	*os.File
	size int64
}

// Open opens the container at path for random access.
// The size is captured once at open time.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", paktype.ErrIO, path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close() //nolint:errcheck // best-effort cleanup
		return nil, fmt.Errorf("%w: stat %s: %w", paktype.ErrIO, path, err)
	}
	return &File{File: f, size: info.Size()}, nil
}

// Size returns the container length captured when it was opened.
func (f *File) Size() int64 {
	return f.size
}

// Validate reports whether src starts with the signature of kind.
// A source shorter than the signature is not valid; that is not an error.
func Validate(src Source, kind paktype.Kind) (bool, error) {
	var header [paktype.SignatureSize]byte
	n, err := src.ReadAt(header[:], 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("%w: read header: %w", paktype.ErrIO, err)
	}
	if n < paktype.SignatureSize {
		return false, nil
	}
	sig := kind.Signature()
	return bytes.Equal(header[:], sig[:]), nil
}
