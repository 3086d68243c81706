package paktype

import "errors"

var (
	// ErrIO is returned when a directory or container cannot be read, when a
	// container handle is unexpectedly unavailable, or when structural parsing
	// hits a short read.
	ErrIO = errors.New("actpak: i/o error")

	// ErrSizeOverflow is returned when an offset or length exceeds supported limits.
	ErrSizeOverflow = errors.New("actpak: size overflow")
)

// Result is the outcome of a discovery, indexing or extraction call.
type Result uint8

const (
	ResultSuccess Result = iota
	ResultIOError
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "Success"
	case ResultIOError:
		return "IOError"
	default:
		return "Unknown"
	}
}

// ResultOf maps an error returned by a pass to its result code.
// Every error a pass propagates is an I/O failure.
func ResultOf(err error) Result {
	if err == nil {
		return ResultSuccess
	}
	return ResultIOError
}
