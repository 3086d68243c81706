package paktype

// ProgressEvent represents a progress update during discovery, indexing or extraction.
type ProgressEvent struct {
	// Stage identifies the current phase of the operation.
	Stage ProgressStage

	// Kind is the container kind being processed.
	Kind Kind

	// Path is the container or output file currently being processed, if applicable.
	Path string

	// BytesDone is the number of payload bytes written so far.
	BytesDone uint64

	// FilesDone is the number of containers or assets completed.
	FilesDone int

	// FilesTotal is the total number of containers or assets.
	// Zero indicates the total is unknown.
	FilesTotal int
}

// ProgressStage identifies the current phase of an operation.
type ProgressStage uint8

const (
	// StageDiscovering indicates candidate containers are being validated.
	StageDiscovering ProgressStage = iota

	// StageIndexing indicates containers are being scanned for assets.
	StageIndexing

	// StageExtracting indicates assets are being written.
	StageExtracting
)

// String returns the string representation of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StageDiscovering:
		return "discovering"
	case StageIndexing:
		return "indexing"
	case StageExtracting:
		return "extracting"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates during operations.
type ProgressFunc func(ProgressEvent)
