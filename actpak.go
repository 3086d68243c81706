package actpak

import (
	"github.com/meigma/actpak/internal/extract"
	"github.com/meigma/actpak/internal/paktype"
)

// Re-export types from internal/paktype for public API.
type (
	// Flags selects container kinds and output layout for a pass.
	Flags = paktype.Flags

	// Kind identifies a container kind.
	Kind = paktype.Kind

	// AssetKind is the semantic category of an extracted asset.
	AssetKind = paktype.AssetKind

	// Entry locates one asset inside a registered container.
	Entry = paktype.Entry

	// Container describes a validated container file.
	Container = paktype.Container

	// Result is the outcome of a pass.
	Result = paktype.Result

	// ProgressEvent represents a progress update during a pass.
	ProgressEvent = paktype.ProgressEvent

	// ProgressStage identifies the current phase of a pass.
	ProgressStage = paktype.ProgressStage

	// ProgressFunc receives progress updates.
	ProgressFunc = paktype.ProgressFunc

	// Stats contains statistics from an extraction pass.
	Stats = extract.Stats
)

// Re-export flag constants.
const (
	FlagNone        = paktype.FlagNone
	FlagFile        = paktype.FlagFile
	FlagStream      = paktype.FlagStream
	FlagGroupByType = paktype.FlagGroupByType
	FlagAll         = paktype.FlagAll
)

// Re-export kind constants.
const (
	KindStream = paktype.KindStream
	KindFile   = paktype.KindFile
)

// Re-export asset kind constants.
const (
	AssetUnknown  = paktype.AssetUnknown
	AssetAudio    = paktype.AssetAudio
	AssetTexture  = paktype.AssetTexture
	AssetStreamed = paktype.AssetStreamed
)

// Re-export result constants.
const (
	ResultSuccess = paktype.ResultSuccess
	ResultIOError = paktype.ResultIOError
)

// Re-export progress stage constants.
const (
	StageDiscovering = paktype.StageDiscovering
	StageIndexing    = paktype.StageIndexing
	StageExtracting  = paktype.StageExtracting
)

// Kinds lists every container kind in processing order.
var Kinds = paktype.Kinds

// Sentinel errors re-exported from internal/paktype.
var (
	// ErrIO is returned when a directory or container cannot be read or
	// written, or when structural parsing hits a short read.
	ErrIO = paktype.ErrIO

	// ErrSizeOverflow is returned when an offset or length exceeds supported limits.
	ErrSizeOverflow = paktype.ErrSizeOverflow
)

// ResultOf maps an error returned by a pass to its result code.
func ResultOf(err error) Result {
	return paktype.ResultOf(err)
}
