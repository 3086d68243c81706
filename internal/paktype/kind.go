package paktype

import "strings"

// Flags selects container kinds and output layout for a pass.
type Flags uint16

const (
	// FlagNone selects nothing.
	FlagNone Flags = 0

	// FlagFile selects file containers (.actbin).
	FlagFile Flags = 0x1

	// FlagStream selects stream containers (.actstr).
	FlagStream Flags = 0x2

	// FlagGroupByType writes extracted assets into one directory per asset kind.
	FlagGroupByType Flags = 0x4

	// FlagAll selects both container kinds.
	FlagAll = FlagFile | FlagStream
)

// Has reports whether every bit of other is set in f.
func (f Flags) Has(other Flags) bool {
	return other != 0 && f&other == other
}

// Kinds returns the container kinds selected by f, stream first.
func (f Flags) Kinds() []Kind {
	kinds := make([]Kind, 0, len(Kinds))
	for _, k := range Kinds {
		if f.Has(k.Flag()) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// String returns the set flag names joined by "|".
func (f Flags) String() string {
	if f == FlagNone {
		return "None"
	}
	var parts []string
	if f.Has(FlagFile) {
		parts = append(parts, "File")
	}
	if f.Has(FlagStream) {
		parts = append(parts, "Stream")
	}
	if f.Has(FlagGroupByType) {
		parts = append(parts, "GroupByType")
	}
	return strings.Join(parts, "|")
}

// Kind identifies a container layout.
type Kind uint8

const (
	// KindStream is a flat sequential chunk stream.
	KindStream Kind = iota

	// KindFile is an indexed container reached through marker search.
	KindFile
)

// Kinds lists every container kind in processing order.
var Kinds = []Kind{KindStream, KindFile}

// SignatureSize is the length of the container signature and of each marker.
const SignatureSize = 16

var (
	streamSignature = [SignatureSize]byte([]byte("ACTKOOL_STRMHEAD"))
	fileSignature   = [SignatureSize]byte([]byte("ACTKOOL_FILEHEAD"))
)

// String returns the kind name, which is also its output prefix.
func (k Kind) String() string {
	switch k {
	case KindStream:
		return "Stream"
	case KindFile:
		return "File"
	default:
		return "Unknown"
	}
}

// Ext returns the container file extension for the kind.
func (k Kind) Ext() string {
	if k == KindFile {
		return ".actbin"
	}
	return ".actstr"
}

// Signature returns the 16-byte header every container of this kind starts with.
func (k Kind) Signature() [SignatureSize]byte {
	if k == KindFile {
		return fileSignature
	}
	return streamSignature
}

// Flag returns the selection bit for the kind.
func (k Kind) Flag() Flags {
	if k == KindFile {
		return FlagFile
	}
	return FlagStream
}

// AssetKinds returns the asset kinds the kind's indexer can emit.
func (k Kind) AssetKinds() []AssetKind {
	if k == KindFile {
		return []AssetKind{AssetAudio, AssetTexture}
	}
	return []AssetKind{AssetStreamed}
}

// AssetKind is the semantic category of an extracted asset.
type AssetKind uint8

const (
	AssetUnknown AssetKind = iota
	AssetAudio
	AssetTexture
	AssetStreamed
)

// String returns the asset kind name, used as the group directory name.
func (a AssetKind) String() string {
	switch a {
	case AssetAudio:
		return "Audio"
	case AssetTexture:
		return "Texture"
	case AssetStreamed:
		return "Streamed"
	default:
		return "Unknown"
	}
}
