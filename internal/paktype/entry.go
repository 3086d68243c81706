package paktype

import "github.com/meigma/actpak/internal/sizing"

// Entry locates one asset inside one container.
type Entry struct {
	// Container is the index into the per-kind container list.
	Container uint32

	// Tier is the buffer tier chosen from Length when the entry was created.
	Tier sizing.Tier

	// AssetKind is used only to group output.
	AssetKind AssetKind

	// Offset is the absolute byte position of the payload in the container.
	Offset int64

	// Length is the payload length in bytes.
	Length int64
}

// NewEntry creates an entry, deriving its buffer tier from length.
func NewEntry(container uint32, kind AssetKind, offset, length int64) Entry {
	return Entry{
		Container: container,
		Tier:      sizing.TierOf(length),
		AssetKind: kind,
		Offset:    offset,
		Length:    length,
	}
}

// End returns the offset one past the last payload byte.
func (e Entry) End() int64 {
	return e.Offset + e.Length
}

// Container is a validated container file.
type Container struct {
	// Path is the absolute filesystem path.
	Path string

	// Name is the base file name, used in log output.
	Name string

	// Size is the container length at discovery time.
	Size int64

	// Kind is the container layout.
	Kind Kind
}
