package index

import (
	"fmt"

	"github.com/meigma/actpak/internal/paktype"
	"github.com/meigma/actpak/internal/sizing"
)

// StreamHeaderSize is the container-level region skipped before the first chunk.
const StreamHeaderSize = 64

// Stream enumerates the chunks of a stream container.
//
// Scanning starts after the header and stops without error at the first
// length field that cannot be read completely, declares fewer than 4 bytes,
// or runs past the end of the container.
func (ix *Indexer) Stream(container uint32, src Source) ([]paktype.Entry, error) {
	size := src.Size()
	pos := int64(StreamHeaderSize)

	var entries []paktype.Entry
	for {
		length, ok, err := readInt32(src, pos)
		if err != nil {
			return entries, err
		}
		if !ok {
			ix.log().Info("reached end of stream", "offset", fmt.Sprintf("0x%08X", pos))
			break
		}
		pos += 4

		n := int64(length)
		if n < 4 || size-pos < n {
			ix.log().Info("reached end of container",
				"offset", fmt.Sprintf("0x%08X", pos),
				"length", sizeString(n),
				"remaining", sizeString(size-pos),
			)
			break
		}

		e := paktype.NewEntry(container, paktype.AssetStreamed, pos, n)
		ix.logEntry(paktype.KindStream, len(entries), e)
		entries = append(entries, e)

		pos = sizing.Align(pos+n, sizing.AlignUnit)
	}
	return entries, nil
}
