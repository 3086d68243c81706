package index

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/meigma/actpak/internal/paktype"
	"github.com/meigma/actpak/internal/sizing"
)

// scanBlockSize is the read size used while searching for markers.
const scanBlockSize = paktype.SignatureSize << 12

// Marker locates one sub-format table inside a file container.
type Marker struct {
	// Magic is the 16-byte sequence that starts the table header.
	Magic [paktype.SignatureSize]byte

	// AssetKind is assigned to every entry of the table.
	AssetKind paktype.AssetKind

	// HeaderSkip is the number of bytes between the count and the table offset.
	HeaderSkip int64

	// EntrySkip is the number of bytes between each length field and its payload.
	EntrySkip int64
}

// FileMarkers lists the recognized markers in processing order.
var FileMarkers = []Marker{
	{
		Magic:      [paktype.SignatureSize]byte([]byte("MODULE_SE_______")),
		AssetKind:  paktype.AssetAudio,
		HeaderSkip: 16,
	},
	{
		Magic:      [paktype.SignatureSize]byte([]byte("MODULE_WALL_____")),
		AssetKind:  paktype.AssetTexture,
		HeaderSkip: 8,
		EntrySkip:  8,
	},
}

// File enumerates the assets listed by every marker found in a file container.
//
// A short read while parsing a marker header or a table entry returns an error
// wrapping paktype.ErrIO. A table whose declared entry length is negative or
// runs past the end of the container is cut off at that entry.
func (ix *Indexer) File(container uint32, src Source) ([]paktype.Entry, error) {
	offsets, err := FindMarkers(src, FileMarkers)
	if err != nil {
		return nil, err
	}

	var entries []paktype.Entry
	for i, m := range FileMarkers {
		if offsets[i] < 0 {
			continue
		}
		entries, err = ix.readTable(container, src, m, offsets[i], entries)
		if err != nil {
			return entries, err
		}
	}
	return entries, nil
}

// readTable appends the entries of the table introduced by the marker at off.
func (ix *Indexer) readTable(container uint32, src Source, m Marker, off int64, entries []paktype.Entry) ([]paktype.Entry, error) {
	pos := off + paktype.SignatureSize
	count, err := mustReadInt32(src, pos, "asset count")
	if err != nil {
		return entries, err
	}
	pos += 4 + m.HeaderSkip

	tableStart, err := mustReadInt32(src, pos, "table offset")
	if err != nil {
		return entries, err
	}
	if tableStart < 0 {
		ix.log().Warn("negative table offset", "type", m.AssetKind, "offset", tableStart)
		return entries, nil
	}

	ix.log().Info("adding assets", "count", count, "type", m.AssetKind)

	size := src.Size()
	pos = int64(tableStart)
	for j := range int(count) {
		length, err := mustReadInt32(src, pos, "asset length")
		if err != nil {
			return entries, err
		}
		pos += 4 + m.EntrySkip

		n := int64(length)
		if n < 0 || size-pos < n {
			ix.log().Warn("asset table runs past end of container",
				"type", m.AssetKind,
				"index", j,
				"offset", fmt.Sprintf("0x%08X", pos),
				"length", sizeString(n),
			)
			break
		}

		e := paktype.NewEntry(container, m.AssetKind, pos, n)
		ix.logEntry(paktype.KindFile, j, e)
		entries = append(entries, e)

		pos = sizing.Align(pos+n, sizing.AlignUnit)
	}
	return entries, nil
}

// FindMarkers returns the offset of the first 16-byte aligned occurrence of
// each marker, or -1 for markers that were not found.
//
// The source is read in blocks from the start. The search ends once every
// marker is found, when a block is not a whole number of alignment units, or
// when less than one unit remains.
func FindMarkers(src Source, markers []Marker) ([]int64, error) {
	offsets := make([]int64, len(markers))
	for i := range offsets {
		offsets[i] = -1
	}
	if len(markers) == 0 {
		return offsets, nil
	}

	size := src.Size()
	buf := make([]byte, scanBlockSize)
	found := 0
	pos := int64(0)
	for {
		n, err := src.ReadAt(buf, pos)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: scan at 0x%08X: %w", paktype.ErrIO, pos, err)
		}
		tail := n % paktype.SignatureSize
		n -= tail

		for i := 0; i < n && found < len(markers); i += paktype.SignatureSize {
			found += matchMarker(buf[i:i+paktype.SignatureSize], pos+int64(i), markers, offsets)
		}
		if found >= len(markers) {
			break
		}

		pos += int64(n)
		if n == 0 || tail != 0 || size-pos < paktype.SignatureSize {
			break
		}
	}
	return offsets, nil
}

// matchMarker records pos for the first unfound marker equal to slot.
// It returns 1 if a marker was recorded.
func matchMarker(slot []byte, pos int64, markers []Marker, offsets []int64) int {
	for i := range markers {
		if offsets[i] < 0 && bytes.Equal(markers[i].Magic[:], slot) {
			offsets[i] = pos
			return 1
		}
	}
	return 0
}
