// Package sniff infers a file extension from the leading bytes and content of
// an extracted asset.
package sniff

import (
	"bytes"
	"unicode"
)

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G'}
	riffMagic = []byte("RIFF")
	waveTag   = []byte("WAVE")
)

// Extension returns ".png", ".wav", ".riff", ".txt" or ".bin" for the given content.
// Short slices fail the magic checks and fall through to the text heuristic.
func Extension(b []byte) string {
	if bytes.HasPrefix(b, pngMagic) {
		return ".png"
	}
	if bytes.HasPrefix(b, riffMagic) {
		if len(b) >= 12 && bytes.Equal(b[8:12], waveTag) {
			return ".wav"
		}
		return ".riff"
	}
	if isText(b) {
		return ".txt"
	}
	return ".bin"
}

// isText reports whether printable bytes outnumber control bytes.
// Line breaks count as printable.
func isText(b []byte) bool {
	var ctrl, chars int64
	for _, c := range b {
		if c != '\n' && c != '\r' && unicode.IsControl(rune(c)) {
			ctrl++
			continue
		}
		chars++
	}
	return float64(chars)/float64(max(ctrl, 1)) > 1.0
}
