package sniff

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtension(t *testing.T) {
	t.Parallel()

	wav := append([]byte("RIFF\x24\x00\x00\x00WAVE"), bytes.Repeat([]byte{0}, 32)...)
	riff := append([]byte("RIFF\x24\x00\x00\x00AVI "), bytes.Repeat([]byte{0}, 32)...)

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"png magic", []byte{0x89, 0x50, 0x4E, 0x47}, ".png"},
		{"png with binary body", append([]byte{0x89, 0x50, 0x4E, 0x47}, bytes.Repeat([]byte{0}, 64)...), ".png"},
		{"png with text body", append([]byte{0x89, 0x50, 0x4E, 0x47}, []byte("hello world")...), ".png"},
		{"wave", wav, ".wav"},
		{"riff other subtype", riff, ".riff"},
		{"riff shorter than subtype", []byte("RIFF\x00\x00"), ".riff"},
		{"letters", []byte("abcdefghijklmnopqrstuvwxyz"), ".txt"},
		{"text with line breaks", []byte("line one\r\nline two\n"), ".txt"},
		{"all nul", make([]byte, 64), ".bin"},
		{"control heavy", []byte{0x01, 0x02, 0x03, 'a'}, ".bin"},
		{"even split is binary", []byte{0x00, 'a'}, ".bin"},
		{"single letter", []byte("a"), ".bin"},
		{"two letters", []byte("ab"), ".txt"},
		{"empty", nil, ".bin"},
		{"c1 controls", []byte{0x80, 0x85, 0x9F, 'z'}, ".bin"},
		{"latin1 is printable", []byte{0xE9, 0xE8, 0xEA}, ".txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Extension(tt.data))
		})
	}
}

func TestExtensionRIFFSubtypeReplaced(t *testing.T) {
	t.Parallel()

	data := []byte{0x52, 0x49, 0x46, 0x46, 1, 2, 3, 4, 0x57, 0x41, 0x56, 0x45}
	assert.Equal(t, ".wav", Extension(data))

	data[11] = 'X'
	assert.Equal(t, ".riff", Extension(data))
}
