package actpak

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDir(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"only quotes", `""`, ""},
		{"plain dir", "games/title", "games/title"},
		{"quoted dir", `"games/title"`, "games/title"},
		{"inner quotes", `games/"my title"`, "games/my title"},
		{"file path", "games/title/data.actbin", "games/title"},
		{"quoted file path", `"games/title/Game.exe"`, "games/title"},
		{"bare file", "Game.exe", "."},
		{"whitespace", "  games/title  ", "games/title"},
		{"dot", ".", "."},
		{"dotdot", "..", ".."},
		{"trailing dot", "games/title.", "games/title."},
		{"dotted parent", "games.v2/title", "games.v2/title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDir(filepath.FromSlash(tt.input))
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}
