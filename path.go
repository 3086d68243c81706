package actpak

import (
	"path/filepath"
	"strings"
)

// NormalizeDir converts a user-provided path to a directory path.
//
// It performs the following transformations:
//   - Strips double quotes: `"C:\Games\Title"` → `C:\Games\Title`
//   - Replaces a path with an extension by its parent: "game/data.actbin" → "game"
//   - Trims surrounding whitespace
//
// A trailing dot alone is not an extension, so "." and ".." are kept.
// An empty result is returned unchanged; callers apply their own default.
func NormalizeDir(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, `"`, ""))
	if p == "" {
		return ""
	}
	if len(filepath.Ext(p)) > 1 {
		return filepath.Dir(p)
	}
	return p
}
