// Package config loads actpak settings from defaults, an optional config
// file, ACTPAK_* environment variables and command-line flags, in increasing
// order of precedence.
package config
