// Package cli implements the actpak command line: flag and config handling,
// the interactive wizard, log setup and the three extraction phases.
package cli
