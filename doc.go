// Package actpak finds, indexes and extracts assets packed into the
// container files shipped by ACTKOOL-built games.
//
// Two container kinds exist:
//   - Stream containers (.actstr): a 64-byte header followed by
//     length-prefixed chunks aligned to 16 bytes
//   - File containers (.actbin): typed asset tables located by 16-byte
//     module markers for audio and textures
//
// A Project drives the three phases in order: FindContainers validates
// candidates in a directory, ReadAssets builds the asset index, and
// ExtractAssets writes each asset to disk with a sniffed extension.
package actpak
