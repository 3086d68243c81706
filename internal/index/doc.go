// Package index scans containers for embedded assets.
//
// Stream containers hold a flat sequence of length-prefixed chunks after a
// 64-byte header. File containers hold one table per sub-format, located by
// searching for a 16-byte marker. Both layouts pad every payload to the next
// 16-byte boundary measured from the start of the container.
package index
