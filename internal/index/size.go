package index

import "github.com/dustin/go-humanize"

// sizeString renders a byte count for log output.
func sizeString(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}
