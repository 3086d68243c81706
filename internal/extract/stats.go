package extract

// Stats contains statistics from an extraction pass.
type Stats struct {
	// Extracted is the number of assets written to the sink.
	Extracted int

	// Skipped is the number of assets that yielded no bytes.
	Skipped int

	// TotalBytes is the sum of bytes written for all extracted assets.
	TotalBytes uint64
}

// Add accumulates stats from another Stats into this one.
func (s *Stats) Add(other Stats) {
	s.Extracted += other.Extracted
	s.Skipped += other.Skipped
	s.TotalBytes += other.TotalBytes
}
