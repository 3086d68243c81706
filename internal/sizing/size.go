// Package sizing provides buffer tier selection and safe size arithmetic for
// container offsets.
package sizing

import "math"

const (
	// SmallTierLimit is the largest length served from the small scratch region (48KB).
	SmallTierLimit = 48 << 10

	// LargeTierLimit is the largest length served from the large scratch region (64MB).
	LargeTierLimit = 64 << 20

	// AlignUnit is the boundary that container payloads are padded to.
	AlignUnit = 16
)

// Tier identifies how a read buffer is acquired for an asset.
type Tier uint8

const (
	// TierSmall reuses the small scratch region.
	TierSmall Tier = iota

	// TierLarge reuses the large scratch region.
	TierLarge

	// TierOversized allocates a fresh buffer per asset.
	TierOversized
)

// String returns the human-readable name of the tier.
func (t Tier) String() string {
	switch t {
	case TierSmall:
		return "small"
	case TierLarge:
		return "large"
	case TierOversized:
		return "oversized"
	default:
		return "unknown"
	}
}

// TierOf returns the buffer tier for a payload of n bytes.
func TierOf(n int64) Tier {
	if n > LargeTierLimit {
		return TierOversized
	}
	if n > SmallTierLimit {
		return TierLarge
	}
	return TierSmall
}

// Align rounds pos up to the next multiple of unit.
// Positions already on a boundary are returned unchanged.
func Align(pos, unit int64) int64 {
	if mod := pos % unit; mod > 0 {
		return pos + unit - mod
	}
	return pos
}

// ToInt converts an int64 to int, returning overflowErr if it is negative or doesn't fit.
func ToInt(size int64, overflowErr error) (int, error) {
	if size < 0 || uint64(size) > uint64(math.MaxInt) {
		return 0, overflowErr
	}
	return int(size), nil
}

// AddInt64 adds two non-negative int64 values, returning (result, false) on overflow.
func AddInt64(a, b int64) (int64, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}
