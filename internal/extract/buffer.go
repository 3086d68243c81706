package extract

import (
	"github.com/meigma/actpak/internal/paktype"
	"github.com/meigma/actpak/internal/sizing"
)

// scratch owns the reusable read regions for one extraction call.
//
// Small and large tier reads are served by slicing a shared region, so the
// returned buffer is only valid until the next acquire. The large region is
// allocated on first use.
type scratch struct {
	small []byte
	large []byte
}

func newScratch() *scratch {
	return &scratch{small: make([]byte, sizing.SmallTierLimit)}
}

// acquire returns a buffer of exactly e.Length bytes for e's tier.
// An entry whose length exceeds its tier's region gets a fresh buffer.
func (s *scratch) acquire(e paktype.Entry) ([]byte, error) {
	n, err := sizing.ToInt(e.Length, paktype.ErrSizeOverflow)
	if err != nil {
		return nil, err
	}
	switch e.Tier {
	case sizing.TierSmall:
		if n <= len(s.small) {
			return s.small[:n], nil
		}
	case sizing.TierLarge:
		if n <= sizing.LargeTierLimit {
			if s.large == nil {
				s.large = make([]byte, sizing.LargeTierLimit)
			}
			return s.large[:n], nil
		}
	}
	return make([]byte, n), nil
}
