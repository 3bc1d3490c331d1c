package cart

import (
	"encoding/json"
	"fmt"
	"math"

	"storefront/core/internal/domain"
)

// DecodeEntries parses a persisted cart and validates its shape instead of
// trusting parsed data silently. Entries failing validation reject the whole
// payload; the caller decides whether to fall back to an empty cart.
func DecodeEntries(data []byte) ([]domain.CartEntry, error) {
	var entries []domain.CartEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse persisted cart: %w", err)
	}

	seen := make(map[int]bool, len(entries))
	for i, e := range entries {
		if e.Product.ID <= 0 {
			return nil, fmt.Errorf("entry %d: missing product id", i)
		}
		if e.Quantity < 1 {
			return nil, fmt.Errorf("entry %d: quantity %d below 1", i, e.Quantity)
		}
		if math.IsNaN(e.Product.Price) || e.Product.Price < 0 {
			return nil, fmt.Errorf("entry %d: invalid price", i)
		}
		if seen[e.Product.ID] {
			return nil, fmt.Errorf("entry %d: duplicate product id %d", i, e.Product.ID)
		}
		seen[e.Product.ID] = true
	}

	return entries, nil
}

func EncodeEntries(entries []domain.CartEntry) ([]byte, error) {
	if entries == nil {
		entries = []domain.CartEntry{}
	}
	return json.Marshal(entries)
}
