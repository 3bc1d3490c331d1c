package catalog

import (
	"slices"
	"strings"

	"storefront/core/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterAndSort returns the products matching the category, ordered by the
// sort key. The input slice is never mutated. Category matching is exact and
// case-sensitive; an unmatched category yields an empty result, which is a
// valid state. Sorting is stable so ties keep their catalog order.
func FilterAndSort(products []domain.Product, category string, sortKey domain.SortKey) []domain.Product {
	result := FilterByCategory(products, category)
	return sortInPlace(result, sortKey)
}

// FilterByCategory returns a copy of products narrowed to the given category.
// CategoryAll (and the empty string) match everything.
func FilterByCategory(products []domain.Product, category string) []domain.Product {
	if category == "" || category == domain.CategoryAll {
		return slices.Clone(products)
	}

	result := make([]domain.Product, 0)
	for _, p := range products {
		if p.Category == category {
			result = append(result, p)
		}
	}
	return result
}

// SortProducts returns a sorted copy of products per the sort key. The default
// key preserves the input order.
func SortProducts(products []domain.Product, sortKey domain.SortKey) []domain.Product {
	return sortInPlace(slices.Clone(products), sortKey)
}

// sortInPlace assumes ownership of products, which must already be a copy.
func sortInPlace(products []domain.Product, sortKey domain.SortKey) []domain.Product {
	switch sortKey {
	case domain.SortPriceAsc:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return comparePrice(a.Price, b.Price)
		})
	case domain.SortPriceDesc:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return comparePrice(b.Price, a.Price)
		})
	case domain.SortNameAsc:
		c := newTitleCollator()
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return c.CompareString(a.Title, b.Title)
		})
	case domain.SortNameDesc:
		c := newTitleCollator()
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return c.CompareString(b.Title, a.Title)
		})
	default:
		// Keep catalog order
	}

	return products
}

// Search returns products whose title, description, or category contains the
// query, case-insensitively. A blank query matches everything.
func Search(products []domain.Product, query string) []domain.Product {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return slices.Clone(products)
	}

	result := make([]domain.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), query) ||
			strings.Contains(strings.ToLower(p.Description), query) ||
			strings.Contains(strings.ToLower(p.Category), query) {
			result = append(result, p)
		}
	}
	return result
}

// CategoryStats counts products per category.
func CategoryStats(products []domain.Product) map[string]int {
	stats := make(map[string]int)
	for _, p := range products {
		stats[p.Category]++
	}
	return stats
}

// PriceStats holds min/max/average price over a product list.
type PriceStats struct {
	Min     float64
	Max     float64
	Average float64
}

func ComputePriceStats(products []domain.Product) PriceStats {
	if len(products) == 0 {
		return PriceStats{}
	}

	stats := PriceStats{
		Min: products[0].Price,
		Max: products[0].Price,
	}

	var sum float64
	for _, p := range products {
		if p.Price < stats.Min {
			stats.Min = p.Price
		}
		if p.Price > stats.Max {
			stats.Max = p.Price
		}
		sum += p.Price
	}

	stats.Average = sum / float64(len(products))
	return stats
}

func comparePrice(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Collator instances are not safe for concurrent use, so each sort gets its own.
func newTitleCollator() *collate.Collator {
	return collate.New(language.English)
}
