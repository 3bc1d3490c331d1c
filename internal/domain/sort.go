package domain

type SortKey string

func (s SortKey) String() string {
	return string(s)
}

const (
	SortDefault   SortKey = "default"    // Catalog order
	SortPriceAsc  SortKey = "price-asc"  // Price: Low to High
	SortPriceDesc SortKey = "price-desc" // Price: High to Low
	SortNameAsc   SortKey = "name-asc"   // Name: A to Z
	SortNameDesc  SortKey = "name-desc"  // Name: Z to A
)

var SortKeys = []SortKey{
	SortDefault,
	SortPriceAsc,
	SortPriceDesc,
	SortNameAsc,
	SortNameDesc,
}

func (s SortKey) Label() string {
	switch s {
	case SortPriceAsc:
		return "Price: Low to High"
	case SortPriceDesc:
		return "Price: High to Low"
	case SortNameAsc:
		return "Name: A to Z"
	case SortNameDesc:
		return "Name: Z to A"
	default:
		return "Default"
	}
}

// Valid reports whether s is one of the known sort keys.
func (s SortKey) Valid() bool {
	switch s {
	case SortDefault, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return true
	default:
		return false
	}
}
