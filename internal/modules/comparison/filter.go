package comparison

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// EcoFriendlyScore is the lowest eco score counted as eco-friendly.
const EcoFriendlyScore = 8

// ParseSortKey maps "" to SortPrice.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortPrice, nil
	case SortPrice, SortTime, SortEco:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSort, s)
	}
}

// ParseProviders accepts a comma separated, case-insensitive list.
func ParseProviders(s string) ([]Provider, error) {
	var out []Provider
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		found := false
		for _, p := range Providers() {
			if strings.EqualFold(part, string(p)) {
				out = append(out, p)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: unknown provider %q", ErrBadQuery, part)
		}
	}
	return out, nil
}

func ParseCategories(s string) ([]Category, error) {
	var out []Category
	for _, part := range strings.Split(s, ",") {
		c := Category(strings.ToLower(strings.TrimSpace(part)))
		switch c {
		case "":
			continue
		case CategorySedan, CategoryAuto, CategoryBike, CategoryPremium:
			out = append(out, c)
		default:
			return nil, fmt.Errorf("%w: unknown category %q", ErrBadQuery, part)
		}
	}
	return out, nil
}

// Apply returns the options that pass f, preserving order.
func (f Filter) Apply(opts []Option) []Option {
	out := make([]Option, 0, len(opts))
	for _, o := range opts {
		if f.keep(o) {
			out = append(out, o)
		}
	}
	return out
}

func (f Filter) keep(o Option) bool {
	if len(f.Providers) > 0 && !slices.Contains(f.Providers, o.Provider) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, o.Category) {
		return false
	}
	if f.MaxPrice > 0 && o.Price > f.MaxPrice {
		return false
	}
	if f.MaxETA > 0 && o.ETAMin > f.MaxETA {
		return false
	}
	if f.MinRating > 0 && o.Rating < f.MinRating {
		return false
	}
	if f.DiscountOnly && !o.Discount {
		return false
	}
	if f.EcoFriendly && o.EcoScore < EcoFriendlyScore {
		return false
	}
	return true
}

// Sort orders opts in place: price and time ascending, eco descending. Ties keep their order.
func Sort(opts []Option, key SortKey) {
	switch key {
	case SortTime:
		slices.SortStableFunc(opts, func(a, b Option) int { return a.ETAMin - b.ETAMin })
	case SortEco:
		slices.SortStableFunc(opts, func(a, b Option) int { return b.EcoScore - a.EcoScore })
	default:
		slices.SortStableFunc(opts, func(a, b Option) int { return cmp.Compare(a.Price, b.Price) })
	}
}
