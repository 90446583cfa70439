package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

const lowStockThreshold = 5

// Sort keys accepted by SortSweets, matching the storefront's dropdown.
const (
	SortByName      = "name"
	SortByPriceLow  = "price-low"
	SortByPriceHigh = "price-high"
	SortByStock     = "stock"
)

// FilterByCategory returns the sweets in the given category;
// "All" (or empty) passes everything through.
func FilterByCategory(sweets []Sweet, category string) []Sweet {
	if category == "" || strings.EqualFold(category, "All") {
		return sweets
	}
	out := make([]Sweet, 0, len(sweets))
	for _, s := range sweets {
		if strings.EqualFold(s.Category, category) {
			out = append(out, s)
		}
	}
	return out
}

// Categories lists the distinct categories present, sorted.
func Categories(sweets []Sweet) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range sweets {
		key := strings.ToLower(s.Category)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s.Category)
	}
	sort.Strings(out)
	return out
}

// SortSweets orders a copy of sweets by the given key. Unknown keys fall
// back to name order.
func SortSweets(sweets []Sweet, by string) []Sweet {
	out := append([]Sweet(nil), sweets...)
	switch by {
	case SortByPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortByPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	case SortByStock:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	}
	return out
}

// ComputeStats builds the admin inventory summary client-side.
func ComputeStats(sweets []Sweet) Stats {
	stats := Stats{InventoryValue: decimal.Zero}
	for _, s := range sweets {
		stats.TotalSweets++
		stats.TotalStock += s.Quantity
		switch {
		case s.Quantity == 0:
			stats.OutOfStock = append(stats.OutOfStock, s.Name)
		case s.Quantity <= lowStockThreshold:
			stats.LowStock = append(stats.LowStock, s.Name)
		}
		stats.InventoryValue = stats.InventoryValue.Add(
			s.Price.Mul(decimal.NewFromInt(int64(s.Quantity))))
	}
	stats.Categories = len(Categories(sweets))
	return stats
}
