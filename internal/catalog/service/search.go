package service

import (
	"sort"
	"strings"

	"github.com/ridloal/pharma-catalog-go-microservices/internal/catalog/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterProducts applies brand, category and free-text filters in that order.
// The input slice is not modified and relative order is preserved.
func FilterProducts(products []domain.Product, q domain.SearchQuery, n domain.Normalizer) []domain.Product {
	brand := strings.TrimSpace(q.Brand)
	category := strings.TrimSpace(q.Category)
	term := ""
	if strings.TrimSpace(q.Term) != "" {
		term = n.Normalize(q.Term)
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !isAll(brand) && p.Brand != brand {
			continue
		}
		if !isAll(category) && p.Category != category {
			continue
		}
		if term != "" && !matchesTerm(p.Normalized, term, q.Type, q.Field) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func isAll(v string) bool {
	return v == "" || v == domain.FilterAll
}

func matchesTerm(np domain.NormalizedProduct, term string, st domain.SearchType, field domain.SearchField) bool {
	if st == domain.SearchTypeBrand {
		return strings.Contains(np.Brand, term)
	}
	switch field {
	case domain.FieldID:
		return strings.Contains(np.ID, term)
	case domain.FieldBrand:
		return strings.Contains(np.Brand, term)
	case domain.FieldProduct:
		return strings.Contains(np.Product, term)
	case domain.FieldComposition:
		return strings.Contains(np.Composition, term)
	default:
		return strings.Contains(np.All, term)
	}
}

// SortProducts returns a stably sorted copy. Unknown keys keep catalog order.
func SortProducts(products []domain.Product, by domain.SortBy) []domain.Product {
	sorted := make([]domain.Product, len(products))
	copy(sorted, products)

	switch by {
	case domain.SortByName:
		coll := collate.New(language.English)
		sort.SliceStable(sorted, func(i, j int) bool {
			return coll.CompareString(sorted[i].Product, sorted[j].Product) < 0
		})
	case domain.SortByBrand:
		coll := collate.New(language.English)
		sort.SliceStable(sorted, func(i, j int) bool {
			return coll.CompareString(sorted[i].Brand, sorted[j].Brand) < 0
		})
	case domain.SortByPriceLow:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price < sorted[j].Price
		})
	case domain.SortByPriceHigh:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[j].Price < sorted[i].Price
		})
	}
	return sorted
}

// Search is filter followed by sort; an empty SortBy sorts by name.
func Search(products []domain.Product, q domain.SearchQuery, n domain.Normalizer) []domain.Product {
	by := q.SortBy
	if by == "" {
		by = domain.SortByName
	}
	return SortProducts(FilterProducts(products, q, n), by)
}

// Paginate slices a sorted result for "load more" style browsing.
func Paginate(sorted []domain.Product, offset, limit int, all bool, pageSize int) domain.SearchResult {
	total := len(sorted)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	if all {
		limit = total - offset
	} else if limit <= 0 {
		limit = pageSize
	}

	// clamp sebelum dijumlah supaya limit besar tidak overflow
	n := limit
	if n > total-offset {
		n = total - offset
	}
	end := offset + n
	items := make([]domain.Product, end-offset)
	copy(items, sorted[offset:end])

	remaining := total - end
	return domain.SearchResult{
		Items:     items,
		Total:     total,
		Offset:    offset,
		Limit:     limit,
		HasMore:   remaining > 0,
		Remaining: remaining,
	}
}

// BuildFacets lists distinct brands and categories, sorted, each led by "all".
func BuildFacets(products []domain.Product) domain.Facets {
	brands := map[string]struct{}{}
	categories := map[string]struct{}{}
	for _, p := range products {
		brands[p.Brand] = struct{}{}
		categories[p.Category] = struct{}{}
	}
	return domain.Facets{
		Brands:        withAll(brands),
		Categories:    withAll(categories),
		TotalProducts: len(products),
	}
}

func withAll(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return append([]string{domain.FilterAll}, keys...)
}
