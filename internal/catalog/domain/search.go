package domain

// FilterAll is the sentinel for "no brand / no category filter".
const FilterAll = "all"

type SearchField string

const (
	FieldID          SearchField = "id"
	FieldBrand       SearchField = "brand"
	FieldProduct     SearchField = "product"
	FieldComposition SearchField = "composition"
	FieldAll         SearchField = "all"
)

type SearchType string

const (
	SearchTypeProduct SearchType = "product"
	SearchTypeBrand   SearchType = "brand"
)

type SortBy string

const (
	SortByName      SortBy = "name"
	SortByBrand     SortBy = "brand"
	SortByPriceLow  SortBy = "price-low"
	SortByPriceHigh SortBy = "price-high"
)

// SearchQuery mirrors the browser filters: brand, category, free text and sort,
// plus paging for "load more".
type SearchQuery struct {
	Brand    string      `form:"brand"`
	Category string      `form:"category"`
	Term     string      `form:"q"`
	Field    SearchField `form:"field"`
	Type     SearchType  `form:"type"`
	SortBy   SortBy      `form:"sort"`
	Offset   int         `form:"offset"`
	Limit    int         `form:"limit"`
	All      bool        `form:"all"`
}

type SearchResult struct {
	Items     []Product `json:"items"`
	Total     int       `json:"total"`
	Offset    int       `json:"offset"`
	Limit     int       `json:"limit"`
	HasMore   bool      `json:"has_more"`
	Remaining int       `json:"remaining"`
}

type Facets struct {
	Brands        []string `json:"brands"`
	Categories    []string `json:"categories"`
	TotalProducts int      `json:"total_products"`
}
