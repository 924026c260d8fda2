package pagination

import "math"

const (
	// DefaultLimit is used when the caller sends no usable limit.
	DefaultLimit = 10
	// MaxLimit caps the page size of offset-paginated queries.
	MaxLimit = 100
	// MaxOffset bounds (page-1)*limit so the OFFSET stays a valid int4 for Postgres.
	MaxOffset = math.MaxInt32
)

// Limits configures page-size coercion.
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits returns the package defaults.
func DefaultLimits() Limits {
	return Limits{Default: DefaultLimit, Max: MaxLimit}
}

// Normalize coerces page and limit instead of rejecting them.
// Page is at least 1 and at most the page that starts at MaxOffset; a non-positive limit
// falls back to the default and is capped at Max.
func (l Limits) Normalize(page, limit int) (int, int) {
	def, maxLimit := l.Default, l.Max
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if def <= 0 || def > maxLimit {
		def = min(DefaultLimit, maxLimit)
	}
	if page < 1 {
		page = 1
	}
	switch {
	case limit < 1:
		limit = def
	case limit > maxLimit:
		limit = maxLimit
	}
	if lastPage := MaxOffset / limit; page > lastPage {
		page = lastPage
	}
	return page, limit
}

// TotalPages returns ceil(total/limit).
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Meta is the statement pagination block.
type Meta struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNext      bool `json:"hasNext"`
	HasPrevious  bool `json:"hasPrevious"`
}

// NewMeta builds statement pagination metadata.
func NewMeta(page, limit, total int) Meta {
	pages := TotalPages(total, limit)
	return Meta{
		CurrentPage:  page,
		TotalPages:   pages,
		TotalItems:   total,
		ItemsPerPage: limit,
		HasNext:      page < pages,
		HasPrevious:  page > 1,
	}
}
