package option

import (
	"strings"

	"gorm.io/gorm"
)

// QueryOption mutates a gorm statement before it is executed.
type QueryOption interface {
	Apply(stmt *gorm.DB) *gorm.DB
}

type SortBy struct {
	Column string
	Desc   bool
}

// WithQuerySortBy resolves user supplied sort_by/order_by values against an
// allow-list of sort keys to column expressions. Unknown keys fall back to
// fallback.
func WithQuerySortBy(sortBy, orderBy string, allowed map[string]string, fallback string) SortBy {
	key := strings.ToLower(strings.TrimSpace(sortBy))
	column, ok := allowed[key]
	if !ok {
		column = allowed[fallback]
	}
	return SortBy{
		Column: column,
		Desc:   strings.EqualFold(strings.TrimSpace(orderBy), "desc"),
	}
}

type sortOption struct {
	sort SortBy
}

func WithSortBy(sort SortBy) QueryOption {
	return sortOption{sort: sort}
}

func (o sortOption) Apply(stmt *gorm.DB) *gorm.DB {
	if o.sort.Column == "" {
		return stmt
	}
	direction := " ASC"
	if o.sort.Desc {
		direction = " DESC"
	}
	return stmt.Order(o.sort.Column + direction)
}

type limitOption struct {
	limit int
}

// WithLimit caps the result size; non-positive values leave it unbounded.
func WithLimit(limit int) QueryOption {
	return limitOption{limit: limit}
}

func (o limitOption) Apply(stmt *gorm.DB) *gorm.DB {
	if o.limit <= 0 {
		return stmt
	}
	return stmt.Limit(o.limit)
}

func ApplyAll(stmt *gorm.DB, opts ...QueryOption) *gorm.DB {
	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}
	return stmt
}
