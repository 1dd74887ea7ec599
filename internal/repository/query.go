package repository

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"hotel-booking-api/internal/apperror"

	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 25
	maxLimit     = 100
)

// QuerySchema is the allow-list of filterable and sortable fields of a listing,
// mapping the public parameter name to its column
type QuerySchema struct {
	Filters     map[string]string
	Sorts       map[string]string
	DefaultSort string
}

// ListQuery is a parsed, validated listing request
type ListQuery struct {
	Filters map[string]string
	Sort    []string
	Page    int
	Limit   int
}

type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// reserved parameters are never treated as filters
var reservedParams = map[string]bool{"select": true, "sort": true, "page": true, "limit": true}

// ParseListQuery builds a ListQuery from query-string values. Unknown filter or sort
// fields are rejected.
func ParseListQuery(values url.Values, schema QuerySchema) (ListQuery, error) {
	q := ListQuery{
		Filters: map[string]string{},
		Page:    defaultPage,
		Limit:   defaultLimit,
	}

	var unknown []string
	for key, vals := range values {
		if reservedParams[key] {
			continue
		}
		if _, ok := schema.Filters[key]; !ok {
			unknown = append(unknown, key)
			continue
		}
		if len(vals) > 0 {
			q.Filters[key] = vals[0]
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return q, apperror.InvalidInput("Unknown filter field(s): %s", strings.Join(unknown, ", "))
	}

	if raw := values.Get("sort"); raw != "" {
		for _, field := range strings.Split(raw, ",") {
			field = strings.TrimSpace(field)
			if _, ok := schema.Sorts[strings.TrimPrefix(field, "-")]; !ok {
				return q, apperror.InvalidInput("Unknown sort field: %s", field)
			}
			q.Sort = append(q.Sort, field)
		}
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		q.Limit = min(limit, maxLimit)
	}

	return q, nil
}

// apply adds filters and ordering. Field names come only from the schema, values are bound.
func (q ListQuery) apply(db *gorm.DB, schema QuerySchema) *gorm.DB {
	keys := make([]string, 0, len(q.Filters))
	for key := range q.Filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		column, ok := schema.Filters[key]
		if !ok {
			continue
		}
		db = db.Where(column+" = ?", q.Filters[key])
	}

	if len(q.Sort) == 0 {
		return db.Order(schema.DefaultSort)
	}
	for _, field := range q.Sort {
		column, ok := schema.Sorts[strings.TrimPrefix(field, "-")]
		if !ok {
			continue
		}
		if strings.HasPrefix(field, "-") {
			db = db.Order(column + " DESC")
		} else {
			db = db.Order(column + " ASC")
		}
	}
	return db
}

func (q ListQuery) paginate(db *gorm.DB) *gorm.DB {
	return db.Offset((q.Page - 1) * q.Limit).Limit(q.Limit)
}

// Pagination computes next/prev links for a listing of total rows
func (q ListQuery) Pagination(total int64) Pagination {
	var p Pagination
	startIndex := (q.Page - 1) * q.Limit
	endIndex := q.Page * q.Limit

	if int64(endIndex) < total {
		p.Next = &PageRef{Page: q.Page + 1, Limit: q.Limit}
	}
	if startIndex > 0 {
		p.Prev = &PageRef{Page: q.Page - 1, Limit: q.Limit}
	}
	return p
}
