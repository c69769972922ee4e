// Package query turns untrusted list parameters into a bounded, owner scoped job query.
package query

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Sort options accepted from clients
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortAZ     = "a-z"
	SortZA     = "z-a"
)

// FilterAll disables the status or type filter
const FilterAll = "all"

// Sortable fields, stores translate them to their own column names.
const (
	FieldCreatedAt = "createdAt"
	FieldPosition  = "position"
)

// DefaultPageLimit is the page size used when none is configured
const DefaultPageLimit = 10

// Params is the raw query string of a list request. Every field is untrusted.
type Params struct {
	Search    string `form:"search"`
	JobStatus string `form:"jobStatus"`
	JobType   string `form:"jobType"`
	Sort      string `form:"sort"`
	Page      string `form:"page"`
	Limit     string `form:"limit"`
}

// SortKey is a concrete store ordering
type SortKey struct {
	Field string
	Desc  bool
}

var sortKeys = map[string]SortKey{
	SortNewest: {Field: FieldCreatedAt, Desc: true},
	SortOldest: {Field: FieldCreatedAt, Desc: false},
	SortAZ:     {Field: FieldPosition, Desc: false},
	SortZA:     {Field: FieldPosition, Desc: true},
}

// Query is a safe store query. OwnerID is always set and never taken from the client.
type Query struct {
	OwnerID   string
	Search    string
	JobStatus string
	JobType   string
	Sort      SortKey
	Page      int
	Skip      int
	Limit     int
}

// LikePattern returns the search text as a SQL LIKE pattern matching it literally as a substring.
func (q Query) LikePattern() string {
	return "%" + EscapeLike(q.Search) + "%"
}

// RegexPattern returns the search text as a regular expression matching it literally.
func (q Query) RegexPattern() string {
	return regexp.QuoteMeta(q.Search)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards using backslash, PostgreSQL's default escape character.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Builder builds queries with a server controlled page size.
type Builder struct {
	// PageLimit is the page size applied to every list.
	PageLimit int
	// MaxClientLimit allows clients to pick a page size up to this value, 0 keeps PageLimit fixed.
	MaxClientLimit int
}

// NewBuilder returns a Builder with a fixed page size
func NewBuilder(pageLimit, maxClientLimit int) *Builder {
	if pageLimit < 1 {
		pageLimit = DefaultPageLimit
	}
	if maxClientLimit < 0 {
		maxClientLimit = 0
	}
	return &Builder{PageLimit: pageLimit, MaxClientLimit: maxClientLimit}
}

// Build converts raw params into a Query scoped to ownerID.
func (b *Builder) Build(ownerID string, p Params) Query {
	limit := b.limit(p.Limit)
	page := positiveInt(p.Page, 1)
	// Skip must not overflow.
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}

	return Query{
		OwnerID:   ownerID,
		Search:    cleanSearch(p.Search),
		JobStatus: enumFilter(p.JobStatus),
		JobType:   enumFilter(p.JobType),
		Sort:      ResolveSort(p.Sort),
		Page:      page,
		Skip:      (page - 1) * limit,
		Limit:     limit,
	}
}

func (b *Builder) limit(raw string) int {
	limit := b.PageLimit
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if b.MaxClientLimit == 0 || raw == "" {
		return limit
	}
	requested := positiveInt(raw, limit)
	if requested > b.MaxClientLimit {
		return b.MaxClientLimit
	}
	return requested
}

// ResolveSort maps a client sort option to a SortKey, unknown values fall back to newest.
func ResolveSort(raw string) SortKey {
	if key, ok := sortKeys[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return key
	}
	return sortKeys[SortNewest]
}

// cleanSearch drops invalid UTF-8 and NUL bytes, neither can be sent to the stores.
func cleanSearch(raw string) string {
	s := strings.ToValidUTF8(raw, "")
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(s)
}

func enumFilter(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" || strings.EqualFold(v, FilterAll) {
		return ""
	}
	return v
}

// positiveInt parses raw and clamps it to >= 1, falling back to def when raw is not a number.
func positiveInt(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	if n < 1 {
		return 1
	}
	return n
}

// Page is the paginated result of an executed Query
type Page[T any] struct {
	TotalCount    int64
	NumberOfPages int
	CurrentPage   int
	Items         []T
}

// NewPage computes pagination metadata for items returned by q.
func NewPage[T any](q Query, total int64, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		TotalCount:    total,
		NumberOfPages: NumberOfPages(total, q.Limit),
		CurrentPage:   q.Page,
		Items:         items,
	}
}

// NumberOfPages returns ceil(total/limit), treating limit < 1 as 1.
func NumberOfPages(total int64, limit int) int {
	if limit < 1 {
		limit = 1
	}
	if total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
