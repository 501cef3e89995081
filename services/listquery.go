package services

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// MatchMode tags how a filterable field is compared.
type MatchMode int

const (
	// MatchExact applies an equality predicate.
	MatchExact MatchMode = iota
	// MatchPartial applies a case-insensitive substring predicate.
	MatchPartial
	// MatchRange reads <param>_desde / <param>_hasta date bounds, each
	// optional and applied independently.
	MatchRange
	// MatchBool parses the value as a boolean and binds it typed, so MySQL
	// compares against tinyint columns correctly.
	MatchBool
)

// FilterField maps one request parameter to a column predicate.
type FilterField struct {
	Param  string
	Column string
	Mode   MatchMode
}

// ListSpec is the fixed per-entity configuration of the list query contract:
// which fields filter, which sort, and how pagination clamps.
type ListSpec struct {
	Filters        []FilterField
	SortFields     []string
	DefaultSort    string
	DefaultDir     string
	DefaultPerPage int
	MaxPerPage     int
	Preloads       []string
}

const (
	DefaultPerPage = 15
	MaxPerPage     = 100

	rangeDateLayout = "2006-01-02"
)

// ApplyFilters adds a predicate for every configured filter present and
// well-formed in params, and returns the query plus the applied name→value
// map. Malformed values (e.g. an unparsable date bound) are skipped rather
// than rejected.
func (s ListSpec) ApplyFilters(query *gorm.DB, params url.Values) (*gorm.DB, map[string]string) {
	applied := make(map[string]string)

	for _, f := range s.Filters {
		switch f.Mode {
		case MatchExact:
			value := strings.TrimSpace(params.Get(f.Param))
			if value == "" {
				continue
			}
			query = query.Where(f.Column+" = ?", value)
			applied[f.Param] = value

		case MatchPartial:
			value := strings.TrimSpace(params.Get(f.Param))
			if value == "" {
				continue
			}
			query = query.Where(f.Column+" LIKE ?", "%"+value+"%")
			applied[f.Param] = value

		case MatchBool:
			value := strings.TrimSpace(params.Get(f.Param))
			if value == "" {
				continue
			}
			parsed, err := strconv.ParseBool(value)
			if err != nil {
				continue
			}
			query = query.Where(f.Column+" = ?", parsed)
			applied[f.Param] = strconv.FormatBool(parsed)

		case MatchRange:
			desde := strings.TrimSpace(params.Get(f.Param + "_desde"))
			if desde != "" {
				if _, err := time.Parse(rangeDateLayout, desde); err == nil {
					query = query.Where("DATE("+f.Column+") >= ?", desde)
					applied[f.Param+"_desde"] = desde
				}
			}
			hasta := strings.TrimSpace(params.Get(f.Param + "_hasta"))
			if hasta != "" {
				if _, err := time.Parse(rangeDateLayout, hasta); err == nil {
					query = query.Where("DATE("+f.Column+") <= ?", hasta)
					applied[f.Param+"_hasta"] = hasta
				}
			}
		}
	}

	return query, applied
}

// ResolveSort validates sort_by against the allow-list and sort_direction
// against {asc, desc}; out-of-list values silently fall back to the defaults.
func (s ListSpec) ResolveSort(sortBy, direction string) (string, string) {
	resolved := s.DefaultSort
	for _, field := range s.SortFields {
		if sortBy == field {
			resolved = sortBy
			break
		}
	}

	dir := strings.ToLower(strings.TrimSpace(direction))
	if dir != "asc" && dir != "desc" {
		dir = s.DefaultDir
		if dir == "" {
			dir = "desc"
		}
	}

	return resolved, dir
}

// PerPage clamps the raw per_page parameter into [1, MaxPerPage]; absent or
// non-numeric values become the configured default.
func (s ListSpec) PerPage(raw string) int {
	defaultPerPage := s.DefaultPerPage
	if defaultPerPage == 0 {
		defaultPerPage = DefaultPerPage
	}
	maxPerPage := s.MaxPerPage
	if maxPerPage == 0 {
		maxPerPage = MaxPerPage
	}

	if strings.TrimSpace(raw) == "" {
		return defaultPerPage
	}
	perPage, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return defaultPerPage
	}
	if perPage < 1 {
		return 1
	}
	if perPage > maxPerPage {
		return maxPerPage
	}
	return perPage
}

// Page parses the page cursor; anything below 1 or non-numeric becomes 1.
func Page(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ListResult describes what one executed list query applied and matched.
type ListResult struct {
	Applied    map[string]string
	SortBy     string
	SortDir    string
	Page       int
	PerPage    int
	TotalCount int64
	Returned   int
}

// LastPage returns the number of the final page for the matched total.
func (r ListResult) LastPage() int64 {
	perPage := int64(r.PerPage)
	if perPage < 1 {
		return 1
	}
	last := (r.TotalCount + perPage - 1) / perPage
	if last < 1 {
		last = 1
	}
	return last
}

// From returns the 1-based index of the first item on this page, 0 when the
// page is empty.
func (r ListResult) From() int {
	if r.Returned == 0 {
		return 0
	}
	return (r.Page-1)*r.PerPage + 1
}

// To returns the 1-based index of the last item on this page, 0 when the
// page is empty.
func (r ListResult) To() int {
	if r.Returned == 0 {
		return 0
	}
	return r.From() + r.Returned - 1
}

// Run executes the contract against base: filters, count, sort, paginate,
// preloads, and fills dest with the page of items.
func (s ListSpec) Run(base *gorm.DB, params url.Values, dest interface{}) (ListResult, error) {
	query, applied := s.ApplyFilters(base, params)

	sortBy, sortDir := s.ResolveSort(params.Get("sort_by"), params.Get("sort_direction"))
	perPage := s.PerPage(params.Get("per_page"))
	page := Page(params.Get("page"))

	result := ListResult{
		Applied: applied,
		SortBy:  sortBy,
		SortDir: sortDir,
		Page:    page,
		PerPage: perPage,
	}

	if err := query.Session(&gorm.Session{}).Count(&result.TotalCount).Error; err != nil {
		return result, err
	}

	for _, preload := range s.Preloads {
		query = query.Preload(preload)
	}

	offset := (page - 1) * perPage
	find := query.Order(sortBy + " " + strings.ToUpper(sortDir)).
		Offset(offset).
		Limit(perPage).
		Find(dest)
	if find.Error != nil {
		return result, find.Error
	}
	result.Returned = int(find.RowsAffected)

	return result, nil
}
