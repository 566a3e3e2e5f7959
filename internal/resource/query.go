package resource

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Pagination defaults and cap.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Reserved query parameter names recognized by the list operation. Anything
// else becomes an equality filter.
const (
	paramPage      = "page"
	paramLimit     = "limit"
	paramSearch    = "search"
	paramStartDate = "startDate"
	paramEndDate   = "endDate"
)

// dateLayout is the calendar-date format accepted in query parameters.
const dateLayout = "2006-01-02"

// Params is the resolved query specification for one list request. It is
// transient: built per request, never persisted.
type Params struct {
	Page      int
	Limit     int
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
	// Filters holds the remaining parameters as field equality filters,
	// unvalidated at this layer.
	Filters map[string]string
}

// ParseParams resolves raw query values into Params. Invalid or missing
// pagination values fall back to defaults; unparseable dates are ignored.
func ParseParams(values url.Values) Params {
	p := Params{
		Page:    DefaultPage,
		Limit:   DefaultLimit,
		Filters: make(map[string]string),
	}

	if v := values.Get(paramPage); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Page = n
		}
	}
	if v := values.Get(paramLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Limit = n
			if p.Limit > MaxLimit {
				p.Limit = MaxLimit
			}
		}
	}

	p.Search = strings.TrimSpace(values.Get(paramSearch))
	p.StartDate = parseDate(values.Get(paramStartDate))
	p.EndDate = parseDate(values.Get(paramEndDate))

	for key, vals := range values {
		switch key {
		case paramPage, paramLimit, paramSearch, paramStartDate, paramEndDate:
			continue
		}
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		p.Filters[key] = vals[0]
	}

	return p
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	return nil
}

// Offset returns the row offset implied by page and limit.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Query is a store-level predicate rendered from a descriptor and Params.
type Query struct {
	Where   string
	Args    []any
	OrderBy string
	Limit   int
	Offset  int
}

// Build translates Params into a Query for the given descriptor and owner.
// It is a pure function. The owner predicate is always present and cannot be
// overridden: a user_id request parameter never reaches the filter set.
func Build(d Descriptor, p Params, ownerID string) Query {
	conds := []string{ColumnOwner + " = $1"}
	args := []any{ownerID}
	next := 2

	if p.StartDate != nil {
		conds = append(conds, fmt.Sprintf("%s >= $%d", d.DateField, next))
		args = append(args, *p.StartDate)
		next++
	}
	if p.EndDate != nil {
		conds = append(conds, fmt.Sprintf("%s <= $%d", d.DateField, next))
		args = append(args, *p.EndDate)
		next++
	}

	if p.Search != "" && len(d.SearchFields) > 0 {
		ors := make([]string, len(d.SearchFields))
		for i, f := range d.SearchFields {
			ors[i] = fmt.Sprintf("%s ILIKE $%d", f, next)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
		args = append(args, "%"+escapeLike(p.Search)+"%")
		next++
	}

	// Deterministic filter order keeps the rendered SQL stable for a given
	// request shape.
	keys := make([]string, 0, len(p.Filters))
	for k := range p.Filters {
		if k == ColumnOwner {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !d.HasColumn(k) {
			// Unknown field: match nothing rather than error. Open
			// question whether strict rejection would serve better;
			// keeping the permissive behavior for now.
			conds = append(conds, "FALSE")
			continue
		}
		conds = append(conds, fmt.Sprintf("%s = $%d", k, next))
		args = append(args, p.Filters[k])
		next++
	}

	return Query{
		Where:   strings.Join(conds, " AND "),
		Args:    args,
		OrderBy: d.orderBy(),
		Limit:   p.Limit,
		Offset:  p.Offset(),
	}
}

// escapeLike escapes LIKE metacharacters so search terms match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
