package resource

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

var testDesc = MustDescriptor(Descriptor{
	Table:        "journals",
	Columns:      []string{"id", "user_id", "title", "content", "date", "created_at", "updated_at"},
	Writable:     []string{"title", "content", "date"},
	Required:     []string{"content", "date"},
	SearchFields: []string{"title", "content"},
	SortDesc:     true,
	DailyUnique:  true,
})

func TestParseParams_Defaults(t *testing.T) {
	t.Parallel()

	p := ParseParams(url.Values{})

	if p.Page != DefaultPage {
		t.Errorf("expected default page %d, got %d", DefaultPage, p.Page)
	}
	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Search != "" {
		t.Errorf("expected empty search, got %q", p.Search)
	}
	if p.StartDate != nil || p.EndDate != nil {
		t.Error("expected nil date bounds")
	}
	if len(p.Filters) != 0 {
		t.Errorf("expected no filters, got %v", p.Filters)
	}
}

func TestParseParams_InvalidPaginationFallsBack(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		query string
		page  int
		limit int
	}{
		{"negative page", "page=-3", DefaultPage, DefaultLimit},
		{"zero page", "page=0", DefaultPage, DefaultLimit},
		{"non-numeric page", "page=abc", DefaultPage, DefaultLimit},
		{"negative limit", "limit=-1", DefaultPage, DefaultLimit},
		{"zero limit", "limit=0", DefaultPage, DefaultLimit},
		{"non-numeric limit", "limit=many", DefaultPage, DefaultLimit},
		{"limit above cap", "limit=5000", DefaultPage, MaxLimit},
		{"valid values", "page=3&limit=50", 3, 50},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			values, err := url.ParseQuery(tc.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}

			p := ParseParams(values)
			if p.Page != tc.page {
				t.Errorf("expected page %d, got %d", tc.page, p.Page)
			}
			if p.Limit != tc.limit {
				t.Errorf("expected limit %d, got %d", tc.limit, p.Limit)
			}
		})
	}
}

func TestParseParams_DateBounds(t *testing.T) {
	t.Parallel()

	values := url.Values{}
	values.Set("startDate", "2026-01-01")
	values.Set("endDate", "2026-01-31")

	p := ParseParams(values)

	if p.StartDate == nil || !p.StartDate.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start date: %v", p.StartDate)
	}
	if p.EndDate == nil || !p.EndDate.Equal(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected end date: %v", p.EndDate)
	}
}

func TestParseParams_UnparseableDatesIgnored(t *testing.T) {
	t.Parallel()

	values := url.Values{}
	values.Set("startDate", "January 1st")
	values.Set("endDate", "31/01/2026")

	p := ParseParams(values)

	if p.StartDate != nil || p.EndDate != nil {
		t.Errorf("expected nil bounds, got %v / %v", p.StartDate, p.EndDate)
	}
}

func TestParseParams_ExtraParamsBecomeFilters(t *testing.T) {
	t.Parallel()

	values := url.Values{}
	values.Set("page", "2")
	values.Set("search", "run")
	values.Set("status", "active")
	values.Set("category", "health")
	values.Set("empty", "")

	p := ParseParams(values)

	if len(p.Filters) != 2 {
		t.Fatalf("expected 2 filters, got %v", p.Filters)
	}
	if p.Filters["status"] != "active" || p.Filters["category"] != "health" {
		t.Errorf("unexpected filters: %v", p.Filters)
	}
}

func TestParams_Offset(t *testing.T) {
	t.Parallel()

	p := Params{Page: 3, Limit: 20}
	if got := p.Offset(); got != 40 {
		t.Errorf("expected offset 40, got %d", got)
	}

	p = Params{Page: 1, Limit: 100}
	if got := p.Offset(); got != 0 {
		t.Errorf("expected offset 0, got %d", got)
	}
}

func TestBuild_OwnerPredicateAlwaysFirst(t *testing.T) {
	t.Parallel()

	q := Build(testDesc, ParseParams(url.Values{}), "user-1")

	if !strings.HasPrefix(q.Where, "user_id = $1") {
		t.Errorf("owner predicate should lead the WHERE clause, got %q", q.Where)
	}
	if len(q.Args) == 0 || q.Args[0] != "user-1" {
		t.Errorf("owner must be the first argument, got %v", q.Args)
	}
}

func TestBuild_DateRange(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	p := Params{Page: 1, Limit: 20, StartDate: &start, EndDate: &end}

	q := Build(testDesc, p, "user-1")

	if !strings.Contains(q.Where, "date >= $2") {
		t.Errorf("expected inclusive lower bound, got %q", q.Where)
	}
	if !strings.Contains(q.Where, "date <= $3") {
		t.Errorf("expected inclusive upper bound, got %q", q.Where)
	}
	if len(q.Args) != 3 {
		t.Fatalf("expected 3 args, got %v", q.Args)
	}
}

func TestBuild_SearchSpansAllFields(t *testing.T) {
	t.Parallel()

	p := Params{Page: 1, Limit: 20, Search: "gym"}
	q := Build(testDesc, p, "user-1")

	if !strings.Contains(q.Where, "(title ILIKE $2 OR content ILIKE $2)") {
		t.Errorf("search should OR across search fields with one placeholder, got %q", q.Where)
	}
	if len(q.Args) != 2 {
		t.Fatalf("expected 2 args, got %v", q.Args)
	}
	if q.Args[1] != "%gym%" {
		t.Errorf("expected wrapped pattern, got %v", q.Args[1])
	}
}

func TestBuild_SearchEscapesLikeMetacharacters(t *testing.T) {
	t.Parallel()

	p := Params{Page: 1, Limit: 20, Search: "50%_done\\"}
	q := Build(testDesc, p, "user-1")

	want := `%50\%\_done\\%`
	if q.Args[1] != want {
		t.Errorf("expected escaped pattern %q, got %q", want, q.Args[1])
	}
}

func TestBuild_SearchIgnoredWithoutSearchFields(t *testing.T) {
	t.Parallel()

	noSearch := MustDescriptor(Descriptor{
		Table:    "water_logs",
		Columns:  []string{"id", "user_id", "milliliters", "date", "created_at", "updated_at"},
		Writable: []string{"milliliters", "date"},
	})

	p := Params{Page: 1, Limit: 20, Search: "anything"}
	q := Build(noSearch, p, "user-1")

	if strings.Contains(q.Where, "ILIKE") {
		t.Errorf("descriptor without search fields must not render ILIKE, got %q", q.Where)
	}
	if len(q.Args) != 1 {
		t.Errorf("expected owner arg only, got %v", q.Args)
	}
}

func TestBuild_KnownFilterBecomesEquality(t *testing.T) {
	t.Parallel()

	p := Params{Page: 1, Limit: 20, Filters: map[string]string{"title": "Monday"}}
	q := Build(testDesc, p, "user-1")

	if !strings.Contains(q.Where, "title = $2") {
		t.Errorf("expected equality filter, got %q", q.Where)
	}
	if len(q.Args) != 2 || q.Args[1] != "Monday" {
		t.Errorf("unexpected args: %v", q.Args)
	}
}

func TestBuild_UnknownFilterMatchesNothing(t *testing.T) {
	t.Parallel()

	p := Params{Page: 1, Limit: 20, Filters: map[string]string{"no_such_column": "x"}}
	q := Build(testDesc, p, "user-1")

	if !strings.Contains(q.Where, "FALSE") {
		t.Errorf("unknown filter column should render a match-nothing predicate, got %q", q.Where)
	}
	if len(q.Args) != 1 {
		t.Errorf("unknown filter must not add arguments, got %v", q.Args)
	}
}

func TestBuild_OwnerFilterCannotBeOverridden(t *testing.T) {
	t.Parallel()

	p := Params{Page: 1, Limit: 20, Filters: map[string]string{"user_id": "someone-else"}}
	q := Build(testDesc, p, "user-1")

	if strings.Count(q.Where, "user_id") != 1 {
		t.Errorf("user_id must appear exactly once, got %q", q.Where)
	}
	for _, arg := range q.Args {
		if arg == "someone-else" {
			t.Error("attacker-supplied owner value must never reach the query")
		}
	}
}

func TestBuild_FilterOrderIsDeterministic(t *testing.T) {
	t.Parallel()

	p := Params{Page: 1, Limit: 20, Filters: map[string]string{
		"title":   "a",
		"content": "b",
	}}

	first := Build(testDesc, p, "user-1")
	for i := 0; i < 10; i++ {
		again := Build(testDesc, p, "user-1")
		if again.Where != first.Where {
			t.Fatalf("WHERE clause not stable: %q vs %q", first.Where, again.Where)
		}
	}

	// Sorted keys: content before title.
	if !strings.Contains(first.Where, "content = $2 AND title = $3") {
		t.Errorf("filters should render in sorted column order, got %q", first.Where)
	}
}

func TestBuild_PaginationCarriesThrough(t *testing.T) {
	t.Parallel()

	q := Build(testDesc, Params{Page: 4, Limit: 25}, "user-1")

	if q.Limit != 25 {
		t.Errorf("expected limit 25, got %d", q.Limit)
	}
	if q.Offset != 75 {
		t.Errorf("expected offset 75, got %d", q.Offset)
	}
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}

	for _, tc := range cases {
		if got := escapeLike(tc.in); got != tc.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
