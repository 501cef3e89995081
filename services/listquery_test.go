package services

import (
	"net/url"
	"strings"
	"testing"

	"gorm.io/gorm"
)

func testSpec() ListSpec {
	return ListSpec{
		Filters: []FilterField{
			{Param: "nombre_aprendiz", Column: "nombre_aprendiz", Mode: MatchPartial},
			{Param: "estado", Column: "estado", Mode: MatchExact},
			{Param: "fecha", Column: "fecha", Mode: MatchRange},
		},
		SortFields:  []string{"fecha", "numero_caso", "estado"},
		DefaultSort: "fecha",
		DefaultDir:  "desc",
	}
}

// buildSQL runs the filters in dry-run mode and returns the generated SQL
// plus its bind variables.
func buildSQL(t *testing.T, spec ListSpec, params url.Values) (string, []interface{}, map[string]string) {
	t.Helper()

	db, _ := newMockDB(t)
	tx := db.Session(&gorm.Session{DryRun: true}).Table("casos_generales")

	query, applied := spec.ApplyFilters(tx, params)

	var dest []map[string]interface{}
	stmt := query.Find(&dest).Statement
	return stmt.SQL.String(), stmt.Vars, applied
}

func TestApplyFiltersPartialMatch(t *testing.T) {
	params := url.Values{"nombre_aprendiz": {"Juan"}}

	sql, vars, applied := buildSQL(t, testSpec(), params)

	if !strings.Contains(sql, "nombre_aprendiz LIKE ?") {
		t.Errorf("expected LIKE predicate, got: %s", sql)
	}
	if len(vars) != 1 || vars[0] != "%Juan%" {
		t.Errorf("expected [%%Juan%%] vars, got %v", vars)
	}
	if applied["nombre_aprendiz"] != "Juan" {
		t.Errorf("expected applied map to echo the raw value, got %v", applied)
	}
}

func TestApplyFiltersExactMatch(t *testing.T) {
	params := url.Values{"estado": {"Pendiente"}}

	sql, vars, _ := buildSQL(t, testSpec(), params)

	if !strings.Contains(sql, "estado = ?") {
		t.Errorf("expected equality predicate, got: %s", sql)
	}
	if len(vars) != 1 || vars[0] != "Pendiente" {
		t.Errorf("expected [Pendiente] vars, got %v", vars)
	}
}

func TestApplyFiltersRangeBoundsAreIndependent(t *testing.T) {
	params := url.Values{"fecha_desde": {"2026-01-01"}}

	sql, _, applied := buildSQL(t, testSpec(), params)

	if !strings.Contains(sql, "DATE(fecha) >= ?") {
		t.Errorf("expected lower bound predicate, got: %s", sql)
	}
	if strings.Contains(sql, "DATE(fecha) <= ?") {
		t.Errorf("upper bound must not appear without fecha_hasta: %s", sql)
	}
	if applied["fecha_desde"] != "2026-01-01" {
		t.Errorf("expected fecha_desde in applied map, got %v", applied)
	}
}

func TestApplyFiltersSkipsMalformedDate(t *testing.T) {
	params := url.Values{
		"fecha_desde": {"not-a-date"},
		"fecha_hasta": {"2026-12-31"},
	}

	sql, vars, applied := buildSQL(t, testSpec(), params)

	if strings.Contains(sql, "DATE(fecha) >= ?") {
		t.Errorf("malformed lower bound must be skipped: %s", sql)
	}
	if !strings.Contains(sql, "DATE(fecha) <= ?") {
		t.Errorf("well-formed upper bound must still apply: %s", sql)
	}
	if len(vars) != 1 || vars[0] != "2026-12-31" {
		t.Errorf("expected only the upper bound var, got %v", vars)
	}
	if _, ok := applied["fecha_desde"]; ok {
		t.Error("malformed bound must not be echoed as applied")
	}
}

func TestApplyFiltersCombined(t *testing.T) {
	params := url.Values{
		"nombre_aprendiz": {"Garcia"},
		"estado":          {"Resuelto"},
		"fecha_desde":     {"2026-01-01"},
		"fecha_hasta":     {"2026-06-30"},
	}

	sql, vars, applied := buildSQL(t, testSpec(), params)

	for _, fragment := range []string{"nombre_aprendiz LIKE ?", "estado = ?", "DATE(fecha) >= ?", "DATE(fecha) <= ?"} {
		if !strings.Contains(sql, fragment) {
			t.Errorf("missing predicate %q in: %s", fragment, sql)
		}
	}
	if len(vars) != 4 {
		t.Errorf("expected 4 bind vars, got %v", vars)
	}
	if len(applied) != 4 {
		t.Errorf("expected 4 applied entries, got %v", applied)
	}
}

func TestApplyFiltersBoolBindsTyped(t *testing.T) {
	spec := ListSpec{
		Filters: []FilterField{
			{Param: "is_active", Column: "is_active", Mode: MatchBool},
		},
	}

	sql, vars, applied := buildSQL(t, spec, url.Values{"is_active": {"true"}})

	if !strings.Contains(sql, "is_active = ?") {
		t.Errorf("expected equality predicate, got: %s", sql)
	}
	if len(vars) != 1 || vars[0] != true {
		t.Errorf("expected a typed bool bind var, got %v", vars)
	}
	if applied["is_active"] != "true" {
		t.Errorf("expected applied map entry, got %v", applied)
	}

	sql, vars, _ = buildSQL(t, spec, url.Values{"is_active": {"0"}})
	if !strings.Contains(sql, "is_active = ?") || len(vars) != 1 || vars[0] != false {
		t.Errorf("expected false bind var for 0, got %v (%s)", vars, sql)
	}
}

func TestApplyFiltersBoolSkipsJunk(t *testing.T) {
	spec := ListSpec{
		Filters: []FilterField{
			{Param: "is_active", Column: "is_active", Mode: MatchBool},
		},
	}

	sql, vars, applied := buildSQL(t, spec, url.Values{"is_active": {"activo"}})

	if strings.Contains(sql, "is_active") {
		t.Errorf("unparsable bool must not filter: %s", sql)
	}
	if len(vars) != 0 || len(applied) != 0 {
		t.Errorf("expected no predicate, got vars=%v applied=%v", vars, applied)
	}
}

func TestApplyFiltersIgnoresUnknownParams(t *testing.T) {
	params := url.Values{"malicioso": {"1; DROP TABLE casos"}}

	sql, vars, applied := buildSQL(t, testSpec(), params)

	if strings.Contains(sql, "malicioso") {
		t.Errorf("unknown parameter leaked into SQL: %s", sql)
	}
	if len(vars) != 0 || len(applied) != 0 {
		t.Errorf("expected no predicates, got vars=%v applied=%v", vars, applied)
	}
}

func TestResolveSort(t *testing.T) {
	spec := testSpec()

	tests := []struct {
		name    string
		sortBy  string
		dir     string
		wantBy  string
		wantDir string
	}{
		{"valid field and direction", "numero_caso", "asc", "numero_caso", "asc"},
		{"unknown field falls back", "password", "asc", "fecha", "asc"},
		{"unknown direction falls back", "estado", "sideways", "estado", "desc"},
		{"empty input uses defaults", "", "", "fecha", "desc"},
		{"direction is case-insensitive", "fecha", "ASC", "fecha", "asc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotBy, gotDir := spec.ResolveSort(tt.sortBy, tt.dir)
			if gotBy != tt.wantBy || gotDir != tt.wantDir {
				t.Errorf("ResolveSort(%q, %q) = (%q, %q), want (%q, %q)",
					tt.sortBy, tt.dir, gotBy, gotDir, tt.wantBy, tt.wantDir)
			}
		})
	}
}

func TestPerPageClamp(t *testing.T) {
	spec := testSpec()

	tests := []struct {
		raw  string
		want int
	}{
		{"", 15},
		{"junk", 15},
		{"3.5", 15},
		{"150", 100},
		{"100", 100},
		{"0", 1},
		{"-5", 1},
		{"1", 1},
		{"40", 40},
	}

	for _, tt := range tests {
		if got := spec.PerPage(tt.raw); got != tt.want {
			t.Errorf("PerPage(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestPerPageCustomLimits(t *testing.T) {
	spec := ListSpec{DefaultPerPage: 25, MaxPerPage: 50}

	if got := spec.PerPage(""); got != 25 {
		t.Errorf("expected custom default 25, got %d", got)
	}
	if got := spec.PerPage("80"); got != 50 {
		t.Errorf("expected clamp to custom max 50, got %d", got)
	}
}

func TestPage(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"0", 1},
		{"-3", 1},
		{"abc", 1},
		{"7", 7},
	}

	for _, tt := range tests {
		if got := Page(tt.raw); got != tt.want {
			t.Errorf("Page(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestListResultPagination(t *testing.T) {
	r := ListResult{Page: 2, PerPage: 15, TotalCount: 32, Returned: 15}

	if got := r.LastPage(); got != 3 {
		t.Errorf("LastPage() = %d, want 3", got)
	}
	if got := r.From(); got != 16 {
		t.Errorf("From() = %d, want 16", got)
	}
	if got := r.To(); got != 30 {
		t.Errorf("To() = %d, want 30", got)
	}
}

func TestListResultEmptyPage(t *testing.T) {
	r := ListResult{Page: 5, PerPage: 15, TotalCount: 0, Returned: 0}

	if got := r.LastPage(); got != 1 {
		t.Errorf("LastPage() = %d, want 1", got)
	}
	if got := r.From(); got != 0 {
		t.Errorf("From() = %d, want 0", got)
	}
	if got := r.To(); got != 0 {
		t.Errorf("To() = %d, want 0", got)
	}
}
