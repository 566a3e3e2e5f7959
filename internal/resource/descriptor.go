// Package resource implements the generic, ownership-scoped access engine
// that every tracker domain is served by. A domain declares its queryable
// surface once, as a Descriptor, and gets the full create/list/get/update/
// delete/upsert surface with the owner predicate baked into every statement.
package resource

import (
	"fmt"
	"strings"
)

// Columns present on every entity table and managed by the engine itself.
// They are never writable from payloads.
const (
	ColumnID        = "id"
	ColumnOwner     = "user_id"
	ColumnCreatedAt = "created_at"
	ColumnUpdatedAt = "updated_at"
)

// DefaultDateField is the date column used when a descriptor does not
// declare one.
const DefaultDateField = "date"

// Descriptor declares one entity's queryable surface. It is immutable
// configuration: defined once at process start and shared read-only by all
// requests for that entity.
type Descriptor struct {
	// Table is the entity's table name.
	Table string
	// Columns is every selectable column, including the engine-managed ones.
	Columns []string
	// Writable lists the columns that may be set from create/update payloads.
	Writable []string
	// Required lists writable columns that must be present on create.
	Required []string
	// SearchFields lists the columns eligible for free-text search.
	SearchFields []string
	// DateField is the column used for range filtering and date-keyed
	// lookups. Defaults to "date".
	DateField string
	// SortField and SortDesc define the default ordering.
	SortField string
	SortDesc  bool
	// DailyUnique marks entities with a unique (user_id, DateField) key,
	// which enables get-by-date and upsert-by-date.
	DailyUnique bool
}

// MustDescriptor validates a descriptor and fills in defaults, panicking on
// misdeclaration. Descriptors are static configuration; a bad one is a
// programming error caught at boot, not a runtime condition.
func MustDescriptor(d Descriptor) Descriptor {
	if d.Table == "" {
		panic("resource: descriptor missing table name")
	}
	if d.DateField == "" {
		d.DateField = DefaultDateField
	}
	if d.SortField == "" {
		d.SortField = d.DateField
		d.SortDesc = true
	}

	for _, c := range []string{ColumnID, ColumnOwner, ColumnCreatedAt, ColumnUpdatedAt} {
		if !d.HasColumn(c) {
			panic(fmt.Sprintf("resource: %s descriptor missing column %q", d.Table, c))
		}
	}
	if !d.HasColumn(d.DateField) {
		panic(fmt.Sprintf("resource: %s descriptor date field %q is not a column", d.Table, d.DateField))
	}
	if !d.HasColumn(d.SortField) {
		panic(fmt.Sprintf("resource: %s descriptor sort field %q is not a column", d.Table, d.SortField))
	}

	for _, f := range d.SearchFields {
		if !d.HasColumn(f) {
			panic(fmt.Sprintf("resource: %s descriptor search field %q is not a column", d.Table, f))
		}
	}
	for _, w := range d.Writable {
		switch w {
		case ColumnID, ColumnOwner, ColumnCreatedAt, ColumnUpdatedAt:
			panic(fmt.Sprintf("resource: %s descriptor declares engine-managed column %q writable", d.Table, w))
		}
		if !d.HasColumn(w) {
			panic(fmt.Sprintf("resource: %s descriptor writable field %q is not a column", d.Table, w))
		}
	}
	for _, r := range d.Required {
		if !d.IsWritable(r) {
			panic(fmt.Sprintf("resource: %s descriptor required field %q is not writable", d.Table, r))
		}
	}

	return d
}

// HasColumn reports whether name is a declared column.
func (d Descriptor) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// IsWritable reports whether name may be set from a payload.
func (d Descriptor) IsWritable(name string) bool {
	for _, w := range d.Writable {
		if w == name {
			return true
		}
	}
	return false
}

// selectList returns the comma-joined column list for SELECT/RETURNING.
func (d Descriptor) selectList() string {
	return strings.Join(d.Columns, ", ")
}

// orderBy returns the default ORDER BY clause, with id as a stable
// tiebreaker for deterministic pagination.
func (d Descriptor) orderBy() string {
	dir := "ASC"
	if d.SortDesc {
		dir = "DESC"
	}
	if d.SortField == ColumnID {
		return d.SortField + " " + dir
	}
	return d.SortField + " " + dir + ", " + ColumnID + " " + dir
}
