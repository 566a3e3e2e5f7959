package resource

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"

	"github.com/lifelog/lifelog/internal/store"
)

// Loader attaches related sub-records to a batch of loaded records. Loaders
// run after every read (and after create/update/upsert, which return the
// record), so callers always see the same shape.
type Loader[T any] func(ctx context.Context, q store.Querier, records []*T) error

// Engine is the sole point where ownership enforcement and CRUD semantics
// live, parameterized by one Descriptor per instantiation. Every statement it
// generates includes the user_id equality predicate; there is no code path
// that omits it. The engine holds no mutable state and is safe for concurrent
// use.
type Engine[T any] struct {
	db      store.Querier
	desc    Descriptor
	loaders []Loader[T]
}

// NewEngine creates an engine for one entity. The descriptor must have been
// validated with MustDescriptor.
func NewEngine[T any](db store.Querier, desc Descriptor, loaders ...Loader[T]) *Engine[T] {
	return &Engine[T]{db: db, desc: desc, loaders: loaders}
}

// Descriptor returns the engine's entity declaration.
func (e *Engine[T]) Descriptor() Descriptor {
	return e.desc
}

// NewID returns a fresh record identifier.
func NewID() string {
	return ulid.Make().String()
}

// Page is one page of records plus pagination metadata.
type Page[T any] struct {
	Items      []*T
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// Create persists a new record owned by ownerID. The owner is always taken
// from the authenticated caller; any owner value in the payload is discarded
// along with every other non-writable field.
func (e *Engine[T]) Create(ctx context.Context, ownerID string, payload map[string]any) (*T, error) {
	cols, vals := e.writableFields(payload)

	for _, req := range e.desc.Required {
		if !containsString(cols, req) {
			return nil, fmt.Errorf("%w: missing required field %q", ErrValidation, req)
		}
	}

	now := time.Now().UTC()
	cols = append([]string{ColumnID, ColumnOwner}, cols...)
	vals = append([]any{NewID(), ownerID}, vals...)
	cols = append(cols, ColumnCreatedAt, ColumnUpdatedAt)
	vals = append(vals, now, now)

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		e.desc.Table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		e.desc.selectList(),
	)

	rec, err := e.queryOne(ctx, query, vals...)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create %s record: %w", e.desc.Table, err)
	}

	if err := e.attach(ctx, []*T{rec}); err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns one page of the owner's records matching params.
func (e *Engine[T]) List(ctx context.Context, ownerID string, params Params) (*Page[T], error) {
	q := Build(e.desc, params, ownerID)

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", e.desc.Table, q.Where)
	if err := e.db.QueryRow(ctx, countQuery, q.Args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count %s records: %w", e.desc.Table, err)
	}

	page := &Page[T]{
		Items:      []*T{},
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: int((total + int64(params.Limit) - 1) / int64(params.Limit)),
	}
	if total == 0 {
		return page, nil
	}

	n := len(q.Args)
	listQuery := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
		e.desc.selectList(), e.desc.Table, q.Where, q.OrderBy, n+1, n+2,
	)
	args := append(q.Args, q.Limit, q.Offset)

	rows, err := e.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", e.desc.Table, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s records: %w", e.desc.Table, err)
	}

	if err := e.attach(ctx, items); err != nil {
		return nil, err
	}
	page.Items = items
	return page, nil
}

// GetByID returns the record only if it exists and ownerID owns it. A record
// owned by someone else reports not-found, never its contents.
func (e *Engine[T]) GetByID(ctx context.Context, ownerID, id string) (*T, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 AND %s = $2",
		e.desc.selectList(), e.desc.Table, ColumnID, ColumnOwner,
	)

	rec, err := e.queryOne(ctx, query, id, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s record: %w", e.desc.Table, err)
	}

	if err := e.attach(ctx, []*T{rec}); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetByDate returns the unique record for (ownerID, date).
func (e *Engine[T]) GetByDate(ctx context.Context, ownerID string, date time.Time) (*T, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 AND %s = $2",
		e.desc.selectList(), e.desc.Table, ColumnOwner, e.desc.DateField,
	)

	rec, err := e.queryOne(ctx, query, ownerID, date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s record by date: %w", e.desc.Table, err)
	}

	if err := e.attach(ctx, []*T{rec}); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update applies patch to the owner's record in a single conditional
// statement. The owner check and the write cannot race: a record that is not
// owned (or is gone) simply matches no row.
func (e *Engine[T]) Update(ctx context.Context, ownerID, id string, patch map[string]any) (*T, error) {
	cols, vals := e.writableFields(patch)

	// Args: id, owner, patch values, updated_at.
	sets := make([]string, 0, len(cols)+1)
	args := append([]any{id, ownerID}, vals...)
	for i, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+3))
	}
	sets = append(sets, fmt.Sprintf("%s = $%d", ColumnUpdatedAt, len(cols)+3))
	args = append(args, time.Now().UTC())

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = $1 AND %s = $2 RETURNING %s",
		e.desc.Table, strings.Join(sets, ", "), ColumnID, ColumnOwner, e.desc.selectList(),
	)

	rec, err := e.queryOne(ctx, query, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if store.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to update %s record: %w", e.desc.Table, err)
	}

	if err := e.attach(ctx, []*T{rec}); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes the owner's record. Deleting an id that is absent or owned
// by someone else reports not-found.
func (e *Engine[T]) Delete(ctx context.Context, ownerID, id string) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1 AND %s = $2",
		e.desc.Table, ColumnID, ColumnOwner,
	)

	result, err := e.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete %s record: %w", e.desc.Table, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertByDate creates or updates the record for (ownerID, date) as a single
// atomic conditional insert keyed on the unique (user_id, date) constraint.
// Concurrent upserts for the same user and date converge on one row.
func (e *Engine[T]) UpsertByDate(ctx context.Context, ownerID string, date time.Time, payload map[string]any) (*T, error) {
	if !e.desc.DailyUnique {
		return nil, fmt.Errorf("resource: %s does not support upsert by date", e.desc.Table)
	}

	cols, vals := e.writableFields(payload)

	// The date comes from the call, never from the payload.
	filtered := cols[:0]
	filteredVals := vals[:0]
	for i, c := range cols {
		if c == e.desc.DateField {
			continue
		}
		filtered = append(filtered, c)
		filteredVals = append(filteredVals, vals[i])
	}
	cols, vals = filtered, filteredVals

	for _, req := range e.desc.Required {
		if req == e.desc.DateField {
			continue
		}
		if !containsString(cols, req) {
			return nil, fmt.Errorf("%w: missing required field %q", ErrValidation, req)
		}
	}

	now := time.Now().UTC()
	insertCols := append([]string{ColumnID, ColumnOwner, e.desc.DateField}, cols...)
	insertVals := append([]any{NewID(), ownerID, date}, vals...)
	insertCols = append(insertCols, ColumnCreatedAt, ColumnUpdatedAt)
	insertVals = append(insertVals, now, now)

	placeholders := make([]string, len(insertCols))
	for i := range insertCols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	sets := make([]string, 0, len(cols)+1)
	for _, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", ColumnUpdatedAt, ColumnUpdatedAt))

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s, %s) DO UPDATE SET %s RETURNING %s",
		e.desc.Table,
		strings.Join(insertCols, ", "),
		strings.Join(placeholders, ", "),
		ColumnOwner, e.desc.DateField,
		strings.Join(sets, ", "),
		e.desc.selectList(),
	)

	rec, err := e.queryOne(ctx, query, insertVals...)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert %s record: %w", e.desc.Table, err)
	}

	if err := e.attach(ctx, []*T{rec}); err != nil {
		return nil, err
	}
	return rec, nil
}

// queryOne runs a query expected to return exactly one row and scans it into
// the entity struct.
func (e *Engine[T]) queryOne(ctx context.Context, query string, args ...any) (*T, error) {
	rows, err := e.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
}

// writableFields filters a payload down to declared writable columns, in
// descriptor order. Unknown fields and engine-managed columns are dropped
// silently.
func (e *Engine[T]) writableFields(payload map[string]any) ([]string, []any) {
	cols := make([]string, 0, len(payload))
	vals := make([]any, 0, len(payload))
	for _, w := range e.desc.Writable {
		if v, ok := payload[w]; ok {
			cols = append(cols, w)
			vals = append(vals, v)
		}
	}
	return cols, vals
}

// attach runs the relation loaders over a batch of records.
func (e *Engine[T]) attach(ctx context.Context, records []*T) error {
	if len(records) == 0 {
		return nil
	}
	for _, load := range e.loaders {
		if err := load(ctx, e.db, records); err != nil {
			return fmt.Errorf("failed to attach %s relations: %w", e.desc.Table, err)
		}
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
