package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"udin/src/core/domain"
	"udin/src/infra/db"
	"udin/src/infra/logger"
)

// Values maps column names to the values written by Create and Update.
type Values map[string]any

// Page bounds FindAll. Zero Limit or Offset leaves the clause out.
// Rows come back in storage order unless OrderBy names a column.
type Page struct {
	Limit   uint64
	Offset  uint64
	OrderBy string
	Desc    bool
}

// Table is generic CRUD access to one table whose rows scan into T.
// The permitted columns are the db tags of T; any other column name is
// rejected before SQL is built.
type Table[T any] struct {
	name    string
	ident   string
	columns map[string]struct{}
	q       db.Querier
	log     *slog.Logger
	sq      squirrel.StatementBuilderType
}

// NewTable creates a Table over q. name may be schema-qualified.
func NewTable[T any](q db.Querier, name string, log *slog.Logger) *Table[T] {
	return &Table[T]{
		name:    name,
		ident:   pgx.Identifier(strings.Split(name, ".")).Sanitize(),
		columns: columnsOf(reflect.TypeFor[T]()),
		q:       q,
		log:     logger.WithComponent(log, "model"),
		sq:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Name returns the table name.
func (t *Table[T]) Name() string {
	return t.name
}

// Columns returns the permitted column names in sorted order.
func (t *Table[T]) Columns() []string {
	out := make([]string, 0, len(t.columns))
	for c := range t.columns {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// WithTx returns a copy of t that issues statements through tx.
func (t *Table[T]) WithTx(tx db.Querier) *Table[T] {
	cp := *t
	cp.q = tx
	return &cp
}

// FindAll returns every row, optionally paged.
func (t *Table[T]) FindAll(ctx context.Context, page Page) ([]T, error) {
	b := t.sq.Select("*").From(t.ident)
	if page.OrderBy != "" {
		if err := t.checkColumn(page.OrderBy); err != nil {
			return nil, t.fail("findAll", err)
		}
		dir := "ASC"
		if page.Desc {
			dir = "DESC"
		}
		b = b.OrderBy(quote(page.OrderBy) + " " + dir)
	}
	if page.Limit > 0 {
		b = b.Limit(page.Limit)
	}
	if page.Offset > 0 {
		b = b.Offset(page.Offset)
	}

	rows := []T{}
	if err := t.selectInto(ctx, &rows, b); err != nil {
		return nil, t.fail("findAll", err)
	}
	return rows, nil
}

// FindByID returns the row whose id matches, or nil when none does.
func (t *Table[T]) FindByID(ctx context.Context, id any) (*T, error) {
	b := t.sq.Select("*").From(t.ident).Where(squirrel.Eq{quote("id"): id}).Limit(1)
	row, err := t.getOne(ctx, b)
	if err != nil {
		return nil, t.fail("findById", err)
	}
	return row, nil
}

// FindByField returns every row where column equals value.
func (t *Table[T]) FindByField(ctx context.Context, column string, value any) ([]T, error) {
	if err := t.checkColumn(column); err != nil {
		return nil, t.fail("findByField", err)
	}
	b := t.sq.Select("*").From(t.ident).Where(squirrel.Eq{quote(column): value})

	rows := []T{}
	if err := t.selectInto(ctx, &rows, b); err != nil {
		return nil, t.fail("findByField", err)
	}
	return rows, nil
}

// Create inserts one row and returns it as stored.
func (t *Table[T]) Create(ctx context.Context, values Values) (*T, error) {
	set, err := t.setMap(values)
	if err != nil {
		return nil, t.fail("create", err)
	}
	b := t.sq.Insert(t.ident).SetMap(set).Suffix("RETURNING *")

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, t.fail("create", fmt.Errorf("build insert: %w", err))
	}
	var row T
	if err := t.q.Get(ctx, &row, sql, args...); err != nil {
		return nil, t.fail("create", t.conflict(err))
	}
	return &row, nil
}

// Update sets values on the row with the given id and returns it.
// It returns nil when no row matched.
func (t *Table[T]) Update(ctx context.Context, id any, values Values) (*T, error) {
	set, err := t.setMap(values)
	if err != nil {
		return nil, t.fail("update", err)
	}
	b := t.sq.Update(t.ident).SetMap(set).Where(squirrel.Eq{quote("id"): id}).Suffix("RETURNING *")

	row, err := t.getOne(ctx, b)
	if err != nil {
		return nil, t.fail("update", t.conflict(err))
	}
	return row, nil
}

// Delete removes the row with the given id and reports whether one existed.
func (t *Table[T]) Delete(ctx context.Context, id any) (bool, error) {
	sql, args, err := t.sq.Delete(t.ident).Where(squirrel.Eq{quote("id"): id}).ToSql()
	if err != nil {
		return false, t.fail("delete", fmt.Errorf("build delete: %w", err))
	}
	n, err := t.q.Exec(ctx, sql, args...)
	if err != nil {
		return false, t.fail("delete", err)
	}
	return n > 0, nil
}

// Count returns the number of rows matching filter. A nil filter counts
// the whole table. Column names inside the filter must be permitted.
func (t *Table[T]) Count(ctx context.Context, filter squirrel.Sqlizer) (int64, error) {
	b := t.sq.Select("COUNT(*)").From(t.ident)
	if filter != nil {
		where, err := t.quoteFilter(filter)
		if err != nil {
			return 0, t.fail("count", err)
		}
		b = b.Where(where)
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return 0, t.fail("count", fmt.Errorf("build count: %w", err))
	}
	var n int64
	if err := t.q.Get(ctx, &n, sql, args...); err != nil {
		return 0, t.fail("count", err)
	}
	return n, nil
}

// Select runs caller-supplied SQL and scans the rows into dst.
func (t *Table[T]) Select(ctx context.Context, dst any, sql string, args ...any) error {
	if err := t.q.Select(ctx, dst, sql, args...); err != nil {
		return t.fail("select", err)
	}
	return nil
}

// Transaction runs fn in a transaction. Use t.WithTx(tx) inside fn to
// keep table calls on the same connection.
func (t *Table[T]) Transaction(ctx context.Context, fn db.TxFunc) error {
	if err := t.q.Transaction(ctx, fn); err != nil {
		return t.fail("transaction", err)
	}
	return nil
}

func (t *Table[T]) selectInto(ctx context.Context, dst *[]T, b squirrel.SelectBuilder) error {
	sql, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build select: %w", err)
	}
	return t.q.Select(ctx, dst, sql, args...)
}

func (t *Table[T]) getOne(ctx context.Context, b squirrel.Sqlizer) (*T, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var row T
	err = t.q.Get(ctx, &row, sql, args...)
	if errors.Is(err, db.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (t *Table[T]) fail(op string, err error) error {
	if !db.IsReported(err) {
		t.log.Error("model operation failed", "table", t.name, "op", op, "error", err)
	}
	return fmt.Errorf("%s %s: %w", op, t.name, err)
}

func (t *Table[T]) conflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.NewConflictError(fmt.Sprintf("duplicate row in %s", t.name), err)
	}
	return err
}

func (t *Table[T]) checkColumn(column string) error {
	if _, ok := t.columns[column]; !ok {
		return domain.NewValidationError(column, fmt.Sprintf("unknown column for %s", t.name))
	}
	return nil
}

// setMap checks values against the permitted columns and quotes the keys.
func (t *Table[T]) setMap(values Values) (map[string]any, error) {
	if len(values) == 0 {
		return nil, domain.NewValidationError("values", "at least one column is required")
	}
	return quoted(t, values)
}

// quoteFilter accepts the squirrel predicate maps and their conjunctions,
// returning a copy with every column quoted. Other Sqlizers carry raw SQL
// and are rejected.
func (t *Table[T]) quoteFilter(f squirrel.Sqlizer) (squirrel.Sqlizer, error) {
	switch f := f.(type) {
	case squirrel.Eq:
		return quoted(t, f)
	case squirrel.NotEq:
		return quoted(t, f)
	case squirrel.Lt:
		return quoted(t, f)
	case squirrel.LtOrEq:
		return quoted(t, f)
	case squirrel.Gt:
		return quoted(t, f)
	case squirrel.GtOrEq:
		return quoted(t, f)
	case squirrel.Like:
		return quoted(t, f)
	case squirrel.NotLike:
		return quoted(t, f)
	case squirrel.ILike:
		return quoted(t, f)
	case squirrel.NotILike:
		return quoted(t, f)
	case squirrel.And:
		parts, err := t.quoteAll(f)
		return squirrel.And(parts), err
	case squirrel.Or:
		parts, err := t.quoteAll(f)
		return squirrel.Or(parts), err
	default:
		return nil, domain.NewValidationError("filter", fmt.Sprintf("unsupported filter %T", f))
	}
}

func (t *Table[T]) quoteAll(parts []squirrel.Sqlizer) ([]squirrel.Sqlizer, error) {
	out := make([]squirrel.Sqlizer, 0, len(parts))
	for _, p := range parts {
		q, err := t.quoteFilter(p)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// quoted copies m with each key checked and quoted as an identifier.
func quoted[T any, M ~map[string]any](t *Table[T], m M) (M, error) {
	out := make(M, len(m))
	for column, v := range m {
		if err := t.checkColumn(column); err != nil {
			return nil, err
		}
		out[quote(column)] = v
	}
	return out, nil
}

func quote(column string) string {
	return pgx.Identifier{column}.Sanitize()
}

func columnsOf(rt reflect.Type) map[string]struct{} {
	out := make(map[string]struct{})
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return out
	}
	for i := range rt.NumField() {
		f := rt.Field(i)
		tag, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		if f.Anonymous && tag == "" {
			for c := range columnsOf(f.Type) {
				out[c] = struct{}{}
			}
			continue
		}
		if !f.IsExported() || tag == "" || tag == "-" {
			continue
		}
		out[tag] = struct{}{}
	}
	return out
}
