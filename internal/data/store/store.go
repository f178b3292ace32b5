// Package store is the generic persistence layer: one Store per entity type,
// every call threaded through the caller's dbctx.Context so it joins whatever
// transaction the caller opened and never commits on its own.
package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yungbote/registrar-backend/internal/data/sqlerr"
	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
	"github.com/yungbote/registrar-backend/internal/platform/dbctx"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store executes key and predicate lookups, inserts, updates and deletes for T.
// It is immutable after construction and safe for concurrent use.
type Store[T any] struct {
	db      *gorm.DB
	log     *logger.Logger
	table   string
	key     string
	columns map[string]string
}

// New parses T's gorm schema to learn its table, key column and filterable columns.
func New[T any](db *gorm.DB, baseLog *logger.Logger) (*Store[T], error) {
	if db == nil {
		return nil, domainagg.NewError(domainagg.CodeInternal, "store.New", "nil db", nil)
	}
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, fmt.Errorf("parse schema for %T: %w", *new(T), err)
	}
	sch := stmt.Schema

	columns := make(map[string]string, len(sch.Fields)*2)
	for _, f := range sch.Fields {
		if f.DBName == "" {
			continue
		}
		columns[strings.ToLower(f.DBName)] = f.DBName
		columns[strings.ToLower(f.Name)] = f.DBName
	}
	key := ""
	if sch.PrioritizedPrimaryField != nil {
		key = sch.PrioritizedPrimaryField.DBName
	}
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &Store[T]{
		db:      db,
		log:     baseLog.With("store", sch.Table),
		table:   sch.Table,
		key:     key,
		columns: columns,
	}, nil
}

// MustNew is New for wiring code where a schema parse failure is a programming error.
func MustNew[T any](db *gorm.DB, baseLog *logger.Logger) *Store[T] {
	s, err := New[T](db, baseLog)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Store[T]) Table() string     { return s.table }
func (s *Store[T]) KeyColumn() string { return s.key }

// Column resolves a Go field name or column name to its column.
func (s *Store[T]) Column(name string) (string, bool) {
	col, ok := s.columns[strings.ToLower(strings.TrimSpace(name))]
	return col, ok
}

// DB exposes the base handle for repo-specific queries; callers still go through dbctx.Context.DB.
func (s *Store[T]) DB() *gorm.DB { return s.db }

// Translate maps a driver error from a repo-specific query onto the domain error taxonomy.
func (s *Store[T]) Translate(method string, err error) error {
	return sqlerr.Translate(s.op(method), err)
}

func (s *Store[T]) op(name string) string {
	return s.table + "." + name
}

// FindByKey returns NotFound when no row has the key.
func (s *Store[T]) FindByKey(dbc dbctx.Context, key uuid.UUID) (*T, error) {
	const name = "FindByKey"
	if s.key == "" {
		return nil, domainagg.NewError(domainagg.CodeInvalidArgument, s.op(name), "entity has no single key column", nil)
	}
	var row T
	err := dbc.DB(s.db).
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: s.key}, Value: key}).
		Take(&row).Error
	if err != nil {
		return nil, sqlerr.Translate(s.op(name), err)
	}
	return &row, nil
}

// FindOne returns the single row matching filter, NotFound when none does and
// InvalidArgument when the filter is ambiguous.
func (s *Store[T]) FindOne(dbc dbctx.Context, filter Filter) (*T, error) {
	const name = "FindOne"
	q, err := s.apply(dbc.DB(s.db), filter, name)
	if err != nil {
		return nil, err
	}
	var rows []*T
	if err := s.ordered(q).Limit(2).Find(&rows).Error; err != nil {
		return nil, sqlerr.Translate(s.op(name), err)
	}
	switch len(rows) {
	case 0:
		return nil, domainagg.NewError(domainagg.CodeNotFound, s.op(name), fmt.Sprintf("no %s row matches %s", s.table, filter), nil)
	case 1:
		return rows[0], nil
	default:
		return nil, domainagg.NewError(domainagg.CodeInvalidArgument, s.op(name), fmt.Sprintf("filter %s matches more than one %s row", filter, s.table), nil)
	}
}

// FindAll returns every row matching filter ordered by key; an empty filter matches all rows.
func (s *Store[T]) FindAll(dbc dbctx.Context, filter Filter) ([]*T, error) {
	const name = "FindAll"
	q, err := s.apply(dbc.DB(s.db), filter, name)
	if err != nil {
		return nil, err
	}
	rows := []*T{}
	if err := s.ordered(q).Find(&rows).Error; err != nil {
		return nil, sqlerr.Translate(s.op(name), err)
	}
	return rows, nil
}

func (s *Store[T]) Count(dbc dbctx.Context, filter Filter) (int64, error) {
	const name = "Count"
	q, err := s.apply(dbc.DB(s.db).Model(new(T)), filter, name)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, sqlerr.Translate(s.op(name), err)
	}
	return n, nil
}

func (s *Store[T]) Exists(dbc dbctx.Context, filter Filter) (bool, error) {
	n, err := s.Count(dbc, filter)
	return n > 0, err
}

// InsertOne persists row without touching its associations.
func (s *Store[T]) InsertOne(dbc dbctx.Context, row *T) (*T, error) {
	const name = "InsertOne"
	if row == nil {
		return nil, domainagg.NewError(domainagg.CodeInvalidArgument, s.op(name), "nil row", nil)
	}
	if err := dbc.DB(s.db).Omit(clause.Associations).Create(row).Error; err != nil {
		return nil, sqlerr.Translate(s.op(name), err)
	}
	return row, nil
}

// InsertMany persists rows all-or-nothing. It runs under its own savepoint so a
// constraint failure leaves the surrounding transaction usable.
func (s *Store[T]) InsertMany(dbc dbctx.Context, rows []*T) ([]*T, error) {
	const name = "InsertMany"
	if len(rows) == 0 {
		return []*T{}, nil
	}
	for i, row := range rows {
		if row == nil {
			return nil, domainagg.NewError(domainagg.CodeInvalidArgument, s.op(name), fmt.Sprintf("nil row at index %d", i), nil)
		}
	}
	err := dbc.DB(s.db).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&rows).Error
	})
	if err != nil {
		return nil, sqlerr.Translate(s.op(name), err)
	}
	return rows, nil
}

// UpdateByKey changes only the supplied columns and returns the number of rows
// updated, 0 when the key does not exist. The key column itself cannot change.
func (s *Store[T]) UpdateByKey(dbc dbctx.Context, key uuid.UUID, values map[string]any) (int64, error) {
	const name = "UpdateByKey"
	if s.key == "" {
		return 0, domainagg.NewError(domainagg.CodeInvalidArgument, s.op(name), "entity has no single key column", nil)
	}
	if len(values) == 0 {
		return s.Count(dbc, Filter{s.key: key})
	}
	assignments := make(map[string]any, len(values))
	for k, v := range values {
		col, ok := s.Column(k)
		if !ok {
			return 0, domainagg.NewError(domainagg.CodeInvalidArgument, s.op(name), fmt.Sprintf("unknown %s column %q", s.table, k), nil)
		}
		if col == s.key {
			return 0, domainagg.NewError(domainagg.CodeInvalidArgument, s.op(name), "key column is immutable", nil)
		}
		assignments[col] = v
	}
	res := dbc.DB(s.db).
		Model(new(T)).
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: s.key}, Value: key}).
		Updates(assignments)
	if res.Error != nil {
		return 0, sqlerr.Translate(s.op(name), res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteWhere removes every row matching filter. An empty filter is rejected
// with InvalidArgument unless allowDeleteAll is set.
func (s *Store[T]) DeleteWhere(dbc dbctx.Context, filter Filter, allowDeleteAll bool) (int64, error) {
	const name = "DeleteWhere"
	q := dbc.DB(s.db)
	if len(filter) == 0 {
		if !allowDeleteAll {
			s.log.Warn("refusing unscoped delete", "table", s.table)
			return 0, domainagg.NewError(domainagg.CodeInvalidArgument, s.op(name), "empty filter requires allowDeleteAll", nil)
		}
		s.log.Warn("unscoped delete", "table", s.table)
		q = q.Session(&gorm.Session{AllowGlobalUpdate: true})
	}
	q, err := s.apply(q, filter, name)
	if err != nil {
		return 0, err
	}
	res := q.Delete(new(T))
	if res.Error != nil {
		return 0, sqlerr.Translate(s.op(name), res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store[T]) apply(q *gorm.DB, filter Filter, name string) (*gorm.DB, error) {
	exprs, err := filter.expressions(s.Column)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInvalidArgument, s.op(name), err)
	}
	for _, e := range exprs {
		q = q.Where(e)
	}
	return q, nil
}

func (s *Store[T]) ordered(q *gorm.DB) *gorm.DB {
	if s.key == "" {
		return q
	}
	return q.Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: s.key}})
}
