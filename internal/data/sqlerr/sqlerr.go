// Package sqlerr classifies database driver failures.
//
// Postgres (pgconn SQLSTATE codes), SQLite (go-sqlite3 result codes) and the
// generic gorm error kinds all collapse into the aggregate error taxonomy, so
// callers match on a code instead of a driver-specific type or message.
package sqlerr

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
	"gorm.io/gorm"
)

// Kind is the constraint family a failure belongs to.
type Kind string

const (
	KindNone       Kind = ""
	KindUnique     Kind = "unique"
	KindForeignKey Kind = "foreign_key"
	KindNotNull    Kind = "not_null"
	KindCheck      Kind = "check"
	KindData       Kind = "data"
)

// Detail is what could be recovered from a driver error.
type Detail struct {
	Code       domainagg.ErrorCode
	Kind       Kind
	Table      string
	Column     string
	Constraint string
}

// Inspect classifies err. Unknown failures are CodeInternal.
func Inspect(err error) Detail {
	if err == nil {
		return Detail{}
	}

	var aggErr *domainagg.Error
	if errors.As(err, &aggErr) {
		return Detail{Code: aggErr.Code}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fromPg(pgErr)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return fromSQLite(liteErr)
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, sql.ErrNoRows):
		return Detail{Code: domainagg.CodeNotFound}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Detail{Code: domainagg.CodeConstraintViolation, Kind: KindUnique}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return Detail{Code: domainagg.CodeConstraintViolation, Kind: KindForeignKey}
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return Detail{Code: domainagg.CodeConstraintViolation, Kind: KindCheck}
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, sql.ErrTxDone):
		return Detail{Code: domainagg.CodeTransactionAborted}
	}

	return fromMessage(err.Error())
}

// Code is shorthand for Inspect(err).Code.
func Code(err error) domainagg.ErrorCode {
	return Inspect(err).Code
}

// Translate wraps err into a *aggregates.Error tagged with op. Aggregate errors pass through untouched.
func Translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*domainagg.Error); ok {
		return err
	}
	d := Inspect(err)
	return domainagg.NewError(d.Code, op, message(d, err), err)
}

func fromPg(pgErr *pgconn.PgError) Detail {
	d := Detail{
		Code:       domainagg.CodeInternal,
		Table:      pgErr.TableName,
		Column:     pgErr.ColumnName,
		Constraint: pgErr.ConstraintName,
	}
	code := strings.TrimSpace(pgErr.Code)
	switch {
	case code == "23505":
		d.Code, d.Kind = domainagg.CodeConstraintViolation, KindUnique
		if d.Column == "" {
			d.Column = columnFromConstraint(d.Table, d.Constraint)
		}
	case code == "23503":
		d.Code, d.Kind = domainagg.CodeConstraintViolation, KindForeignKey
	case code == "23502":
		d.Code, d.Kind = domainagg.CodeConstraintViolation, KindNotNull
	case code == "23514":
		d.Code, d.Kind = domainagg.CodeConstraintViolation, KindCheck
	case strings.HasPrefix(code, "23"):
		d.Code = domainagg.CodeConstraintViolation
	case strings.HasPrefix(code, "22"):
		d.Code, d.Kind = domainagg.CodeInvalidArgument, KindData
	case code == "40001", code == "40P01", code == "55P03", code == "57014", code == "57P01":
		// serialization / deadlock / lock_not_available / query_canceled / admin_shutdown
		d.Code = domainagg.CodeTransactionAborted
	case strings.HasPrefix(code, "08"):
		d.Code = domainagg.CodeTransactionAborted
	}
	return d
}

func fromSQLite(liteErr sqlite3.Error) Detail {
	d := Detail{Code: domainagg.CodeInternal}
	switch liteErr.Code {
	case sqlite3.ErrConstraint:
		d.Code = domainagg.CodeConstraintViolation
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			d.Kind = KindUnique
		case sqlite3.ErrConstraintForeignKey:
			d.Kind = KindForeignKey
		case sqlite3.ErrConstraintNotNull:
			d.Kind = KindNotNull
		case sqlite3.ErrConstraintCheck:
			d.Kind = KindCheck
		}
		d.Table, d.Column = tableColumnFromMessage(liteErr.Error())
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		d.Code = domainagg.CodeTransactionAborted
	case sqlite3.ErrTooBig, sqlite3.ErrMismatch, sqlite3.ErrRange:
		d.Code, d.Kind = domainagg.CodeInvalidArgument, KindData
	}
	return d
}

func fromMessage(raw string) Detail {
	msg := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "unique constraint"):
		d := Detail{Code: domainagg.CodeConstraintViolation, Kind: KindUnique}
		d.Table, d.Column = tableColumnFromMessage(raw)
		return d
	case strings.Contains(msg, "foreign key constraint"):
		return Detail{Code: domainagg.CodeConstraintViolation, Kind: KindForeignKey}
	case strings.Contains(msg, "not null constraint"), strings.Contains(msg, "violates not-null"):
		return Detail{Code: domainagg.CodeConstraintViolation, Kind: KindNotNull}
	case strings.Contains(msg, "deadlock"),
		strings.Contains(msg, "could not serialize"),
		strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "broken pipe"):
		return Detail{Code: domainagg.CodeTransactionAborted}
	default:
		return Detail{Code: domainagg.CodeInternal}
	}
}

// tableColumnFromMessage reads SQLite's "UNIQUE constraint failed: courses.title" form.
func tableColumnFromMessage(msg string) (string, string) {
	idx := strings.LastIndex(msg, "failed: ")
	if idx < 0 {
		return "", ""
	}
	target := strings.TrimSpace(msg[idx+len("failed: "):])
	if comma := strings.Index(target, ","); comma >= 0 {
		target = target[:comma]
	}
	table, column, ok := strings.Cut(target, ".")
	if !ok {
		return "", ""
	}
	return strings.TrimSpace(table), strings.TrimSpace(column)
}

// columnFromConstraint recovers the column from gorm's "idx_<table>_<column>" and
// postgres' "<table>_<column>_key" naming.
func columnFromConstraint(table, constraint string) string {
	c := strings.TrimSpace(constraint)
	if c == "" {
		return ""
	}
	c = strings.TrimPrefix(c, "idx_")
	c = strings.TrimSuffix(c, "_key")
	c = strings.TrimSuffix(c, "_ukey")
	if table != "" {
		c = strings.TrimPrefix(c, table+"_")
	}
	return c
}
