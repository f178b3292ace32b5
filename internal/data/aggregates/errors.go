package aggregates

import (
	"strings"

	"github.com/yungbote/registrar-backend/internal/data/sqlerr"
	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
)

// InvalidArgumentError tags caller input that failed validation.
func InvalidArgumentError(op, msg string) error {
	return domainagg.NewError(domainagg.CodeInvalidArgument, op, strings.TrimSpace(msg), nil)
}

// NotFoundError tags a missing root.
func NotFoundError(op, msg string) error {
	return domainagg.NewError(domainagg.CodeNotFound, op, strings.TrimSpace(msg), nil)
}

// MapError maps infrastructure/domain failures into aggregate error codes.
// Errors that already carry a code pass through.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return sqlerr.Translate(op, err)
}
