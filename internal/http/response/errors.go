package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
	"github.com/yungbote/registrar-backend/internal/platform/apierr"
)

// StatusFor maps an aggregate error code onto an HTTP status.
func StatusFor(code domainagg.ErrorCode) int {
	switch code {
	case domainagg.CodeNotFound:
		return http.StatusNotFound
	case domainagg.CodeConstraintViolation, domainagg.CodeInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondAggregateError renders err with the status of its aggregate code, or
// the status an *apierr.Error carries. Internal failures never leak driver
// text to the client.
func RespondAggregateError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) && apiErr.Status > 0 && apiErr.Status < http.StatusInternalServerError {
		_ = c.Error(err)
		RespondError(c, apiErr.Status, apiErr.Code, apiErr)
		return
	}

	code := domainagg.CodeOf(err)
	if code == "" {
		code = domainagg.CodeInternal
	}
	_ = c.Error(err)

	status := StatusFor(code)
	if status >= http.StatusInternalServerError {
		msg := "internal error"
		if code == domainagg.CodeTransactionAborted {
			msg = "transaction aborted, retry the request"
		}
		RespondError(c, status, string(code), errors.New(msg))
		return
	}
	RespondError(c, status, string(code), clientMessage(err))
}

func clientMessage(err error) error {
	var aggErr *domainagg.Error
	if errors.As(err, &aggErr) && aggErr.Message != "" {
		return errors.New(aggErr.Message)
	}
	return err
}
