package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
	"github.com/yungbote/registrar-backend/internal/platform/apierr"
)

func TestStatusFor(t *testing.T) {
	cases := map[domainagg.ErrorCode]int{
		domainagg.CodeNotFound:            http.StatusNotFound,
		domainagg.CodeConstraintViolation: http.StatusBadRequest,
		domainagg.CodeInvalidArgument:     http.StatusBadRequest,
		domainagg.CodeTransactionAborted:  http.StatusInternalServerError,
		domainagg.CodeInternal:            http.StatusInternalServerError,
		"":                                http.StatusInternalServerError,
	}
	for code, want := range cases {
		require.Equal(t, want, StatusFor(code), "code %q", code)
	}
}

func render(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondAggregateError(c, err)

	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestRespondAggregateError(t *testing.T) {
	rec, env := render(t, domainagg.NewError(domainagg.CodeConstraintViolation, "user.create", "email already exists", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "constraint_violation", env.Error.Code)
	require.Equal(t, "email already exists", env.Error.Message)

	rec, env = render(t, domainagg.NewError(domainagg.CodeNotFound, "author.get", "author not found", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "not_found", env.Error.Code)
}

func TestRespondAggregateErrorHidesInternalDetail(t *testing.T) {
	rec, env := render(t, errors.New("pq: password authentication failed"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal", env.Error.Code)
	require.Equal(t, "internal error", env.Error.Message)
}

func TestRespondAggregateErrorUsesAPIErrorStatus(t *testing.T) {
	rec, env := render(t, apierr.BadRequest("user.get: invalid id %q", "nope"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_argument", env.Error.Code)
	require.Equal(t, `user.get: invalid id "nope"`, env.Error.Message)
}
