package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/registrar-backend/internal/http/response"
	"github.com/yungbote/registrar-backend/internal/platform/apierr"
)

func pathID(c *gin.Context, op string) (uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := uuid.Parse(raw)
	if err != nil {
		response.RespondAggregateError(c, apierr.BadRequest("%s: invalid id %q", op, raw))
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, op string, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondAggregateError(c, apierr.BadRequest("%s: invalid request body: %w", op, err))
		return false
	}
	return true
}

// queryFilter turns exact-match query parameters into a list filter. Only
// allowed keys are accepted; a repeated key becomes an IN match.
func queryFilter(c *gin.Context, op string, allowed ...string) (map[string]any, bool) {
	ok := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		ok[k] = struct{}{}
	}
	filter := map[string]any{}
	for key, values := range c.Request.URL.Query() {
		if _, known := ok[key]; !known {
			response.RespondAggregateError(c, apierr.BadRequest("%s: unsupported filter %q", op, key))
			return nil, false
		}
		switch len(values) {
		case 0:
		case 1:
			filter[key] = values[0]
		default:
			filter[key] = values
		}
	}
	return filter, true
}
