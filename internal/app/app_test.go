package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
)

func TestNewWithConfigWiresSQLiteApp(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv(configFileEnv, "")
	t.Setenv("REGISTRAR_ENV", "test")
	t.Setenv("REGISTRAR_DATABASE__PATH", filepath.Join(t.TempDir(), "app.db"))
	t.Setenv("REGISTRAR_METRICS__ENABLED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	a, err := NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	kinds := map[string]domainagg.CollectionKind{}
	for _, agg := range a.Aggregates.all() {
		c := agg.Contract()
		kinds[c.Name] = c.Collection
	}
	require.Equal(t, map[string]domainagg.CollectionKind{
		domainagg.UserAggregateContract.Name:    domainagg.CollectionOwned,
		domainagg.AuthorAggregateContract.Name:  domainagg.CollectionOwned,
		domainagg.StudentAggregateContract.Name: domainagg.CollectionShared,
		domainagg.CourseCatalogContract.Name:    domainagg.CollectionShared,
	}, kinds)

	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/courses", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	rec = httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "registrar_api_requests_total")
}
