package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/registrar-backend/internal/data/aggregates"
	"github.com/yungbote/registrar-backend/internal/data/repos"
	repotestutil "github.com/yungbote/registrar-backend/internal/data/repos/testutil"
	types "github.com/yungbote/registrar-backend/internal/domain"
	"github.com/yungbote/registrar-backend/internal/http/response"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := repotestutil.DB(t)
	log := repotestutil.Logger(t)
	rs := repos.New(db, log)
	base := aggregates.BaseDeps{DB: db, Log: log}

	users, err := aggregates.NewUserAggregate(aggregates.UserAggregateDeps{BaseDeps: base, Users: rs.Users, Profiles: rs.Profiles})
	require.NoError(t, err)
	authors, err := aggregates.NewAuthorAggregate(aggregates.AuthorAggregateDeps{BaseDeps: base, Authors: rs.Authors, Books: rs.Books})
	require.NoError(t, err)
	students, err := aggregates.NewStudentAggregate(aggregates.StudentAggregateDeps{BaseDeps: base, Students: rs.Students, Courses: rs.Courses, Links: rs.StudentCourses})
	require.NoError(t, err)
	catalog, err := aggregates.NewCourseCatalog(aggregates.CourseCatalogDeps{BaseDeps: base, Courses: rs.Courses, Links: rs.StudentCourses, Students: students})
	require.NoError(t, err)

	uh := NewUserHandler(log, users)
	ah := NewAuthorHandler(log, authors)
	sh := NewStudentHandler(log, students)
	ch := NewCourseHandler(log, catalog)

	r := gin.New()
	r.GET("/healthcheck", NewHealthHandler(db).HealthCheck)
	r.POST("/api/users", uh.Create)
	r.GET("/api/users", uh.List)
	r.GET("/api/users/:id", uh.Get)
	r.PUT("/api/users/:id", uh.Update)
	r.DELETE("/api/users/:id", uh.Delete)
	r.POST("/api/authors", ah.Create)
	r.GET("/api/authors", ah.List)
	r.PUT("/api/authors/:id", ah.Update)
	r.DELETE("/api/authors/:id", ah.Delete)
	r.POST("/api/students", sh.Create)
	r.GET("/api/students/:id", sh.Get)
	r.PUT("/api/students/:id", sh.Update)
	r.DELETE("/api/students/:id", sh.Delete)
	r.GET("/api/courses", ch.List)
	r.GET("/api/courses/:id/students", ch.Students)
	r.DELETE("/api/courses/:id", ch.Delete)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthCheck(t *testing.T) {
	r := newTestEngine(t)
	rec := do(t, r, http.MethodGet, "/healthcheck", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestUserEndpoints(t *testing.T) {
	r := newTestEngine(t)

	rec := do(t, r, http.MethodPost, "/api/users", map[string]any{
		"username": "ada",
		"email":    "ada@example.com",
		"profile": map[string]any{
			"first_name":   "Ada",
			"last_name":    "Lovelace",
			"phone_number": "+441234567",
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[types.User](t, rec)
	require.NotNil(t, created.Profile)
	require.Equal(t, "Ada", created.Profile.FirstName)

	rec = do(t, r, http.MethodPost, "/api/users", map[string]any{"username": "other", "email": "ada@example.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "constraint_violation", decode[response.ErrorEnvelope](t, rec).Error.Code)

	rec = do(t, r, http.MethodPost, "/api/users", map[string]any{"username": "x", "email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_argument", decode[response.ErrorEnvelope](t, rec).Error.Code)

	rec = do(t, r, http.MethodGet, "/api/users?username=ada", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[[]types.User](t, rec)
	require.Len(t, listed, 1)
	require.Equal(t, created.ID, listed[0].ID)

	rec = do(t, r, http.MethodGet, "/api/users?password=x", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodPut, "/api/users/"+created.ID.String(), map[string]any{"remove_profile": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Nil(t, decode[types.User](t, rec).Profile)

	rec = do(t, r, http.MethodDelete, "/api/users/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, created.ID, decode[types.User](t, rec).ID)

	rec = do(t, r, http.MethodGet, "/api/users/"+created.ID.String(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "not_found", decode[response.ErrorEnvelope](t, rec).Error.Code)
}

func TestInvalidIDAndBody(t *testing.T) {
	r := newTestEngine(t)

	rec := do(t, r, http.MethodGet, "/api/users/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_argument", decode[response.ErrorEnvelope](t, rec).Error.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/authors", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rec = do(t, r, http.MethodDelete, "/api/authors/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthorEndpointsReplaceBooks(t *testing.T) {
	r := newTestEngine(t)

	rec := do(t, r, http.MethodPost, "/api/authors", map[string]any{
		"name":  "Edgar Allan Poe",
		"books": []map[string]string{{"title": "The Raven"}, {"title": "The Black Cat"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	author := decode[types.Author](t, rec)
	require.Len(t, author.Books, 2)

	rec = do(t, r, http.MethodPut, "/api/authors/"+author.ID.String(), map[string]any{
		"books": []map[string]string{{"title": "The Tell-Tale Heart"}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[types.Author](t, rec)
	require.Equal(t, "Edgar Allan Poe", updated.Name)
	require.Len(t, updated.Books, 1)
	require.Equal(t, "The Tell-Tale Heart", updated.Books[0].Title)

	rec = do(t, r, http.MethodGet, "/api/authors?name=Edgar+Allan+Poe", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]types.Author](t, rec), 1)
}

func TestStudentAndCourseEndpoints(t *testing.T) {
	r := newTestEngine(t)

	rec := do(t, r, http.MethodPost, "/api/students", map[string]any{"name": "Alice", "courses": []string{"Math", "Art", "Math"}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	alice := decode[types.Student](t, rec)
	require.Len(t, alice.Courses, 2)

	rec = do(t, r, http.MethodPost, "/api/students", map[string]any{"name": "Bob", "courses": []string{"Math"}})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, r, http.MethodGet, "/api/courses?title=Math", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	courses := decode[[]types.Course](t, rec)
	require.Len(t, courses, 1)
	math := courses[0]

	rec = do(t, r, http.MethodGet, "/api/courses/"+math.ID.String()+"/students", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]types.Student](t, rec), 2)

	rec = do(t, r, http.MethodDelete, "/api/students/"+alice.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[types.Student](t, rec).Courses, 2)

	rec = do(t, r, http.MethodGet, "/api/courses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]types.Course](t, rec), 2, "courses outlive their students")

	rec = do(t, r, http.MethodDelete, "/api/courses/"+math.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, r, http.MethodGet, "/api/courses/"+math.ID.String()+"/students", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
