package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/registrar-backend/internal/http/handlers"
	httpMW "github.com/yungbote/registrar-backend/internal/http/middleware"
	"github.com/yungbote/registrar-backend/internal/observability"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string
	// Tracing adds the otelgin middleware.
	Tracing bool

	UserHandler    *httpH.UserHandler
	AuthorHandler  *httpH.AuthorHandler
	StudentHandler *httpH.StudentHandler
	CourseHandler  *httpH.CourseHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		name := cfg.ServiceName
		if name == "" {
			name = "registrar-api"
		}
		r.Use(otelgin.Middleware(name))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		if h := cfg.UserHandler; h != nil {
			api.POST("/users", h.Create)
			api.GET("/users", h.List)
			api.GET("/users/:id", h.Get)
			api.PUT("/users/:id", h.Update)
			api.PATCH("/users/:id", h.Update)
			api.DELETE("/users/:id", h.Delete)
		}

		if h := cfg.AuthorHandler; h != nil {
			api.POST("/authors", h.Create)
			api.GET("/authors", h.List)
			api.GET("/authors/:id", h.Get)
			api.PUT("/authors/:id", h.Update)
			api.PATCH("/authors/:id", h.Update)
			api.DELETE("/authors/:id", h.Delete)
		}

		if h := cfg.StudentHandler; h != nil {
			api.POST("/students", h.Create)
			api.GET("/students", h.List)
			api.GET("/students/:id", h.Get)
			api.PUT("/students/:id", h.Update)
			api.PATCH("/students/:id", h.Update)
			api.DELETE("/students/:id", h.Delete)
		}

		// Courses are also created implicitly through students.
		if h := cfg.CourseHandler; h != nil {
			api.POST("/courses", h.Create)
			api.GET("/courses", h.List)
			api.GET("/courses/:id", h.Get)
			api.GET("/courses/:id/students", h.Students)
			api.PUT("/courses/:id", h.Rename)
			api.PATCH("/courses/:id", h.Rename)
			api.DELETE("/courses/:id", h.Delete)
		}
	}

	return r
}
