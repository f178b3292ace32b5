package app

import (
	"gorm.io/gorm"

	apphttp "github.com/yungbote/registrar-backend/internal/http"
	httpH "github.com/yungbote/registrar-backend/internal/http/handlers"
	"github.com/yungbote/registrar-backend/internal/observability"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	User    *httpH.UserHandler
	Author  *httpH.AuthorHandler
	Student *httpH.StudentHandler
	Course  *httpH.CourseHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, aggs Aggregates) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(db),
		User:    httpH.NewUserHandler(log, aggs.Users),
		Author:  httpH.NewAuthorHandler(log, aggs.Authors),
		Student: httpH.NewStudentHandler(log, aggs.Students),
		Course:  httpH.NewCourseHandler(log, aggs.Courses),
	}
}

func wireServer(cfg Config, log *logger.Logger, metrics *observability.Metrics, handlers Handlers) *apphttp.Server {
	return apphttp.NewServer(cfg.HTTP, apphttp.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		ServiceName:    cfg.Otel.ServiceName,
		Tracing:        cfg.Otel.Enabled,
		UserHandler:    handlers.User,
		AuthorHandler:  handlers.Author,
		StudentHandler: handlers.Student,
		CourseHandler:  handlers.Course,
		HealthHandler:  handlers.Health,
	})
}
