package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/registrar-backend/internal/data/aggregates"
	"github.com/yungbote/registrar-backend/internal/data/repos"
	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
	"github.com/yungbote/registrar-backend/internal/observability"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
)

func wireRepos(db *gorm.DB, log *logger.Logger) repos.Repos {
	log.Info("Wiring repos...")
	return repos.New(db, log)
}

type Aggregates struct {
	Users    domainagg.UserAggregate
	Authors  domainagg.AuthorAggregate
	Students domainagg.StudentAggregate
	Courses  domainagg.CourseCatalog
}

func wireAggregates(db *gorm.DB, log *logger.Logger, metrics *observability.Metrics, rs repos.Repos, cfg ResolverConfig) (Aggregates, error) {
	log.Info("Wiring aggregates...")
	base := aggregates.BaseDeps{
		DB:     db,
		Log:    log,
		Runner: aggregates.NewGormTxRunner(db),
		Hooks:  aggregates.NewObservabilityHooks(metrics),
		Tracer: observability.Tracer(),
	}

	users, err := aggregates.NewUserAggregate(aggregates.UserAggregateDeps{
		BaseDeps: base,
		Users:    rs.Users,
		Profiles: rs.Profiles,
	})
	if err != nil {
		return Aggregates{}, err
	}
	authors, err := aggregates.NewAuthorAggregate(aggregates.AuthorAggregateDeps{
		BaseDeps: base,
		Authors:  rs.Authors,
		Books:    rs.Books,
	})
	if err != nil {
		return Aggregates{}, err
	}
	students, err := aggregates.NewStudentAggregate(aggregates.StudentAggregateDeps{
		BaseDeps:        base,
		Students:        rs.Students,
		Courses:         rs.Courses,
		Links:           rs.StudentCourses,
		ResolveAttempts: cfg.MaxAttempts,
	})
	if err != nil {
		return Aggregates{}, err
	}
	courses, err := aggregates.NewCourseCatalog(aggregates.CourseCatalogDeps{
		BaseDeps: base,
		Courses:  rs.Courses,
		Links:    rs.StudentCourses,
		Students: students,
	})
	if err != nil {
		return Aggregates{}, err
	}
	out := Aggregates{Users: users, Authors: authors, Students: students, Courses: courses}
	for _, agg := range out.all() {
		c := agg.Contract()
		log.Info("aggregate ready", "name", c.Name, "collection", string(c.Collection))
	}
	return out, nil
}

func (a Aggregates) all() []domainagg.Aggregate {
	return []domainagg.Aggregate{a.Users, a.Authors, a.Students, a.Courses}
}
