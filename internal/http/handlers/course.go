package handlers

import (
	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
	"github.com/yungbote/registrar-backend/internal/http/response"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
)

type CourseHandler struct {
	log     *logger.Logger
	catalog domainagg.CourseCatalog
}

func NewCourseHandler(log *logger.Logger, catalog domainagg.CourseCatalog) *CourseHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &CourseHandler{log: log.With("handler", "CourseHandler"), catalog: catalog}
}

// POST /api/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var in domainagg.CreateCourseInput
	if !bindJSON(c, "course.create", &in) {
		return
	}
	course, err := h.catalog.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	response.RespondCreated(c, course)
}

// GET /api/courses?title=
func (h *CourseHandler) List(c *gin.Context) {
	filter, ok := queryFilter(c, "course.list", "title")
	if !ok {
		return
	}
	courses, err := h.catalog.List(c.Request.Context(), filter)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	response.RespondOK(c, courses)
}

func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "course.get")
	if !ok {
		return
	}
	course, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	response.RespondOK(c, course)
}

// PUT|PATCH /api/courses/:id
// body: { "title": "..." }
func (h *CourseHandler) Rename(c *gin.Context) {
	id, ok := pathID(c, "course.rename")
	if !ok {
		return
	}
	var in domainagg.UpdateCourseInput
	if !bindJSON(c, "course.rename", &in) {
		return
	}
	course, err := h.catalog.Rename(c.Request.Context(), id, in)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	response.RespondOK(c, course)
}

// DELETE /api/courses/:id drops every enrollment in the course; students are kept.
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "course.delete")
	if !ok {
		return
	}
	course, err := h.catalog.Delete(c.Request.Context(), id)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	h.log.Info("course deleted", "course_id", course.ID, "title", course.Title)
	response.RespondOK(c, course)
}

// GET /api/courses/:id/students
func (h *CourseHandler) Students(c *gin.Context) {
	id, ok := pathID(c, "course.students")
	if !ok {
		return
	}
	students, err := h.catalog.Students(c.Request.Context(), id)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	response.RespondOK(c, students)
}
