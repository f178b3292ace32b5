package handlers

import (
	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
	"github.com/yungbote/registrar-backend/internal/http/response"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
)

type StudentHandler struct {
	log      *logger.Logger
	students domainagg.StudentAggregate
}

func NewStudentHandler(log *logger.Logger, students domainagg.StudentAggregate) *StudentHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &StudentHandler{log: log.With("handler", "StudentHandler"), students: students}
}

// POST /api/students
func (h *StudentHandler) Create(c *gin.Context) {
	var in domainagg.CreateStudentInput
	if !bindJSON(c, "student.create", &in) {
		return
	}
	out, err := h.students.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	response.RespondCreated(c, out)
}

// GET /api/students?name=
func (h *StudentHandler) List(c *gin.Context) {
	filter, ok := queryFilter(c, "student.list", "name")
	if !ok {
		return
	}
	students, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	response.RespondOK(c, students)
}

// GET /api/students/:id
func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "student.get")
	if !ok {
		return
	}
	out, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// PUT|PATCH /api/students/:id
// body: { "name"?, "courses"?: ["Math", ...] }; courses are matched by title and created when missing
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "student.update")
	if !ok {
		return
	}
	var in domainagg.UpdateStudentInput
	if !bindJSON(c, "student.update", &in) {
		return
	}
	out, err := h.students.Update(c.Request.Context(), id, in)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// DELETE /api/students/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "student.delete")
	if !ok {
		return
	}
	out, err := h.students.Delete(c.Request.Context(), id)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	h.log.Info("student deleted", "student_id", out.ID)
	response.RespondOK(c, out)
}
