package handlers

import (
	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
	"github.com/yungbote/registrar-backend/internal/http/response"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
)

type UserHandler struct {
	log   *logger.Logger
	users domainagg.UserAggregate
}

func NewUserHandler(log *logger.Logger, users domainagg.UserAggregate) *UserHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &UserHandler{log: log.With("handler", "UserHandler"), users: users}
}

// POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var in domainagg.CreateUserInput
	if !bindJSON(c, "user.create", &in) {
		return
	}
	u, err := h.users.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	response.RespondCreated(c, u)
}

// GET /api/users?username=&email=
func (h *UserHandler) List(c *gin.Context) {
	filter, ok := queryFilter(c, "user.list", "username", "email")
	if !ok {
		return
	}
	users, err := h.users.List(c.Request.Context(), filter)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	response.RespondOK(c, users)
}

// GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "user.get")
	if !ok {
		return
	}
	u, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	response.RespondOK(c, u)
}

// PUT|PATCH /api/users/:id
// body: { "username"?, "email"?, "profile"?: {...}, "remove_profile"?: true }
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "user.update")
	if !ok {
		return
	}
	var in domainagg.UpdateUserInput
	if !bindJSON(c, "user.update", &in) {
		return
	}
	u, err := h.users.Update(c.Request.Context(), id, in)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	response.RespondOK(c, u)
}

// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "user.delete")
	if !ok {
		return
	}
	u, err := h.users.Delete(c.Request.Context(), id)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	h.log.Info("user deleted", "user_id", u.ID)
	response.RespondOK(c, u)
}
