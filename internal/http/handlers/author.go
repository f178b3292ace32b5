package handlers

import (
	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
	"github.com/yungbote/registrar-backend/internal/http/response"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
)

type AuthorHandler struct {
	log     *logger.Logger
	authors domainagg.AuthorAggregate
}

func NewAuthorHandler(log *logger.Logger, authors domainagg.AuthorAggregate) *AuthorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthorHandler{log: log.With("handler", "AuthorHandler"), authors: authors}
}

// POST /api/authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var in domainagg.CreateAuthorInput
	if !bindJSON(c, "author.create", &in) {
		return
	}
	out, err := h.authors.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	response.RespondCreated(c, out)
}

// GET /api/authors?name=
func (h *AuthorHandler) List(c *gin.Context) {
	filter, ok := queryFilter(c, "author.list", "name")
	if !ok {
		return
	}
	authors, err := h.authors.List(c.Request.Context(), filter)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	response.RespondOK(c, authors)
}

// GET /api/authors/:id
func (h *AuthorHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "author.get")
	if !ok {
		return
	}
	out, err := h.authors.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// PUT|PATCH /api/authors/:id
// body: { "name"?, "books"?: [{"title": "..."}] }; omitted books are kept, [] clears them
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "author.update")
	if !ok {
		return
	}
	var in domainagg.UpdateAuthorInput
	if !bindJSON(c, "author.update", &in) {
		return
	}
	out, err := h.authors.Update(c.Request.Context(), id, in)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// DELETE /api/authors/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "author.delete")
	if !ok {
		return
	}
	out, err := h.authors.Delete(c.Request.Context(), id)
	if err != nil {
		response.RespondAggregateError(c, err)
		return
	}
	h.log.Info("author deleted", "author_id", out.ID)
	response.RespondOK(c, out)
}
