package handler

import (
	"errors"
	"net/http"

	"Yatube/internal/middleware"
	"Yatube/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc  *service.CommentService
	auth *middleware.Auth
}

func NewCommentHandler(svc *service.CommentService, auth *middleware.Auth) *CommentHandler {
	return &CommentHandler{svc: svc, auth: auth}
}

// Create POST /posts/:post_id/comment. Guest comments are dropped and the
// client is sent back to the post.
func (h *CommentHandler) Create(c *gin.Context) {
	id, valid := postIDParam(c)
	if !valid {
		notFound(c, "create_comment")
		return
	}
	var form service.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.RecordAction("create_comment", "invalid")
		c.JSON(http.StatusBadRequest, gin.H{"form": form, "errors": gin.H{"__all__": "invalid params"}})
		return
	}
	_, err := h.svc.CreateComment(c.Request.Context(), middleware.CurrentUser(c), id, form)
	if errors.Is(err, service.ErrAuthRequired) {
		middleware.RecordAction("create_comment", "dropped")
		c.Redirect(http.StatusFound, postPath(id))
		return
	}
	if err != nil {
		if fields := fail(c, h.auth, "create_comment", err); fields != nil {
			c.JSON(http.StatusBadRequest, gin.H{"form": form, "errors": fields})
		}
		return
	}
	redirect(c, "create_comment", postPath(id))
}
