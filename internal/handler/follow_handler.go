package handler

import (
	"Yatube/internal/middleware"
	"Yatube/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	svc  *service.FollowService
	auth *middleware.Auth
}

func NewFollowHandler(svc *service.FollowService, auth *middleware.Auth) *FollowHandler {
	return &FollowHandler{svc: svc, auth: auth}
}

// Follow POST /profile/:username/follow
func (h *FollowHandler) Follow(c *gin.Context) {
	username := c.Param("username")
	if err := h.svc.Follow(c.Request.Context(), middleware.CurrentUser(c), username); err != nil {
		fail(c, h.auth, "follow", err)
		return
	}
	redirect(c, "follow", profilePath(username))
}

// Unfollow POST /profile/:username/unfollow
func (h *FollowHandler) Unfollow(c *gin.Context) {
	username := c.Param("username")
	if err := h.svc.Unfollow(c.Request.Context(), middleware.CurrentUser(c), username); err != nil {
		fail(c, h.auth, "unfollow", err)
		return
	}
	redirect(c, "unfollow", profilePath(username))
}

// Feed GET /follow
func (h *FollowHandler) Feed(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	page, err := h.svc.Feed(c.Request.Context(), actor, pageParam(c))
	if err != nil {
		fail(c, h.auth, "list_feed", err)
		return
	}
	authors, err := h.svc.Followings(c.Request.Context(), actor)
	if err != nil {
		fail(c, h.auth, "list_feed", err)
		return
	}
	ok(c, "list_feed", gin.H{"page": page, "authors": authors})
}
