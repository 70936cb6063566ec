package handler

import (
	"net/http"

	"Yatube/internal/middleware"
	"Yatube/internal/model"
	"Yatube/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc    *service.PostService
	groups *service.GroupService
	auth   *middleware.Auth
}

func NewPostHandler(svc *service.PostService, groups *service.GroupService, auth *middleware.Auth) *PostHandler {
	return &PostHandler{svc: svc, groups: groups, auth: auth}
}

// Index GET /
func (h *PostHandler) Index(c *gin.Context) {
	page, err := h.svc.ListPosts(c.Request.Context(), pageParam(c))
	if err != nil {
		fail(c, h.auth, "list_posts", err)
		return
	}
	ok(c, "list_posts", gin.H{"page": page})
}

// GroupPosts GET /group/:slug
func (h *PostHandler) GroupPosts(c *gin.Context) {
	res, err := h.svc.ListGroupPosts(c.Request.Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		fail(c, h.auth, "list_posts_by_group", err)
		return
	}
	ok(c, "list_posts_by_group", res)
}

// Profile GET /profile/:username
func (h *PostHandler) Profile(c *gin.Context) {
	res, err := h.svc.Profile(c.Request.Context(), middleware.CurrentUser(c), c.Param("username"), pageParam(c))
	if err != nil {
		fail(c, h.auth, "list_posts_by_author", err)
		return
	}
	ok(c, "list_posts_by_author", res)
}

// Detail GET /posts/:post_id
func (h *PostHandler) Detail(c *gin.Context) {
	id, valid := postIDParam(c)
	if !valid {
		notFound(c, "get_post")
		return
	}
	res, err := h.svc.GetPost(c.Request.Context(), id)
	if err != nil {
		fail(c, h.auth, "get_post", err)
		return
	}
	ok(c, "get_post", res)
}

func (h *PostHandler) groupChoices(c *gin.Context) []model.Group {
	list, err := h.groups.ListGroups(c.Request.Context())
	if err != nil {
		// the form still works without choices
		return []model.Group{}
	}
	return list
}

// CreateForm GET /create
func (h *PostHandler) CreateForm(c *gin.Context) {
	ok(c, "create_form", gin.H{"form": service.PostForm{}, "groups": h.groupChoices(c)})
}

// Create POST /create
func (h *PostHandler) Create(c *gin.Context) {
	var form service.PostForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.RecordAction("create_post", "invalid")
		c.JSON(http.StatusBadRequest, gin.H{"form": form, "errors": gin.H{"__all__": "invalid params"}, "groups": h.groupChoices(c)})
		return
	}
	actor := middleware.CurrentUser(c)
	if _, err := h.svc.CreatePost(c.Request.Context(), actor, form); err != nil {
		if fields := fail(c, h.auth, "create_post", err); fields != nil {
			c.JSON(http.StatusBadRequest, gin.H{"form": form, "errors": fields, "groups": h.groupChoices(c)})
		}
		return
	}
	redirect(c, "create_post", profilePath(actor.Username))
}

// EditForm GET /posts/:post_id/edit
func (h *PostHandler) EditForm(c *gin.Context) {
	id, valid := postIDParam(c)
	if !valid {
		notFound(c, "edit_form")
		return
	}
	post, editable, err := h.svc.EditForm(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		fail(c, h.auth, "edit_form", err)
		return
	}
	if !editable {
		redirect(c, "edit_form", postPath(post.ID))
		return
	}
	form := service.PostForm{Text: post.Text, GroupID: post.GroupID, Image: post.Image}
	ok(c, "edit_form", gin.H{"form": form, "is_edit": true, "post_id": post.ID, "groups": h.groupChoices(c)})
}

// Update POST /posts/:post_id/edit
func (h *PostHandler) Update(c *gin.Context) {
	id, valid := postIDParam(c)
	if !valid {
		notFound(c, "update_post")
		return
	}
	var form service.PostForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.RecordAction("update_post", "invalid")
		c.JSON(http.StatusBadRequest, gin.H{"form": form, "errors": gin.H{"__all__": "invalid params"}, "is_edit": true})
		return
	}
	post, err := h.svc.UpdatePost(c.Request.Context(), middleware.CurrentUser(c), id, form)
	if err != nil {
		if fields := fail(c, h.auth, "update_post", err); fields != nil {
			c.JSON(http.StatusBadRequest, gin.H{"form": form, "errors": fields, "is_edit": true, "groups": h.groupChoices(c)})
		}
		return
	}
	redirect(c, "update_post", postPath(post.ID))
}
