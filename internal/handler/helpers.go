package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"Yatube/internal/middleware"
	"Yatube/internal/pkg"
	"Yatube/internal/service"

	"github.com/gin-gonic/gin"
)

func pageParam(c *gin.Context) int {
	return pkg.ParsePageNumber(c.Query("page"))
}

// postIDParam parses :post_id. Anything but a positive integer is a missing post.
func postIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func profilePath(username string) string {
	return "/profile/" + url.PathEscape(username)
}

func postPath(id uint64) string {
	return fmt.Sprintf("/posts/%d", id)
}

func notFound(c *gin.Context, action string) {
	middleware.RecordAction(action, "not_found")
	c.JSON(http.StatusNotFound, gin.H{"msg": "not found"})
}

// fail maps a service error onto the response. It returns the field errors
// when err is a validation failure so the caller can re-render its form.
func fail(c *gin.Context, auth *middleware.Auth, action string, err error) map[string]string {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.RecordAction(action, "invalid")
		return verr.Fields
	case errors.Is(err, service.ErrNotFound):
		notFound(c, action)
	case errors.Is(err, service.ErrAuthRequired):
		middleware.RecordAction(action, "login_required")
		auth.RedirectToLogin(c)
	default:
		log.Printf("%s err: %v", action, err)
		middleware.RecordAction(action, "error")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
	}
	return nil
}

func redirect(c *gin.Context, action, location string) {
	middleware.RecordAction(action, "ok")
	c.Redirect(http.StatusFound, location)
}

func ok(c *gin.Context, action string, body any) {
	middleware.RecordAction(action, "ok")
	c.JSON(http.StatusOK, body)
}
