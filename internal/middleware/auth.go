package middleware

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"

	"Yatube/internal/model"
	"Yatube/internal/pkg"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserKey  = "user"
	AccessCookieKey = "access_token"
)

type UserFinder interface {
	FindByID(ctx context.Context, id uint64) (*model.User, error)
}

// SessionStore is the identity service's record of the one active token per user.
type SessionStore interface {
	GetUserToken(ctx context.Context, userID uint64) (string, error)
	ExtendUserToken(ctx context.Context, userID uint64) error
}

type Auth struct {
	users    UserFinder
	sessions SessionStore
	loginURL string
}

// NewAuth builds the actor resolver. sessions may be nil, in which case a
// valid signature is enough.
func NewAuth(users UserFinder, sessions SessionStore, loginURL string) *Auth {
	return &Auth{users: users, sessions: sessions, loginURL: loginURL}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		token, err := c.Cookie(AccessCookieKey)
		if err != nil {
			return ""
		}
		return token
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func (a *Auth) resolve(c *gin.Context) *model.User {
	tokenStr := bearerToken(c)
	if tokenStr == "" {
		return nil
	}
	claims, err := pkg.ParseAccess(tokenStr)
	if err != nil {
		return nil
	}
	ctx := c.Request.Context()
	if a.sessions != nil {
		origin, err := a.sessions.GetUserToken(ctx, claims.UserID)
		if err != nil || origin != tokenStr {
			// logged out or logged in elsewhere
			return nil
		}
		if err := a.sessions.ExtendUserToken(ctx, claims.UserID); err != nil {
			log.Printf("extend session user=%d err: %v", claims.UserID, err)
		}
	}
	user, err := a.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil
	}
	return user
}

// Optional lets anonymous requests through.
func (a *Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := a.resolve(c); user != nil {
			c.Set(ContextUserKey, user)
		}
		c.Next()
	}
}

func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := a.resolve(c)
		if user == nil {
			a.RedirectToLogin(c)
			c.Abort()
			return
		}
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

func (a *Auth) RedirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, LoginURL(a.loginURL, c.Request.URL.RequestURI()))
}

func LoginURL(loginURL, next string) string {
	return loginURL + "?next=" + url.QueryEscape(next)
}

// CurrentUser returns the actor injected by Optional or Required, or nil.
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(ContextUserKey); ok {
		if u, ok2 := v.(*model.User); ok2 {
			return u
		}
	}
	return nil
}
