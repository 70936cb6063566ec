package router

import (
	"time"

	"Yatube/internal/handler"
	"Yatube/internal/middleware"
	"Yatube/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	Posts    *service.PostService
	Groups   *service.GroupService
	Comments *service.CommentService
	Follows  *service.FollowService
}

type Options struct {
	AllowOrigins []string
	ServiceName  string
}

func InitRouter(svc Services, auth *middleware.Auth, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if opts.ServiceName == "" {
		opts.ServiceName = "yatube"
	}
	r.Use(middleware.PrometheusMiddleware(opts.ServiceName))
	if len(opts.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Location"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	post := handler.NewPostHandler(svc.Posts, svc.Groups, auth)
	comment := handler.NewCommentHandler(svc.Comments, auth)
	follow := handler.NewFollowHandler(svc.Follows, auth)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// public pages, the actor is resolved when present
	public := r.Group("/")
	public.Use(auth.Optional())
	{
		public.GET("/", post.Index)
		public.GET("/group/:slug", post.GroupPosts)
		public.GET("/profile/:username", post.Profile)
		public.GET("/posts/:post_id", post.Detail)
		public.POST("/posts/:post_id/comment", comment.Create)
	}

	private := r.Group("/")
	private.Use(auth.Required())
	{
		private.GET("/create", post.CreateForm)
		private.POST("/create", post.Create)
		private.GET("/posts/:post_id/edit", post.EditForm)
		private.POST("/posts/:post_id/edit", post.Update)
		private.POST("/profile/:username/follow", follow.Follow)
		private.POST("/profile/:username/unfollow", follow.Unfollow)
		private.GET("/follow", follow.Feed)
	}

	return r
}
