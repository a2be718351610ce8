package http

import (
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/auth"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

type Handlers struct {
	Auth    *AuthHandler
	Profile *ProfileHandler
	Post    *PostHandler
	RSS     *RSSHandler
}

var registerTagName sync.Once

// useJSONFieldNames makes validation errors report json keys instead of Go field names.
func useJSONFieldNames() {
	registerTagName.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

func NewRouter(h Handlers, jwtSvc *auth.JWTService, log logger.Logger) *gin.Engine {
	useJSONFieldNames()

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), ErrorMiddleware(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-auth-token", headerRequestID},
		ExposeHeaders:    []string{headerRequestID},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	authMiddleware := AuthMiddleware(jwtSvc, log)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		api.POST("/users", h.Auth.Register)
		api.POST("/users/avatar", authMiddleware, h.Auth.UploadAvatar)
		api.POST("/auth", h.Auth.Login)
		api.GET("/auth", authMiddleware, h.Auth.Me)

		profiles := api.Group("/profile")
		{
			profiles.GET("", h.Profile.List)
			profiles.GET("/user/:user_id", h.Profile.GetByUser)
			profiles.GET("/github/:username", h.Profile.GithubRepos)

			private := profiles.Group("")
			private.Use(authMiddleware)
			private.GET("/me", h.Profile.GetMine)
			private.POST("", h.Profile.Upsert)
			private.DELETE("", h.Profile.Delete)
			private.PUT("/experience", h.Profile.AddExperience)
			private.DELETE("/experience/:exp_id", h.Profile.RemoveExperience)
			private.PUT("/education", h.Profile.AddEducation)
			private.DELETE("/education/:edu_id", h.Profile.RemoveEducation)
		}

		posts := api.Group("/post")
		{
			posts.GET("/rss", h.RSS.GenerateRSS)

			private := posts.Group("")
			private.Use(authMiddleware)
			private.POST("", h.Post.CreatePost)
			private.GET("", h.Post.ListPosts)
			private.GET("/:id", h.Post.GetPost)
			private.DELETE("/:id", h.Post.DeletePost)
			private.PUT("/like/:id", h.Post.Like)
			private.PUT("/unlike/:id", h.Post.Unlike)
			private.POST("/comment/:id", h.Post.AddComment)
			private.DELETE("/comment/:id/:comment_id", h.Post.RemoveComment)
		}
	}

	return router
}
