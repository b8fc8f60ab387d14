package routes

import (
	"github.com/gin-gonic/gin"

	"socialhub/api/handlers"
	"socialhub/api/middleware"
	"socialhub/config"
)

func PublicApi(router *gin.Engine) *gin.RouterGroup {
	api := router.Group("/api")
	{
		api.POST("/auth/register", handlers.Register)
		api.POST("/auth/login", handlers.Login)

		api.GET("/users/me", middleware.AuthRequired(), handlers.GetMe)
		api.PUT("/users/me", middleware.AuthRequired(), handlers.UpdateMe)

		api.POST("/posts", middleware.AuthRequired(), handlers.CreatePost)
		api.GET("/posts", middleware.OptionalAuth(), handlers.ListPosts)
		api.GET("/posts/:id", handlers.GetPost)
		api.PUT("/posts/:id", middleware.AuthRequired(), handlers.UpdatePost)
		api.DELETE("/posts/:id", middleware.AuthRequired(), handlers.DeletePost)

		api.POST("/posts/:id/comments", middleware.AuthRequired(), handlers.CreateComment)
		// исторический алиас, старые клиенты шлют единственное число
		api.POST("/posts/:id/comment", middleware.AuthRequired(), handlers.CreateComment)
		api.GET("/posts/:id/comments", handlers.ListComments)

		api.POST("/posts/:id/ratings", middleware.AuthRequired(), handlers.RatePost)
		api.POST("/posts/:id/score", middleware.AuthRequired(), handlers.RatePost)

		api.POST("/upload", handlers.Upload)
	}

	admin := api.Group("/admin", middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/users", handlers.AdminListUsers)
		admin.DELETE("/users/:id", handlers.AdminDeleteUser)
		admin.GET("/posts", handlers.AdminListPosts)
		admin.DELETE("/posts/:id", handlers.AdminDeletePost)
		admin.GET("/stats", handlers.AdminStats)
	}

	uploadsDir := "uploads"
	if config.AppConfig != nil && config.AppConfig.Uploads.Dir != "" {
		uploadsDir = config.AppConfig.Uploads.Dir
	}
	router.Static("/uploads", uploadsDir)

	return api
}
