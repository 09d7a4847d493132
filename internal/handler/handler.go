package handler

import (
	"github.com/chirpnet/feed-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		posts := v1.Group("/posts")
		{
			posts.GET("", h.postsGetAll)
			posts.POST("", h.authMiddleware, h.postsCreate)
			posts.GET("/author/:userID", h.postsGetByAuthor)
			posts.GET("/:postID", h.postsGetByID)
		}

		profile := v1.Group("/profile")
		{
			profile.GET("/:username", h.profileGetByUsername)
		}
	}

	return r
}
