package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/services")

	group.Use(authMiddleware)
	{
		group.GET("/:id/availability", h.Get)
		group.GET("/:id/availability/best", h.Best)
	}
}
