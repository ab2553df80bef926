package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("")

	group.Use(authMiddleware)
	{
		group.POST("/services/:id/purchases", h.Create)
		group.POST("/staff/services/:id/purchases", h.CreateAssisted)
	}
}
