package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hotelops/guest-services-backend/internal/catalog"
	"github.com/hotelops/guest-services-backend/internal/pkg/response"
)

type Handler struct {
	catalog catalog.Repository
}

func NewHandler(cat catalog.Repository) *Handler {
	return &Handler{catalog: cat}
}

func (h *Handler) List(c *gin.Context) {
	services, err := h.catalog.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := ListServicesResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		resp.Services = append(resp.Services, NewServiceResponse(s))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}

	svc, err := h.catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewServiceResponse(svc))
}
