package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atvtours/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog/tours", h.ListTours)
	rg.GET("/catalog/vehicles", h.ListVehicles)
	rg.GET("/catalog/extras", h.ListExtras)
}

func (h *Handler) ListTours(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"tours": h.service.Tours()})
}

func (h *Handler) ListVehicles(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"vehicles": h.service.Vehicles()})
}

func (h *Handler) ListExtras(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"extras": h.service.Extras()})
}
