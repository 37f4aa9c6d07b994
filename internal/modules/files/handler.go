package files

import (
	"errors"
	"net/http"
	"strconv"

	"nexusfiles/internal/pkg/response"
	"nexusfiles/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/files", h.List)
	rg.DELETE("/files/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		if errors.Is(err, repository.ErrStoreUnavailable) {
			response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Registry store is unavailable")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list files")
		return
	}

	response.Success(c, http.StatusOK, ListResponse{Files: list, Total: len(list)})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid file record ID")
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrStoreUnavailable) {
			response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Registry store is unavailable")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete file")
		return
	}
	if !deleted {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "No file record with that ID")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
