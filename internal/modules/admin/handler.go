package admin

import (
	"net/http"
	"strconv"

	"collabhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the admin surface; the group is expected to already
// carry auth + admin-role middleware.
func (h *Handler) RegisterRoutes(adminGroup *gin.RouterGroup) {
	adminGroup.GET("/users/:id/tokens", h.ListUserTokens)
	adminGroup.POST("/users/:id/tokens/revoke", h.RevokeUserTokens)
}

func (h *Handler) ListUserTokens(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	sessions, err := h.service.Sessions(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list user tokens")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tokens": sessions})
}

func (h *Handler) RevokeUserTokens(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	revoked, err := h.service.RevokeAll(c.Request.Context(), userID, c.ClientIP())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "REVOKE_FAILED", "Failed to revoke user tokens")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"revoked": revoked})
}
