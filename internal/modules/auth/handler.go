package auth

import (
	"errors"
	"net/http"

	"collabhub/internal/config"
	"collabhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
	cfg     *config.Config
}

func NewHandler(service *Service, cfg *config.Config) *Handler {
	return &Handler{service: service, cfg: cfg}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/revoke", h.Revoke)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	userGroup := protected.Group("/users")
	{
		userGroup.GET("/me", h.GetMe)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register user")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user": UserPublic{
			ID:    user.ID,
			Role:  string(user.Role),
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		return
	}

	h.setRefreshCookie(c, result.Tokens.RefreshToken)
	response.Success(c, http.StatusOK, gin.H{
		"user": UserPublic{
			ID:    result.User.ID,
			Role:  string(result.User.Role),
			Name:  result.User.Name,
			Email: result.User.Email,
		},
		"access_token":  result.Tokens.AccessToken,
		"refresh_token": result.Tokens.RefreshToken,
	})
}

func (h *Handler) Refresh(c *gin.Context) {
	raw, ok := h.refreshTokenFromRequest(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Refresh token is required")
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), raw, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenNotFound):
			response.Error(c, http.StatusBadRequest, "TOKEN_NOT_FOUND", "Unknown refresh token")
		case errors.Is(err, ErrInvalidRefreshToken):
			response.Error(c, http.StatusBadRequest, "INVALID_REFRESH_TOKEN", "Session is invalid or expired")
		default:
			response.Error(c, http.StatusInternalServerError, "REFRESH_FAILED", "Failed to refresh session")
		}
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	response.Success(c, http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (h *Handler) Revoke(c *gin.Context) {
	raw, ok := h.refreshTokenFromRequest(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Refresh token is required")
		return
	}

	if err := h.service.Revoke(c.Request.Context(), raw, c.ClientIP()); err != nil {
		switch {
		case errors.Is(err, ErrTokenNotFound):
			response.Error(c, http.StatusBadRequest, "TOKEN_NOT_FOUND", "Unknown refresh token")
		case errors.Is(err, ErrInvalidRefreshToken):
			response.Error(c, http.StatusBadRequest, "INVALID_REFRESH_TOKEN", "Session is invalid or expired")
		default:
			response.Error(c, http.StatusInternalServerError, "REVOKE_FAILED", "Failed to revoke session")
		}
		return
	}

	h.clearRefreshCookie(c)
	response.Success(c, http.StatusOK, gin.H{"message": "Token revoked"})
}

func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	user, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": UserPublic{
			ID:    user.ID,
			Role:  string(user.Role),
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

// refreshTokenFromRequest reads the token from the JSON body, falling back to
// the refresh cookie so browser clients don't have to echo it.
func (h *Handler) refreshTokenFromRequest(c *gin.Context) (string, bool) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken, true
	}
	if cookie, err := c.Cookie("refresh_token"); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

func (h *Handler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(sameSiteFromConfig(h.cfg.CookieSameSite))
	c.SetCookie("refresh_token", token, int(h.cfg.RefreshTTL.Seconds()), h.cfg.CookiePath, "", h.cfg.CookieSecure, true)
}

func (h *Handler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(sameSiteFromConfig(h.cfg.CookieSameSite))
	c.SetCookie("refresh_token", "", -1, h.cfg.CookiePath, "", h.cfg.CookieSecure, true)
}

func sameSiteFromConfig(v string) http.SameSite {
	switch v {
	case "None", "none":
		return http.SameSiteNoneMode
	case "Strict", "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}
