package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-server/internal/middleware"
	"portfolio-server/internal/models"
	"portfolio-server/internal/services"
	"portfolio-server/internal/utils"
)

// AuthHandler handles admin sign-in.
type AuthHandler struct {
	Auth         *services.AuthService
	SecureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie marks the session
// cookie HTTPS-only.
func NewAuthHandler(auth *services.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{Auth: auth, SecureCookie: secureCookie}
}

// LoginRequest represents the request body for admin login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	Token string               `json:"token"`
	User  models.UserSanitized `json:"user"`
}

// Login checks the credentials and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, token, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, token, int(h.Auth.TTL().Seconds()))
	utils.Success(c, LoginResponse{Token: token, User: user.Sanitize()})
}

// Logout clears the session cookie. Tokens are stateless and expire on their own.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	utils.Success(c, gin.H{"loggedOut": true})
}

// Session returns the current principal.
func (h *AuthHandler) Session(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "Non authentifié", nil)
		return
	}
	utils.Success(c, principal)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", h.SecureCookie, true)
}
