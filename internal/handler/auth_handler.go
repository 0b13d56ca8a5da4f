package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-app/inkwell/internal/entity"
	"github.com/inkwell-app/inkwell/internal/hashid"
	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/inkwell-app/inkwell/internal/middleware"
	"github.com/inkwell-app/inkwell/internal/service"
	"github.com/inkwell-app/inkwell/pkg/logger"
	"go.uber.org/zap"
)

const sessionCookieMaxAge = 60 * 60

type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
	ids         *hashid.Codec
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService, ids *hashid.Codec) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService, ids: ids}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
	Anonym   bool   `json:"anonym"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Render(c, httperr.New(httperr.BadRequest, "Invalid request body"))
		return
	}

	logger.Log.Info("user registration attempt",
		zap.String("email", req.Email),
		zap.String("ip", c.ClientIP()),
	)

	user, err := h.authService.Register(req.Email, req.Username, req.Password, req.Anonym)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	public := h.ids.MustEncode(entity.Users, user.ID)
	c.JSON(http.StatusCreated, gin.H{
		"created": true,
		"id":      public,
		"path":    "/api/users/" + public,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Render(c, httperr.New(httperr.BadRequest, "Invalid request body"))
		return
	}

	user, session, refresh, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	h.setTokenCookies(c, session)

	c.JSON(http.StatusOK, gin.H{
		"token":         session,
		"token_type":    "Bearer",
		"refresh_token": refresh,
		"user":          userResponse(h.ids, user),
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Render(c, httperr.New(httperr.BadRequest, "Invalid request body"))
		return
	}

	session, refresh, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	h.setTokenCookies(c, session)

	c.JSON(http.StatusOK, gin.H{
		"token":         session,
		"token_type":    "Bearer",
		"refresh_token": refresh,
	})
}

// Me returns the authenticated caller's own record.
func (h *AuthHandler) Me(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	if !ident.Authenticated {
		httperr.Render(c, httperr.New(httperr.Unauthorized, "authentication required"))
		return
	}

	user, err := h.userService.Get(ident.UserID)
	if err != nil {
		httperr.Render(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(h.ids, user))
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, session string) {
	secure := h.authService.IsProduction()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", session, sessionCookieMaxAge, "/", "", secure, true)
	c.SetCookie("token_type", "Bearer", sessionCookieMaxAge, "/", "", secure, true)
}
