package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Stepheeeen/impressa/internal/adapter/http/middleware"
	"github.com/Stepheeeen/impressa/internal/usecase"
)

type AuthHandler struct {
	auth *usecase.Authenticator
}

func NewAuthHandler(auth *usecase.Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /session/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := timeoutCtx(c, 5*time.Second)
	defer cancel()

	user, err := h.auth.Login(ctx, middleware.SessionID(c), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// POST /session/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := timeoutCtx(c, 5*time.Second)
	defer cancel()

	user, err := h.auth.Register(ctx, middleware.SessionID(c), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// POST /session/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx, cancel := timeoutCtx(c, 3*time.Second)
	defer cancel()

	if err := h.auth.Logout(ctx, middleware.SessionID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
