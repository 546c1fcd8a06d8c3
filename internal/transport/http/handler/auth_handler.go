package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sweetshop-api/internal/domain"
	"sweetshop-api/internal/service"
	resp "sweetshop-api/internal/transport/http/response"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type registerIn struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"     binding:"omitempty"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.svc.Register(c.Request.Context(), in.Email, in.Password, domain.Role(in.Role))
	if err != nil {
		resp.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"userId":  u.ID,
	})
}

type loginIn struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	tok, u, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		resp.FromError(c, err)
		return
	}

	// 客户端只需要渲染角色门禁 UI 的最小画像
	c.JSON(http.StatusOK, gin.H{
		"token": tok,
		"user": gin.H{
			"email": u.Email,
			"role":  u.Role,
		},
	})
}
