package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sweetshop-api/internal/domain"
)

// Body 统一错误返回体 {"message": "..."}
type Body struct {
	Message string `json:"message"`
}

func Err(c *gin.Context, status int, msg string) {
	c.JSON(status, Body{Message: msg})
}

func AbortErr(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Body{Message: msg})
}

// FromError 业务错误 → HTTP 状态码。没对上的一律 500，不往外漏内部细节
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		Err(c, http.StatusNotFound, "Sweet not found")
	case errors.Is(err, domain.ErrInsufficientStock):
		Err(c, http.StatusBadRequest, "Insufficient stock")
	case errors.Is(err, domain.ErrEmailTaken):
		Err(c, http.StatusBadRequest, "User already exists")
	case errors.Is(err, domain.ErrInvalidRole):
		Err(c, http.StatusBadRequest, "Invalid role")
	case errors.Is(err, domain.ErrInvalidCredentials):
		Err(c, http.StatusUnauthorized, "Invalid credentials")
	default:
		_ = c.Error(err) // 留给 access log
		Err(c, http.StatusInternalServerError, "Internal server error")
	}
}
