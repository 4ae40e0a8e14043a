package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carlosfcruz/DevOpsProject/internal/core/health"
)

type HealthHandler struct {
	checker *health.Checker
}

func NewHealthHandler(checker *health.Checker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Health 永远 200；降级体现在 body 里
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.checker.Check(c.Request.Context()))
}
