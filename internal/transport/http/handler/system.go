package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/carlosfcruz/DevOpsProject/internal/core/cache"
	"github.com/carlosfcruz/DevOpsProject/internal/core/config"
	resp "github.com/carlosfcruz/DevOpsProject/internal/transport/http/response"
)

const Version = "1.1.0"

type SystemHandler struct {
	cfg   *config.Config
	cache *cache.Cache
	log   *zap.Logger

	// Delay /slow 的挂起时长，测试里可调小
	Delay time.Duration
}

func NewSystemHandler(cfg *config.Config, ch *cache.Cache, l *zap.Logger) *SystemHandler {
	return &SystemHandler{cfg: cfg, cache: ch, log: l, Delay: 3 * time.Second}
}

func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app_name":    h.cfg.App.Name,
		"environment": h.cfg.App.Env,
		"status":      "running",
	})
}

type versionOut struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	Environment string `json:"environment"`
}

// Version 构建元数据；负载不变，顺手走一遍缓存（redis 不可用时自动回源）
func (h *SystemHandler) Version(c *gin.Context) {
	out, err := cache.GetOrLoadJSON[versionOut](h.cache, c.Request.Context(), "sys:version", time.Minute,
		func(ctx context.Context) (*versionOut, error) {
			return &versionOut{
				Version:     Version,
				Commit:      h.cfg.App.BuildSHA,
				Environment: h.cfg.App.Env,
			}, nil
		})
	if err != nil {
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, out)
}

// Slow 混沌测试用：挂起固定时长，不阻塞其它请求
func (h *SystemHandler) Slow(c *gin.Context) {
	h.log.Warn("slow endpoint triggered", zap.Duration("delay", h.Delay))
	select {
	case <-time.After(h.Delay):
		c.JSON(http.StatusOK, gin.H{"message": "That took a while!"})
	case <-c.Request.Context().Done():
		c.JSON(http.StatusGatewayTimeout, resp.Error(resp.CodeGatewayTimeout, "timeout"))
	}
}

// Crash 混沌测试用：故意 500
func (h *SystemHandler) Crash(c *gin.Context) {
	h.log.Error("crash endpoint triggered")
	c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "intentional chaos triggered"))
}
