package router

import (
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/carlosfcruz/DevOpsProject/internal/core/cache"
	"github.com/carlosfcruz/DevOpsProject/internal/core/config"
	"github.com/carlosfcruz/DevOpsProject/internal/core/health"
	"github.com/carlosfcruz/DevOpsProject/internal/transport/http/handler"
	mdw "github.com/carlosfcruz/DevOpsProject/internal/transport/http/middleware"
)

func NewAPIEngine(l *zap.Logger, cfg *config.Config, db *gorm.DB, checker *health.Checker, ch *cache.Cache) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	sys := handler.NewSystemHandler(cfg, ch, l)
	hh := handler.NewHealthHandler(checker)

	r.GET("/", sys.Root)
	r.GET("/health", hh.Health)
	r.GET("/version", sys.Version)
	r.GET("/slow", sys.Slow)
	r.GET("/crash", sys.Crash)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	mountUserActions(&r.RouterGroup, db)

	return r
}
