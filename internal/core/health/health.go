// Package health 聚合依赖探测：数据库 + redis，各自降级为状态字符串。
package health

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/carlosfcruz/DevOpsProject/internal/core/database"
)

type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

const (
	OverallOK       = "ok"
	OverallDegraded = "degraded"
)

// Report 每次评估现算，不缓存
type Report struct {
	Status    string `json:"status"`
	Database  Status `json:"database"`
	Cache     Status `json:"cache"`
	Timestamp string `json:"timestamp"`
}

type Checker struct {
	dbOpts        database.Opts
	redisAddr     string
	redisPassword string
	redisDB       int
	log           *zap.Logger
}

func NewChecker(dbOpts database.Opts, redisAddr, redisPassword string, redisDB int, l *zap.Logger) *Checker {
	return &Checker{
		dbOpts:        dbOpts,
		redisAddr:     redisAddr,
		redisPassword: redisPassword,
		redisDB:       redisDB,
		log:           l,
	}
}

// CheckDatabase 短连接探测：开一条新连接、ping、关掉。
// 任何失败都折算成 "error"，不重试，超时交给驱动默认值。
func (c *Checker) CheckDatabase(ctx context.Context) Status {
	o := c.dbOpts
	o.LogLevel = "silent"
	db, err := database.NewGorm(o)
	if err != nil {
		return StatusError
	}
	sqlDB, err := db.DB()
	if err != nil {
		return StatusError
	}
	defer sqlDB.Close()
	if err := sqlDB.PingContext(ctx); err != nil {
		return StatusError
	}
	return StatusOK
}

// CheckCache 新建短连接发 PING
func (c *Checker) CheckCache(ctx context.Context) Status {
	rdb := redis.NewClient(&redis.Options{
		Addr:     c.redisAddr,
		Password: c.redisPassword,
		DB:       c.redisDB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return StatusError
	}
	return StatusOK
}

// Check 两项探测都 ok 才整体 ok，否则 degraded。无状态，幂等。
func (c *Checker) Check(ctx context.Context) Report {
	dbStatus := c.CheckDatabase(ctx)
	cacheStatus := c.CheckCache(ctx)

	overall := OverallOK
	if dbStatus != StatusOK || cacheStatus != StatusOK {
		overall = OverallDegraded
	}

	c.log.Info("health check",
		zap.String("database", string(dbStatus)),
		zap.String("cache", string(cacheStatus)),
		zap.String("status", overall),
	)

	return Report{
		Status:    overall,
		Database:  dbStatus,
		Cache:     cacheStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
}
