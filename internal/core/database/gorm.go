package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
)

type Opts struct {
	Driver             string
	DSN                string // 非空则直接使用，忽略下面的拆分字段
	Host               string
	Port               int
	User               string
	Password           string
	Name               string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
}

var ErrUnsupportedDriver = errors.New("database: unsupported driver")

// DSN 按驱动从拆分字段拼接；sqlite 只认显式 DSN（文件路径或 file::memory:）
func (o Opts) dsn() string {
	if o.DSN != "" {
		return o.DSN
	}
	switch o.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			o.Host, o.Port, o.User, o.Password, o.Name)
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
			o.User, o.Password, o.Host, o.Port, o.Name)
	}
	return ""
}

func (o Opts) dialector() (gorm.Dialector, error) {
	switch o.Driver {
	case "postgres":
		return postgres.Open(o.dsn()), nil
	case "mysql":
		return mysql.Open(o.dsn()), nil
	case "sqlite":
		return sqlite.Open(o.dsn()), nil
	}
	return nil, ErrUnsupportedDriver
}

// NewGorm 进程级会话工厂：启动时创建一次，所有 CRUD 请求共用连接池。
func NewGorm(o Opts) (*gorm.DB, error) {
	dial, err := o.dialector()
	if err != nil {
		return nil, err
	}

	lvl := logger.Warn
	switch o.LogLevel {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(lvl),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)
	db = db.
		Session(&gorm.Session{
			PrepareStmt:            true, // 预编译缓存，提高 QPS
			SkipDefaultTransaction: true, // 只在需要时手动开 Tx
		})
	return db, nil
}
