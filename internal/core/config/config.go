package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int `mapstructure:"read_timeout_sec"`
	WriteTimeoutSec int `mapstructure:"write_timeout_sec"`
	IdleTimeoutSec  int `mapstructure:"idle_timeout_sec"`
}

type App struct {
	Name     string
	Env      string
	BuildSHA string `mapstructure:"build_sha"`
	HTTP     HTTP
}

type Log struct {
	Level string
	JSON  bool
}

// DB 连接参数统一用 DB_* 命名（历史上另有 POSTGRES_* 一套，这里不再读取）
type DB struct {
	Driver             string
	Host               string
	Port               int
	Name               string
	User               string
	Password           string
	MaxOpenConns       int    `mapstructure:"max_open_conns"`
	MaxIdleConns       int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMin int    `mapstructure:"conn_max_lifetime_min"`
	AutoMigrate        bool   `mapstructure:"automigrate"`
	LogLevel           string `mapstructure:"log_level"`
}

type Redis struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (r Redis) Addr() string { return fmt.Sprintf("%s:%d", r.Host, r.Port) }

type Config struct {
	App   App
	Log   Log
	DB    DB
	Redis Redis
}

// Load 启动时读取一次；之后视为只读。
// 环境变量永远覆盖文件；没有 CONFIG_PATH 时纯环境变量运行。
func Load(path string) *Config {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindAliases(v)

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			log.Fatalf("read config: %v", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "platform")
	v.SetDefault("app.env", "unknown")
	v.SetDefault("app.build_sha", "dev")
	v.SetDefault("app.http.host", "")
	v.SetDefault("app.http.port", 8000)
	v.SetDefault("app.http.read_timeout_sec", 5)
	v.SetDefault("app.http.write_timeout_sec", 10)
	v.SetDefault("app.http.idle_timeout_sec", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", true)

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "")
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime_min", 30)
	v.SetDefault("db.automigrate", false)
	v.SetDefault("db.log_level", "warn")

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
}

// 个别变量沿用部署侧既有的名字（BUILD_SHA、HTTP_*），不带 APP_ 前缀
func bindAliases(v *viper.Viper) {
	_ = v.BindEnv("app.build_sha", "BUILD_SHA")
	_ = v.BindEnv("app.http.host", "HTTP_HOST")
	_ = v.BindEnv("app.http.port", "HTTP_PORT")
	_ = v.BindEnv("app.http.read_timeout_sec", "HTTP_READ_TIMEOUT_SEC")
	_ = v.BindEnv("app.http.write_timeout_sec", "HTTP_WRITE_TIMEOUT_SEC")
	_ = v.BindEnv("app.http.idle_timeout_sec", "HTTP_IDLE_TIMEOUT_SEC")
}
