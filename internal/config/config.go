package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr         string        `env:"LISTEN_ADDR"          env-default:":8080"`
	DatabasePath       string        `env:"DATABASE_PATH"        env-default:"mogbrew.db"`
	ErrorsDatabasePath string        `env:"ERRORS_DATABASE_PATH" env-default:"mogbrew-errors.db"`
	SessionSecret      string        `env:"SESSION_SECRET"       env-default:"mogbrew-dev-secret"`
	GinMode            string        `env:"GIN_MODE"             env-default:"release"`
	Timezone           string        `env:"TIMEZONE"             env-default:"UTC"`
	LogLevel           string        `env:"LOG_LEVEL"            env-default:"info"`
	AppName            string        `env:"APP_NAME"             env-default:"mogbrew"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT"     env-default:"10s"`
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Load 先尝试加载 .env，再从环境变量读取配置，缺失项使用默认值。
func Load() (AppConfig, error) {
	LoadDotEnv()

	var cfg AppConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("config: read env: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, fmt.Errorf("config: validate: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv 依次在当前目录及上两级目录查找 .env，找到第一个即停止。
// 已存在的环境变量不会被覆盖。返回加载的文件路径，未找到时为空。
func LoadDotEnv() string {
	candidates := []string{".env"}
	if workDir, err := os.Getwd(); err == nil {
		parent := filepath.Dir(workDir)
		candidates = append(candidates,
			filepath.Join(workDir, ".env"),
			filepath.Join(parent, ".env"),
			filepath.Join(filepath.Dir(parent), ".env"),
		)
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err == nil {
			abs, _ := filepath.Abs(path)
			return abs
		}
	}
	return ""
}

// Location 返回统计使用的参考时区。
func (c AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Validate 校验时区与日志级别。
func (c AppConfig) Validate() error {
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}

	level := strings.ToLower(c.LogLevel)
	for _, valid := range validLogLevels {
		if level == valid {
			return nil
		}
	}
	return errors.New("log level must be one of debug, info, warn, error")
}

func (c *AppConfig) normalize() {
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	c.DatabasePath = strings.TrimSpace(c.DatabasePath)
	c.ErrorsDatabasePath = strings.TrimSpace(c.ErrorsDatabasePath)
	c.SessionSecret = strings.TrimSpace(c.SessionSecret)
	c.GinMode = strings.TrimSpace(c.GinMode)
	c.Timezone = strings.TrimSpace(c.Timezone)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.AppName = strings.TrimSpace(c.AppName)

	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.AppName == "" {
		c.AppName = "mogbrew"
	}
}
