package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 主配置结构体
type Config struct {
	App        *AppConfig        `json:"app" yaml:"app"`
	Browser    *BrowserConfig    `json:"browser" yaml:"browser"`
	Pagination *PaginationConfig `json:"pagination" yaml:"pagination"`
	Extract    *ExtractConfig    `json:"extract" yaml:"extract"`
	Detail     *DetailConfig     `json:"detail" yaml:"detail"`
	Output     *OutputConfig     `json:"output" yaml:"output"`
	Store      *StoreConfig      `json:"store" yaml:"store"`
	Schedule   *ScheduleConfig   `json:"schedule" yaml:"schedule"`
}

// AppConfig represents application configuration settings
type AppConfig struct {
	LogLevel    string `json:"log_level" yaml:"log_level"`
	LogFile     string `json:"log_file" yaml:"log_file"`
	Environment string `json:"environment" yaml:"environment"` // development, production
}

// getDefaultConfig 获取默认配置，所有配置项都使用各自的默认值
func getDefaultConfig() *Config {
	return &Config{
		App:        NewAppConfig(),
		Browser:    NewBrowserConfig(),
		Pagination: NewPaginationConfig(),
		Extract:    NewExtractConfig(),
		Detail:     NewDetailConfig(),
		Output:     NewOutputConfig(),
		Store:      NewStoreConfig(),
		Schedule:   NewScheduleConfig(),
	}
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return getDefaultConfig()
}

// NewAppConfig creates an application configuration with default values populated from environment variables
func NewAppConfig() *AppConfig {
	return &AppConfig{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", ""),
		Environment: getEnv("APP_ENV", "development"),
	}
}

// IsDevelopment reports whether the console development logger should be used
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment != "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func parseStringList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
