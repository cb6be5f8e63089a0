package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadConfig 从指定路径加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	// 如果配置文件不存在，返回默认配置
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return getDefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigNotFound, err)
	}

	// Start from defaults so a partial file only overrides what it names
	config := getDefaultConfig()
	ext := filepath.Ext(configPath)

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("%w: JSON parsing failed: %v", ErrInvalidFormat, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("%w: YAML parsing failed: %v", ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config file format: %s", ErrInvalidFormat, ext)
	}

	mergeEnvVars(config)
	return config, nil
}

// SaveConfig 保存配置到指定路径
func SaveConfig(config *Config, configPath string) error {
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	ext := filepath.Ext(configPath)
	var data []byte
	var err error

	switch ext {
	case ".json":
		data, err = json.MarshalIndent(config, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		return fmt.Errorf("%w: unsupported config file format: %s", ErrInvalidFormat, ext)
	}

	if err != nil {
		return fmt.Errorf("config serialization failed: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getDefaultConfigPath 获取默认配置文件路径
func getDefaultConfigPath() string {
	// 优先级：当前目录 > 用户配置目录 > 系统配置目录
	paths := []string{
		"./config.yaml",
		"./config.json",
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(homeDir, ".shopscan", "config.yaml"),
			filepath.Join(homeDir, ".shopscan", "config.json"),
		)
	}

	paths = append(paths,
		"/etc/shopscan/config.yaml",
		"/etc/shopscan/config.json",
	)

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return "./config.yaml"
}

// mergeEnvVars 将环境变量合并到配置中
func mergeEnvVars(config *Config) {
	mergeAppEnvVars(config)
	mergeBrowserEnvVars(config)
	mergePaginationEnvVars(config)
	mergeOutputEnvVars(config)
	mergeDetailEnvVars(config)
	mergeStoreEnvVars(config)
	mergeScheduleEnvVars(config)
}

func mergeAppEnvVars(config *Config) {
	if config.App == nil {
		config.App = NewAppConfig()
		return
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.App.LogLevel = logLevel
	}
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		config.App.LogFile = logFile
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		config.App.Environment = env
	}
}

func mergeBrowserEnvVars(config *Config) {
	if config.Browser == nil {
		config.Browser = NewBrowserConfig()
		return
	}

	b := config.Browser
	envMappings := map[string]interface{}{
		"SHOPSCAN_TARGET_URL":      &b.TargetURL,
		"SHOPSCAN_USER_AGENT":      &b.UserAgent,
		"SHOPSCAN_ACCEPT_LANGUAGE": &b.AcceptLanguage,
		"SHOPSCAN_CHROME_PATH":     &b.ChromePath,
		"SHOPSCAN_NAV_TIMEOUT":     &b.NavigationTimeout,
	}
	applyEnvMappings(envMappings)

	if headless := os.Getenv("SHOPSCAN_HEADLESS"); headless != "" {
		b.Headless = headless == "true" || headless == "1"
	}
}

func mergePaginationEnvVars(config *Config) {
	if config.Pagination == nil {
		config.Pagination = NewPaginationConfig()
		return
	}

	applyEnvMappings(map[string]interface{}{
		"SHOPSCAN_MAX_CLICKS":       &config.Pagination.MaxClicks,
		"SHOPSCAN_STAGNATION_LIMIT": &config.Pagination.StagnationLimit,
	})
	if phrases := os.Getenv("SHOPSCAN_MORE_PHRASES"); phrases != "" {
		config.Pagination.Phrases = parseStringList(phrases)
	}
}

func mergeOutputEnvVars(config *Config) {
	if config.Output == nil {
		config.Output = NewOutputConfig()
		return
	}
	if path := os.Getenv("SHOPSCAN_DATASET_PATH"); path != "" {
		config.Output.DatasetPath = path
	}
	if config.Extract == nil {
		config.Extract = NewExtractConfig()
	}
}

func mergeDetailEnvVars(config *Config) {
	if config.Detail == nil {
		config.Detail = NewDetailConfig()
		return
	}
	if enabled := os.Getenv("SHOPSCAN_DETAIL_ENABLED"); enabled != "" {
		config.Detail.Enabled = enabled == "true" || enabled == "1"
	}
	applyEnvMappings(map[string]interface{}{
		"SHOPSCAN_DETAIL_MAX_SHOPS": &config.Detail.MaxShops,
	})
}

func mergeStoreEnvVars(config *Config) {
	if config.Store == nil {
		config.Store = NewStoreConfig()
		return
	}
	if dsn := os.Getenv("SHOPSCAN_STORE_DSN"); dsn != "" {
		config.Store.DSN = dsn
	}
	if enabled := os.Getenv("SHOPSCAN_STORE_ENABLED"); enabled != "" {
		config.Store.Enabled = enabled == "true" || enabled == "1"
	}
}

func mergeScheduleEnvVars(config *Config) {
	if config.Schedule == nil {
		config.Schedule = NewScheduleConfig()
		return
	}
	if expr := os.Getenv("SHOPSCAN_SCHEDULE_CRON"); expr != "" {
		config.Schedule.Cron = expr
	}
	if enabled := os.Getenv("SHOPSCAN_SCHEDULE_ENABLED"); enabled != "" {
		config.Schedule.Enabled = enabled == "true" || enabled == "1"
	}
}

func applyEnvMappings(envMappings map[string]interface{}) {
	for envKey, fieldPtr := range envMappings {
		value := os.Getenv(envKey)
		if value == "" {
			continue
		}
		switch ptr := fieldPtr.(type) {
		case *int:
			if intVal := getEnvInt(envKey, 0); intVal != 0 {
				*ptr = intVal
			}
		case *string:
			*ptr = value
		}
	}
}
