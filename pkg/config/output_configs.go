package config

// OutputConfig holds the dataset and debug artifact paths
type OutputConfig struct {
	DatasetPath    string `json:"dataset_path" yaml:"dataset_path"`
	ScreenshotPath string `json:"screenshot_path" yaml:"screenshot_path"` // empty disables
	HTMLPath       string `json:"html_path" yaml:"html_path"`             // empty disables
}

// StoreConfig controls the optional sqlite mirror
type StoreConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	DSN     string `json:"dsn" yaml:"dsn"`
	Debug   bool   `json:"debug" yaml:"debug"`
}

// ScheduleConfig controls periodic re-crawls
type ScheduleConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	Cron       string `json:"cron" yaml:"cron"`
	RunOnStart bool   `json:"run_on_start" yaml:"run_on_start"`
}

// NewOutputConfig creates an output configuration with default values populated from environment variables
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		DatasetPath:    getEnv("SHOPSCAN_DATASET_PATH", "data/shops.json"),
		ScreenshotPath: "debug-screenshot.png",
		HTMLPath:       "debug-page.html",
	}
}

// NewStoreConfig creates a store configuration with default values populated from environment variables
func NewStoreConfig() *StoreConfig {
	return &StoreConfig{
		Enabled: getEnvBool("SHOPSCAN_STORE_ENABLED", false),
		DSN:     getEnv("SHOPSCAN_STORE_DSN", "data/shops.db"),
	}
}

// NewScheduleConfig creates a schedule configuration with default values populated from environment variables
func NewScheduleConfig() *ScheduleConfig {
	return &ScheduleConfig{
		Enabled:    getEnvBool("SHOPSCAN_SCHEDULE_ENABLED", false),
		Cron:       getEnv("SHOPSCAN_SCHEDULE_CRON", "0 4 * * *"),
		RunOnStart: true,
	}
}
