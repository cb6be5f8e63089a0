package config

import "errors"

// Configuration-related error definitions using sentinel errors pattern
var (
	// Generic errors
	ErrConfigNotFound = errors.New("configuration file not found")
	ErrInvalidFormat  = errors.New("invalid configuration file format")

	// Configuration validation errors
	ErrMissingRequired = errors.New("missing required configuration item")
	ErrInvalidValue    = errors.New("invalid configuration value")

	// Section errors
	ErrBrowserConfig    = errors.New("browser configuration error")
	ErrPaginationConfig = errors.New("pagination configuration error")
	ErrOutputConfig     = errors.New("output configuration error")
	ErrDetailConfig     = errors.New("detail configuration error")
	ErrStoreConfig      = errors.New("store configuration error")
	ErrScheduleConfig   = errors.New("schedule configuration error")
	ErrInvalidCron      = errors.New("invalid Cron expression")
)
