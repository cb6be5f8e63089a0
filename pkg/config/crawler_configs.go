package config

import "time"

// DefaultUserAgent is a desktop Chrome identity the listing host accepts
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// BrowserConfig controls the headless browser session
type BrowserConfig struct {
	TargetURL         string `json:"target_url" yaml:"target_url"`
	UserAgent         string `json:"user_agent" yaml:"user_agent"`
	AcceptLanguage    string `json:"accept_language" yaml:"accept_language"`
	Headless          bool   `json:"headless" yaml:"headless"`
	ChromePath        string `json:"chrome_path" yaml:"chrome_path"`
	NavigationTimeout int    `json:"navigation_timeout" yaml:"navigation_timeout"` // seconds
	InitialSettleMs   int    `json:"initial_settle_ms" yaml:"initial_settle_ms"`
	ScrollSettleMs    int    `json:"scroll_settle_ms" yaml:"scroll_settle_ms"`
}

// PaginationConfig controls the "load more" loop
type PaginationConfig struct {
	Phrases         []string `json:"phrases" yaml:"phrases"`
	ClickSettleMs   int      `json:"click_settle_ms" yaml:"click_settle_ms"`
	StagnationLimit int      `json:"stagnation_limit" yaml:"stagnation_limit"`
	MaxClicks       int      `json:"max_clicks" yaml:"max_clicks"`
}

// ExtractConfig controls candidate discovery
type ExtractConfig struct {
	ShopRoute string `json:"shop_route" yaml:"shop_route"`
}

// NewBrowserConfig creates a browser configuration with default values populated from environment variables
func NewBrowserConfig() *BrowserConfig {
	return &BrowserConfig{
		TargetURL:         getEnv("SHOPSCAN_TARGET_URL", "https://pay.verychat.io/shops"),
		UserAgent:         getEnv("SHOPSCAN_USER_AGENT", DefaultUserAgent),
		AcceptLanguage:    getEnv("SHOPSCAN_ACCEPT_LANGUAGE", "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7"),
		Headless:          getEnvBool("SHOPSCAN_HEADLESS", true),
		ChromePath:        getEnv("SHOPSCAN_CHROME_PATH", ""),
		NavigationTimeout: getEnvInt("SHOPSCAN_NAV_TIMEOUT", 60),
		InitialSettleMs:   5000,
		ScrollSettleMs:    2000,
	}
}

// NewPaginationConfig creates a pagination configuration with default values populated from environment variables
func NewPaginationConfig() *PaginationConfig {
	return &PaginationConfig{
		Phrases:         []string{"더보기", "more", "load more", "더 보기"},
		ClickSettleMs:   2000,
		StagnationLimit: getEnvInt("SHOPSCAN_STAGNATION_LIMIT", 3),
		MaxClicks:       getEnvInt("SHOPSCAN_MAX_CLICKS", 50),
	}
}

// DetailConfig configures visits to each shop's own page after extraction
type DetailConfig struct {
	Enabled       bool    `json:"enabled" yaml:"enabled"`
	RatePerSecond float64 `json:"rate_per_second" yaml:"rate_per_second"`
	Burst         int     `json:"burst" yaml:"burst"`
	SettleMs      int     `json:"settle_ms" yaml:"settle_ms"`
	PageTimeout   int     `json:"page_timeout" yaml:"page_timeout"` // seconds
	MaxShops      int     `json:"max_shops" yaml:"max_shops"`       // 0 visits every linked shop
}

// NewDetailConfig creates a detail crawl configuration with default values populated from environment variables
func NewDetailConfig() *DetailConfig {
	return &DetailConfig{
		Enabled:       getEnvBool("SHOPSCAN_DETAIL_ENABLED", false),
		RatePerSecond: 1,
		Burst:         1,
		SettleMs:      1500,
		PageTimeout:   30,
		MaxShops:      getEnvInt("SHOPSCAN_DETAIL_MAX_SHOPS", 0),
	}
}

// Settle returns the delay after each detail page loads
func (d *DetailConfig) Settle() time.Duration {
	return millis(d.SettleMs)
}

// PageTimeoutDuration returns the per-page navigation timeout
func (d *DetailConfig) PageTimeoutDuration() time.Duration {
	return time.Duration(d.PageTimeout) * time.Second
}

// NewExtractConfig creates an extraction configuration with defaults
func NewExtractConfig() *ExtractConfig {
	return &ExtractConfig{
		ShopRoute: "shop",
	}
}

// NavigationTimeoutDuration returns the navigation timeout
func (b *BrowserConfig) NavigationTimeoutDuration() time.Duration {
	return time.Duration(b.NavigationTimeout) * time.Second
}

// InitialSettle returns the delay after navigation
func (b *BrowserConfig) InitialSettle() time.Duration {
	return millis(b.InitialSettleMs)
}

// ScrollSettle returns the delay after the first scroll-to-bottom
func (b *BrowserConfig) ScrollSettle() time.Duration {
	return millis(b.ScrollSettleMs)
}

// ClickSettle returns the delay after each "load more" click
func (p *PaginationConfig) ClickSettle() time.Duration {
	return millis(p.ClickSettleMs)
}
