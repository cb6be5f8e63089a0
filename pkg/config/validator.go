package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"
)

// ValidateConfig 验证完整的配置
func (c *Config) ValidateConfig() error {
	if err := c.validateBrowserConfig(); err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConfig, err)
	}

	if err := c.validatePaginationConfig(); err != nil {
		return fmt.Errorf("%w: %v", ErrPaginationConfig, err)
	}

	if err := c.validateOutputConfig(); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputConfig, err)
	}

	if err := c.validateDetailConfig(); err != nil {
		return fmt.Errorf("%w: %v", ErrDetailConfig, err)
	}

	if err := c.validateStoreConfig(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreConfig, err)
	}

	if err := c.validateScheduleConfig(); err != nil {
		return fmt.Errorf("%w: %v", ErrScheduleConfig, err)
	}

	return nil
}

func (c *Config) validateBrowserConfig() error {
	if c.Browser == nil {
		return fmt.Errorf("%w: browser", ErrMissingRequired)
	}

	b := c.Browser
	if b.TargetURL == "" {
		return fmt.Errorf("%w: target_url", ErrMissingRequired)
	}
	u, err := url.Parse(b.TargetURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: target_url must be an absolute http(s) URL", ErrInvalidValue)
	}
	if strings.TrimSpace(b.UserAgent) == "" {
		return fmt.Errorf("%w: user_agent", ErrMissingRequired)
	}
	if b.NavigationTimeout <= 0 {
		return fmt.Errorf("%w: navigation_timeout must be positive", ErrInvalidValue)
	}
	if b.InitialSettleMs < 0 || b.ScrollSettleMs < 0 {
		return fmt.Errorf("%w: settle delays cannot be negative", ErrInvalidValue)
	}
	return nil
}

func (c *Config) validatePaginationConfig() error {
	if c.Pagination == nil {
		return fmt.Errorf("%w: pagination", ErrMissingRequired)
	}

	p := c.Pagination
	if len(p.Phrases) == 0 {
		return fmt.Errorf("%w: phrases", ErrMissingRequired)
	}
	for _, phrase := range p.Phrases {
		if strings.TrimSpace(phrase) == "" {
			return fmt.Errorf("%w: phrases cannot contain blanks", ErrInvalidValue)
		}
	}
	if p.StagnationLimit < 1 {
		return fmt.Errorf("%w: stagnation_limit must be at least 1", ErrInvalidValue)
	}
	if p.MaxClicks < 1 {
		return fmt.Errorf("%w: max_clicks must be at least 1", ErrInvalidValue)
	}
	if p.ClickSettleMs < 0 {
		return fmt.Errorf("%w: click_settle_ms cannot be negative", ErrInvalidValue)
	}
	return nil
}

func (c *Config) validateOutputConfig() error {
	if c.Output == nil || c.Output.DatasetPath == "" {
		return fmt.Errorf("%w: dataset_path", ErrMissingRequired)
	}
	if c.Extract == nil || strings.TrimSpace(c.Extract.ShopRoute) == "" {
		return fmt.Errorf("%w: extract.shop_route", ErrMissingRequired)
	}
	return nil
}

func (c *Config) validateDetailConfig() error {
	if c.Detail == nil || !c.Detail.Enabled {
		return nil
	}

	d := c.Detail
	if d.RatePerSecond <= 0 {
		return fmt.Errorf("%w: rate_per_second must be positive", ErrInvalidValue)
	}
	if d.Burst < 1 {
		return fmt.Errorf("%w: burst must be at least 1", ErrInvalidValue)
	}
	if d.PageTimeout < 1 {
		return fmt.Errorf("%w: page_timeout must be at least 1", ErrInvalidValue)
	}
	if d.SettleMs < 0 || d.MaxShops < 0 {
		return fmt.Errorf("%w: settle_ms and max_shops cannot be negative", ErrInvalidValue)
	}
	return nil
}

func (c *Config) validateStoreConfig() error {
	if c.Store == nil || !c.Store.Enabled {
		return nil // 镜像数据库是可选的
	}
	if c.Store.DSN == "" {
		return fmt.Errorf("%w: dsn", ErrMissingRequired)
	}
	return nil
}

func (c *Config) validateScheduleConfig() error {
	if c.Schedule == nil || !c.Schedule.Enabled {
		return nil
	}
	if _, err := cron.ParseStandard(c.Schedule.Cron); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidCron, c.Schedule.Cron, err)
	}
	return nil
}
