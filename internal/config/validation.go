package config

import "fmt"

func validate(c *Config) error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if len(c.UserAgents) == 0 {
		return fmt.Errorf("user agent pool must not be empty")
	}
	if c.ScrapeRPS <= 0 {
		return fmt.Errorf("scrape rate must be > 0")
	}
	if c.RetryAttempts <= 0 {
		return fmt.Errorf("retry attempts must be > 0")
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay must be >= 0")
	}
	return nil
}
