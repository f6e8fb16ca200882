package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be between %d and %d (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}
	if c.Auth.BootstrapAdminUsername != "" && c.Auth.BootstrapAdminPassword == "" {
		return fmt.Errorf("auth.bootstrap_admin_password is required when a bootstrap admin username is set")
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must not be negative (got %d)", c.Server.RateLimitPerMinute)
	}
	if c.Audit.DefaultPageSize <= 0 || c.Audit.MaxPageSize < c.Audit.DefaultPageSize {
		return fmt.Errorf("audit page sizes are inconsistent: default=%d max=%d",
			c.Audit.DefaultPageSize, c.Audit.MaxPageSize)
	}
	return nil
}
