package postgres

import (
	"fmt"
	"net/url"

	"github.com/measured-tracker/measured-backend/config"
)

// URL builds a postgres:// connection URL from the database config.
// The same URL is used for the pgx driver and for schema migrations.
func URL(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(cfg.User), url.QueryEscape(cfg.Password),
		cfg.Host, cfg.Port, cfg.Name, cfg.SSLMode,
	)
}
