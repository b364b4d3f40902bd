package snowflake

import (
	"fmt"

	sf "github.com/snowflakedb/gosnowflake"
)

// Config contains Snowflake connection options. Role and Warehouse are
// optional; the account default is used when they are empty.
type Config struct {
	Account   string
	User      string
	Password  string
	Role      string
	Warehouse string
}

// DSN builds a gosnowflake connection string from the config.
func (c *Config) DSN() (string, error) {
	dsn, err := sf.DSN(&sf.Config{
		Account:   c.Account,
		User:      c.User,
		Password:  c.Password,
		Role:      c.Role,
		Warehouse: c.Warehouse,
	})
	if err != nil {
		return "", fmt.Errorf("build snowflake dsn: %w", err)
	}
	return dsn, nil
}
