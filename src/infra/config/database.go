package config

import (
	"fmt"
	"strings"
	"time"
)

// Environment names understood by the database profile lookup.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// DatabaseProfile holds the per-environment connection defaults.
type DatabaseProfile struct {
	Environment string
	Host        string
	Port        int
	Name        string
	User        string
	Password    string
	SSLMode     string
	MaxConns    int
	IdleTimeout time.Duration

	// Explicit profiles take no credential defaults; PGHOST, PGDATABASE,
	// PGUSER and PGPASSWORD must all be set.
	Explicit bool
}

var profiles = map[string]DatabaseProfile{
	EnvDevelopment: {
		Environment: EnvDevelopment,
		Host:        "localhost",
		Port:        5432,
		Name:        "icai_udin_dev",
		User:        "postgres",
		Password:    "postgres",
		SSLMode:     "disable",
		MaxConns:    10,
		IdleTimeout: 30 * time.Second,
	},
	EnvTest: {
		Environment: EnvTest,
		Host:        "localhost",
		Port:        5432,
		Name:        "icai_udin_test",
		User:        "postgres",
		Password:    "postgres",
		SSLMode:     "disable",
		MaxConns:    5,
		IdleTimeout: 30 * time.Second,
	},
	EnvProduction: {
		Environment: EnvProduction,
		Port:        5432,
		// Encrypted, certificate not verified (managed providers).
		SSLMode:     "require",
		MaxConns:    20,
		IdleTimeout: 30 * time.Second,
		Explicit:    true,
	},
}

// ProfileFor returns the profile for the named environment.
// Unknown or empty names fall back to the development profile.
func ProfileFor(env string) DatabaseProfile {
	if p, ok := profiles[strings.ToLower(strings.TrimSpace(env))]; ok {
		return p
	}
	return profiles[EnvDevelopment]
}

// Resolve fills unset connection fields from the environment profile.
// It fails only for explicit profiles with missing credentials.
func (c *DatabaseConfig) Resolve() error {
	p := ProfileFor(c.Environment)
	c.Environment = p.Environment

	if p.Explicit {
		var missing []string
		if c.Host == "" {
			missing = append(missing, "PGHOST")
		}
		if c.Name == "" {
			missing = append(missing, "PGDATABASE")
		}
		if c.User == "" {
			missing = append(missing, "PGUSER")
		}
		if c.Password == "" {
			missing = append(missing, "PGPASSWORD")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%s environment requires %s", p.Environment, strings.Join(missing, ", "))
		}
	}

	c.Host = orDefault(c.Host, p.Host)
	c.Name = orDefault(c.Name, p.Name)
	c.User = orDefault(c.User, p.User)
	c.Password = orDefault(c.Password, p.Password)
	if c.Port == 0 {
		c.Port = p.Port
	}
	c.SSLMode = p.SSLMode
	c.MaxConns = p.MaxConns
	c.IdleTimeout = p.IdleTimeout
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
