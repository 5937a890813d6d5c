package redis

import "time"

// Option configures Client.
type Option func(*Config)

// Config holds Redis connection settings.
type Config struct {
	Host        string
	Port        int
	Password    string
	DB          int
	PoolSize    int
	DialTimeout time.Duration
	PingTimeout time.Duration
}

// WithHost sets Redis host.
func WithHost(host string) Option {
	return func(c *Config) {
		c.Host = host
	}
}

// WithPort sets Redis port.
func WithPort(port int) Option {
	return func(c *Config) {
		c.Port = port
	}
}

// WithPassword sets Redis password.
func WithPassword(password string) Option {
	return func(c *Config) {
		c.Password = password
	}
}

// WithDB sets Redis database number.
func WithDB(db int) Option {
	return func(c *Config) {
		c.DB = db
	}
}

// WithTimeouts sets dial and startup ping timeouts.
func WithTimeouts(dial, ping time.Duration) Option {
	return func(c *Config) {
		if dial > 0 {
			c.DialTimeout = dial
		}
		if ping > 0 {
			c.PingTimeout = ping
		}
	}
}
