package snapshot

import (
	"net/url"
	"strings"

	"github.com/teenjuna/deq/retry"
)

const memory = ":memory:"

// ConfigFunc changes the configuration of a [Store] opened by [Open].
type ConfigFunc = func(c *Config)

// Config is a configuration of a [Store].
type Config struct {
	file        string
	durable     bool
	workers     int
	retryPolicy retry.Policy
}

// File sets the SQLite database file. The special value ":memory:" keeps snapshots in memory
// until the store is closed.
func (c *Config) File(file string) {
	file = strings.TrimSpace(file)
	if file == "" {
		panic("file can't be blank")
	}
	if strings.Contains(file, "?") {
		panic("file can't contain ?")
	}
	c.file = file
}

// Durable makes every save wait until the data reaches the disk. It has no effect on an in-memory
// store.
func (c *Config) Durable(durable bool) {
	c.durable = durable
}

// uri returns the URI of the SQLite database.
func (c *Config) uri() string {
	if !c.durable || c.file == memory {
		return c.file
	}
	query := url.Values{}
	query.Set("_sync", "full")
	return c.file + "?" + query.Encode()
}

// Workers sets the number of concurrent connections to the database file, which is also the
// number of goroutines used by [SaveAll].
func (c *Config) Workers(workers int) {
	if workers < 1 {
		panic("workers can't be < 1")
	}
	c.workers = workers
}

// RetryPolicy sets the policy for operations that fail because the database is busy.
func (c *Config) RetryPolicy(policy retry.Policy) {
	if policy == nil {
		panic("policy can't be nil")
	}
	c.retryPolicy = policy
}
