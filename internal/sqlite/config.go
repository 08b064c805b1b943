package sqlite

import (
	"net/url"
	"strings"
)

// Config is a configuration of a [Storage].
type Config struct {
	path    string
	query   url.Values
	workers int
}

// ConfigFunc changes the configuration of a [Storage] created by [New].
type ConfigFunc = func(c *Config)

// URI sets the database file. Query parameters are passed to the driver and override the
// defaults. The special value ":memory:" opens a private in-memory database.
func (c *Config) URI(uri string) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		panic("URI can't be blank")
	}
	path, rawQuery, _ := strings.Cut(uri, "?")
	if path == "" {
		panic("URI path can't be blank")
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		panic("URI query can't be parsed")
	}
	c.path = path
	c.query = query
}

// Workers sets the number of connections kept open to a database file.
func (c *Config) Workers(workers int) {
	if workers < 1 {
		panic("workers can't be < 1")
	}
	c.workers = workers
}
