package deq

// ConfigFunc changes the configuration of a deque created by [New].
type ConfigFunc = func(c *Config)

// Config is a configuration of a deque.
//
// An instance is passed to the [ConfigFunc] functions given to [New]. The zero value is valid.
type Config struct {
	capacity   int
	prometheus *PrometheusConfig
}

// Capacity sets the number of slots allocated up front. Zero means the storage is allocated on
// the first push.
func (c *Config) Capacity(capacity int) {
	if capacity < 0 {
		panic("capacity can't be < 0")
	}
	c.capacity = capacity
}

// Prometheus enables Prometheus metrics for the deque. See [Prometheus].
func (c *Config) Prometheus(prometheus *PrometheusConfig) {
	if prometheus == nil {
		panic("prometheus config can't be nil")
	}
	c.prometheus = prometheus
}

func newConfig(configFuncs ...ConfigFunc) *Config {
	cfg := Config{}
	for _, cf := range configFuncs {
		if cf != nil {
			cf(&cfg)
		}
	}
	return &cfg
}
