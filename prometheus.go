package deq

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	endFront = "front"
	endBack  = "back"
)

// PrometheusConfig is a config of the Prometheus metrics provided by the deque.
//
// An instance can be created only by the [Prometheus] function. The zero value is invalid.
type PrometheusConfig struct {
	// Options for the items gauge.
	Items prometheus.GaugeOpts
	// Options for the capacity gauge.
	Capacity prometheus.GaugeOpts
	// Options for the pushes counter. The counter is partitioned by the "end" label.
	Pushes prometheus.CounterOpts
	// Options for the pops counter. The counter is partitioned by the "end" label.
	Pops prometheus.CounterOpts
	// Options for the grows counter.
	Grows prometheus.CounterOpts

	registerer prometheus.Registerer
}

// Prometheus returns a [PrometheusConfig] with the provided registerer. If registerer is nil,
// metrics will not be registered. Many default parameters can be configured by passing
// configuration functions.
//
// Every deque created with the returned config registers its own collectors, so a registerer can
// only be shared by deques whose configs differ in namespace, subsystem or constant labels.
func Prometheus(
	registerer prometheus.Registerer,
	configFuncs ...func(c *PrometheusConfig),
) *PrometheusConfig {
	const (
		namespace = "deq"
		subsystem = ""
	)

	c := PrometheusConfig{
		registerer: registerer,
		Items: prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "items",
			Help:      "Number of items in deque",
		},
		Capacity: prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "capacity",
			Help:      "Number of slots in deque's storage",
		},
		Pushes: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "pushes",
			Help:      "Number of items pushed into deque",
		},
		Pops: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "pops",
			Help:      "Number of items popped from deque",
		},
		Grows: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "grows",
			Help:      "Number of times deque's storage was reallocated to grow",
		},
	}

	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}

	return &c
}

func (c *PrometheusConfig) metrics() *metrics {
	m := metrics{
		items:    prometheus.NewGauge(c.Items),
		capacity: prometheus.NewGauge(c.Capacity),
		pushes:   prometheus.NewCounterVec(c.Pushes, []string{"end"}),
		pops:     prometheus.NewCounterVec(c.Pops, []string{"end"}),
		grows:    prometheus.NewCounter(c.Grows),
	}

	if c.registerer != nil {
		c.registerer.MustRegister(
			m.items,
			m.capacity,
			m.pushes,
			m.pops,
			m.grows,
		)
	}

	return &m
}

type metrics struct {
	items    prometheus.Gauge
	capacity prometheus.Gauge
	pushes   *prometheus.CounterVec
	pops     *prometheus.CounterVec
	grows    prometheus.Counter
}
