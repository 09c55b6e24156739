package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultCommitted = "committed"
	ResultRejected  = "rejected"
)

var (
	registerOnce sync.Once
	invocations  = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frens",
			Subsystem: "ledger",
			Name:      "invocations_total",
			Help:      "Count of ledger invocations classified by operation and result",
		},
		[]string{"op", "result"},
	)

	execSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "frens",
			Subsystem: "ledger",
			Name:      "exec_seconds",
			Help:      "Time spent executing and committing one invocation",
			Buckets:   []float64{0.0005, 0.001, 0.002, 0.005, 0.01, 0.05, 0.25},
		},
	)
)

func ensureRegistered() {
	registerOnce.Do(func() {
		prometheus.MustRegister(invocations, execSeconds)
	})
}

func InvocationsCounter() *prometheus.CounterVec {
	ensureRegistered()
	return invocations
}

func ExecObserver() prometheus.Observer {
	ensureRegistered()
	return execSeconds
}

// WriteTextfile dumps the default registry in the node-exporter textfile
// format so one-shot CLI runs can be scraped.
func WriteTextfile(path string) error {
	ensureRegistered()
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
