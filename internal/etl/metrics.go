package etl

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts rows as they move through the pipeline. The registry is
// per-instance so tests can build isolated metric sets.
type Metrics struct {
	registry *prometheus.Registry

	RowsExtracted *prometheus.CounterVec
	RowsDropped   *prometheus.CounterVec
	RowsLoaded    *prometheus.CounterVec
	Runs          *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RowsExtracted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "salesetl_rows_extracted_total",
			Help: "Rows read from source CSV files.",
		}, []string{"source"}),
		RowsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "salesetl_rows_dropped_total",
			Help: "Rows dropped during cleaning.",
		}, []string{"source"}),
		RowsLoaded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "salesetl_rows_loaded_total",
			Help: "Rows written to destination tables.",
		}, []string{"table"}),
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "salesetl_runs_total",
			Help: "ETL runs by final status.",
		}, []string{"status"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
