package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"gobbc/channel"
	"gobbc/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus metrics of one experiment.
//
// The channel gauges mirror the channel counters, including rollbacks, so they always equal the counters.
type Metrics struct {
	registry *prometheus.Registry

	queries *prometheus.GaugeVec
	symbols *prometheus.GaugeVec

	rounds     prometheus.Counter
	states     prometheus.Gauge
	disproved  prometheus.Gauge
	timeRounds prometheus.Histogram
}

// Create the metrics in a new registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,
		queries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "bbc",
			Name:      "channel_queries",
			Help:      "Queries (resets) issued on a channel",
		}, []string{"channel"}),
		symbols: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "bbc",
			Name:      "channel_symbols",
			Help:      "Symbols (steps) issued on a channel",
		}, []string{"channel"}),
		rounds: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "bbc",
			Name:      "rounds_total",
			Help:      "Completed learning rounds",
		}),
		states: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "bbc",
			Name:      "hypothesis_states",
			Help:      "Number of states of the current hypothesis",
		}),
		disproved: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "bbc",
			Name:      "properties_disproved",
			Help:      "Number of properties disproved on the system under test",
		}),
		timeRounds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bbc",
			Name:      "equivalence_seconds",
			Help:      "Time spent on one equivalence query",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
}

// The observers of the counters of a channel. Can be used as a channel.ObserverFactory.
func (m *Metrics) Observers(name channel.Name) (queries channel.Observer, symbols channel.Observer) {
	return m.queries.WithLabelValues(string(name)), m.symbols.WithLabelValues(string(name))
}

// Record a completed round
func (m *Metrics) Round(states int, equivalence time.Duration) {
	m.rounds.Inc()
	m.states.Set(float64(states))
	m.timeRounds.Observe(equivalence.Seconds())
}

func (m *Metrics) Disproved(n int) {
	m.disproved.Set(float64(n))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve the metrics on addr until the context is cancelled
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	logger = logging.OrDiscard(logger)
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			logger.Warn("metrics server shutdown failed", "error", err)
		}
	}()

	logger.Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
