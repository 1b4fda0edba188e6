package telemetry

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const metricsNamespace = "ritm_launch"

// Metrics — метрики прогонов pipeline.
type Metrics struct {
	registry *prometheus.Registry

	// RunsTotal — число прогонов по исходу (launched, skipped, rejected, ...).
	RunsTotal *prometheus.CounterVec

	// StageDuration — длительность стадий pipeline (probe, launch).
	StageDuration *prometheus.HistogramVec

	// LastRunTimestamp — время последнего завершённого прогона.
	LastRunTimestamp prometheus.Gauge
}

// NewMetrics создаёт метрики в собственном registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "pipeline_runs_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of network stages of the pipeline.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last finished pipeline run.",
		}),
	}
	m.registry.MustRegister(m.RunsTotal, m.StageDuration, m.LastRunTimestamp)
	return m
}

// Registry возвращает registry метрик.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRun фиксирует исход прогона.
func (m *Metrics) ObserveRun(outcome string) {
	m.RunsTotal.WithLabelValues(outcome).Inc()
	m.LastRunTimestamp.SetToCurrentTime()
}

// ObserveStage фиксирует длительность стадии.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// Push отправляет метрики в Pushgateway под job "ritm_launch".
func (m *Metrics) Push(gatewayURL, instance string) error {
	pusher := push.New(gatewayURL, metricsNamespace).Gatherer(m.registry)
	if instance != "" {
		pusher = pusher.Grouping("instance", instance)
	}
	if err := pusher.Push(); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
