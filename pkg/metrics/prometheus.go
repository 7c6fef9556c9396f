// Package metrics provides Prometheus metrics for the Ringside simulation core.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metric subsystems, one per area of the game.
const (
	subsystemCommand = "command"
	subsystemTick    = "tick"
	subsystemStore   = "store"
	subsystemGame    = "game"
)

// ErrTextfile is returned when the exposition file cannot be written.
var ErrTextfile = errors.New("metrics textfile write failed")

// Manager owns the simulation metrics.
type Manager struct {
	namespace      string
	commandBuckets []float64
	persistBuckets []float64
	registry       prometheus.Registerer

	// command
	commands        *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec

	// tick
	weeksAdvanced prometheus.Counter
	gameWeek      prometheus.Gauge

	// store
	saves           *prometheus.CounterVec
	loads           *prometheus.CounterVec
	persistDuration *prometheus.HistogramVec
	saveBytes       prometheus.Gauge

	// game
	entities       *prometheus.GaugeVec
	balance        prometheus.Gauge
	weeklyProfit   prometheus.Gauge
	titleChanges   prometheus.Counter
	eventsFinished prometheus.Counter
	rosterDrift    prometheus.Counter

	errorsByKind *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // process-wide metrics

// customRegistry keeps the Go runtime collectors out of the textfile.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide metrics

func init() { //nolint:gochecknoinits // process-wide metrics
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates and registers a metric set.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "ringside",
		commandBuckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100},
		persistBuckets: []float64{0.5, 1, 5, 10, 25, 50, 100, 250, 1000},
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.register()
	return m
}

func (m *Manager) counterOpts(subsystem, name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: subsystem, Name: name, Help: help}
}

func (m *Manager) gaugeOpts(subsystem, name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: subsystem, Name: name, Help: help}
}

func (m *Manager) register() {
	auto := promauto.With(m.registry)

	m.commands = auto.NewCounterVec(
		m.counterOpts(subsystemCommand, "executions_total", "Commands executed by name and outcome."),
		[]string{"command", "outcome"})
	m.commandDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: subsystemCommand,
		Name:      "duration_milliseconds",
		Help:      "Command execution time in milliseconds.",
		Buckets:   m.commandBuckets,
	}, []string{"command"})

	m.weeksAdvanced = auto.NewCounter(
		m.counterOpts(subsystemTick, "weeks_advanced_total", "Simulated weeks advanced."))
	m.gameWeek = auto.NewGauge(
		m.gaugeOpts(subsystemTick, "week", "Current game week."))

	m.saves = auto.NewCounterVec(
		m.counterOpts(subsystemStore, "saves_total", "Save attempts by document and outcome."),
		[]string{"document", "outcome"})
	m.loads = auto.NewCounterVec(
		m.counterOpts(subsystemStore, "loads_total", "Load attempts by document and outcome."),
		[]string{"document", "outcome"})
	m.persistDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: subsystemStore,
		Name:      "duration_milliseconds",
		Help:      "File read and write time in milliseconds.",
		Buckets:   m.persistBuckets,
	}, []string{"operation"})
	m.saveBytes = auto.NewGauge(
		m.gaugeOpts(subsystemStore, "save_bytes", "Size of the last written save document."))

	m.entities = auto.NewGaugeVec(
		m.gaugeOpts(subsystemGame, "entities", "Stored entities by kind."),
		[]string{"kind"})
	m.balance = auto.NewGauge(
		m.gaugeOpts(subsystemGame, "player_balance", "Balance of the player promotion."))
	m.weeklyProfit = auto.NewGauge(
		m.gaugeOpts(subsystemGame, "player_weekly_profit", "Profit of the last weekly close of the player promotion."))
	m.titleChanges = auto.NewCounter(
		m.counterOpts(subsystemGame, "title_changes_total", "Championship title changes."))
	m.eventsFinished = auto.NewCounter(
		m.counterOpts(subsystemGame, "events_finalized_total", "Events finalized with results."))
	m.rosterDrift = auto.NewCounter(
		m.counterOpts(subsystemGame, "roster_drift_corrections_total", "Roster accounting corrections."))

	m.errorsByKind = auto.NewCounterVec(
		m.counterOpts("", "errors_total", "Errors by component and kind."),
		[]string{"component", "kind"})
}

// RecordCommand counts a command execution and observes its latency.
func RecordCommand(command, outcome string, latencyMs float64) {
	globalManager.commands.WithLabelValues(command, outcome).Inc()
	globalManager.commandDuration.WithLabelValues(command).Observe(latencyMs)
}

// RecordWeekAdvanced counts a tick and sets the current week.
func RecordWeekAdvanced(week int) {
	globalManager.weeksAdvanced.Inc()
	globalManager.gameWeek.Set(float64(week))
}

// RecordSave counts a save attempt of document ("game" or "settings").
func RecordSave(document, outcome string) {
	globalManager.saves.WithLabelValues(document, outcome).Inc()
}

// RecordLoad counts a load attempt of document ("game" or "settings").
func RecordLoad(document, outcome string) {
	globalManager.loads.WithLabelValues(document, outcome).Inc()
}

// RecordPersistLatency observes a read or write of a persisted document.
func RecordPersistLatency(operation string, latencyMs float64) {
	globalManager.persistDuration.WithLabelValues(operation).Observe(latencyMs)
}

// UpdateSaveBytes sets the size of the last written save.
func UpdateSaveBytes(n int) {
	globalManager.saveBytes.Set(float64(n))
}

// UpdateEntityCount sets the number of stored entities of kind.
func UpdateEntityCount(kind string, count int) {
	globalManager.entities.WithLabelValues(kind).Set(float64(count))
}

// UpdatePlayerBalance sets the player promotion balance.
func UpdatePlayerBalance(balance int64) {
	globalManager.balance.Set(float64(balance))
}

// UpdateWeeklyProfit sets the profit of the last weekly close.
func UpdateWeeklyProfit(profit int64) {
	globalManager.weeklyProfit.Set(float64(profit))
}

// RecordTitleChange counts a title change.
func RecordTitleChange() {
	globalManager.titleChanges.Inc()
}

// RecordEventFinalized counts a finalized event.
func RecordEventFinalized() {
	globalManager.eventsFinished.Inc()
}

// RecordRosterDrift counts a roster accounting correction.
func RecordRosterDrift() {
	globalManager.rosterDrift.Inc()
}

// RecordError counts an error by component and kind.
func RecordError(component, kind string) {
	globalManager.errorsByKind.WithLabelValues(component, kind).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the registry in the text exposition format to path,
// for collection by the node exporter's textfile collector.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrTextfile, err)
	}
	return nil
}
