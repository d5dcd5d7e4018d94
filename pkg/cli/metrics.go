package cli

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts dispatcher outcomes on a private registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	commands    *prometheus.CounterVec
	unresolved  *prometheus.CounterVec
	help        prometheus.Counter
	transitions *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with an isolated
// registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pnfcli_commands_total",
			Help: "Commands dispatched, by resolved name and result.",
		}, []string{"command", "result"}),
		unresolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pnfcli_unresolved_total",
			Help: "Input words that did not resolve to a unique command or subcommand.",
		}, []string{"kind"}),
		help: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pnfcli_help_requests_total",
			Help: "Contextual help requests.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pnfcli_mode_transitions_total",
			Help: "Mode changes, by destination mode.",
		}, []string{"to"}),
	}
	m.registry.MustRegister(m.commands, m.unresolved, m.help, m.transitions)
	return m
}

// Registry returns the registry holding the shell counters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) command(name string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.commands.WithLabelValues(name, result).Inc()
}

func (m *Metrics) miss(kind string) {
	if m == nil {
		return
	}
	m.unresolved.WithLabelValues(kind).Inc()
}

func (m *Metrics) helpRequest() {
	if m == nil {
		return
	}
	m.help.Inc()
}

func (m *Metrics) transition(to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(to).Inc()
}
