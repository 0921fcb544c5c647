package status

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lixenwraith/connect/controller"
)

const namespace = "connect"

// Metrics exposes gameplay and supervision counters on a private registry
type Metrics struct {
	registry *prometheus.Registry

	turns          prometheus.Counter
	merges         prometheus.Counter
	doorsOpened    prometheus.Counter
	blockedMoves   prometheus.Counter
	solves         prometheus.Counter
	muteToggles    prometheus.Counter
	restarts       *prometheus.CounterVec
	quickShutdowns prometheus.Gauge
	currentTurn    prometheus.Gauge
	solved         prometheus.Gauge

	lastTurn int
}

// NewMetrics registers every metric on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		// turns counts turn advances, including redone turns
		turns: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "turns_total",
			Help:      "Turn counter advances",
		}),
		merges: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "merges_total",
			Help:      "Shapes absorbed by merges",
		}),
		doorsOpened: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "doors_opened_total",
			Help:      "Door members opened",
		}),
		blockedMoves: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "blocked_moves_total",
			Help:      "Shape moves refused by collision or the board edge",
		}),
		solves: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "solves_total",
			Help:      "Boards completed",
		}),
		muteToggles: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audio",
			Name:      "mute_toggles_total",
			Help:      "Sound mute toggles",
		}),

		// restarts is labelled by reason: restart (player or level change) or error
		restarts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "controller",
			Name:      "worker_restarts_total",
			Help:      "Worker generations recreated",
		}, []string{"reason"}),
		quickShutdowns: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "controller",
			Name:      "quick_shutdowns",
			Help:      "Consecutive worker failures within the grace period",
		}),
		currentTurn: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "current_turn",
			Help:      "Turn number shown on the turn counter",
		}),
		solved: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "solved",
			Help:      "1 while the board is complete",
		}),
	}
}

// Registry returns the registry holding every metric
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe implements controller.Observer; called from the controller goroutine only
func (m *Metrics) Observe(ev controller.Event) {
	switch ev.Type {
	case controller.EventMerge:
		m.merges.Add(float64(ev.Count))
	case controller.EventDoor:
		m.doorsOpened.Add(float64(ev.Count))
	case controller.EventBlocked:
		m.blockedMoves.Inc()
	case controller.EventTurn:
		if ev.Turn > m.lastTurn {
			m.turns.Add(float64(ev.Turn - m.lastTurn))
		}
		m.lastTurn = ev.Turn
		m.currentTurn.Set(float64(ev.Turn))
		if ev.Complete {
			m.solved.Set(1)
		} else {
			m.solved.Set(0)
		}
	case controller.EventSolved:
		m.solves.Inc()
	case controller.EventMuteToggle:
		m.muteToggles.Inc()
	case controller.EventRestart:
		m.restarts.WithLabelValues(ev.Reason).Inc()
		m.lastTurn = 0
		m.currentTurn.Set(0)
	case controller.EventQuickShutdown:
		m.quickShutdowns.Set(float64(ev.Count))
	}
}
