package metrics

import (
	"github.com/oomph-ac/pathrecall/tracker"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the prometheus metrics of a set of trackers, labelled by actor name.
type Collector struct {
	recorded     *prometheus.CounterVec
	evicted      *prometheus.CounterVec
	decayed      *prometheus.CounterVec
	destinations *prometheus.CounterVec
	recalls      *prometheus.CounterVec
	historySize  *prometheus.GaugeVec
}

// NewCollector creates a Collector. Its metrics must be registered through Register before they are
// exported.
func NewCollector() *Collector {
	return &Collector{
		recorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pathrecall_waypoints_recorded_total",
			Help: "Total number of waypoints recorded.",
		}, []string{"actor"}),
		evicted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pathrecall_waypoints_evicted_total",
			Help: "Total number of waypoints dropped because the history was full.",
		}, []string{"actor"}),
		decayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pathrecall_waypoints_decayed_total",
			Help: "Total number of waypoints dropped because the body idled.",
		}, []string{"actor"}),
		destinations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pathrecall_waypoints_replayed_total",
			Help: "Total number of waypoints popped as replay destination.",
		}, []string{"actor"}),
		recalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pathrecall_recalls_total",
			Help: "Total number of finished recalls by outcome.",
		}, []string{"actor", "outcome"}),
		historySize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pathrecall_history_waypoints",
			Help: "Number of waypoints currently held in the history.",
		}, []string{"actor"}),
	}
}

// Register registers every metric of the collector with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, m := range []prometheus.Collector{c.recorded, c.evicted, c.decayed, c.destinations, c.recalls, c.historySize} {
		if err := reg.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// Handler returns a tracker.Handler updating the metrics of the actor passed.
func (c *Collector) Handler(actor string) *Handler {
	return &Handler{
		recorded:     c.recorded.WithLabelValues(actor),
		evicted:      c.evicted.WithLabelValues(actor),
		decayed:      c.decayed.WithLabelValues(actor),
		destinations: c.destinations.WithLabelValues(actor),
		completed:    c.recalls.WithLabelValues(actor, "completed"),
		cancelled:    c.recalls.WithLabelValues(actor, "cancelled"),
		historySize:  c.historySize.WithLabelValues(actor),
	}
}

// Forget drops every series of the actor passed.
func (c *Collector) Forget(actor string) {
	labels := prometheus.Labels{"actor": actor}
	c.recorded.DeletePartialMatch(labels)
	c.evicted.DeletePartialMatch(labels)
	c.decayed.DeletePartialMatch(labels)
	c.destinations.DeletePartialMatch(labels)
	c.recalls.DeletePartialMatch(labels)
	c.historySize.DeletePartialMatch(labels)
}

// Handler is a tracker.Handler counting the events of a single tracker.
type Handler struct {
	recorded, evicted, decayed, destinations prometheus.Counter
	completed, cancelled                     prometheus.Counter
	historySize                              prometheus.Gauge
}

// Compile time check to make sure Handler implements tracker.Handler.
var _ tracker.Handler = (*Handler)(nil)

func (h *Handler) HandleAttach(historyLen int) {
	h.historySize.Set(float64(historyLen))
}

func (h *Handler) HandleRecord(tracker.Waypoint) {
	h.recorded.Inc()
	h.historySize.Inc()
}

func (h *Handler) HandleEvict(tracker.Waypoint) {
	h.evicted.Inc()
	h.historySize.Dec()
}

func (h *Handler) HandleDecay(tracker.Waypoint) {
	h.decayed.Inc()
	h.historySize.Dec()
}

func (h *Handler) HandleDestination(tracker.Waypoint) {
	h.destinations.Inc()
	h.historySize.Dec()
}

func (h *Handler) HandleRecallEnd(cancelled bool) {
	if cancelled {
		h.cancelled.Inc()
		return
	}
	h.completed.Inc()
}
