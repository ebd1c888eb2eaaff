package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vtxsmear_events_enqueued_total",
		Help: "Total number of events placed on the processing queue.",
	})

	EventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vtxsmear_events_processed_total",
		Help: "Total number of events processed, labelled by stream and outcome.",
	}, []string{"stream", "status"})

	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vtxsmear_events_dropped_total",
		Help: "Total number of events rejected due to a full queue.",
	})

	VerticesShifted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vtxsmear_vertices_shifted_total",
		Help: "Total number of generator vertices displaced by smearing.",
	})

	ModuleErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vtxsmear_module_errors_total",
		Help: "Total number of producer failures, labelled by module.",
	}, []string{"module"})

	SinkErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vtxsmear_sink_errors_total",
		Help: "Total number of failed output publications, labelled by sink kind.",
	}, []string{"kind"})

	EventProcessingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vtxsmear_event_processing_duration_ms",
		Help:    "End-to-end event processing latency in milliseconds.",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 25, 50, 100, 250, 1000},
	})

	QueueUtilization = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vtxsmear_queue_utilization_ratio",
		Help: "Current event queue utilization (0–1).",
	})
)
