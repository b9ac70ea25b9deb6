package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics exposes counters/histograms for the lead intake flow.
type IntakeMetrics struct {
	leadsTotal         *prometheus.CounterVec
	notificationsTotal *prometheus.CounterVec
	intakeLatency      prometheus.Histogram
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		leadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "econova",
			Subsystem: "intake",
			Name:      "leads_total",
			Help:      "Total lead submissions by source and result",
		}, []string{"source", "result"}),
		notificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "econova",
			Subsystem: "intake",
			Name:      "notifications_total",
			Help:      "Total notification emails by kind and result",
		}, []string{"kind", "result"}),
		intakeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "econova",
			Subsystem: "intake",
			Name:      "latency_seconds",
			Help:      "Latency of lead submission handling",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.leadsTotal, m.notificationsTotal, m.intakeLatency)
	return m
}

func (m *IntakeMetrics) ObserveLead(source, result string) {
	if m == nil {
		return
	}
	m.leadsTotal.WithLabelValues(source, result).Inc()
}

func (m *IntakeMetrics) ObserveNotification(kind string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.notificationsTotal.WithLabelValues(kind, result).Inc()
}

func (m *IntakeMetrics) ObserveLatency(seconds float64) {
	if m == nil {
		return
	}
	m.intakeLatency.Observe(seconds)
}
