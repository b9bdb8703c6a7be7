package metrics

import "github.com/prometheus/client_golang/prometheus"

// Webhook outcomes.
const (
	WebhookCreated    = "created"
	WebhookUpdated    = "updated"
	WebhookUnassigned = "unassigned"
	WebhookRejected   = "rejected"
)

// CRMMetrics counts lead pipeline events.
type CRMMetrics struct {
	leadsCreated *prometheus.CounterVec
	activities   *prometheus.CounterVec
	webhooks     *prometheus.CounterVec
}

// NewCRMMetrics registers the pipeline counters on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewCRMMetrics(reg prometheus.Registerer) *CRMMetrics {
	if reg == nil {
		return &CRMMetrics{}
	}
	leadsCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "leadflow_leads_created_total",
		Help: "Leads created, by source.",
	}, []string{"source"})
	activities := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "leadflow_lead_activities_total",
		Help: "Lead activities recorded, by resulting status.",
	}, []string{"status"})
	webhooks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "leadflow_webhook_events_total",
		Help: "Inbound webhook deliveries, by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(leadsCreated, activities, webhooks)
	return &CRMMetrics{
		leadsCreated: leadsCreated,
		activities:   activities,
		webhooks:     webhooks,
	}
}

func (c *CRMMetrics) LeadCreated(source string) {
	if c == nil || c.leadsCreated == nil {
		return
	}
	c.leadsCreated.WithLabelValues(normalizeLabel(source)).Inc()
}

func (c *CRMMetrics) ActivityRecorded(status string) {
	if c == nil || c.activities == nil {
		return
	}
	c.activities.WithLabelValues(normalizeLabel(status)).Inc()
}

func (c *CRMMetrics) WebhookEvent(outcome string) {
	if c == nil || c.webhooks == nil {
		return
	}
	c.webhooks.WithLabelValues(normalizeLabel(outcome)).Inc()
}
