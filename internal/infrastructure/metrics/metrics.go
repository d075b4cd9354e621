package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RequestsTotal  *prometheus.CounterVec
	RemindersTotal prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lendwise_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		RemindersTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "lendwise_reminders_total",
			Help: "Repayment reminders dispatched.",
		}),
	}
}
