package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Issued = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ids_issued_total",
		Help: "Identifiers issued, by alphabet.",
	}, []string{"alphabet"})
	Validations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ids_validated_total",
		Help: "Validation requests, by alphabet and result.",
	}, []string{"alphabet", "result"})
	GenerateRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "generate_requests_total",
		Help: "Total generate requests.",
	})
	RateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "generate_rate_limited_total",
		Help: "Generate requests rejected by the rate limiter.",
	})
	CacheHit = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_hit_total",
		Help: "Cache hits.",
	}, []string{"kind"})
	CacheMiss = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_miss_total",
		Help: "Cache misses.",
	}, []string{"kind"})
	EventsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "usage_events_dropped_total",
		Help: "Usage events dropped due to full buffer.",
	})
)

func init() {
	prometheus.MustRegister(Issued, Validations, GenerateRequests, RateLimited, CacheHit, CacheMiss, EventsDropped)
}

func Handler(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}
