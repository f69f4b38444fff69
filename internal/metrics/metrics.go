package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prospector_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prospector_run_duration_seconds",
			Help:    "Duration of each prospecting run in seconds.",
			Buckets: []float64{10, 30, 60, 120, 300, 600},
		},
	)
	FetchedPostingsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prospector_postings_fetched_total",
			Help: "Total number of raw postings fetched, by source.",
		},
		[]string{"source"},
	)
	NotificationsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prospector_notifications_sent_total",
			Help: "Total number of notification messages dispatched, by tier.",
		},
		[]string{"tier"},
	)
	StoredPostingsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prospector_postings_stored_total",
			Help: "Total number of new postings added to history.",
		},
	)
)

func StartMetricsServer() {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(RunDuration)
	prometheus.MustRegister(FetchedPostingsCounter)
	prometheus.MustRegister(NotificationsCounter)
	prometheus.MustRegister(StoredPostingsCounter)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(":8080", nil))
	}()
}
