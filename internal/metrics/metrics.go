package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobs_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	JobDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobs_run_duration_seconds",
			Help:    "Duration of each scheduled job run in seconds.",
			Buckets: []float64{1, 10, 60, 300, 900, 1800, 3600},
		},
		[]string{"job"},
	)
	EmailsSentCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobs_emails_sent_total",
			Help: "Total number of emails accepted by the mail API.",
		},
		[]string{"template"},
	)
	RecommendationsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobs_recommendations_created_total",
			Help: "Total number of recommended mutual interests created.",
		},
	)
	RemovedPositionsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobs_positions_removed_total",
			Help: "Total number of positions removed because their link is gone.",
		},
	)
	ProbeStatusCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobs_probe_status_total",
			Help: "Link probe outcomes by class.",
		},
		[]string{"class"},
	)
)

func init() {
	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(JobDuration)
	prometheus.MustRegister(EmailsSentCounter)
	prometheus.MustRegister(RecommendationsCounter)
	prometheus.MustRegister(RemovedPositionsCounter)
	prometheus.MustRegister(ProbeStatusCounter)
}

func StartMetricsServer(address string) *http.Server {

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: address, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()
	log.Infof("metrics server listening on %s", address)
	return server
}
