package logger

import (
	"github.com/maxaizer/talent-jobs/internal/metrics"
	log "github.com/sirupsen/logrus"
)

type prometheusHook struct{}

func (h *prometheusHook) Fire(entry *log.Entry) error {
	metrics.ErrorsCounter.WithLabelValues(errorTypeOf(entry)).Inc()
	return nil
}

func errorTypeOf(entry *log.Entry) string {
	if errorType, ok := entry.Data[ErrorTypeField].(string); ok && errorType != "" {
		return errorType
	}
	if entry.Data["source"] == "loki" {
		return ErrorTypeLoki
	}
	return ErrorTypeJob
}

func (h *prometheusHook) Levels() []log.Level {
	return []log.Level{
		log.ErrorLevel,
		log.FatalLevel,
		log.PanicLevel,
	}
}

func addPrometheusHook() {
	log.AddHook(&prometheusHook{})
	log.Info("Prometheus logging enabled")
}
