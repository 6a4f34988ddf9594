// Package metrics содержит метрики Prometheus сервиса.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "billed_"

	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	billsFetchTotal   *prometheus.CounterVec
	billsFetchLatency *prometheus.HistogramVec
	billsMalformed    prometheus.Counter
	pageErrors        *prometheus.CounterVec
	exportTotal       *prometheus.CounterVec
)

// Init регистрирует метрики в реестре reg. При reg == nil используется реестр по умолчанию.
func Init(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}

		billsFetchTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "bills_fetch_total",
				Help: "Total bills store list calls by result",
			},
			[]string{"result"},
		)
		billsFetchLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "bills_fetch_latency_seconds",
				Help:    "Bills store list latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		billsMalformed = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "bills_malformed_date_total",
				Help: "Total bills rendered with an unformatted date",
			},
		)
		pageErrors = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "page_errors_total",
				Help: "Total bills pages rendered with an error by status",
			},
			[]string{"status"},
		)
		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total bills exports by format and result",
			},
			[]string{"format", "result"},
		)

		reg.MustRegister(
			billsFetchTotal,
			billsFetchLatency,
			billsMalformed,
			pageErrors,
			exportTotal,
		)
	})
}

// ObserveBillsFetch фиксирует результат и длительность запроса к хранилищу расходов.
func ObserveBillsFetch(result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if billsFetchTotal != nil {
		billsFetchTotal.WithLabelValues(result).Inc()
	}
	if billsFetchLatency != nil {
		billsFetchLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncMalformedBill увеличивает счётчик записей с неразобранной датой.
func IncMalformedBill() {
	if billsMalformed != nil {
		billsMalformed.Inc()
	}
}

// IncPageError увеличивает счётчик страниц, показанных с ошибкой.
func IncPageError(status string) {
	if status == "" {
		status = "unknown"
	}
	if pageErrors != nil {
		pageErrors.WithLabelValues(status).Inc()
	}
}

// IncExport увеличивает счётчик выгрузок.
func IncExport(format, result string) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = ResultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
}
