// Package metrics registra a instrumentação Prometheus do portal, exposta em
// /metrics junto com os coletores de runtime do Go.
package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	registerOnce      sync.Once
	catalogOperations *prometheus.CounterVec
	refreshDuration   *prometheus.HistogramVec
	reviewsSubmitted  *prometheus.CounterVec
	devlogsSubmitted  *prometheus.CounterVec
	adminLogins       *prometheus.CounterVec

	defaultDurationBuckets = prometheus.DefBuckets
)

const namespaceMetrics = "portalsenai"

// MustRegister registra as métricas do portal e os coletores de runtime.
// Chamar uma vez na inicialização.
func MustRegister() {
	registerOnce.Do(func() {
		catalogOperations = registerCounterVec(
			prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespaceMetrics,
					Subsystem: "catalog",
					Name:      "operations_total",
					Help:      "Operações do mediador de catálogo, por operação e resultado.",
				},
				[]string{"operation", "status"},
			),
		)
		refreshDuration = registerHistogramVec(
			prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: namespaceMetrics,
					Subsystem: "catalog",
					Name:      "refresh_duration_seconds",
					Help:      "Duração do carregamento completo do catálogo, por backend.",
					Buckets:   defaultDurationBuckets,
				},
				[]string{"backend"},
			),
		)
		reviewsSubmitted = registerCounterVec(
			prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespaceMetrics,
					Subsystem: "catalog",
					Name:      "reviews_submitted_total",
					Help:      "Avaliações enviadas pelos visitantes, por recomendação.",
				},
				[]string{"recommended"},
			),
		)
		devlogsSubmitted = registerCounterVec(
			prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespaceMetrics,
					Subsystem: "catalog",
					Name:      "devlogs_submitted_total",
					Help:      "Devlogs publicados pelas equipes.",
				},
				[]string{"status"},
			),
		)
		adminLogins = registerCounterVec(
			prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespaceMetrics,
					Subsystem: "auth",
					Name:      "admin_logins_total",
					Help:      "Tentativas de login do admin, por resultado.",
				},
				[]string{"result"},
			),
		)

		registerRuntimeCollectors()
	})
}

// RecordCatalogOperation conta uma operação do mediador pelo nome e resultado
// ("success" ou "error").
func RecordCatalogOperation(operation string, success bool) {
	if catalogOperations == nil {
		return
	}
	status := "success"
	if !success {
		status = "error"
	}
	catalogOperations.WithLabelValues(normalizeLabel(operation, "unknown"), status).Inc()
}

// ObserveRefresh registra a duração de um ciclo de refresh.
func ObserveRefresh(backend string, duration time.Duration) {
	if refreshDuration == nil {
		return
	}
	refreshDuration.WithLabelValues(normalizeLabel(backend, "unknown")).Observe(duration.Seconds())
}

// RecordReviewSubmitted conta uma avaliação enviada.
func RecordReviewSubmitted(recommended bool) {
	if reviewsSubmitted == nil {
		return
	}
	label := "no"
	if recommended {
		label = "yes"
	}
	reviewsSubmitted.WithLabelValues(label).Inc()
}

// RecordDevlogSubmitted conta um devlog publicado.
func RecordDevlogSubmitted(success bool) {
	if devlogsSubmitted == nil {
		return
	}
	status := "success"
	if !success {
		status = "error"
	}
	devlogsSubmitted.WithLabelValues(status).Inc()
}

// RecordAdminLogin conta uma tentativa de login do admin.
func RecordAdminLogin(success bool) {
	if adminLogins == nil {
		return
	}
	result := "success"
	if !success {
		result = "denied"
	}
	adminLogins.WithLabelValues(result).Inc()
}

func normalizeLabel(value string, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func registerCounterVec(vec *prometheus.CounterVec) *prometheus.CounterVec {
	if err := prometheus.Register(vec); err != nil {
		if existing := alreadyRegisteredCounterVec(err); existing != nil {
			return existing
		}
		panic(err)
	}
	return vec
}

func registerHistogramVec(vec *prometheus.HistogramVec) *prometheus.HistogramVec {
	if err := prometheus.Register(vec); err != nil {
		if existing := alreadyRegisteredHistogramVec(err); existing != nil {
			return existing
		}
		panic(err)
	}
	return vec
}

func registerRuntimeCollectors() {
	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		if !isAlreadyRegistered(err) {
			panic(err)
		}
	}
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		if !isAlreadyRegistered(err) {
			panic(err)
		}
	}
}

func alreadyRegisteredCounterVec(err error) *prometheus.CounterVec {
	if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
		if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
			return existing
		}
	}
	return nil
}

func alreadyRegisteredHistogramVec(err error) *prometheus.HistogramVec {
	if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
		if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
			return existing
		}
	}
	return nil
}

func isAlreadyRegistered(err error) bool {
	_, ok := err.(prometheus.AlreadyRegisteredError)
	return ok
}
