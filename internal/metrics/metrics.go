// Package metrics объявляет метрики Prometheus сервиса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal — число HTTP-запросов по маршруту, методу и коду ответа.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trainer_http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration — длительность обработки HTTP-запросов.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trainer_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// LicenseDecisionsTotal — решения проверки лицензии по причине.
	LicenseDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trainer_license_decisions_total",
		Help: "License gate decisions by reason.",
	}, []string{"reason"})

	// RenewalsTotal — успешные продления абонементов.
	RenewalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trainer_membership_renewals_total",
		Help: "Successful membership renewals.",
	})

	// DuplicateIdentityTotal — отклонённые записи с повторным документом.
	DuplicateIdentityTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trainer_duplicate_identity_rejections_total",
		Help: "Client writes rejected because of a duplicate document.",
	})

	// RosterResyncsTotal — перечитывания списка клиентов после ошибки записи.
	RosterResyncsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trainer_roster_resyncs_total",
		Help: "Client list re-fetches triggered by store errors.",
	})

	// NotificationsPublishedTotal — опубликованные уведомления об истекающих абонементах.
	NotificationsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trainer_expiry_notifications_total",
		Help: "Expiring membership notifications by result.",
	}, []string{"result"})
)
