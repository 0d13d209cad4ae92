package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	choiceSubmissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "keystone_choice_submissions_total",
		Help: "Total number of accepted choice submissions.",
	})

	progressUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "keystone_progress_updates_total",
		Help: "Total number of successful progress create/update requests.",
	})

	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "keystone_registrations_total",
		Help: "Total number of successful user registrations.",
	})
)
