// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package metrics exposes hub activity as Prometheus metrics.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vulntor/eventhub/pkg/eventhub"
)

const subsystem = "hub"

// Collector implements eventhub.Observer. Use one Collector per hub: the
// listeners gauge tracks the size of the last hub that reported.
type Collector struct {
	registrations prometheus.Counter
	removals      prometheus.Counter
	invocations   prometheus.Counter
	emits         *prometheus.CounterVec
	listeners     prometheus.Gauge
}

var _ eventhub.Observer = (*Collector)(nil)

// NewCollector creates unregistered metrics under namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "registrations_total",
			Help:      "Total number of listeners registered",
		}),
		removals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "removals_total",
			Help:      "Total number of listeners removed",
		}),
		invocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "handler_invocations_total",
			Help:      "Total number of handler invocations",
		}),
		emits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "emits_total",
			Help:      "Total number of emissions by outcome",
		}, []string{"outcome"}),
		listeners: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "listeners",
			Help:      "Number of registered listeners",
		}),
	}
}

// Register registers all metrics with reg. Already registered collectors
// are not treated as an error.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, m := range []prometheus.Collector{c.registrations, c.removals, c.invocations, c.emits, c.listeners} {
		if err := reg.Register(m); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// Registered implements eventhub.Observer.
func (c *Collector) Registered(_ string, size int) {
	c.registrations.Inc()
	c.listeners.Set(float64(size))
}

// Removed implements eventhub.Observer.
func (c *Collector) Removed(removed, size int) {
	c.removals.Add(float64(removed))
	c.listeners.Set(float64(size))
}

// Emitted implements eventhub.Observer.
func (c *Collector) Emitted(_ string, matched, invoked int, err error) {
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case matched == 0:
		outcome = "unmatched"
	}
	c.emits.WithLabelValues(outcome).Inc()
	c.invocations.Add(float64(invoked))
}
