// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics published on /metrics. Values are in the units selected on the
// command line, named by the "unit" label.
type metrics struct {
	temperature *prometheus.GaugeVec
	pressure    *prometheus.GaugeVec
	depth       *prometheus.GaugeVec
	reference   prometheus.Gauge
	errors      *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		temperature: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "seaprobe",
			Name:      "water_temperature",
			Help:      "Water temperature, per sensor.",
		}, []string{"sensor", "unit"}),
		pressure: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "seaprobe",
			Name:      "gauge_pressure",
			Help:      "Pressure above the surface reference.",
		}, []string{"unit"}),
		depth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "seaprobe",
			Name:      "depth",
			Help:      "Depth below the surface.",
		}, []string{"unit"}),
		reference: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "seaprobe",
			Name:      "reference_pressure_mbar",
			Help:      "Air pressure sampled at startup, used as zero depth.",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seaprobe",
			Name:      "read_errors_total",
			Help:      "Failed sensor reads.",
		}, []string{"sensor"}),
	}
	reg.MustRegister(m.temperature, m.pressure, m.depth, m.reference, m.errors)
	return m
}

func (m *metrics) observe(r *reading, c *config) {
	m.temperature.WithLabelValues("tsys01", c.tempUnit.String()).Set(r.waterTemp)
	m.temperature.WithLabelValues("ms5837", c.tempUnit.String()).Set(r.sensorTemp)
	m.pressure.WithLabelValues(c.pressureUnit.String()).Set(r.pressure)
	m.depth.WithLabelValues(c.depthUnit.String()).Set(r.depth)
}
