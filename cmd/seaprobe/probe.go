// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"github.com/GermanBionicSystems/seasense/fluid"
	"github.com/GermanBionicSystems/seasense/ms5837"
	"github.com/GermanBionicSystems/seasense/smbus"
	"github.com/GermanBionicSystems/seasense/tsys01"
	"github.com/GermanBionicSystems/seasense/units"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// config is the validated command line.
type config struct {
	tsys01Addr   uint16
	model        ms5837.Model
	osr          ms5837.Oversampling
	tempUnit     units.Unit
	pressureUnit units.Unit
	depthUnit    units.Unit
	latitude     float64
	density      float64
	burst        int
}

type reading struct {
	waterTemp  float64
	sensorTemp float64
	pressure   float64
	depth      float64
}

// probe owns both sensors. All bus access happens from the goroutine
// calling setup and read.
type probe struct {
	cfg     *config
	thermo  *tsys01.Dev
	baro    *ms5837.Dev
	metrics *metrics

	// reference is the air pressure in mbar sampled by setup.
	reference float64
}

func newProbe(bus smbus.Bus, cfg *config, m *metrics) (*probe, error) {
	thermo, err := tsys01.New(bus, cfg.tsys01Addr)
	if err != nil {
		return nil, err
	}
	baro, err := ms5837.New(bus, &ms5837.Opts{Model: cfg.model, FluidDensity: cfg.density})
	if err != nil {
		return nil, err
	}
	return &probe{cfg: cfg, thermo: thermo, baro: baro, metrics: m}, nil
}

// setup initializes both sensors and samples the air pressure as the zero
// depth reference. The probe must be out of the water.
func (p *probe) setup() error {
	if err := p.thermo.Initialize(); err != nil {
		return errors.Wrap(err, "initialize TSYS01")
	}
	if err := p.baro.Initialize(); err != nil {
		return errors.Wrapf(err, "initialize %s", p.cfg.model)
	}
	if sn, err := p.thermo.SerialNumber(); err == nil {
		log.WithField("serial", sn).Debug("TSYS01 serial number")
	}
	air, err := p.baro.Pressure(units.Millibar, 0, p.cfg.osr)
	if err != nil {
		return errors.Wrap(err, "sample air pressure")
	}
	p.baro.SetReferencePressure(air)
	p.reference = air
	p.metrics.reference.Set(air)
	log.WithField("mbar", air).Info("Reference pressure set")
	return nil
}

// read takes one set of readings. A failed read is counted against the
// sensor that failed.
func (p *probe) read() (*reading, error) {
	r := &reading{}
	var err error
	if p.cfg.burst > 1 {
		r.waterTemp, err = p.thermo.BurstAverageTemperature(p.cfg.burst, p.cfg.tempUnit)
	} else {
		r.waterTemp, err = p.thermo.Temperature(p.cfg.tempUnit)
	}
	if err != nil {
		p.metrics.errors.WithLabelValues("tsys01").Inc()
		return nil, errors.Wrap(err, "read TSYS01")
	}
	// Temperature, pressure and depth come from the same sample.
	m, err := p.baro.Measure(p.cfg.osr)
	if err != nil {
		p.metrics.errors.WithLabelValues("ms5837").Inc()
		return nil, errors.Wrapf(err, "read %s", p.cfg.model)
	}
	gauge := m.Millibar - p.reference
	r.sensorTemp = round(units.Temperature, m.Celsius, p.cfg.tempUnit)
	r.pressure = round(units.Pressure, gauge, p.cfg.pressureUnit)
	r.depth = round(units.Depth, fluid.Depth(gauge, p.cfg.latitude, p.cfg.density), p.cfg.depthUnit)
	p.metrics.observe(r, p.cfg)
	return r, nil
}

func round(f units.Family, v float64, u units.Unit) float64 {
	return units.Round(units.Convert(f, v, u), units.Digits)
}
