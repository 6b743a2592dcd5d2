// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// seaprobe reads a TSYS01 temperature sensor and a MS5837 pressure sensor
// sharing one I²C bus, logs water temperature, pressure and depth, and
// optionally exports them to Prometheus.
//
// The probe must be in air at startup: the first pressure sample is used
// as the zero depth reference.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/GermanBionicSystems/seasense/fluid"
	"github.com/GermanBionicSystems/seasense/ms5837"
	"github.com/GermanBionicSystems/seasense/smbus"
	"github.com/GermanBionicSystems/seasense/tsys01"
	"github.com/GermanBionicSystems/seasense/units"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"gobot.io/x/gobot/sysfs"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// runOpts are the flags that do not configure the sensors.
type runOpts struct {
	bus         string
	gobotDevice string
	interval    time.Duration
	count       int
	listen      string
	debug       bool
}

func parseFlags(args []string) (*config, *runOpts, error) {
	fs := flag.NewFlagSet("seaprobe", flag.ContinueOnError)
	ro := &runOpts{}
	fs.StringVar(&ro.bus, "bus", "", "periph.io I²C bus name, empty for the first one")
	fs.StringVar(&ro.gobotDevice, "gobot-device", "", "use this I²C device file through gobot instead of periph.io, e.g. /dev/i2c-1")
	tsysAddr := fs.Uint("tsys01-addr", uint(tsys01.DefaultAddress), "TSYS01 I²C address (0x77 or 0x76)")
	model := fs.String("model", "30BA", "MS5837 variant: 30BA or 02BA")
	resolution := fs.Int("resolution", 8192, "MS5837 oversampling: 256, 512, 1024, 2048, 4096 or 8192")
	tempUnit := fs.String("temp-unit", "degC", "temperature unit")
	pressureUnit := fs.String("pressure-unit", "mbar", "pressure unit")
	depthUnit := fs.String("depth-unit", "m", "depth unit")
	latitude := fs.Float64("latitude", 45, "latitude in degrees, for gravity")
	water := fs.String("water", "fresh", "water type: fresh or salt")
	burst := fs.Int("burst", 0, fmt.Sprintf("average this many TSYS01 samples, 3 to %d; 0 takes one", tsys01.MaxBurstSamples))
	fs.DurationVar(&ro.interval, "interval", time.Second, "time between readings")
	fs.IntVar(&ro.count, "count", 0, "number of readings, 0 runs until interrupted")
	fs.StringVar(&ro.listen, "listen", "", "Prometheus exporter address, e.g. :9120")
	fs.BoolVar(&ro.debug, "debug", false, "enable debug logs")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() != 0 {
		return nil, nil, errors.Errorf("unexpected argument %q", fs.Arg(0))
	}

	cfg := &config{
		tsys01Addr: uint16(*tsysAddr),
		latitude:   *latitude,
		burst:      *burst,
	}
	switch *model {
	case "30BA":
		cfg.model = ms5837.Model30BA
	case "02BA":
		cfg.model = ms5837.Model02BA
	default:
		return nil, nil, errors.Errorf("unknown model %q", *model)
	}
	switch *water {
	case "fresh":
		cfg.density = fluid.FreshWater
	case "salt":
		cfg.density = fluid.SaltWater
	default:
		return nil, nil, errors.Errorf("unknown water type %q", *water)
	}
	var err error
	if cfg.osr, err = ms5837.OversamplingFor(*resolution); err != nil {
		return nil, nil, err
	}
	if cfg.tempUnit, err = lookupUnit(units.Temperature, *tempUnit); err != nil {
		return nil, nil, err
	}
	if cfg.pressureUnit, err = lookupUnit(units.Pressure, *pressureUnit); err != nil {
		return nil, nil, err
	}
	if cfg.depthUnit, err = lookupUnit(units.Depth, *depthUnit); err != nil {
		return nil, nil, err
	}
	if cfg.burst != 0 && cfg.burst < 3 {
		return nil, nil, errors.Errorf("-burst must be 0 or at least 3, got %d", cfg.burst)
	}
	if ro.interval <= 0 {
		return nil, nil, errors.New("-interval must be positive")
	}
	return cfg, ro, nil
}

// lookupUnit rejects unknown tokens instead of falling back.
func lookupUnit(f units.Family, token string) (units.Unit, error) {
	u, ok := units.Lookup(f, token)
	if !ok {
		return 0, errors.Errorf("unknown %s unit %q", f, token)
	}
	return u, nil
}

func setupLogging(debug bool) {
	log.SetOutput(colorable.NewColorableStdout())
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
		ForceColors:   isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	})
	if debug {
		log.SetLevel(log.DebugLevel)
	}
}

// openBus returns the sensor bus and the resource to close on exit.
func openBus(ro *runOpts) (smbus.Bus, io.Closer, error) {
	if ro.gobotDevice != "" {
		d, err := sysfs.NewI2cDevice(ro.gobotDevice)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open %s", ro.gobotDevice)
		}
		return smbus.NewGobot(d), d, nil
	}
	if _, err := host.Init(); err != nil {
		return nil, nil, errors.Wrap(err, "initialize periph.io host")
	}
	b, err := i2creg.Open(ro.bus)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open I²C bus")
	}
	return smbus.NewI2C(b), b, nil
}

func serveMetrics(addr string, g prometheus.Gatherer) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	log.WithField("addr", addr).Info("Serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Fatal("Metrics server failed")
	}
}

// run loops until ctx is done or count readings were taken.
func run(ctx context.Context, p *probe, ro *runOpts) {
	t := time.NewTicker(ro.interval)
	defer t.Stop()
	for n := 0; ro.count == 0 || n < ro.count; n++ {
		if n != 0 {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
		}
		r, err := p.read()
		if err != nil {
			log.WithError(err).Warn("Read failed")
			continue
		}
		log.WithFields(log.Fields{
			"water":    fmt.Sprintf("%.2f%s", r.waterTemp, p.cfg.tempUnit),
			"sensor":   fmt.Sprintf("%.2f%s", r.sensorTemp, p.cfg.tempUnit),
			"pressure": fmt.Sprintf("%.2f%s", r.pressure, p.cfg.pressureUnit),
			"depth":    fmt.Sprintf("%.2f%s", r.depth, p.cfg.depthUnit),
		}).Info("Reading")
	}
}

func mainImpl() error {
	cfg, ro, err := parseFlags(os.Args[1:])
	if err != nil {
		return err
	}
	setupLogging(ro.debug)

	bus, closer, err := openBus(ro)
	if err != nil {
		return err
	}
	defer closer.Close()
	log.WithField("bus", bus).Debug("Bus opened")

	reg := prometheus.NewRegistry()
	p, err := newProbe(bus, cfg, newMetrics(reg))
	if err != nil {
		return err
	}
	if err := p.setup(); err != nil {
		return err
	}
	if ro.listen != "" {
		go serveMetrics(ro.listen, reg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	run(ctx, p, ro)
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		if errors.Cause(err) == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "seaprobe: %s.\n", err)
		os.Exit(1)
	}
}
