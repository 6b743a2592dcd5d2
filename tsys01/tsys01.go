// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tsys01

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GermanBionicSystems/seasense/common"
	"github.com/GermanBionicSystems/seasense/smbus"
	"github.com/GermanBionicSystems/seasense/units"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

const (
	// DefaultAddress is the address with the CSB pin pulled low. This is
	// the address of the Blue Robotics module.
	DefaultAddress uint16 = 0x77
	// AlternateAddress is the address with the CSB pin pulled high.
	AlternateAddress uint16 = 0x76

	// MaxBurstSamples limits the length of a burst to reduce the influence
	// of self-heating.
	MaxBurstSamples = 10

	cmdConvert    byte = 0x48
	regSerialHigh byte = 0xac
	regSerialLow  byte = 0xae

	// The datasheet gives a maximum conversion time of 9.04ms.
	conversionDelay = 10 * time.Millisecond
)

// PROM addresses of k0, k1, k2, k3 and k4, in that order.
var promRegisters = []byte{0xaa, 0xa8, 0xa6, 0xa4, 0xa2}

// Calibration holds the factory coefficients k0..k4.
type Calibration [5]uint16

// Celsius converts a raw 24 bit ADC count to a temperature in °C using the
// polynomial from the datasheet. The result is not rounded.
func (c *Calibration) Celsius(raw uint32) float64 {
	k0 := float64(c[0])
	k1 := float64(c[1])
	k2 := float64(c[2])
	k3 := float64(c[3])
	k4 := float64(c[4])
	x := float64(raw) / 256
	return -2*k4*1e-21*x*x*x*x +
		4*k3*1e-16*x*x*x +
		-2*k2*1e-11*x*x +
		1*k1*1e-6*x +
		-1.5*k0*1e-2
}

// Dev represents a TSYS01 sensor.
type Dev struct {
	bus         smbus.Bus
	addr        uint16
	mu          sync.Mutex
	cal         Calibration
	initialized bool
}

// NewI2C returns a new TSYS01 sensor using the specified periph.io bus and
// address. Call Initialize before taking measurements.
func NewI2C(b i2c.Bus, addr uint16) (*Dev, error) {
	return New(smbus.NewI2C(b), addr)
}

// New returns a new TSYS01 sensor on bus. addr must be DefaultAddress or
// AlternateAddress.
func New(bus smbus.Bus, addr uint16) (*Dev, error) {
	if addr != DefaultAddress && addr != AlternateAddress {
		return nil, fmt.Errorf("tsys01: invalid address 0x%02x, must be 0x%02x or 0x%02x", addr, DefaultAddress, AlternateAddress)
	}
	return &Dev{bus: bus, addr: addr}, nil
}

// Initialize resets the device and reads the calibration coefficients.
// It must succeed before any measurement. Calling it again refreshes the
// coefficients.
func (dev *Dev) Initialize() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	dev.initialized = false
	if err := common.Reset(dev.bus, dev.addr); err != nil {
		return err
	}
	coeffs, err := common.ReadCoefficients(dev.bus, dev.addr, promRegisters)
	if err != nil {
		return err
	}
	copy(dev.cal[:], coeffs)
	dev.initialized = true
	return nil
}

// Reset issues a reset to the device. The calibration read by Initialize is
// kept.
func (dev *Dev) Reset() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return common.Reset(dev.bus, dev.addr)
}

// Calibration returns the coefficients read by Initialize.
func (dev *Dev) Calibration() (Calibration, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if !dev.initialized {
		return Calibration{}, &NotInitializedError{}
	}
	return dev.cal, nil
}

// readCelsius performs one conversion. It must be called with dev.mu held.
func (dev *Dev) readCelsius() (float64, error) {
	if !dev.initialized {
		return 0, &NotInitializedError{}
	}
	raw, err := common.ReadADC(dev.bus, dev.addr, cmdConvert, conversionDelay)
	if err != nil {
		return 0, err
	}
	return dev.cal.Celsius(raw), nil
}

// Temperature performs a conversion and returns the temperature in unit u,
// rounded to units.Digits decimal places. A unit that is not a temperature
// unit falls back to Celsius.
func (dev *Dev) Temperature(u units.Unit) (float64, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	t, err := dev.readCelsius()
	if err != nil {
		return 0, err
	}
	return units.Round(units.Convert(units.Temperature, t, u), units.Digits), nil
}

// BurstAverageTemperature takes n conversions back to back, drops the first
// and the last and returns the mean of the rest in unit u, rounded to
// units.Digits decimal places. n is limited to MaxBurstSamples and must be
// at least 3.
func (dev *Dev) BurstAverageTemperature(n int, u units.Unit) (float64, error) {
	if n > MaxBurstSamples {
		n = MaxBurstSamples
	}
	if n < 3 {
		return 0, &InvalidSampleCountError{N: n}
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	samples := make([]float64, 0, n)
	for range n {
		t, err := dev.readCelsius()
		if err != nil {
			return 0, err
		}
		samples = append(samples, t)
	}
	avg, err := burstMean(samples)
	if err != nil {
		return 0, err
	}
	return units.Round(units.Convert(units.Temperature, avg, u), units.Digits), nil
}

// burstMean drops the first and last sample and averages the remainder.
func burstMean(samples []float64) (float64, error) {
	if len(samples) < 3 {
		return 0, &InvalidSampleCountError{N: len(samples)}
	}
	kept := samples[1 : len(samples)-1]
	var sum float64
	for _, s := range kept {
		sum += s
	}
	return sum / float64(len(kept)), nil
}

// SerialNumber returns the 24 bit serial number programmed at the factory.
// It does not require Initialize.
func (dev *Dev) SerialNumber() (uint32, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	// 0xac holds SN[23:8]. The high byte of 0xae holds SN[7:0], the low
	// byte is the PROM checksum.
	w, err := common.ReadCoefficients(dev.bus, dev.addr, []byte{regSerialHigh, regSerialLow})
	if err != nil {
		return 0, err
	}
	return uint32(w[0])<<8 | uint32(w[1]>>8), nil
}

// Sense performs a conversion and writes the temperature to env.
// Implements physic.SenseEnv.
func (dev *Dev) Sense(env *physic.Env) error {
	env.Temperature = 0
	env.Pressure = 0
	env.Humidity = 0
	dev.mu.Lock()
	defer dev.mu.Unlock()
	t, err := dev.readCelsius()
	if err != nil {
		return err
	}
	env.Temperature = physic.ZeroCelsius + physic.Temperature(t*float64(physic.Celsius))
	return nil
}

// SenseContinuous is not supported. Each conversion blocks the caller for
// the conversion time, call Sense at the desired interval instead.
func (dev *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	return nil, errors.New("tsys01: SenseContinuous is not supported, call Sense")
}

// Precision returns the resolution of the device. Implements physic.SenseEnv.
func (dev *Dev) Precision(env *physic.Env) {
	env.Temperature = physic.Kelvin / 100
	env.Pressure = 0
	env.Humidity = 0
}

// Halt implements conn.Resource. The device only converts on request, so
// there is nothing to stop.
func (dev *Dev) Halt() error {
	return nil
}

func (dev *Dev) String() string {
	return fmt.Sprintf("tsys01: 0x%02x", dev.addr)
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
