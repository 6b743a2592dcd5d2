// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ms5837

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GermanBionicSystems/seasense/common"
	"github.com/GermanBionicSystems/seasense/fluid"
	"github.com/GermanBionicSystems/seasense/smbus"
	"github.com/GermanBionicSystems/seasense/units"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Address is the only I²C address of the MS5837.
const Address uint16 = 0x76

const (
	cmdConvertD1 byte = 0x40
	cmdConvertD2 byte = 0x50
)

// Model is the sensor variant. It selects the compensation formulas.
type Model uint8

const (
	Model30BA Model = iota
	Model02BA
)

func (m Model) String() string {
	switch m {
	case Model30BA:
		return "MS5837-30BA"
	case Model02BA:
		return "MS5837-02BA"
	default:
		return fmt.Sprintf("Model(%d)", m)
	}
}

// Oversampling is the ADC oversampling ratio. Higher ratios lower the noise
// and take longer.
type Oversampling uint8

const (
	OSR256 Oversampling = iota
	OSR512
	OSR1024
	OSR2048
	OSR4096
	OSR8192
)

// OversamplingFor returns the Oversampling for a resolution of 256, 512,
// 1024, 2048, 4096 or 8192.
func OversamplingFor(resolution int) (Oversampling, error) {
	for o := OSR256; o <= OSR8192; o++ {
		if o.Resolution() == resolution {
			return o, nil
		}
	}
	return 0, fmt.Errorf("ms5837: invalid oversampling resolution %d", resolution)
}

// Resolution returns the oversampling ratio, 256 to 8192.
func (o Oversampling) Resolution() int {
	return 256 << o
}

func (o Oversampling) String() string {
	return fmt.Sprintf("OSR%d", o.Resolution())
}

// delay is 2.5µs per sample, which covers the datasheet maximum
// conversion time of every ratio.
func (o Oversampling) delay() time.Duration {
	return time.Duration(o.Resolution()) * 2500 * time.Nanosecond
}

// promRegisters are the PROM addresses of C0..C6.
var promRegisters = []byte{0xa0, 0xa2, 0xa4, 0xa6, 0xa8, 0xaa, 0xac}

// Calibration holds the factory words C0..C6. The top nibble of C0 is the
// PROM CRC.
type Calibration [7]uint16

// Opts holds the configuration options for the device.
type Opts struct {
	// Model selects the sensor variant. Default is Model30BA.
	Model Model
	// FluidDensity in kg/m³ used by Depth. Default is fluid.FreshWater.
	FluidDensity float64
	// ReferencePressure in mbar subtracted from the absolute pressure by
	// Depth. 0 selects the default, fluid.StandardAtmosphere. Use
	// Dev.SetReferencePressure(0) to measure depth from vacuum.
	ReferencePressure float64
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{
	Model:             Model30BA,
	FluidDensity:      fluid.FreshWater,
	ReferencePressure: fluid.StandardAtmosphere,
}

// Dev represents a MS5837 sensor.
type Dev struct {
	bus         smbus.Bus
	opts        Opts
	mu          sync.Mutex
	cal         Calibration
	initialized bool
}

// NewI2C returns a new MS5837 sensor on the periph.io bus b. The Opts can be
// nil. Call Initialize before taking measurements.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	return New(smbus.NewI2C(b), opts)
}

// New returns a new MS5837 sensor on bus. The Opts can be nil.
func New(bus smbus.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	o := *opts
	if o.Model != Model30BA && o.Model != Model02BA {
		return nil, fmt.Errorf("ms5837: invalid model %s", o.Model)
	}
	if o.FluidDensity <= 0 {
		o.FluidDensity = fluid.FreshWater
	}
	if o.ReferencePressure == 0 {
		o.ReferencePressure = fluid.StandardAtmosphere
	}
	return &Dev{bus: bus, opts: o}, nil
}

// Initialize resets the device, reads the calibration words and verifies
// their CRC. It must succeed before any measurement.
func (dev *Dev) Initialize() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	dev.initialized = false
	if err := common.Reset(dev.bus, Address); err != nil {
		return err
	}
	words, err := common.ReadCoefficients(dev.bus, Address, promRegisters)
	if err != nil {
		return err
	}
	stored := byte(words[0] >> 12)
	if computed := common.CRC4(words); computed != stored {
		return &PROMError{Stored: stored, Computed: computed}
	}
	copy(dev.cal[:], words)
	dev.initialized = true
	return nil
}

// Reset issues a reset to the device. The calibration is kept.
func (dev *Dev) Reset() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return common.Reset(dev.bus, Address)
}

// Calibration returns the words read by Initialize.
func (dev *Dev) Calibration() (Calibration, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if !dev.initialized {
		return Calibration{}, &NotInitializedError{}
	}
	return dev.cal, nil
}

// SetReferencePressure sets the pressure in mbar that Depth treats as zero
// depth, usually the air pressure at the surface.
func (dev *Dev) SetReferencePressure(mbar float64) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	dev.opts.ReferencePressure = mbar
}

// measure converts D1 then D2 and returns the compensated temperature in
// °C and absolute pressure in mbar. It must be called with dev.mu held.
func (dev *Dev) measure(osr Oversampling) (float64, float64, error) {
	if !dev.initialized {
		return 0, 0, &NotInitializedError{}
	}
	if osr > OSR8192 {
		return 0, 0, fmt.Errorf("ms5837: invalid oversampling %d", osr)
	}
	d1, err := common.ReadADC(dev.bus, Address, cmdConvertD1+2*byte(osr), osr.delay())
	if err != nil {
		return 0, 0, err
	}
	d2, err := common.ReadADC(dev.bus, Address, cmdConvertD2+2*byte(osr), osr.delay())
	if err != nil {
		return 0, 0, err
	}
	t, p := compensate(dev.opts.Model, &dev.cal, d1, d2)
	return t, p, nil
}

// Measurement is one compensated sample in canonical units, not rounded.
type Measurement struct {
	Celsius  float64
	Millibar float64
}

// Measure performs one pressure and temperature conversion and returns the
// absolute pressure and temperature of that sample.
func (dev *Dev) Measure(osr Oversampling) (Measurement, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	t, p, err := dev.measure(osr)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{Celsius: t, Millibar: p}, nil
}

// Temperature returns the temperature in unit u rounded to units.Digits
// decimal places.
func (dev *Dev) Temperature(u units.Unit, osr Oversampling) (float64, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	t, _, err := dev.measure(osr)
	if err != nil {
		return 0, err
	}
	return units.Round(units.Convert(units.Temperature, t, u), units.Digits), nil
}

// Pressure returns the absolute pressure minus reference, in unit u. A
// reference of 0 returns the absolute pressure.
func (dev *Dev) Pressure(u units.Unit, reference float64, osr Oversampling) (float64, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	_, p, err := dev.measure(osr)
	if err != nil {
		return 0, err
	}
	return units.Round(units.Convert(units.Pressure, p-reference, u), units.Digits), nil
}

// Depth returns the depth below the surface at latitude in degrees, using
// the reference pressure and fluid density of the device. The result is
// negative above the reference level.
func (dev *Dev) Depth(u units.Unit, osr Oversampling, latitude float64) (float64, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	_, p, err := dev.measure(osr)
	if err != nil {
		return 0, err
	}
	d := fluid.Depth(p-dev.opts.ReferencePressure, latitude, dev.opts.FluidDensity)
	return units.Round(units.Convert(units.Depth, d, u), units.Digits), nil
}

// Altitude returns the barometric altitude above the level where the
// pressure is seaLevel mbar. A seaLevel of 0 or less uses
// fluid.StandardAtmosphere.
func (dev *Dev) Altitude(u units.Unit, osr Oversampling, seaLevel float64) (float64, error) {
	if seaLevel <= 0 {
		seaLevel = fluid.StandardAtmosphere
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	_, p, err := dev.measure(osr)
	if err != nil {
		return 0, err
	}
	return units.Round(units.Convert(units.Altitude, fluid.Altitude(p, seaLevel), u), units.Digits), nil
}

// Sense measures at OSR8192 and writes the temperature and absolute
// pressure to env. Implements physic.SenseEnv.
func (dev *Dev) Sense(env *physic.Env) error {
	env.Temperature = 0
	env.Pressure = 0
	env.Humidity = 0
	dev.mu.Lock()
	defer dev.mu.Unlock()
	t, p, err := dev.measure(OSR8192)
	if err != nil {
		return err
	}
	env.Temperature = physic.ZeroCelsius + physic.Temperature(t*float64(physic.Celsius))
	env.Pressure = physic.Pressure(p * 100 * float64(physic.Pascal))
	return nil
}

// SenseContinuous is not supported, call Sense at the desired interval.
func (dev *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	return nil, errors.New("ms5837: SenseContinuous is not supported, call Sense")
}

// Precision implements physic.SenseEnv.
func (dev *Dev) Precision(env *physic.Env) {
	env.Temperature = physic.Kelvin / 100
	if dev.opts.Model == Model02BA {
		env.Pressure = physic.Pascal
	} else {
		env.Pressure = 10 * physic.Pascal
	}
	env.Humidity = 0
}

// Halt implements conn.Resource.
func (dev *Dev) Halt() error {
	return nil
}

func (dev *Dev) String() string {
	return fmt.Sprintf("ms5837: %s", dev.opts.Model)
}

// compensate applies the first and second order compensation to the raw
// pressure d1 and temperature d2. It returns °C and mbar.
func compensate(m Model, c *Calibration, d1, d2 uint32) (float64, float64) {
	dT := int64(d2) - int64(c[5])<<8
	temp := 2000 + dT*int64(c[6])/(1<<23)

	var off, sens int64
	var pShift uint
	var pScale float64
	if m == Model02BA {
		off = int64(c[2])<<17 + int64(c[4])*dT/(1<<6)
		sens = int64(c[1])<<16 + int64(c[3])*dT/(1<<7)
		pShift, pScale = 15, 100
	} else {
		off = int64(c[2])<<16 + int64(c[4])*dT/(1<<7)
		sens = int64(c[1])<<15 + int64(c[3])*dT/(1<<8)
		pShift, pScale = 13, 10
	}

	ti, offi, sensi := secondOrder(m, dT, temp)
	off -= offi
	sens -= sensi
	p := (int64(d1)*sens/(1<<21) - off) / (1 << pShift)
	return float64(temp-ti) / 100, float64(p) / pScale
}

// secondOrder returns the temperature, offset and sensitivity corrections.
// temp is in 0.01°C.
func secondOrder(m Model, dT, temp int64) (ti, offi, sensi int64) {
	cold := temp <= 2000
	delta := (temp - 2000) * (temp - 2000)
	if m == Model02BA {
		if !cold {
			return 0, 0, 0
		}
		return 11 * dT * dT / (1 << 35), 31 * delta / (1 << 3), 63 * delta / (1 << 5)
	}
	if !cold {
		return 2 * dT * dT / (1 << 37), delta / (1 << 4), 0
	}
	ti = 3 * dT * dT / (1 << 33)
	offi = 3 * delta / 2
	sensi = 5 * delta / (1 << 3)
	if temp < -1500 {
		veryCold := (temp + 1500) * (temp + 1500)
		offi += 7 * veryCold
		sensi += 4 * veryCold
	}
	return ti, offi, sensi
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
