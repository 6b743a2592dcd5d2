// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package units converts the canonical values produced by the sensor
// drivers (Celsius, millibar, meters) into caller selected units.
//
// Units are enumerated per quantity family. Each unit is an affine
// transform (scale, offset) from its family's canonical unit, so every
// conversion has an exact inverse.
//
// Tokens such as "degC" or "psi" are resolved with Parse. Parsing is
// lenient: an unknown token resolves to the canonical unit of the family
// and a warning is logged. Use Lookup for strict parsing.
package units

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
)

// Family is a quantity family. A unit converts values of one family only.
type Family uint8

const (
	Temperature Family = iota
	Pressure
	Depth
	Altitude
)

var familyNames = [...]string{"temperature", "pressure", "depth", "altitude"}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return fmt.Sprintf("Family(%d)", f)
}

// Canonical returns the unit the drivers produce for the family.
func (f Family) Canonical() Unit {
	switch f {
	case Pressure:
		return Millibar
	case Depth, Altitude:
		return Meter
	default:
		return Celsius
	}
}

// Unit is an output unit.
type Unit uint8

const (
	Celsius Unit = iota
	Fahrenheit
	Kelvin

	Millibar
	Hectopascal
	Decibar
	Bar
	Pascal
	Kilopascal
	Atmosphere
	PSI
	Torr

	Meter
	Foot
	Fathom

	unitCount
)

// Digits is the number of decimal places public driver methods round to.
const Digits = 2

type affine struct {
	scale, offset float64
	symbol        string
}

// Conversions from the canonical unit: value = canonical*scale + offset.
var transforms = [unitCount]affine{
	Celsius:    {1, 0, "°C"},
	Fahrenheit: {1.8, 32, "°F"},
	Kelvin:     {1, 273.15, "K"},

	Millibar:    {1, 0, "mbar"},
	Hectopascal: {1, 0, "hPa"},
	Decibar:     {0.01, 0, "dbar"},
	Bar:         {0.001, 0, "bar"},
	Pascal:      {100, 0, "Pa"},
	Kilopascal:  {0.1, 0, "kPa"},
	Atmosphere:  {1 / 1013.25, 0, "atm"},
	PSI:         {100 / 6894.757293168, 0, "psi"},
	Torr:        {760 / 1013.25, 0, "Torr"},

	Meter:  {1, 0, "m"},
	Foot:   {1 / 0.3048, 0, "ft"},
	Fathom: {1 / 1.8288, 0, "fathom"},
}

// Accepted tokens per family. Tokens are case sensitive.
var tokens = [...]map[string]Unit{
	Temperature: {
		"Celsius": Celsius, "degC": Celsius, "C": Celsius,
		"Fahrenheit": Fahrenheit, "degF": Fahrenheit, "F": Fahrenheit,
		"Kelvin": Kelvin, "degK": Kelvin, "K": Kelvin,
	},
	Pressure: {
		"millibar": Millibar, "mbar": Millibar,
		"hectopascals": Hectopascal, "hPa": Hectopascal,
		"decibar": Decibar, "dbar": Decibar,
		"bar":    Bar,
		"pascal": Pascal, "Pa": Pascal,
		"kilopascals": Kilopascal, "kPa": Kilopascal,
		"atmospheres": Atmosphere, "atm": Atmosphere,
		"psi":  PSI,
		"Torr": Torr, "mmHg": Torr,
	},
	Depth: {
		"meters": Meter, "m": Meter,
		"feet": Foot, "ft": Foot,
		"fathoms": Fathom, "fathom": Fathom, "ftm": Fathom,
	},
	Altitude: {
		"meters": Meter, "m": Meter,
		"feet": Foot, "ft": Foot,
	},
}

func (u Unit) String() string {
	if u < unitCount {
		return transforms[u].symbol
	}
	return fmt.Sprintf("Unit(%d)", u)
}

// In reports whether u is a valid unit for family f.
func (u Unit) In(f Family) bool {
	if int(f) >= len(tokens) {
		return false
	}
	for _, v := range tokens[f] {
		if v == u {
			return true
		}
	}
	return false
}

// FromCanonical converts v, expressed in the canonical unit of u's
// family, to u. An invalid unit returns v unchanged.
func (u Unit) FromCanonical(v float64) float64 {
	if u >= unitCount {
		return v
	}
	t := transforms[u]
	return v*t.scale + t.offset
}

// ToCanonical is the inverse of FromCanonical.
func (u Unit) ToCanonical(v float64) float64 {
	if u >= unitCount {
		return v
	}
	t := transforms[u]
	return (v - t.offset) / t.scale
}

// Lookup returns the unit named by token in family f.
func Lookup(f Family, token string) (Unit, bool) {
	if int(f) >= len(tokens) {
		return 0, false
	}
	u, ok := tokens[f][token]
	return u, ok
}

// Parse returns the unit named by token in family f. Unknown tokens
// resolve to f.Canonical() and a warning is logged.
func Parse(f Family, token string) Unit {
	if u, ok := Lookup(f, token); ok {
		return u
	}
	log.WithFields(log.Fields{"family": f, "unit": token, "using": f.Canonical()}).
		Warn("units: unit not valid, defaulting to canonical unit")
	return f.Canonical()
}

// Convert converts the canonical value v of family f to unit u. If u does
// not belong to f, v is returned unchanged and a warning is logged.
func Convert(f Family, v float64, u Unit) float64 {
	if u >= unitCount || !u.In(f) {
		log.WithFields(log.Fields{"family": f, "unit": u, "using": f.Canonical()}).
			Warn("units: unit not valid, defaulting to canonical unit")
		return v
	}
	return u.FromCanonical(v)
}

// Round rounds v to digits decimal places, half away from zero.
func Round(v float64, digits int) float64 {
	p := math.Pow10(digits)
	return math.Round(v*p) / p
}
