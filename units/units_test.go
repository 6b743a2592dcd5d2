// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package units

import (
	"math"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestParse(t *testing.T) {
	tests := []struct {
		family Family
		token  string
		unit   Unit
	}{
		{Temperature, "Celsius", Celsius},
		{Temperature, "degC", Celsius},
		{Temperature, "F", Fahrenheit},
		{Temperature, "degK", Kelvin},
		{Pressure, "mbar", Millibar},
		{Pressure, "hectopascals", Hectopascal},
		{Pressure, "dbar", Decibar},
		{Pressure, "bar", Bar},
		{Pressure, "Pa", Pascal},
		{Pressure, "kPa", Kilopascal},
		{Pressure, "atm", Atmosphere},
		{Pressure, "psi", PSI},
		{Pressure, "mmHg", Torr},
		{Depth, "m", Meter},
		{Depth, "feet", Foot},
		{Depth, "ftm", Fathom},
		{Depth, "fathom", Fathom},
		{Altitude, "ft", Foot},
	}
	for _, test := range tests {
		if u := Parse(test.family, test.token); u != test.unit {
			t.Errorf("Parse(%s, %q)=%s expected %s", test.family, test.token, u, test.unit)
		}
	}
}

func TestParseFallback(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	tests := []struct {
		family Family
		token  string
	}{
		{Temperature, "bogus"},
		// Tokens are case sensitive.
		{Temperature, "celsius"},
		{Pressure, "PSI"},
		// Fathoms are a depth unit only.
		{Altitude, "fathoms"},
	}
	for _, tc := range tests {
		hook.Reset()
		u := Parse(tc.family, tc.token)
		if u != tc.family.Canonical() {
			t.Errorf("Parse(%s, %q)=%s expected fallback to %s", tc.family, tc.token, u, tc.family.Canonical())
		}
		if e := hook.LastEntry(); e == nil || e.Level != log.WarnLevel {
			t.Errorf("Parse(%s, %q) did not log a notice", tc.family, tc.token)
		}
		if _, ok := Lookup(tc.family, tc.token); ok {
			t.Errorf("Lookup(%s, %q) succeeded", tc.family, tc.token)
		}
	}

	// The bogus temperature unit leaves the Celsius value unchanged.
	v := 21.37
	if c := Convert(Temperature, v, Parse(Temperature, "bogus")); c != v {
		t.Errorf("bogus unit converted %f to %f", v, c)
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		family   Family
		value    float64
		unit     Unit
		expected float64
	}{
		{Temperature, 100, Fahrenheit, 212},
		{Temperature, -40, Fahrenheit, -40},
		{Temperature, 0, Kelvin, 273.15},
		{Pressure, 1013.25, Atmosphere, 1},
		{Pressure, 1013.25, Torr, 760},
		{Pressure, 1013.25, Pascal, 101325},
		{Pressure, 1013.25, Kilopascal, 101.325},
		{Pressure, 1000, Bar, 1},
		{Pressure, 1000, Decibar, 10},
		{Pressure, 68.94757293168, PSI, 1},
		{Depth, 0.3048, Foot, 1},
		{Depth, 1.8288, Fathom, 1},
		{Altitude, 304.8, Foot, 1000},
	}
	for _, test := range tests {
		v := Convert(test.family, test.value, test.unit)
		if math.Abs(v-test.expected) > 1e-9 {
			t.Errorf("Convert(%s, %f, %s)=%.12f expected %f", test.family, test.value, test.unit, v, test.expected)
		}
	}
}

func TestConvertWrongFamily(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	// A pressure unit must never scale a temperature.
	if v := Convert(Temperature, 12.5, Pascal); v != 12.5 {
		t.Errorf("Convert(temperature, Pa) returned %f", v)
	}
	if hook.LastEntry() == nil {
		t.Error("no notice logged for a unit of the wrong family")
	}
	if v := Convert(Altitude, 10, Fathom); v != 10 {
		t.Errorf("Convert(altitude, fathom) returned %f", v)
	}
	if v := Convert(Depth, 10, Unit(200)); v != 10 {
		t.Errorf("Convert(depth, invalid) returned %f", v)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []float64{-45.5, 0, 0.001, 19.82, 1013.25, 3999.8, 123456.789}
	for u := Unit(0); u < unitCount; u++ {
		for _, v := range values {
			back := u.ToCanonical(u.FromCanonical(v))
			if math.Abs(back-v) > 1e-9*math.Max(1, math.Abs(v)) {
				t.Errorf("%s round trip of %f returned %.15f", u, v, back)
			}
		}
	}
}

func TestInvalidUnit(t *testing.T) {
	u := Unit(200)
	if v := u.FromCanonical(1.5); v != 1.5 {
		t.Errorf("FromCanonical() of an invalid unit returned %f", v)
	}
	if v := u.ToCanonical(1.5); v != 1.5 {
		t.Errorf("ToCanonical() of an invalid unit returned %f", v)
	}
	if unitCount.In(Depth) {
		t.Error("unitCount reported as a depth unit")
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in, out float64
	}{
		{10.582457869263294, 10.58},
		{-19.416, -19.42},
		{3999.8, 3999.8},
		{0.005, 0.01},
	}
	for _, test := range tests {
		if r := Round(test.in, Digits); math.Abs(r-test.out) > 1e-12 {
			t.Errorf("Round(%f)=%f expected %f", test.in, r, test.out)
		}
	}
}

func TestStrings(t *testing.T) {
	if s := Kelvin.String(); s != "K" {
		t.Errorf("Kelvin.String()=%q", s)
	}
	if s := Pressure.String(); s != "pressure" {
		t.Errorf("Pressure.String()=%q", s)
	}
	if s := Unit(99).String(); len(s) == 0 {
		t.Error("invalid String() for unknown unit")
	}
	if !Meter.In(Altitude) || Fathom.In(Altitude) || !Fathom.In(Depth) {
		t.Error("In() returned unexpected family membership")
	}
}
