// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fluid

import (
	"math"
	"testing"
)

func TestGravity(t *testing.T) {
	tests := []struct {
		latitude float64
		g        float64
	}{
		{0, 9.780327},
		{45, 9.806200},
		{-45, 9.806200},
		{90, 9.832186},
	}
	for _, test := range tests {
		if g := Gravity(test.latitude); math.Abs(g-test.g) > 1e-6 {
			t.Errorf("Gravity(%f)=%.7f expected %.7f", test.latitude, g, test.g)
		}
	}
}

func TestDepth(t *testing.T) {
	tests := []struct {
		gauge, latitude, density float64
		depth                    float64
	}{
		{1000, 45, SaltWater, 9.910233},
		{1000, 45, FreshWater, 10.228315},
		{0, 45, FreshWater, 0},
		// Above the reference pressure the result is negative.
		{-10, 45, FreshWater, -0.102283},
	}
	for _, test := range tests {
		d := Depth(test.gauge, test.latitude, test.density)
		if math.Abs(d-test.depth) > 1e-6 {
			t.Errorf("Depth(%f, %f, %f)=%.7f expected %.7f", test.gauge, test.latitude, test.density, d, test.depth)
		}
	}
}

func TestAltitude(t *testing.T) {
	if a := Altitude(StandardAtmosphere, StandardAtmosphere); a != 0 {
		t.Errorf("Altitude at sea level=%f expected 0", a)
	}
	if a := Altitude(900, StandardAtmosphere); math.Abs(a-988.646563) > 1e-5 {
		t.Errorf("Altitude(900)=%f expected 988.646563", a)
	}
	if a := Altitude(1030, StandardAtmosphere); a >= 0 {
		t.Errorf("Altitude above sea level pressure=%f expected < 0", a)
	}
}
