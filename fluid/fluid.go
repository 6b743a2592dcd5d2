// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package fluid derives water depth and barometric altitude from pressure.
//
// All functions take and return canonical units: millibar for pressure,
// meters for lengths and degrees for latitude. Convert the result with
// package units.
package fluid

import "math"

// Fluid densities in kg/m³.
const (
	FreshWater = 997.0
	SaltWater  = 1029.0
)

// StandardAtmosphere is the mean sea level pressure in mbar.
const StandardAtmosphere = 1013.25

// Gravity returns the local gravitational acceleration in m/s² at latitude
// (degrees), using the 1967 International Gravity Formula which corrects
// for the earth's flattening.
func Gravity(latitude float64) float64 {
	phi := latitude * math.Pi / 180
	s := math.Sin(phi)
	s2 := math.Sin(2 * phi)
	return 9.780327 * (1 + 0.0053024*s*s - 0.0000058*s2*s2)
}

// Depth returns the depth in meters of a water column of the given density
// producing gauge pressure (mbar) at latitude.
func Depth(gauge, latitude, density float64) float64 {
	return gauge * 100 / (density * Gravity(latitude))
}

// Altitude returns the altitude in meters at which the standard atmosphere
// has pressure p, relative to the level where it has pressure seaLevel.
// Both pressures are in mbar.
func Altitude(p, seaLevel float64) float64 {
	return 44330 * (1 - math.Pow(p/seaLevel, 1/5.255))
}
