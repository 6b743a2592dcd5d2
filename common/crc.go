// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains the PROM and ADC sequences shared by the TE
// measurement-specialties sensors, and the CRC they use to protect their
// calibration PROM.
package common

// CRC4 calculates the 4-bit CRC of a 7 word MS5837/MS5803 style PROM and
// returns it. The CRC is stored by the factory in bits 12..15 of the first
// word, which are excluded from the calculation.
func CRC4(prom []uint16) byte {
	// Work on a copy padded with a zero word, as in the TE application note
	// AN520.
	n := make([]uint16, 8)
	copy(n, prom)
	n[0] &= 0x0fff
	n[7] = 0
	var rem uint16
	for cnt := range 16 {
		if cnt%2 == 1 {
			rem ^= n[cnt>>1] & 0x00ff
		} else {
			rem ^= n[cnt>>1] >> 8
		}
		for range 8 {
			if rem&0x8000 != 0 {
				rem = (rem << 1) ^ 0x3000
			} else {
				rem <<= 1
			}
		}
	}
	return byte((rem >> 12) & 0x0f)
}
