// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package common

import (
	"time"

	"github.com/GermanBionicSystems/seasense/smbus"
)

const (
	// CmdReset reloads the PROM into the device's internal registers.
	CmdReset byte = 0x1e
	// CmdADCRead reads the result of the last conversion.
	CmdADCRead byte = 0x00

	// ResetDelay is the wait after CmdReset. The datasheets give 2.8ms.
	ResetDelay = 10 * time.Millisecond
)

// sleep is replaced in tests to observe settle delays.
var sleep = time.Sleep

// Reset sends the reset command to the device at addr and waits for the
// PROM reload to complete.
func Reset(bus smbus.Bus, addr uint16) error {
	if err := bus.WriteCommand(addr, CmdReset); err != nil {
		return err
	}
	sleep(ResetDelay)
	return nil
}

// ReadCoefficients reads one PROM word per entry in regs, in order. The
// devices send the most significant byte first, so each SMBus word is byte
// swapped before it is returned. Errors from the bus are returned
// unchanged and no retry is attempted.
func ReadCoefficients(bus smbus.Bus, addr uint16, regs []byte) ([]uint16, error) {
	coeffs := make([]uint16, len(regs))
	for ix, reg := range regs {
		w, err := bus.ReadWord(addr, reg)
		if err != nil {
			return nil, err
		}
		coeffs[ix] = swap(w)
	}
	return coeffs, nil
}

// ReadADC starts a conversion with cmd, waits settle and reads back the
// 24 bit result, most significant byte first.
//
// settle must cover the datasheet's maximum conversion time for cmd.
// Reading early returns a stale or partial conversion.
func ReadADC(bus smbus.Bus, addr uint16, cmd byte, settle time.Duration) (uint32, error) {
	if err := bus.WriteCommand(addr, cmd); err != nil {
		return 0, err
	}
	sleep(settle)
	r := make([]byte, 3)
	if err := bus.ReadBlock(addr, CmdADCRead, r); err != nil {
		return 0, err
	}
	return uint32(r[0])<<16 | uint32(r[1])<<8 | uint32(r[2]), nil
}

func swap(w uint16) uint16 {
	return w<<8 | w>>8
}
