// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package smbus defines the register-oriented bus primitives used by the
// TE measurement-specialties sensors (TSYS01, MS5837) and adapts concrete
// I²C implementations to them.
//
// The primitives mirror the SMBus calls these devices were designed around:
// a single command byte write, a "read word data" and a block read. The
// package does not lock the bus. If several devices share one bus, the
// caller is responsible for serializing access.
package smbus

import (
	"fmt"
)

// Bus is the transport the sensor drivers depend on.
type Bus interface {
	// WriteCommand writes a single command byte to the device at addr.
	WriteCommand(addr uint16, cmd byte) error
	// ReadWord reads a 16 bit word from register reg. The first byte on the
	// wire is returned as the low byte, matching SMBus read word data.
	ReadWord(addr uint16, reg byte) (uint16, error)
	// ReadBlock writes reg, then reads len(b) bytes into b.
	ReadBlock(addr uint16, reg byte, b []byte) error
}

// Operation names reported in TransportError.
const (
	OpWriteCommand = "write command"
	OpReadWord     = "read word"
	OpReadBlock    = "read block"
)

// TransportError is returned by every Bus implementation in this package
// when the underlying bus fails. Drivers return it to the caller unchanged.
type TransportError struct {
	Op   string
	Addr uint16
	Reg  byte
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("smbus: %s addr=0x%02x reg=0x%02x: %v", e.Op, e.Addr, e.Reg, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func transportError(op string, addr uint16, reg byte, err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Op: op, Addr: addr, Reg: reg, Err: err}
}
