// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package smbus

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// I2C adapts a periph.io I²C bus to Bus.
type I2C struct {
	b i2c.Bus
}

// NewI2C returns a Bus that issues its transactions on b.
func NewI2C(b i2c.Bus) *I2C {
	return &I2C{b: b}
}

// WriteCommand implements Bus.
func (s *I2C) WriteCommand(addr uint16, cmd byte) error {
	return transportError(OpWriteCommand, addr, cmd, s.b.Tx(addr, []byte{cmd}, nil))
}

// ReadWord implements Bus.
func (s *I2C) ReadWord(addr uint16, reg byte) (uint16, error) {
	r := make([]byte, 2)
	if err := s.b.Tx(addr, []byte{reg}, r); err != nil {
		return 0, transportError(OpReadWord, addr, reg, err)
	}
	return uint16(r[0]) | uint16(r[1])<<8, nil
}

// ReadBlock implements Bus.
func (s *I2C) ReadBlock(addr uint16, reg byte, b []byte) error {
	return transportError(OpReadBlock, addr, reg, s.b.Tx(addr, []byte{reg}, b))
}

func (s *I2C) String() string {
	return fmt.Sprintf("smbus(%s)", s.b)
}

var _ Bus = &I2C{}
