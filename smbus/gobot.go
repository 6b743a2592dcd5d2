// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package smbus

import (
	"errors"
	"fmt"
)

// GobotDevice is the subset of a gobot sysfs I²C device used by Gobot.
// A *sysfs.i2cDevice returned by gobot.io/x/gobot/sysfs.NewI2cDevice
// satisfies it.
type GobotDevice interface {
	SetAddress(address int) error
	WriteByte(val byte) error
	ReadWordData(reg uint8) (uint16, error)
	Read(b []byte) (int, error)
}

// Gobot adapts a gobot sysfs I²C device to Bus. The device file carries a
// single slave address at a time, so every call selects addr first.
type Gobot struct {
	d GobotDevice
}

// NewGobot returns a Bus backed by d.
func NewGobot(d GobotDevice) *Gobot {
	return &Gobot{d: d}
}

// WriteCommand implements Bus.
func (g *Gobot) WriteCommand(addr uint16, cmd byte) error {
	if err := g.d.SetAddress(int(addr)); err != nil {
		return transportError(OpWriteCommand, addr, cmd, err)
	}
	return transportError(OpWriteCommand, addr, cmd, g.d.WriteByte(cmd))
}

// ReadWord implements Bus.
func (g *Gobot) ReadWord(addr uint16, reg byte) (uint16, error) {
	if err := g.d.SetAddress(int(addr)); err != nil {
		return 0, transportError(OpReadWord, addr, reg, err)
	}
	w, err := g.d.ReadWordData(reg)
	if err != nil {
		return 0, transportError(OpReadWord, addr, reg, err)
	}
	return w, nil
}

// ReadBlock implements Bus. The register is written as its own
// transaction before the read, which is what the MS5837 family expects
// for the ADC read command.
func (g *Gobot) ReadBlock(addr uint16, reg byte, b []byte) error {
	if err := g.d.SetAddress(int(addr)); err != nil {
		return transportError(OpReadBlock, addr, reg, err)
	}
	if err := g.d.WriteByte(reg); err != nil {
		return transportError(OpReadBlock, addr, reg, err)
	}
	n, err := g.d.Read(b)
	if err == nil && n != len(b) {
		err = errors.New("short read")
	}
	return transportError(OpReadBlock, addr, reg, err)
}

func (g *Gobot) String() string {
	return fmt.Sprintf("smbus(gobot %T)", g.d)
}

var _ Bus = &Gobot{}
