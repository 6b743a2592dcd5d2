// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package smbus

import (
	"bytes"
	"errors"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

const addr uint16 = 0x77

func TestI2CReadWord(t *testing.T) {
	pb := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			// The device sends 0x9f, 0x4d. SMBus returns it little endian.
			{Addr: addr, W: []byte{0xaa}, R: []byte{0x9f, 0x4d}},
		},
		DontPanic: true,
	}
	defer pb.Close()
	bus := NewI2C(pb)
	w, err := bus.ReadWord(addr, 0xaa)
	if err != nil {
		t.Fatal(err)
	}
	if w != 0x4d9f {
		t.Errorf("ReadWord() returned 0x%04x expected 0x4d9f", w)
	}
}

func TestI2CWriteAndBlock(t *testing.T) {
	pb := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: addr, W: []byte{0x48}},
			{Addr: addr, W: []byte{0x00}, R: []byte{0x8f, 0x1b, 0x94}},
		},
		DontPanic: true,
	}
	bus := NewI2C(pb)
	if err := bus.WriteCommand(addr, 0x48); err != nil {
		t.Fatal(err)
	}
	r := make([]byte, 3)
	if err := bus.ReadBlock(addr, 0x00, r); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(r, []byte{0x8f, 0x1b, 0x94}) {
		t.Errorf("ReadBlock() returned %#v", r)
	}
	if err := pb.Close(); err != nil {
		t.Error(err)
	}
	if s := bus.String(); len(s) == 0 {
		t.Error("invalid String() result")
	}
}

func TestI2CTransportError(t *testing.T) {
	// An empty playback fails every transaction.
	pb := &i2ctest.Playback{DontPanic: true}
	bus := NewI2C(pb)

	_, err := bus.ReadWord(addr, 0xa2)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError, got %#v", err)
	}
	if te.Op != OpReadWord || te.Addr != addr || te.Reg != 0xa2 {
		t.Errorf("unexpected error contents %#v", te)
	}
	if te.Unwrap() == nil {
		t.Error("TransportError does not wrap the bus error")
	}
	if err = bus.WriteCommand(addr, 0x1e); !errors.As(err, &te) || te.Op != OpWriteCommand {
		t.Errorf("WriteCommand() error %v", err)
	}
	if err = bus.ReadBlock(addr, 0, make([]byte, 3)); !errors.As(err, &te) || te.Op != OpReadBlock {
		t.Errorf("ReadBlock() error %v", err)
	}
}

// fakeGobot records the calls a gobot sysfs device would receive.
type fakeGobot struct {
	addresses []int
	written   []byte
	words     map[uint8]uint16
	read      []byte
	err       error
}

func (f *fakeGobot) SetAddress(address int) error {
	f.addresses = append(f.addresses, address)
	return f.err
}

func (f *fakeGobot) WriteByte(val byte) error {
	f.written = append(f.written, val)
	return nil
}

func (f *fakeGobot) ReadWordData(reg uint8) (uint16, error) {
	return f.words[reg], nil
}

func (f *fakeGobot) Read(b []byte) (int, error) {
	return copy(b, f.read), nil
}

func TestGobot(t *testing.T) {
	dev := &fakeGobot{words: map[uint8]uint16{0xa2: 0x1234}, read: []byte{1, 2, 3}}
	bus := NewGobot(dev)

	if err := bus.WriteCommand(0x76, 0x1e); err != nil {
		t.Fatal(err)
	}
	w, err := bus.ReadWord(0x76, 0xa2)
	if err != nil {
		t.Fatal(err)
	}
	if w != 0x1234 {
		t.Errorf("ReadWord() returned 0x%04x", w)
	}
	r := make([]byte, 3)
	if err := bus.ReadBlock(0x76, 0x00, r); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(r, []byte{1, 2, 3}) {
		t.Errorf("ReadBlock() returned %#v", r)
	}
	if !bytes.Equal(dev.written, []byte{0x1e, 0x00}) {
		t.Errorf("unexpected writes %#v", dev.written)
	}
	if len(dev.addresses) != 3 || dev.addresses[0] != 0x76 {
		t.Errorf("address not selected for each call: %v", dev.addresses)
	}

	// A short read is a transport failure.
	dev.read = []byte{1}
	err = bus.ReadBlock(0x76, 0x00, r)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Errorf("expected *TransportError for short read, got %v", err)
	}

	dev.err = errors.New("ENXIO")
	if err = bus.WriteCommand(0x76, 0x1e); !errors.Is(err, dev.err) {
		t.Errorf("SetAddress error not propagated: %v", err)
	}
}
