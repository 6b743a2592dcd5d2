// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ms5837 controls a TE Connectivity MS5837 pressure sensor over I²C.
//
// Two variants are supported: the MS5837-30BA (0 to 30 bar, 0.1 mbar
// output resolution) used in the Blue Robotics Bar30 depth sensor, and the
// MS5837-02BA (300 to 1200 mbar, 0.01 mbar output resolution) used in the
// Bar02. The variant cannot be read from the device and must be given in
// Opts.
//
// Every measurement starts a pressure and a temperature conversion at the
// requested oversampling ratio and applies the first and second order
// compensation from the datasheet. Depth and altitude are derived from the
// compensated pressure with package fluid.
//
// The ms5837.Dev type implements the physic.SenseEnv interface. Humidity is
// never set.
//
// # Datasheets
//
// https://www.te.com/commerce/DocumentDelivery/DDEController?Action=showdoc&DocId=Data+Sheet%7FMS5837-30BA%7FB1%7Fpdf%7FEnglish%7FENG_DS_MS5837-30BA_B1.pdf
//
// https://www.te.com/commerce/DocumentDelivery/DDEController?Action=showdoc&DocId=Data+Sheet%7FMS5837-02BA01%7FA8%7Fpdf%7FEnglish%7FENG_DS_MS5837-02BA01_A8.pdf
package ms5837
