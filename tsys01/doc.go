// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// tsys01 provides a package for interfacing a TE Connectivity TSYS01
// digital temperature sensor over I²C, as used in the Blue Robotics
// "Fast-Response, High Accuracy" temperature sensor.
//
// Range: -40°C - 125°C
//
// Accuracy: ±0.1°C between -5°C and 50°C
//
// Resolution: 0.01°C
//
// The device returns a 24 bit ADC count. It is converted to a temperature
// with a 4th order polynomial whose five coefficients are programmed into
// the device PROM at the factory. Call Dev.Initialize once before taking
// measurements to read them.
//
// For detailed information, refer to the [datasheet].
//
// [datasheet]: https://www.te.com/commerce/DocumentDelivery/DDEController?Action=showdoc&DocId=Data+Sheet%7FTSYS01%7FA%7Fpdf%7FEnglish%7FENG_DS_TSYS01_A.pdf%7FG-NICO-018
package tsys01
