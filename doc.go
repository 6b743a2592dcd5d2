// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package seasense contains drivers for the TE Connectivity TSYS01
// temperature sensor and MS5837 pressure sensor as used in underwater
// probes, along with the unit conversion and depth calculations built on
// them.
//
// See tsys01 and ms5837 for the drivers, and cmd/seaprobe for a logger and
// Prometheus exporter.
package seasense
