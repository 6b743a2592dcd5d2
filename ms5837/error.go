// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ms5837

import "fmt"

// NotInitializedError is returned by measurements requested before
// Dev.Initialize succeeded.
type NotInitializedError struct{}

func (e *NotInitializedError) Error() string {
	return "ms5837: not initialized, call Initialize() first"
}

// PROMError is returned by Initialize when the CRC stored in the PROM does
// not match the coefficients read.
type PROMError struct {
	Stored   byte
	Computed byte
}

func (e *PROMError) Error() string {
	return fmt.Sprintf("ms5837: PROM CRC mismatch, stored 0x%x computed 0x%x", e.Stored, e.Computed)
}
