// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tsys01

import "fmt"

// NotInitializedError is returned by measurements requested before
// Dev.Initialize succeeded.
type NotInitializedError struct{}

func (e *NotInitializedError) Error() string {
	return "tsys01: not initialized, call Initialize() first"
}

// InvalidSampleCountError is returned by BurstAverageTemperature when fewer
// than one sample would remain after dropping the first and last.
type InvalidSampleCountError struct {
	N int
}

func (e *InvalidSampleCountError) Error() string {
	return fmt.Sprintf("tsys01: burst of %d samples leaves nothing to average, minimum is 3", e.N)
}
