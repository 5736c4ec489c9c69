// SPDX-License-Identifier: EPL-2.0

package analyzer

import "errors"

var (
	ErrInvalidFFTSize = errors.New("fft size must be one of 256, 512, 1024, 2048, 4096")
)
