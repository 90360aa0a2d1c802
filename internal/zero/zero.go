// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package zero provides functions to zero slices of specific types.
package zero

// Bytes zeroes every byte of b, leaving its length and capacity unchanged.
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
