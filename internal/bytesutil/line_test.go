// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bytesutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrimLine(t *testing.T) {
	for input, expected := range map[string]string{
		"":                 "",
		"\r":               "",
		"mario1":           "mario1",
		"mario1\r":         "mario1",
		"ハチマリオ初変身\r":       "ハチマリオ初変身",
		"carriage\rinside": "carriage\rinside",
	} {
		require.Equal(t, []byte(expected), TrimLine([]byte(input)), input)
	}
}
