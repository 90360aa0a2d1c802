// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bpowers/galaxysave"
)

func TestGenerate_RoundTrip(t *testing.T) {
	for _, p := range []galaxysave.Platform{galaxysave.Wii, galaxysave.Switch} {
		for seed := int64(1); seed <= 8; seed++ {
			file := generate(newRand(seed), 7)
			require.Len(t, file.UserFiles, 22)

			buf, err := galaxysave.Encode(file, galaxysave.WithPlatform(p))
			require.NoError(t, err)

			decoded, err := galaxysave.Decode(buf, galaxysave.WithPlatform(p))
			require.NoError(t, err)

			again, err := galaxysave.Encode(decoded, galaxysave.WithPlatform(p))
			require.NoError(t, err)
			require.Equal(t, buf, again)
		}
	}
}
