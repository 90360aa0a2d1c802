// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package hashcode

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders h as its registered label, matching only the low width bits
// when width is below 32.  Unknown hashes are rendered as zero-padded
// hexadecimal with as many digits as width needs.
func (r *Registry) Format(h Hash, width int) string {
	h = h.Mask(width)
	if label, ok := r.LabelOf(h, width); ok {
		return label
	}
	return fmt.Sprintf("0x%0*X", hexDigits(width), uint32(h))
}

// Parse resolves the text form produced by Format: a registered label, a
// hexadecimal fallback, or (outside strict mode) any other label, which is
// hashed directly.  The result is masked to width bits.
func (r *Registry) Parse(text string, width int) (Hash, error) {
	r.mu.RLock()
	h, ok := r.byLabel[text]
	r.mu.RUnlock()
	if ok {
		return h.Mask(width), nil
	}

	if digits, isHex := cutHexPrefix(text); isHex {
		if len(digits) == 0 || len(digits) > hexDigits(width) {
			return 0, &LabelError{Label: text, Err: ErrMalformedHex}
		}
		v, err := strconv.ParseUint(digits, 16, 32)
		if err != nil {
			return 0, &LabelError{Label: text, Err: ErrMalformedHex}
		}
		return Hash(v).Mask(width), nil
	}

	r.mu.RLock()
	strict, enc := r.strict, r.encoding
	r.mu.RUnlock()
	if strict {
		return 0, &LabelError{Label: text, Err: ErrUnknownLabel}
	}
	h, err := hashLabel(enc, text)
	if err != nil {
		return 0, err
	}
	return h.Mask(width), nil
}

func cutHexPrefix(s string) (string, bool) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:], true
	}
	return s, false
}

func hexDigits(width int) int {
	if width <= 0 || width >= 32 {
		return 8
	}
	return (width + 3) / 4
}

// MarshalText renders h through the default registry.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(Default().Format(h, 32)), nil
}

// UnmarshalText resolves text through the default registry.
func (h *Hash) UnmarshalText(text []byte) error {
	v, err := Default().Parse(string(text), 32)
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// MarshalText renders h through the default registry, matching the low 16
// bits of registered hashes.
func (h Hash16) MarshalText() ([]byte, error) {
	return []byte(Default().Format(Hash(h), 16)), nil
}

// UnmarshalText resolves text through the default registry and truncates the
// result to 16 bits.
func (h *Hash16) UnmarshalText(text []byte) error {
	v, err := Default().Parse(string(text), 16)
	if err != nil {
		return err
	}
	*h = Hash16(v)
	return nil
}
