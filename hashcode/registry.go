// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package hashcode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/text/encoding/japanese"

	"github.com/bpowers/galaxysave/internal/bytesutil"
)

// Encoding is the character encoding labels are converted to before hashing.
type Encoding uint8

const (
	// EncodingUnset means no labels were loaded yet.
	EncodingUnset Encoding = iota
	// ShiftJIS is used by the Wii and Shield TV releases.
	ShiftJIS
	// UTF8 is used by the Switch release.
	UTF8
)

func (e Encoding) String() string {
	switch e {
	case ShiftJIS:
		return "Shift JIS"
	case UTF8:
		return "UTF-8"
	default:
		return "unset"
	}
}

var (
	ErrUnknownLabel         = errors.New("label not found")
	ErrMalformedHex         = errors.New("malformed hexadecimal hash")
	ErrInconsistentEncoding = errors.New("the requested character encoding does not match the current character encoding")
	ErrEncodeShiftJIS       = errors.New("label contains characters not representable in Shift JIS")
)

// LabelError reports a label that could not be converted to or from a hash.
type LabelError struct {
	Label string
	Err   error
}

func (e *LabelError) Error() string {
	if e.Label == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("label %q: %s", e.Label, e.Err)
}

func (e *LabelError) Unwrap() error {
	return e.Err
}

// Registry is a bidirectional table between hashes and the labels they were
// computed from.  A Registry is safe for concurrent use: lookups share a read
// lock and population takes the write lock.
//
// The lifecycle is: empty, populated once under a single Encoding (later
// population under a different Encoding fails), then optionally cleared or
// reset.
type Registry struct {
	mu       sync.RWMutex
	byHash   map[Hash]string
	byLabel  map[string]Hash
	encoding Encoding
	strict   bool
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used when rendering hashes as
// JSON.
func Default() *Registry {
	return defaultRegistry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byHash:  make(map[Hash]string),
		byLabel: make(map[string]Hash),
	}
}

// Encoding returns the encoding the registry was populated with.
func (r *Registry) Encoding() Encoding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.encoding
}

// Len returns the number of labels held.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byLabel)
}

// Strict reports whether unknown labels are rejected by HashOf.
func (r *Registry) Strict() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.strict
}

// SetStrict updates whether unknown labels are rejected by HashOf instead of
// being hashed directly.
func (r *Registry) SetStrict(strict bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strict = strict
}

// HashOf returns the hash registered for label.  When label is unknown and
// the registry is not strict, the hash is computed from the label's bytes
// under the registry's encoding.
func (r *Registry) HashOf(label string) (Hash, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if h, ok := r.byLabel[label]; ok {
		return h, true
	}
	if r.strict {
		return 0, false
	}
	h, err := hashLabel(r.encoding, label)
	if err != nil {
		return 0, false
	}
	return h, true
}

// LabelOf returns the label registered for h.  A width of 0 (or 32) requires
// an exact match; otherwise only the low width bits of h and of each
// registered hash are compared.  When several labels match a truncated hash
// the lexically smallest is returned.
func (r *Registry) LabelOf(h Hash, width int) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if width <= 0 || width >= 32 {
		label, ok := r.byHash[h]
		return label, ok
	}
	want := h.Mask(width)
	var (
		found string
		ok    bool
	)
	for candidate, label := range r.byHash {
		if candidate.Mask(width) != want {
			continue
		}
		if !ok || label < found {
			found, ok = label, true
		}
	}
	return found, ok
}

// Extend hashes and inserts labels, converting each to enc first.
func (r *Registry) Extend(enc Encoding, labels []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.claimEncoding(enc); err != nil {
		return err
	}
	for _, label := range labels {
		if err := r.insert(label); err != nil {
			return err
		}
	}
	return nil
}

// Read hashes and inserts a newline-separated list of labels.  Blank lines
// are skipped.  Nothing is inserted if any line fails to convert.
func (r *Registry) Read(enc Encoding, rd io.Reader) error {
	var labels []string
	s := bufio.NewScanner(bufio.NewReaderSize(rd, 16*1024))
	for s.Scan() {
		line := bytesutil.TrimLine(s.Bytes())
		if len(line) == 0 {
			continue
		}
		labels = append(labels, string(line))
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("bufio.Scanner: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.encoding != EncodingUnset && r.encoding != enc {
		return &LabelError{Err: ErrInconsistentEncoding}
	}
	hashes := make([]Hash, len(labels))
	for i, label := range labels {
		h, err := hashLabel(enc, label)
		if err != nil {
			return err
		}
		hashes[i] = h
	}
	r.encoding = enc
	for i, label := range labels {
		r.put(hashes[i], label)
	}
	return nil
}

// ReadFile is Read over the contents of the file at path.
func (r *Registry) ReadFile(enc Encoding, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return r.Read(enc, f)
}

// Clear removes every label, keeping the encoding and strictness.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byHash = make(map[Hash]string)
	r.byLabel = make(map[string]Hash)
}

// Reset removes every label and returns the registry to its initial,
// unpopulated, non-strict state.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byHash = make(map[Hash]string)
	r.byLabel = make(map[string]Hash)
	r.encoding = EncodingUnset
	r.strict = false
}

// claimEncoding must be called with mu held.
func (r *Registry) claimEncoding(enc Encoding) error {
	if r.encoding == EncodingUnset {
		r.encoding = enc
		return nil
	}
	if r.encoding != enc {
		return &LabelError{Err: ErrInconsistentEncoding}
	}
	return nil
}

// insert must be called with mu held.
func (r *Registry) insert(label string) error {
	h, err := hashLabel(r.encoding, label)
	if err != nil {
		return err
	}
	r.put(h, label)
	return nil
}

// put keeps both directions one-to-one: a re-used hash or label evicts the
// stale pairing.
func (r *Registry) put(h Hash, label string) {
	if old, ok := r.byHash[h]; ok {
		delete(r.byLabel, old)
	}
	if old, ok := r.byLabel[label]; ok {
		delete(r.byHash, old)
	}
	r.byHash[h] = label
	r.byLabel[label] = h
}

func hashLabel(enc Encoding, label string) (Hash, error) {
	if enc != ShiftJIS {
		return FromString(label), nil
	}
	encoded, err := japanese.ShiftJIS.NewEncoder().String(label)
	if err != nil {
		return 0, &LabelError{Label: label, Err: ErrEncodeShiftJIS}
	}
	return FromString(encoded), nil
}
