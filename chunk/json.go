// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package chunk

import (
	"encoding/json"
	"errors"
	"fmt"
)

var errNoKind = errors.New("container has no kind")

// MarshalJSON renders the chunks as a list of single-key objects, each keyed
// by its variant name.
func (c *Container) MarshalJSON() ([]byte, error) {
	if c.Kind == nil {
		return nil, errNoKind
	}
	out := make([]map[string]Content, 0, len(c.Chunks))
	for _, content := range c.Chunks {
		v, ok := c.Kind.byMagic(content.Magic())
		if !ok {
			return nil, fmt.Errorf("%s: no variant with magic 0x%08X", c.Kind.Name, content.Magic())
		}
		out = append(out, map[string]Content{v.Name: content})
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses the form produced by MarshalJSON.  Kind must be set
// beforehand.
func (c *Container) UnmarshalJSON(data []byte) error {
	if c.Kind == nil {
		return errNoKind
	}
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	chunks := make([]Content, 0, len(raw))
	for i, entry := range raw {
		if len(entry) != 1 {
			return fmt.Errorf("%s: chunk %d: expected exactly one key, found %d", c.Kind.Name, i, len(entry))
		}
		for name, body := range entry {
			v, ok := c.Kind.byName(name)
			if !ok {
				return fmt.Errorf("%s: chunk %d: unknown chunk %q", c.Kind.Name, i, name)
			}
			content := v.New()
			if err := json.Unmarshal(body, content); err != nil {
				return fmt.Errorf("%s: %s: %w", c.Kind.Name, name, err)
			}
			chunks = append(chunks, content)
		}
	}
	c.Version = c.Kind.Version
	c.Chunks = chunks
	return nil
}
