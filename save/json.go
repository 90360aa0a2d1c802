// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package save

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bpowers/galaxysave/chunk"
)

type userFileJSON struct {
	Name     string                      `json:"name"`
	UserFile map[string]*chunk.Container `json:"user_file"`
}

type userFileRawJSON struct {
	Name     string                     `json:"name"`
	UserFile map[string]json.RawMessage `json:"user_file"`
}

type fileJSON[T any] struct {
	UserFileInfo []T `json:"user_file_info"`
}

// MarshalJSON renders each user file as its name plus its container keyed by
// the container kind.
func (f *File) MarshalJSON() ([]byte, error) {
	out := fileJSON[userFileJSON]{
		UserFileInfo: make([]userFileJSON, 0, len(f.UserFiles)),
	}
	for _, uf := range f.UserFiles {
		if uf.Data == nil || uf.Data.Kind == nil {
			return nil, fmt.Errorf("%s: %w", uf.Name, ErrKindMismatch)
		}
		out.UserFileInfo = append(out.UserFileInfo, userFileJSON{
			Name:     uf.Name,
			UserFile: map[string]*chunk.Container{uf.Data.Kind.Name: uf.Data},
		})
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses the form produced by MarshalJSON.  Format must be set
// beforehand.
func (f *File) UnmarshalJSON(data []byte) error {
	if f.Format == nil {
		return errors.New("save file has no format")
	}
	var in fileJSON[userFileRawJSON]
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	files := make([]UserFile, 0, len(in.UserFileInfo))
	for _, raw := range in.UserFileInfo {
		if len(raw.UserFile) != 1 {
			return fmt.Errorf("%s: expected exactly one container, found %d", raw.Name, len(raw.UserFile))
		}
		for kindName, body := range raw.UserFile {
			kind := f.Format.kindByName(kindName)
			if kind == nil {
				return fmt.Errorf("%s: unknown container %q", raw.Name, kindName)
			}
			c := chunk.NewContainer(kind)
			if err := json.Unmarshal(body, c); err != nil {
				return fmt.Errorf("%s: %w", raw.Name, err)
			}
			files = append(files, UserFile{Name: raw.Name, Data: c})
		}
	}
	f.UserFiles = files
	return nil
}
