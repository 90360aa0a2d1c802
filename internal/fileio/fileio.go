// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package fileio loads and stores whole save files.
package fileio

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/dgryski/go-farm"
	"github.com/pkg/errors"
)

// Fingerprint returns a stable 64-bit fingerprint of data.
func Fingerprint(data []byte) uint64 {
	return farm.Fingerprint64(data)
}

// WriteFileAtomic replaces path with data by writing a temporary file in the
// same directory and renaming it into place.  When path already holds data
// nothing is written and false is returned.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (bool, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return false, errors.Wrap(err, "filepath.Abs")
	}

	if existing, err := os.ReadFile(path); err == nil {
		if Fingerprint(existing) == Fingerprint(data) && bytes.Equal(existing, data) {
			return false, nil
		}
	} else if !os.IsNotExist(err) {
		return false, errors.Wrapf(err, "reading %s", path)
	}

	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "galaxysave.*.tmp")
	if err != nil {
		return false, errors.Wrapf(err, "CreateTemp (may need permissions for dir %q)", dir)
	}
	tmp := f.Name()
	cleanup := func() {
		_ = f.Close()
		_ = os.Remove(tmp)
	}

	if _, err := f.Write(data); err != nil {
		cleanup()
		return false, errors.Wrapf(err, "writing %s", tmp)
	}
	if err := f.Sync(); err != nil {
		cleanup()
		return false, errors.Wrapf(err, "syncing %s", tmp)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return false, errors.Wrapf(err, "closing %s", tmp)
	}
	if err := os.Chmod(tmp, perm); err != nil {
		_ = os.Remove(tmp)
		return false, errors.Wrap(err, "os.Chmod")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return false, errors.Wrap(err, "os.Rename")
	}
	return true, nil
}
