// Copyright 2026 The galaxysave Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

//go:build unix

package fileio

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ReadFile returns the contents of path.  The file is mapped and read
// sequentially into a buffer owned by the caller.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer func() {
		_ = f.Close()
	}()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	size := fi.Size()
	if size == 0 || !fi.Mode().IsRegular() {
		// nothing to map; pipes and devices are read normally
		return os.ReadFile(path)
	}
	if int64(int(size)) != size {
		return nil, errors.Errorf("%s: file too large (%d bytes)", path, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap %s", path)
	}
	defer func() {
		_ = unix.Munmap(data)
	}()
	if err := unix.Madvise(data, unix.MADV_SEQUENTIAL); err != nil {
		return nil, errors.Wrap(err, "madvise")
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}
