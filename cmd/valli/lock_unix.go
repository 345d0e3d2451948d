//go:build unix

/*
Copyright 2024 The Valli Authors
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"os"

	"golang.org/x/sys/unix"

	valli "github.com/vallicodec/valli-go"
)

// createLocked opens path for writing and takes an advisory exclusive
// flock on the underlying file descriptor, so two concurrent
// "valli compress" invocations targeting the same output path fail fast
// instead of interleaving writes.
func createLocked(path string, force bool) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC

	if !force {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0644)

	if err != nil {
		return nil, valli.NewIOError(err.Error(), valli.ERR_CREATE_FILE)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return nil, valli.NewIOError("another process holds "+path, valli.ERR_CREATE_FILE)
	}

	return f, nil
}
