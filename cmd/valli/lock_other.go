//go:build !unix

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

	valli "github.com/vallicodec/valli-go"
)

// createLocked opens path for writing. Advisory locking degrades to a
// no-op on non-unix builds, matching the teacher's own runtime.GOOS-gated
// code paths (internal.IsReservedName).
func createLocked(path string, force bool) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC

	if !force {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0644)

	if err != nil {
		return nil, valli.NewIOError(err.Error(), valli.ERR_CREATE_FILE)
	}

	return f, nil
}
