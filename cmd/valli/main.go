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

// Command valli compresses and decompresses small files by folding them
// into a single arbitrary-precision integer via the combinatorial number
// system, instead of an entropy-coded bitstream.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	valli "github.com/vallicodec/valli-go"
)

const version = "1.0"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "valli",
		Short:         "Combinatorial-number-system entropy codec",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.AddCommand(newCompressCmd())
	cmd.AddCommand(newDecompressCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newBatchCmd())

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		code := valli.ERR_UNKNOWN

		if ioErr, ok := err.(valli.IOError); ok {
			code = ioErr.ErrorCode()
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(code)
	}
}
