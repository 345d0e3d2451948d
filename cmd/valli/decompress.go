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
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	valli "github.com/vallicodec/valli-go"
	"github.com/vallicodec/valli-go/archive"
	"github.com/vallicodec/valli-go/combinatorial"
	"github.com/vallicodec/valli-go/hash"
	"golang.org/x/crypto/blake2b"
)

func newDecompressCmd() *cobra.Command {
	var (
		output   string
		force    bool
		verbose  uint
		verify   bool
		checksum bool
	)

	cmd := &cobra.Command{
		Use:   "decompress <path>.vli",
		Short: "Decompress a .vli archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			if output == "" {
				output = strings.TrimSuffix(input, ".vli")

				if output == input {
					output = input + ".out"
				}
			}

			if !force {
				if _, err := os.Stat(output); err == nil {
					return valli.NewIOError(fmt.Sprintf("%s already exists, use --force to overwrite", output), valli.ERR_OVERWRITE_FILE)
				}
			}

			in, err := os.Open(input)

			if err != nil {
				return valli.NewIOError(err.Error(), valli.ERR_OPEN_FILE)
			}

			defer in.Close()

			printer := newInfoPrinter(verbose, NewPrinter(cmd.OutOrStdout()))

			r := archive.NewReader(in)
			table, data, err := r.Read()

			if err != nil {
				return err
			}

			printer.ProcessEvent(valli.NewEvent(valli.EVT_FREQ_TABLE_DONE, -1, 0, nil, valli.EVT_HASH_NONE, time.Time{}))

			dec := combinatorial.NewDecoder(table)
			dec.AddListener(printer)
			message, err := dec.Decode(data)

			if err != nil {
				return err
			}

			if verify {
				enc := combinatorial.NewEncoder(table)
				reEncoded, _, err := enc.Encode(message)

				if err != nil || reEncoded.Cmp(data) != 0 {
					return valli.NewIOError("self-check failed to reproduce the compressed integer", valli.ERR_CORRUPT_CODE)
				}

				printer.printer.Println("self-check passed")

				if checksum {
					h, _ := hash.NewXXHash64(0)
					printer.printer.Println(fmt.Sprintf("xxhash64: %016x", h.Hash(message)))
				} else {
					digest := blake2b.Sum256(message)
					printer.printer.Println(fmt.Sprintf("blake2b-256: %x", digest))
				}
			}

			out, err := createLocked(output, force)

			if err != nil {
				return err
			}

			defer out.Close()

			if _, err := out.Write(message); err != nil {
				return valli.NewIOError(err.Error(), valli.ERR_WRITE_FILE)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: <path> with .vli stripped)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing output file")
	cmd.Flags().UintVarP(&verbose, "verbose", "v", 1, "verbosity level (0-5)")
	cmd.Flags().BoolVar(&verify, "verify", false, "re-encode the decoded message and fail if it doesn't reproduce the compressed integer")
	cmd.Flags().BoolVar(&checksum, "checksum", false, "log an XXHash64 digest of the output instead of a BLAKE2b-256 one")

	return cmd
}
