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
	"time"

	"github.com/spf13/cobra"
	valli "github.com/vallicodec/valli-go"
	"github.com/vallicodec/valli-go/archive"
	"github.com/vallicodec/valli-go/combinatorial"
	"github.com/vallicodec/valli-go/freqtable"
	"github.com/vallicodec/valli-go/hash"
	"golang.org/x/crypto/blake2b"
)

func newCompressCmd() *cobra.Command {
	var (
		output   string
		force    bool
		verbose  uint
		verify   bool
		checksum bool
		maxSize  int64
	)

	cmd := &cobra.Command{
		Use:   "compress <path>",
		Short: "Compress a file into a .vli archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			if output == "" {
				output = input + ".vli"
			}

			if !force {
				if _, err := os.Stat(output); err == nil {
					return valli.NewIOError(fmt.Sprintf("%s already exists, use --force to overwrite", output), valli.ERR_OVERWRITE_FILE)
				}
			}

			message, err := os.ReadFile(input)

			if err != nil {
				return valli.NewIOError(err.Error(), valli.ERR_READ_FILE)
			}

			if maxSize > 0 && int64(len(message)) > maxSize {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s is %d bytes, above --max-size=%d\n", input, len(message), maxSize)
			}

			printer := newInfoPrinter(verbose, NewPrinter(cmd.OutOrStdout()))

			table, err := freqtable.Build(message)

			if err != nil {
				return err
			}

			printer.ProcessEvent(valli.NewEvent(valli.EVT_FREQ_TABLE_DONE, -1, int64(len(message)), nil, valli.EVT_HASH_NONE, time.Time{}))

			enc := combinatorial.NewEncoder(table)
			enc.AddListener(printer)
			data, _, err := enc.Encode(message)

			if err != nil {
				return err
			}

			if verify {
				dec := combinatorial.NewDecoder(table)
				roundTrip, err := dec.Decode(data)

				if err != nil {
					return valli.NewIOError("self-check failed to decode: "+err.Error(), valli.ERR_CORRUPT_CODE)
				}

				if string(roundTrip) != string(message) {
					return valli.NewIOError("self-check round trip mismatch", valli.ERR_CORRUPT_CODE)
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

			w := archive.NewWriter(out)

			if _, err := w.Write(table, data); err != nil {
				return err
			}

			stats := enc.Stats()
			printer.printer.Println(fmt.Sprintf(
				"%d bytes -> %d bits (entropy bound %d bits, theoretical max %d bits)",
				stats.MessageLength, stats.DataBitLength, stats.EntropyBitBound, stats.CodeSpaceBits))

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: <input>.vli)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing output file")
	cmd.Flags().UintVarP(&verbose, "verbose", "v", 1, "verbosity level (0-5)")
	cmd.Flags().BoolVar(&verify, "verify", false, "decode the result in memory immediately and fail if it differs from the input")
	cmd.Flags().BoolVar(&checksum, "checksum", false, "log an XXHash64 digest of the input instead of a BLAKE2b-256 one")
	cmd.Flags().Int64Var(&maxSize, "max-size", 1<<20, "warn (not refuse) above this many input bytes, 0 disables the warning")

	return cmd
}
