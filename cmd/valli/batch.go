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
	"sync"

	"github.com/spf13/cobra"
	valli "github.com/vallicodec/valli-go"
	"github.com/vallicodec/valli-go/archive"
	"github.com/vallicodec/valli-go/combinatorial"
	"github.com/vallicodec/valli-go/freqtable"
	"github.com/vallicodec/valli-go/internal"
)

func newBatchCmd() *cobra.Command {
	var (
		jobs      uint
		force     bool
		recursive bool
	)

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Compress every regular file in a directory concurrently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if jobs == 0 {
				jobs = 1
			}

			files, err := internal.CreateFileList(args[0], nil, recursive, true, true)

			if err != nil {
				return valli.NewIOError(err.Error(), valli.ERR_READ_FILE)
			}

			printer := NewPrinter(cmd.OutOrStdout())
			jobCh := make(chan internal.FileData)
			var wg sync.WaitGroup
			var mu sync.Mutex
			var failures []error

			for w := uint(0); w < jobs; w++ {
				wg.Add(1)

				go func() {
					defer wg.Done()

					for file := range jobCh {
						if err := compressOneFile(file.FullPath, force); err != nil {
							mu.Lock()
							failures = append(failures, fmt.Errorf("%s: %w", file.FullPath, err))
							mu.Unlock()
							continue
						}

						printer.Println(fmt.Sprintf("%s -> %s.vli", file.FullPath, file.FullPath))
					}
				}()
			}

			for _, file := range files {
				if internal.IsReservedName(file.Name) {
					continue
				}

				jobCh <- file
			}

			close(jobCh)
			wg.Wait()

			if len(failures) > 0 {
				for _, f := range failures {
					fmt.Fprintln(cmd.ErrOrStderr(), f)
				}

				return valli.NewIOError(fmt.Sprintf("%d of %d files failed", len(failures), len(files)), valli.ERR_UNKNOWN)
			}

			return nil
		},
	}

	cmd.Flags().UintVarP(&jobs, "jobs", "j", 1, "number of files to compress concurrently")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing .vli outputs")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "recurse into subdirectories")

	return cmd
}

// compressOneFile runs the same encode-then-write pipeline as
// newCompressCmd, minus progress logging: batch mode reports one line per
// file instead of per-symbol detail.
func compressOneFile(path string, force bool) error {
	message, err := os.ReadFile(path)

	if err != nil {
		return valli.NewIOError(err.Error(), valli.ERR_READ_FILE)
	}

	table, err := freqtable.Build(message)

	if err != nil {
		return err
	}

	enc := combinatorial.NewEncoder(table)
	data, _, err := enc.Encode(message)

	if err != nil {
		return err
	}

	out, err := createLocked(path+".vli", force)

	if err != nil {
		return err
	}

	defer out.Close()

	w := archive.NewWriter(out)
	_, err = w.Write(table, data)
	return err
}
