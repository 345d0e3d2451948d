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

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	valli "github.com/vallicodec/valli-go"
	"github.com/vallicodec/valli-go/archive"
	"github.com/vallicodec/valli-go/bignum"
)

// tableEntry is the YAML-friendly projection of one non-zero frequency
// table slot.
type tableEntry struct {
	Symbol int    `json:"symbol"`
	Count  uint64 `json:"count"`
}

// archiveInfo is what `valli inspect` dumps: the non-zero entries of the
// deserialized frequency table, in ascending-count order, plus the byte
// length of the compressed integer region.
type archiveInfo struct {
	Entries      []tableEntry `json:"entries"`
	DataByteSize int          `json:"dataByteSize"`
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <path>.vli",
		Short: "Dump the frequency table of a .vli archive as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])

			if err != nil {
				return valli.NewIOError(err.Error(), valli.ERR_OPEN_FILE)
			}

			defer in.Close()

			r := archive.NewReader(in)
			table, data, err := r.Read()

			if err != nil {
				return err
			}

			info := archiveInfo{DataByteSize: bignum.ByteLen(data)}

			for i := 0; i < 256; i++ {
				if table.Count(i) == 0 {
					continue
				}

				info.Entries = append(info.Entries, tableEntry{
					Symbol: int(table.Symbol(i)),
					Count:  table.Count(i),
				})
			}

			out, err := yaml.Marshal(info)

			if err != nil {
				return valli.NewIOError(err.Error(), valli.ERR_UNKNOWN)
			}

			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	return cmd
}
