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

// Package archive implements the on-disk layout of a compressed artifact:
// a serialized frequency table immediately followed by the little-endian
// bytes of the compressed big integer. There is no magic number, version
// field, or length field; the frequency table is self-delimiting and the
// remainder of the stream is, by construction, the integer.
package archive

import (
	"io"
	"math/big"

	valli "github.com/vallicodec/valli-go"
	"github.com/vallicodec/valli-go/bignum"
	"github.com/vallicodec/valli-go/bitstream"
	"github.com/vallicodec/valli-go/freqtable"
)

// Writer serializes a frequency table and a compressed integer to an
// underlying io.Writer.
type Writer struct {
	out io.Writer
}

// NewWriter creates a Writer over out. The caller owns out and is
// responsible for closing it.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Write emits table followed by data and returns the number of bytes
// written.
func (this *Writer) Write(table *freqtable.FrequencyTable, data *big.Int) (int, error) {
	obs := bitstream.NewDefaultOutputBitStream()

	if _, err := table.Serialize(obs); err != nil {
		return 0, err
	}

	if err := obs.Close(); err != nil {
		return 0, valli.NewIOError(err.Error(), valli.ERR_WRITE_FILE)
	}

	header := obs.Bytes()
	n, err := this.out.Write(header)

	if err != nil {
		return n, valli.NewIOError(err.Error(), valli.ERR_WRITE_FILE)
	}

	body := bignum.ExportLE(data)
	m, err := this.out.Write(body)
	total := n + m

	if err != nil {
		return total, valli.NewIOError(err.Error(), valli.ERR_WRITE_FILE)
	}

	return total, nil
}
