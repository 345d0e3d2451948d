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

package archive

import (
	"io"
	"math/big"

	valli "github.com/vallicodec/valli-go"
	"github.com/vallicodec/valli-go/bignum"
	"github.com/vallicodec/valli-go/bitstream"
	"github.com/vallicodec/valli-go/freqtable"
)

// Reader deserializes a frequency table and a compressed integer from an
// underlying io.Reader.
type Reader struct {
	in io.Reader
}

// NewReader creates a Reader over in. The caller owns in and is
// responsible for closing it.
func NewReader(in io.Reader) *Reader {
	return &Reader{in: in}
}

// Read consumes the entire underlying reader and returns the frequency
// table and the compressed integer it recovers from it.
func (this *Reader) Read() (*freqtable.FrequencyTable, *big.Int, error) {
	raw, err := io.ReadAll(this.in)

	if err != nil {
		return nil, nil, valli.NewIOError(err.Error(), valli.ERR_READ_FILE)
	}

	ibs := bitstream.NewDefaultInputBitStream(raw)
	table, err := freqtable.Deserialize(ibs)

	if err != nil {
		return nil, nil, err
	}

	data := bignum.ImportLE(ibs.Remaining())
	return table, data, nil
}
