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
	"math/big"
	"testing"

	"github.com/vallicodec/valli-go/freqtable"
	"github.com/vallicodec/valli-go/internal"
)

func TestWriteReadRoundTrip(t *testing.T) {
	message := []byte("aaaaaaaabbbc")
	table, err := freqtable.Build(message)

	if err != nil {
		t.Fatalf("build histogram failed: %v", err)
	}

	data := new(big.Int).SetUint64(123456789)
	buf := internal.NewBufferStream()

	w := NewWriter(buf)

	if _, err := w.Write(table, data); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	r := NewReader(buf)
	gotTable, gotData, err := r.Read()

	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	for i := 0; i < 256; i++ {
		if gotTable.Symbol(i) != table.Symbol(i) || gotTable.Count(i) != table.Count(i) {
			t.Fatalf("entry %d mismatch: expected (%d,%d), got (%d,%d)",
				i, table.Symbol(i), table.Count(i), gotTable.Symbol(i), gotTable.Count(i))
		}
	}

	if gotData.Cmp(data) != 0 {
		t.Errorf("expected data %v, got %v", data, gotData)
	}
}

func TestWriteReadZeroInteger(t *testing.T) {
	message := []byte("xxxxy")
	table, err := freqtable.Build(message)

	if err != nil {
		t.Fatalf("build histogram failed: %v", err)
	}

	buf := internal.NewBufferStream()
	w := NewWriter(buf)

	if _, err := w.Write(table, big.NewInt(0)); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	r := NewReader(buf)
	_, gotData, err := r.Read()

	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if gotData.Sign() != 0 {
		t.Errorf("expected zero, got %v", gotData)
	}
}
