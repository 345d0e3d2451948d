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

// Package freqtable implements the 256-entry byte histogram and its
// bit-packed, self-delimiting serialization format.
package freqtable

import (
	"fmt"
	"math/bits"

	valli "github.com/vallicodec/valli-go"
	"golang.org/x/exp/slices"
)

// maxCount is the largest count representable in the 56 high bits of a
// composite sort key.
const maxCount = (uint64(1) << 56) - 1

// FrequencyTable is a permutation of all 256 byte values, sortable as a
// single 64-bit key per entry: the symbol occupies the low 8 bits, the
// count the high 56 bits. After Sort, index 0 holds the rarest entry and
// index 255 the most frequent.
type FrequencyTable struct {
	entries [256]uint64
}

// New returns a table where every byte value is present with count 0.
func New() *FrequencyTable {
	this := &FrequencyTable{}

	for i := 0; i < 256; i++ {
		this.entries[i] = uint64(i)
	}

	return this
}

// Build scans message and returns the resulting, sorted frequency table.
// Returns an IOError{ERR_OVERFLOW} if any byte's count would exceed 56
// bits.
func Build(message []byte) (*FrequencyTable, error) {
	counts := make([]uint64, 256)

	for _, b := range message {
		counts[b]++

		if counts[b] > maxCount {
			return nil, valli.NewIOError("symbol count overflows 56 bits", valli.ERR_OVERFLOW)
		}
	}

	this := &FrequencyTable{}

	for i := 0; i < 256; i++ {
		this.entries[i] = (counts[i] << 8) | uint64(i)
	}

	this.Sort()
	return this, nil
}

// Sort orders the 256 entries ascending by composite key (count, then
// symbol). Re-sorting an already-sorted table is a no-op.
func (this *FrequencyTable) Sort() {
	slices.Sort(this.entries[:])
}

// Symbol returns the byte value held at sorted index idx (0..255).
func (this *FrequencyTable) Symbol(idx int) byte {
	return byte(this.entries[idx] & 0xFF)
}

// Count returns the frequency of the entry at sorted index idx (0..255).
func (this *FrequencyTable) Count(idx int) uint64 {
	return this.entries[idx] >> 8
}

// NullSymbol returns the byte value the encoder uses as an in-place
// "already encoded" marker: the symbol at index 0, guaranteed to have a
// zero count by Validate.
func (this *FrequencyTable) NullSymbol() byte {
	return this.Symbol(0)
}

// LastSymbol returns the most frequent byte value (index 255), the
// decoder's output-buffer sentinel.
func (this *FrequencyTable) LastSymbol() byte {
	return this.Symbol(255)
}

// Validate checks the invariants a sorted table must hold before it can be
// fed to the encoder or decoder: at least one zero-count entry and at
// least two non-zero entries.
func (this *FrequencyTable) Validate() error {
	if this.Count(0) != 0 {
		return valli.NewIOError("message uses all 256 byte values, no null symbol available", valli.ERR_FULL_ALPHABET)
	}

	if this.Count(254) == 0 {
		return valli.NewIOError("message uses fewer than 2 distinct byte values", valli.ERR_INSUFFICIENT_ALPHABET)
	}

	return nil
}

// Serialize writes the bit-packed header (see spec: 6-bit B0 field,
// descending counts each using the previous count's bit length, a zero
// count as terminator, then the matching symbol bytes) to w. Returns the
// number of non-zero entries emitted.
func (this *FrequencyTable) Serialize(w valli.OutputBitStream) (int, error) {
	b0 := bits.Len64(this.Count(255))

	if b0 < 1 || b0 > 63 {
		return 0, valli.NewIOError("largest count's bit length cannot be represented in the 6-bit header", valli.ERR_OVERFLOW)
	}

	w.WriteBits(uint64(b0), 6)
	prevBitLen := uint(b0)
	symbols := make([]byte, 0, 256)

	for idx := 255; idx >= 0; idx-- {
		count := this.Count(idx)
		w.WriteBits(count, prevBitLen)

		if count == 0 {
			break
		}

		symbols = append(symbols, this.Symbol(idx))
		prevBitLen = uint(bits.Len64(count))
	}

	for _, s := range symbols {
		w.WriteByte(s)
	}

	return len(symbols), nil
}

// Deserialize reads a table previously written by Serialize from r. The
// returned table already has its zero-count slots compacted: every byte
// value absent from the non-zero region appears once, in ascending order.
func Deserialize(r valli.InputBitStream) (this *FrequencyTable, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			this = nil
			err = valli.NewIOError(fmt.Sprint(rec), valli.ERR_MALFORMED_HEADER)
		}
	}()

	b := uint(r.ReadBits(6))

	if b < 1 || b > 63 {
		return nil, valli.NewIOError("invalid header bit length", valli.ERR_MALFORMED_HEADER)
	}

	counts := make([]uint64, 0, 256)

	for {
		count := r.ReadBits(b)
		counts = append(counts, count)

		if count == 0 {
			break
		}

		b = uint(bits.Len64(count))

		if len(counts) > 255 {
			return nil, valli.NewIOError("count stream did not terminate", valli.ERR_MALFORMED_HEADER)
		}
	}

	symbolCount := len(counts) - 1
	symbols := make([]byte, symbolCount)

	for i := 0; i < symbolCount; i++ {
		symbols[i] = r.ReadByte()
	}

	table := &FrequencyTable{}
	var present [256]bool

	for j := 0; j < symbolCount; j++ {
		idx := 255 - j
		table.entries[idx] = (counts[j] << 8) | uint64(symbols[j])
		present[symbols[j]] = true
	}

	slot := 0

	for b := 0; b < 256; b++ {
		if !present[b] {
			table.entries[slot] = uint64(b)
			slot++
		}
	}

	return table, nil
}
