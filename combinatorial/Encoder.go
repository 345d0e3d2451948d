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

package combinatorial

import (
	"math"
	"math/big"
	"time"

	valli "github.com/vallicodec/valli-go"
	"github.com/vallicodec/valli-go/freqtable"
)

// EncoderStats carries the bit-length figures a --verbose run reports:
// the achieved size, the theoretical maximum for this table, and a lower
// bound derived from zero-order Shannon entropy.
type EncoderStats struct {
	MessageLength   uint64
	DataBitLength   int
	CodeSpaceBits   int
	EntropyBitBound int
}

// Encoder folds a message into a single big integer via the combinatorial
// number system, driven by a sorted frequency table.
type Encoder struct {
	table     *freqtable.FrequencyTable
	scratch   *Scratch
	listeners []valli.Listener
	stats     EncoderStats
}

// NewEncoder creates an Encoder over table, which must already satisfy
// freqtable.FrequencyTable.Validate.
func NewEncoder(table *freqtable.FrequencyTable) *Encoder {
	return &Encoder{table: table, scratch: NewScratch()}
}

// AddListener registers a Listener notified of encode lifecycle events:
// EVT_COMPRESSION_START once, EVT_SYMBOL_ENCODED once per distinct symbol
// group, and EVT_COMPRESSION_END once.
func (this *Encoder) AddListener(l valli.Listener) {
	this.listeners = append(this.listeners, l)
}

func (this *Encoder) notify(evt *valli.Event) {
	for _, l := range this.listeners {
		l.ProcessEvent(evt)
	}
}

// Stats returns the bit-length figures computed by the most recent call to
// Encode.
func (this *Encoder) Stats() EncoderStats {
	return this.stats
}

// Encode walks message, ascending by frequency, and returns the resulting
// big integer along with the final multiply_combiner (the theoretical code
// space, used by callers to report the encoded bit-length bound).
func (this *Encoder) Encode(message []byte) (*big.Int, *big.Int, error) {
	if err := this.table.Validate(); err != nil {
		return nil, nil, err
	}

	L := uint64(len(message))
	nullSymbol := this.table.NullSymbol()

	this.notify(valli.NewEvent(valli.EVT_COMPRESSION_START, -1, int64(L), nil, valli.EVT_HASH_NONE, time.Time{}))

	buffer := make([]byte, L)
	copy(buffer, message)

	dataAccumulator := big.NewInt(0)
	multiplyCombiner := big.NewInt(1)
	remainingLoc := L
	tmp := new(big.Int)

	for i := 0; i < 255; i++ {
		count := this.table.Count(i)

		if count == 0 {
			continue
		}

		symbol := this.table.Symbol(i)
		symbolAccumulator := big.NewInt(0)
		denomFact := big.NewInt(1)
		k := uint64(1)
		removedLoc := uint64(0)

		for p := uint64(0); p < L; p++ {
			if buffer[p] == symbol {
				this.scratch.AccumulateLocation(symbolAccumulator, p-removedLoc, k, denomFact)
				buffer[p] = nullSymbol

				if k < count {
					k++
					denomFact.Mul(denomFact, tmp.SetUint64(k))
				} else {
					break
				}
			} else if buffer[p] == nullSymbol {
				removedLoc++
			}
		}

		tmp.Mul(multiplyCombiner, symbolAccumulator)
		dataAccumulator.Add(dataAccumulator, tmp)

		this.scratch.UpdateCombiner(multiplyCombiner, remainingLoc, count, denomFact)
		remainingLoc -= count

		this.notify(valli.NewEvent(valli.EVT_SYMBOL_ENCODED, int(symbol), int64(count), nil, valli.EVT_HASH_NONE, time.Time{}))
	}

	this.stats = EncoderStats{
		MessageLength:   L,
		DataBitLength:   dataAccumulator.BitLen(),
		CodeSpaceBits:   multiplyCombiner.BitLen(),
		EntropyBitBound: this.entropyBitBound(L),
	}

	this.notify(valli.NewEvent(valli.EVT_COMPRESSION_END, -1, int64(this.stats.DataBitLength), nil, valli.EVT_HASH_NONE, time.Time{}))

	return dataAccumulator, multiplyCombiner, nil
}

// entropyBitBound returns the zero-order Shannon entropy lower bound, in
// bits, for a message of length L encoded under this.table's histogram.
func (this *Encoder) entropyBitBound(L uint64) int {
	if L == 0 {
		return 0
	}

	bits := 0.0

	for i := 0; i < 256; i++ {
		count := this.table.Count(i)

		if count == 0 {
			continue
		}

		p := float64(count) / float64(L)
		bits -= float64(count) * math.Log2(p)
	}

	return int(math.Ceil(bits))
}
