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
	"math/big"
	"time"

	valli "github.com/vallicodec/valli-go"
	"github.com/vallicodec/valli-go/bignum"
	"github.com/vallicodec/valli-go/freqtable"
)

// DecoderStats carries diagnostics from the most recent Decode call. The
// original poc-decompress.cpp tracks, purely for curiosity, how many times
// the undershoot-correction loop had to step locIdx forward; that count
// never changes control flow, so it is surfaced here and nowhere else.
type DecoderStats struct {
	UndershootCorrections int
}

// Decoder reconstructs a message from a big integer produced by Encoder,
// driven by the same sorted frequency table used to produce it.
type Decoder struct {
	table     *freqtable.FrequencyTable
	scratch   *Scratch
	listeners []valli.Listener
	stats     DecoderStats
}

// NewDecoder creates a Decoder over table.
func NewDecoder(table *freqtable.FrequencyTable) *Decoder {
	return &Decoder{table: table, scratch: NewScratch()}
}

// AddListener registers a Listener notified of decode lifecycle events:
// EVT_DECOMPRESSION_START once, EVT_SYMBOL_DECODED once per distinct
// symbol group, and EVT_DECOMPRESSION_END once.
func (this *Decoder) AddListener(l valli.Listener) {
	this.listeners = append(this.listeners, l)
}

func (this *Decoder) notify(evt *valli.Event) {
	for _, l := range this.listeners {
		l.ProcessEvent(evt)
	}
}

// Stats returns the diagnostics gathered by the most recent call to Decode.
func (this *Decoder) Stats() DecoderStats {
	return this.stats
}

// messageLength returns the sum of all 256 counts: the original message
// length, which the on-disk format never stores explicitly.
func (this *Decoder) messageLength() uint64 {
	var L uint64

	for i := 0; i < 256; i++ {
		L += this.table.Count(i)
	}

	return L
}

// codeSpace recomputes the encoder's final multiply_combiner directly from
// the table, without needing the original message. Used to bound-check D
// before decoding: a corrupt or truncated integer will be >= this value.
func (this *Decoder) codeSpace(L uint64) *big.Int {
	combiner := big.NewInt(1)
	remaining := L

	for i := 0; i < 255; i++ {
		count := this.table.Count(i)

		if count == 0 {
			continue
		}

		denomFact := bignum.Factorial(count)
		this.scratch.UpdateCombiner(combiner, remaining, count, denomFact)
		remaining -= count
	}

	return combiner
}

// Decode reverses Encode: given the compressed integer D, reconstructs and
// returns the original message bytes.
func (this *Decoder) Decode(D *big.Int) ([]byte, error) {
	if err := this.table.Validate(); err != nil {
		return nil, err
	}

	L := this.messageLength()
	space := this.codeSpace(L)

	this.notify(valli.NewEvent(valli.EVT_DECOMPRESSION_START, -1, int64(L), nil, valli.EVT_HASH_NONE, time.Time{}))
	this.stats = DecoderStats{}

	if D.Sign() < 0 || D.Cmp(space) >= 0 {
		return nil, valli.NewIOError("compressed integer exceeds the theoretical code space", valli.ERR_CORRUPT_CODE)
	}

	lastSymbol := this.table.LastSymbol()
	outputBuffer := make([]byte, L)

	for i := range outputBuffer {
		outputBuffer[i] = lastSymbol
	}

	start := 0

	for start < 255 && this.table.Count(start) == 0 {
		start++
	}

	remaining := new(big.Int).Set(D)
	remainingLocations := L
	extracted := new(big.Int)

	for symbolIdx := start; symbolIdx < 255; symbolIdx++ {
		count := this.table.Count(symbolIdx)

		if count == 0 {
			continue
		}

		symbol := this.table.Symbol(symbolIdx)

		if symbolIdx < 254 {
			uncombiner := this.scratch.Choose(remainingLocations, count)
			q, r := bignum.TruncDivMod(new(big.Int), new(big.Int), remaining, uncombiner)
			remaining = q
			extracted.Set(r)
		} else {
			extracted.Set(remaining)
		}

		// Snapshot the positions not yet claimed by an earlier (rarer)
		// symbol. Because the inversion loop below places occurrences in
		// descending relative-index order, the not-yet-placed positions
		// for this symbol always form the prefix of this snapshot, which
		// is what makes the tail-placement base case a plain prefix/skip
		// rule over snapshot indices instead of a buffer walk.
		snapshot := make([]uint64, 0, remainingLocations)

		for p := uint64(0); p < L; p++ {
			if outputBuffer[p] == lastSymbol {
				snapshot = append(snapshot, p)
			}
		}

		if uint64(len(snapshot)) != remainingLocations {
			return nil, valli.NewIOError("inconsistent remaining-location count during decode", valli.ERR_CORRUPT_CODE)
		}

		k := count
		factorial := bignum.Factorial(k)

		for extracted.Cmp(new(big.Int).SetUint64(k)) > 0 {
			prod := new(big.Int).Mul(extracted, factorial)
			root := bignum.IthRoot(prod, k)
			locIdx := new(big.Int).Add(root, new(big.Int).SetUint64(k/2)).Uint64()

			// The root estimate can land below k when extracted is only
			// just above k: Choose(n,k) is 0 for n<k (a legitimate point
			// on the curve, not corruption), and the undershoot loop
			// below already special-cases locIdx<=k to walk it back up.
			est := this.scratch.Choose(locIdx, k)

			if locIdx >= k && est.Cmp(extracted) > 0 {
				num := new(big.Int).Mul(est, new(big.Int).SetUint64(locIdx-k))
				est = num.Div(num, new(big.Int).SetUint64(locIdx))
				locIdx--
			}

			extracted.Sub(extracted, est)

			delta := new(big.Int)
			kBig := new(big.Int).SetUint64(k)

			if locIdx >= k {
				delta.Mul(est, new(big.Int).SetUint64(k))
				delta.Div(delta, new(big.Int).SetUint64(locIdx-k+1))
			}

			for delta.Cmp(extracted) <= 0 && extracted.Cmp(kBig) > 0 {
				extracted.Sub(extracted, delta)
				locIdx++
				this.stats.UndershootCorrections++

				if locIdx <= k {
					delta.SetUint64(1)
					locIdx = k
				} else {
					delta.Mul(delta, new(big.Int).SetUint64(locIdx))
					delta.Div(delta, new(big.Int).SetUint64(locIdx-(k-1)))
				}
			}

			if locIdx >= uint64(len(snapshot)) {
				return nil, valli.NewIOError("decoded position out of range", valli.ERR_CORRUPT_CODE)
			}

			outputBuffer[snapshot[locIdx]] = symbol

			oldK := k
			k--

			if k > 0 {
				factorial.Div(factorial, new(big.Int).SetUint64(oldK))
			}
		}

		if k > 0 {
			kBig := new(big.Int).SetUint64(k)
			cmp := extracted.Cmp(kBig)

			switch {
			case cmp < 0:
				for j := uint64(0); j < k; j++ {
					outputBuffer[snapshot[j]] = symbol
				}
			case cmp == 0:
				for j := uint64(1); j <= k; j++ {
					outputBuffer[snapshot[j]] = symbol
				}
			default:
				return nil, valli.NewIOError("tail placement reached with excess combinatorial code", valli.ERR_CORRUPT_CODE)
			}
		}

		remainingLocations -= count

		this.notify(valli.NewEvent(valli.EVT_SYMBOL_DECODED, int(symbol), int64(count), nil, valli.EVT_HASH_NONE, time.Time{}))
	}

	this.notify(valli.NewEvent(valli.EVT_DECOMPRESSION_END, -1, int64(L), nil, valli.EVT_HASH_NONE, time.Time{}))

	return outputBuffer, nil
}
