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

// Package combinatorial implements the binomial kernel and the
// combinatorial-number-system encoder/decoder: the core of the Valli codec.
package combinatorial

import (
	"math/big"

	"github.com/vallicodec/valli-go/bignum"
)

// Scratch holds the big.Int temporaries the binomial kernel reuses across
// calls, mirroring the scratch-operand reuse contract of
// original_source/utility-functions.hpp (numerator, combo_result). Callers
// allocate one Scratch at the start of an encode or decode pass and pass it
// to every kernel call for the duration of that pass.
type Scratch struct {
	Numerator   *big.Int
	ComboResult *big.Int
}

// NewScratch allocates a fresh Scratch.
func NewScratch() *Scratch {
	return &Scratch{Numerator: new(big.Int), ComboResult: new(big.Int)}
}

// numeratorProduct sets dst to the product of the k descending integers
// n, n-1, ..., n-k+1 (the numerator of C(n,k) before dividing by k!).
// Precondition: n >= k >= 1.
func numeratorProduct(dst *big.Int, n, k uint64) *big.Int {
	dst.SetUint64(n)

	if k <= 1 {
		return dst
	}

	factor := new(big.Int)

	for i := n - 1; i > n-k; i-- {
		dst.Mul(dst, factor.SetUint64(i))
	}

	return dst
}

// Choose returns C(n, k) = n*(n-1)*...*(n-k+1) / k!. Returns 0 if n < k.
// k must be >= 1.
func (this *Scratch) Choose(n, k uint64) *big.Int {
	result := new(big.Int)

	if n < k {
		return result
	}

	numeratorProduct(this.Numerator, n, k)
	fact := bignum.Factorial(k)
	return bignum.ExactDiv(result, this.Numerator, fact)
}

// AccumulateLocation adds C(n,k) to acc, where denomFact is the caller's
// running value of k! (updated by the caller between calls, see
// spec.md §4.1). Does nothing if n < k.
func (this *Scratch) AccumulateLocation(acc *big.Int, n, k uint64, denomFact *big.Int) {
	if n < k {
		return
	}

	numeratorProduct(this.Numerator, n, k)
	bignum.ExactDiv(this.ComboResult, this.Numerator, denomFact)
	acc.Add(acc, this.ComboResult)
}

// UpdateCombiner multiplies combiner in place by C(n,k), where denomFact is
// the caller's already-finalized value of k!.
func (this *Scratch) UpdateCombiner(combiner *big.Int, n, k uint64, denomFact *big.Int) {
	if n < k {
		combiner.SetInt64(0)
		return
	}

	numeratorProduct(this.Numerator, n, k)
	bignum.ExactDiv(this.ComboResult, this.Numerator, denomFact)
	combiner.Mul(combiner, this.ComboResult)
}
