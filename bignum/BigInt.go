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

// Package bignum wraps math/big with the small set of arbitrary-precision
// primitives the combinatorial codec needs: exact division (divisor
// guaranteed to divide the dividend), truncating division with remainder,
// factorial, integer k-th root, and little-endian byte import/export.
//
// No third-party arbitrary-precision library appears anywhere in the
// retrieval pack (the reference implementation this spec was distilled
// from binds to GMP via cgo, which is explicitly out of bounds here), so
// this package is built directly on the standard library; see DESIGN.md.
package bignum

import "math/big"

// Factorial returns k!. Factorial(0) == 1.
func Factorial(k uint64) *big.Int {
	result := big.NewInt(1)

	if k < 2 {
		return result
	}

	return result.MulRange(2, int64(k))
}

// ExactDiv sets dst = a / b, where b is known to divide a exactly (the
// product of k consecutive descending integers divided by k!). Using
// Quo here would give the same result as an exact division; Div is used
// instead to match the non-negative, truncating semantics spec.md
// mandates for the general case elsewhere in this package.
func ExactDiv(dst, a, b *big.Int) *big.Int {
	return dst.Div(a, b)
}

// TruncDivMod sets q = a / b (truncated towards zero) and r = a % b,
// returning (q, r). Used by the decoder to extract a symbol's combinatorial
// code from the running compressed integer.
func TruncDivMod(q, r, a, b *big.Int) (*big.Int, *big.Int) {
	q.QuoRem(a, b, r)
	return q, r
}

// IthRoot returns floor(x^(1/k)), the integer k-th root of a non-negative x.
// math/big only provides Sqrt natively, so for k > 2 this runs a Newton
// iteration on big.Int values, per spec.md §9's explicit fallback guidance.
func IthRoot(x *big.Int, k uint64) *big.Int {
	if x.Sign() == 0 {
		return big.NewInt(0)
	}

	if k == 1 {
		return new(big.Int).Set(x)
	}

	if k == 2 {
		return new(big.Int).Sqrt(x)
	}

	kBig := new(big.Int).SetUint64(k)
	kMinus1 := new(big.Int).SetUint64(k - 1)

	// Initial guess: 1 << ceil(bitLen(x)/k) is always >= the true root.
	guess := new(big.Int).Lsh(big.NewInt(1), uint((uint64(x.BitLen())+k-1)/k)+1)

	tmp := new(big.Int)

	for {
		// next = ((k-1)*guess + x/guess^(k-1)) / k
		pow := new(big.Int).Exp(guess, kMinus1, nil)
		tmp.Quo(x, pow)
		tmp.Add(tmp, new(big.Int).Mul(kMinus1, guess))
		next := tmp.Quo(tmp, kBig)

		if next.Cmp(guess) >= 0 {
			break
		}

		guess.Set(next)
	}

	// Newton's method for integer roots converges from above; step down to
	// the exact floor in case the loop above overshot by one.
	for {
		pow := new(big.Int).Exp(guess, kBig, nil)

		if pow.Cmp(x) <= 0 {
			return guess
		}

		guess.Sub(guess, big.NewInt(1))
	}
}

// ExportLE returns the little-endian, unpadded base-256 byte representation
// of x. Zero is represented as a single 0x00 byte.
func ExportLE(x *big.Int) []byte {
	be := x.Bytes() // big-endian, no leading zero byte, empty for zero

	if len(be) == 0 {
		return []byte{0}
	}

	le := make([]byte, len(be))

	for i, b := range be {
		le[len(be)-1-i] = b
	}

	return le
}

// ImportLE parses a little-endian, unpadded base-256 byte string (as
// produced by ExportLE) into a big.Int.
func ImportLE(data []byte) *big.Int {
	be := make([]byte, len(data))

	for i, b := range data {
		be[len(data)-1-i] = b
	}

	return new(big.Int).SetBytes(be)
}

// ByteLen returns ceil(log256(x+1)), the number of bytes ExportLE(x) occupies.
func ByteLen(x *big.Int) int {
	if x.Sign() == 0 {
		return 1
	}

	return (x.BitLen() + 7) / 8
}
