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

package bignum

import (
	"math/big"
	"testing"
)

func TestFactorial(t *testing.T) {
	cases := []struct {
		k        uint64
		expected int64
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 6},
		{5, 120},
		{10, 3628800},
	}

	for _, c := range cases {
		got := Factorial(c.k)

		if got.Cmp(big.NewInt(c.expected)) != 0 {
			t.Errorf("Factorial(%d): expected %d, got %v", c.k, c.expected, got)
		}
	}
}

func TestExactDiv(t *testing.T) {
	a := big.NewInt(120)
	b := big.NewInt(6)
	got := ExactDiv(new(big.Int), a, b)

	if got.Cmp(big.NewInt(20)) != 0 {
		t.Errorf("ExactDiv(120,6): expected 20, got %v", got)
	}
}

func TestTruncDivMod(t *testing.T) {
	cases := []struct {
		a, b, q, r int64
	}{
		{17, 5, 3, 2},
		{100, 7, 14, 2},
		{0, 7, 0, 0},
	}

	for _, c := range cases {
		q, r := TruncDivMod(new(big.Int), new(big.Int), big.NewInt(c.a), big.NewInt(c.b))

		if q.Cmp(big.NewInt(c.q)) != 0 || r.Cmp(big.NewInt(c.r)) != 0 {
			t.Errorf("TruncDivMod(%d,%d): expected (%d,%d), got (%v,%v)", c.a, c.b, c.q, c.r, q, r)
		}
	}
}

func TestIthRootPerfectPowers(t *testing.T) {
	cases := []struct {
		x        int64
		k        uint64
		expected int64
	}{
		{0, 3, 0},
		{1, 5, 1},
		{8, 3, 2},
		{27, 3, 3},
		{1000000, 3, 100},
		{1024, 10, 2},
		{81, 4, 3},
	}

	for _, c := range cases {
		got := IthRoot(big.NewInt(c.x), c.k)

		if got.Cmp(big.NewInt(c.expected)) != 0 {
			t.Errorf("IthRoot(%d,%d): expected %d, got %v", c.x, c.k, c.expected, got)
		}
	}
}

func TestIthRootFloors(t *testing.T) {
	cases := []struct {
		x        int64
		k        uint64
		expected int64
	}{
		{10, 3, 2},  // 2^3=8 <= 10 < 27=3^3
		{26, 3, 2},  // floor(26^(1/3)) == 2
		{28, 3, 3},  // floor(28^(1/3)) == 3
		{624, 4, 4}, // 4^4=256, 5^4=625 > 624
	}

	for _, c := range cases {
		got := IthRoot(big.NewInt(c.x), c.k)

		if got.Cmp(big.NewInt(c.expected)) != 0 {
			t.Errorf("IthRoot(%d,%d): expected %d, got %v", c.x, c.k, c.expected, got)
		}
	}
}

func TestIthRootLargeValue(t *testing.T) {
	// 2^256, 8th root is 2^32
	x := new(big.Int).Lsh(big.NewInt(1), 256)
	expected := new(big.Int).Lsh(big.NewInt(1), 32)
	got := IthRoot(x, 8)

	if got.Cmp(expected) != 0 {
		t.Errorf("IthRoot(2^256,8): expected %v, got %v", expected, got)
	}
}

func TestExportImportLERoundTrip(t *testing.T) {
	values := []int64{0, 1, 255, 256, 65535, 65536, 1 << 40}

	for _, v := range values {
		x := big.NewInt(v)
		data := ExportLE(x)
		back := ImportLE(data)

		if back.Cmp(x) != 0 {
			t.Errorf("round trip failed for %d: got %v", v, back)
		}
	}
}

func TestExportLEZero(t *testing.T) {
	data := ExportLE(big.NewInt(0))

	if len(data) != 1 || data[0] != 0 {
		t.Errorf("ExportLE(0): expected [0], got %v", data)
	}
}

func TestExportLELittleEndian(t *testing.T) {
	// 0x0102 == 258, little endian bytes are [0x02, 0x01]
	data := ExportLE(big.NewInt(258))

	if len(data) != 2 || data[0] != 0x02 || data[1] != 0x01 {
		t.Errorf("ExportLE(258): expected [2 1], got %v", data)
	}
}

func TestByteLen(t *testing.T) {
	cases := []struct {
		x        int64
		expected int
	}{
		{0, 1},
		{1, 1},
		{255, 1},
		{256, 2},
		{65535, 2},
		{65536, 3},
	}

	for _, c := range cases {
		got := ByteLen(big.NewInt(c.x))

		if got != c.expected {
			t.Errorf("ByteLen(%d): expected %d, got %d", c.x, c.expected, got)
		}
	}
}
