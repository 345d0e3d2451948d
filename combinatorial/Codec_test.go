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
	"bytes"
	"math/rand"
	"testing"

	valli "github.com/vallicodec/valli-go"
	"github.com/vallicodec/valli-go/freqtable"
)

func roundTrip(t *testing.T, message []byte) {
	t.Helper()

	table, err := freqtable.Build(message)

	if err != nil {
		t.Fatalf("build histogram failed: %v", err)
	}

	if err := table.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	enc := NewEncoder(table)
	data, codeSpace, err := enc.Encode(message)

	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if data.BitLen() > codeSpace.BitLen() {
		t.Errorf("encoded bit length %d exceeds theoretical space bit length %d", data.BitLen(), codeSpace.BitLen())
	}

	dec := NewDecoder(table)
	out, err := dec.Decode(data)

	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if !bytes.Equal(out, message) {
		t.Errorf("round trip mismatch:\n  input:  %q\n  output: %q", message, out)
	}
}

// S1. Two-symbol alternation.
func TestRoundTripAlternation(t *testing.T) {
	roundTrip(t, []byte("ababab"))
}

// S2. Skewed distribution, exercises the decoder's "extracted_combo < k"
// tail-placement branch.
func TestRoundTripSkewed(t *testing.T) {
	roundTrip(t, []byte("aaaaaaab"))
}

// S3. Three symbols with a single zero-count byte ample.
func TestRoundTripSentence(t *testing.T) {
	roundTrip(t, []byte("The quick brown fox"))
}

// S4. Single run of one symbol followed by one different byte.
func TestRoundTripRunPlusSingle(t *testing.T) {
	roundTrip(t, []byte("aaaab"))
}

// S6. Zero-count terminator adjacency: the two least-frequent symbols
// both occur once, forcing an all-1 count run before the terminator.
func TestRoundTripZeroTerminatorAdjacency(t *testing.T) {
	roundTrip(t, []byte("aaaaaaaabc"))
}

func TestRoundTripSingleByteRepeated(t *testing.T) {
	roundTrip(t, []byte("aaaaaaaaaaaaaaaaaaaab"))
}

// Drives the decoder's root-estimate loop through a case where the estimate
// (root + k/2) lands below k itself: 20 occurrences of 'a', one of them
// isolated 21 positions past the rest, yields extracted_combo=C(21,20)=21
// against k=20, whose root-based locIdx estimate comes out to 19 < k. This
// is not corruption: Choose(n,k) is 0 for n<k by construction, and the
// undershoot-correction loop is exactly what recovers the right answer.
func TestRoundTripLocIdxUndershoot(t *testing.T) {
	message := append([]byte{}, bytes.Repeat([]byte("a"), 19)...)
	message = append(message, 'z', 'z', 'a')
	message = append(message, bytes.Repeat([]byte("z"), 21)...)
	roundTrip(t, message)
}

func TestRoundTripRandomMessages(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 20; trial++ {
		alphabetSize := 2 + rng.Intn(20)
		length := 10 + rng.Intn(500)
		message := make([]byte, length)

		for i := range message {
			message[i] = byte(rng.Intn(alphabetSize))
		}

		roundTrip(t, message)
	}
}

func TestEncodeRejectsFullAlphabet(t *testing.T) {
	message := make([]byte, 256)

	for i := range message {
		message[i] = byte(i)
	}

	table, err := freqtable.Build(message)

	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	enc := NewEncoder(table)

	if _, _, err := enc.Encode(message); err == nil {
		t.Errorf("expected encode to reject a full-alphabet message")
	}
}

func TestDecodeRejectsCorruptCode(t *testing.T) {
	message := []byte("aaaaaaab")
	table, err := freqtable.Build(message)

	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	enc := NewEncoder(table)
	data, codeSpace, err := enc.Encode(message)

	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}

	_ = data
	dec := NewDecoder(table)

	if _, err := dec.Decode(codeSpace); err == nil {
		t.Errorf("expected decode to reject an out-of-range integer")
	}
}

type recordingListener struct {
	types []int
}

func (this *recordingListener) ProcessEvent(evt *valli.Event) {
	this.types = append(this.types, evt.Type())
}

func TestEncodeDecodeNotifyListeners(t *testing.T) {
	message := []byte("aaaaaaab")
	table, err := freqtable.Build(message)

	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	encListener := &recordingListener{}
	enc := NewEncoder(table)
	enc.AddListener(encListener)
	data, _, err := enc.Encode(message)

	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}

	if encListener.types[0] != valli.EVT_COMPRESSION_START || encListener.types[len(encListener.types)-1] != valli.EVT_COMPRESSION_END {
		t.Errorf("expected encode events to start/end with COMPRESSION_START/END, got %v", encListener.types)
	}

	stats := enc.Stats()

	if stats.DataBitLength > stats.CodeSpaceBits {
		t.Errorf("data bit length %d exceeds code space bits %d", stats.DataBitLength, stats.CodeSpaceBits)
	}

	decListener := &recordingListener{}
	dec := NewDecoder(table)
	dec.AddListener(decListener)

	if _, err := dec.Decode(data); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}

	if decListener.types[0] != valli.EVT_DECOMPRESSION_START || decListener.types[len(decListener.types)-1] != valli.EVT_DECOMPRESSION_END {
		t.Errorf("expected decode events to start/end with DECOMPRESSION_START/END, got %v", decListener.types)
	}
}
