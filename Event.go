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

package valli

import (
	"fmt"
	"time"
)

const (
	EVT_COMPRESSION_START   = 0 // Compression starts
	EVT_DECOMPRESSION_START = 1 // Decompression starts
	EVT_FREQ_TABLE_DONE     = 2 // Frequency table built / deserialized
	EVT_SYMBOL_ENCODED      = 3 // One distinct symbol's locations were folded into the accumulator
	EVT_SYMBOL_DECODED      = 4 // One distinct symbol's locations were placed in the output buffer
	EVT_COMPRESSION_END     = 5 // Compression ends
	EVT_DECOMPRESSION_END   = 6 // Decompression ends

	EVT_HASH_NONE    = 0
	EVT_HASH_64BITS  = 64
	EVT_HASH_256BITS = 256
)

// Event a compression/decompression lifecycle event.
type Event struct {
	eventType int
	symbol    int
	size      int64
	hash      []byte
	hashType  int
	eventTime time.Time
	msg       string
}

// NewEventFromString creates an Event that simply wraps a pre-formatted message.
func NewEventFromString(evtType int, msg string, evtTime time.Time) *Event {
	if evtTime.IsZero() {
		evtTime = time.Now()
	}

	return &Event{eventType: evtType, symbol: -1, msg: msg, eventTime: evtTime}
}

// NewEvent creates an Event carrying a symbol id and a size, with an
// optional digest. Returns nil if hashType is not one of the EVT_HASH_*
// constants.
func NewEvent(evtType, symbol int, size int64, hash []byte, hashType int, evtTime time.Time) *Event {
	if evtTime.IsZero() {
		evtTime = time.Now()
	}

	if hashType != EVT_HASH_NONE && hashType != EVT_HASH_64BITS && hashType != EVT_HASH_256BITS {
		return nil
	}

	return &Event{eventType: evtType, symbol: symbol, size: size, hash: hash,
		hashType: hashType, eventTime: evtTime}
}

// Type returns the event type.
func (this *Event) Type() int {
	return this.eventType
}

// Symbol returns the byte value this event concerns, or -1 if not applicable.
func (this *Event) Symbol() int {
	return this.symbol
}

// Time returns the time the event was recorded.
func (this *Event) Time() time.Time {
	return this.eventTime
}

// Size returns the size info attached to this event.
func (this *Event) Size() int64 {
	return this.size
}

// Hash returns the digest attached to this event, if any.
func (this *Event) Hash() []byte {
	return this.hash
}

// HashType returns EVT_HASH_NONE, EVT_HASH_64BITS or EVT_HASH_256BITS.
func (this *Event) HashType() int {
	return this.hashType
}

// String returns a human readable representation of this event.
func (this *Event) String() string {
	if len(this.msg) > 0 {
		return this.msg
	}

	t := ""

	switch this.eventType {
	case EVT_COMPRESSION_START:
		t = "COMPRESSION_START"
	case EVT_DECOMPRESSION_START:
		t = "DECOMPRESSION_START"
	case EVT_FREQ_TABLE_DONE:
		t = "FREQ_TABLE_DONE"
	case EVT_SYMBOL_ENCODED:
		t = "SYMBOL_ENCODED"
	case EVT_SYMBOL_DECODED:
		t = "SYMBOL_DECODED"
	case EVT_COMPRESSION_END:
		t = "COMPRESSION_END"
	case EVT_DECOMPRESSION_END:
		t = "DECOMPRESSION_END"
	}

	sym := ""

	if this.symbol >= 0 {
		sym = fmt.Sprintf(", \"symbol\":%d", this.symbol)
	}

	hash := ""

	if this.hashType != EVT_HASH_NONE {
		hash = fmt.Sprintf(", \"hash\":\"%x\"", this.hash)
	}

	return fmt.Sprintf("{ \"type\":\"%s\"%s, \"size\":%d, \"time\":%d%s }", t, sym, this.size,
		this.eventTime.UnixNano()/1000000, hash)
}

// Listener is implemented by event processors.
type Listener interface {
	// ProcessEvent is called whenever a Listener receives an event.
	ProcessEvent(evt *Event)
}
