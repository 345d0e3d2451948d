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

package main

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	valli "github.com/vallicodec/valli-go"
)

// Printer is a buffered, concurrency-safe line writer, used so that
// interleaved goroutines (valli batch) never tear a log line in half.
type Printer struct {
	out  *bufio.Writer
	lock sync.Mutex
}

// NewPrinter wraps w in a Printer.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{out: bufio.NewWriter(w)}
}

// Println writes msg followed by a newline and flushes.
func (this *Printer) Println(msg string) {
	this.lock.Lock()
	defer this.lock.Unlock()

	if n, _ := this.out.WriteString(msg + "\n"); n > 0 {
		_ = this.out.Flush()
	}
}

// infoPrinter adapts the teacher's block-oriented event printer to
// single-message compression/decompression events. It implements
// valli.Listener.
type infoPrinter struct {
	printer     *Printer
	level       uint
	correlation string
}

// newInfoPrinter creates an infoPrinter at the given verbosity level. Each
// invocation gets its own correlation ID, attached to every line once
// level is 3 or higher, so interleaved `valli batch` output stays
// attributable to one file's compress/decompress call.
func newInfoPrinter(level uint, printer *Printer) *infoPrinter {
	return &infoPrinter{printer: printer, level: level, correlation: uuid.NewString()}
}

// ProcessEvent renders evt at this.level:
//
//	1: start/end only
//	2: + one line per distinct symbol group
//	3: + correlation ID prefix on every line
//	5: + the raw Event.String() JSON-ish trailer
func (this *infoPrinter) ProcessEvent(evt *valli.Event) {
	if this.level == 0 {
		return
	}

	var msg string

	switch evt.Type() {
	case valli.EVT_COMPRESSION_START:
		msg = fmt.Sprintf("compressing %d bytes", evt.Size())
	case valli.EVT_DECOMPRESSION_START:
		msg = fmt.Sprintf("decompressing to %d bytes", evt.Size())
	case valli.EVT_FREQ_TABLE_DONE:
		msg = "frequency table ready"
	case valli.EVT_COMPRESSION_END:
		msg = fmt.Sprintf("encoded to %d bits", evt.Size())
	case valli.EVT_DECOMPRESSION_END:
		msg = fmt.Sprintf("decoded %d bytes", evt.Size())
	case valli.EVT_SYMBOL_ENCODED, valli.EVT_SYMBOL_DECODED:
		if this.level < 2 {
			return
		}

		verb := "encoded"

		if evt.Type() == valli.EVT_SYMBOL_DECODED {
			verb = "decoded"
		}

		msg = fmt.Sprintf("symbol 0x%02x %s (%d occurrences)", evt.Symbol(), verb, evt.Size())
	default:
		return
	}

	if this.level >= 3 {
		msg = fmt.Sprintf("[%s] %s", this.correlation, msg)
	}

	this.printer.Println(msg)

	if this.level >= 5 {
		this.printer.Println(evt.String())
	}
}
