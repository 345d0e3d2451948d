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
	"bytes"
	"strings"
	"testing"
	"time"

	valli "github.com/vallicodec/valli-go"
)

func TestPrinterPrintlnIsFlushed(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Println("hello")

	if buf.String() != "hello\n" {
		t.Errorf("expected %q, got %q", "hello\n", buf.String())
	}
}

func TestInfoPrinterSilentAtLevelZero(t *testing.T) {
	var buf bytes.Buffer
	ip := newInfoPrinter(0, NewPrinter(&buf))
	ip.ProcessEvent(valli.NewEvent(valli.EVT_COMPRESSION_START, -1, 10, nil, valli.EVT_HASH_NONE, time.Time{}))

	if buf.Len() != 0 {
		t.Errorf("expected no output at level 0, got %q", buf.String())
	}
}

func TestInfoPrinterSymbolLineRequiresLevelTwo(t *testing.T) {
	var buf bytes.Buffer
	ip := newInfoPrinter(1, NewPrinter(&buf))
	ip.ProcessEvent(valli.NewEvent(valli.EVT_SYMBOL_ENCODED, 0x41, 3, nil, valli.EVT_HASH_NONE, time.Time{}))

	if buf.Len() != 0 {
		t.Errorf("expected symbol events to be suppressed below level 2, got %q", buf.String())
	}

	buf.Reset()
	ip = newInfoPrinter(2, NewPrinter(&buf))
	ip.ProcessEvent(valli.NewEvent(valli.EVT_SYMBOL_ENCODED, 0x41, 3, nil, valli.EVT_HASH_NONE, time.Time{}))

	if !strings.Contains(buf.String(), "0x41") {
		t.Errorf("expected the symbol byte in the log line, got %q", buf.String())
	}
}

func TestInfoPrinterCorrelationIDAtLevelThree(t *testing.T) {
	var buf bytes.Buffer
	ip := newInfoPrinter(3, NewPrinter(&buf))
	ip.ProcessEvent(valli.NewEvent(valli.EVT_COMPRESSION_START, -1, 10, nil, valli.EVT_HASH_NONE, time.Time{}))

	if !strings.Contains(buf.String(), ip.correlation) {
		t.Errorf("expected correlation ID %q in output %q", ip.correlation, buf.String())
	}
}
