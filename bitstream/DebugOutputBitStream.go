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

package bitstream

import (
	"errors"
	"fmt"
	"io"

	valli "github.com/vallicodec/valli-go"
)

// DebugOutputBitStream is an implementation of valli.OutputBitStream used
// for debugging the frequency table's bit-packed header. Every call is
// delegated to an underlying OutputBitStream and the bits written are also
// echoed, one character per bit, to the provided io.Writer.
type DebugOutputBitStream struct {
	delegate  valli.OutputBitStream
	out       io.Writer
	mark      bool
	hexa      bool
	current   byte
	width     int
	lineIndex int
}

// NewDebugOutputBitStream creates a DebugOutputBitStream wrapped around 'obs'.
func NewDebugOutputBitStream(obs valli.OutputBitStream, writer io.Writer) (*DebugOutputBitStream, error) {
	if obs == nil {
		return nil, errors.New("the delegate cannot be null")
	}

	if writer == nil {
		return nil, errors.New("the writer cannot be null")
	}

	this := &DebugOutputBitStream{}
	this.delegate = obs
	this.out = writer
	this.width = 80
	return this, nil
}

// WriteBit writes the least significant bit of the input integer and echoes
// it to the debug writer. Calls WriteBit() on the delegate.
func (this *DebugOutputBitStream) WriteBit(bit int) {
	bit &= 1
	fmt.Fprintf(this.out, "%d", bit)
	this.current <<= 1
	this.current |= byte(bit)
	this.lineIndex++

	if this.mark {
		fmt.Fprintf(this.out, "w")
	}

	if this.width > 7 && (this.lineIndex-1)%this.width == this.width-1 {
		if this.hexa {
			this.printByte(this.current)
		}

		fmt.Fprintf(this.out, "\n")
		this.lineIndex = 0
	} else if this.lineIndex&7 == 0 {
		if this.hexa {
			this.printByte(this.current)
		} else {
			fmt.Fprintf(this.out, " ")
		}
	}

	this.delegate.WriteBit(bit)
}

// WriteBits writes the least significant 'length' bits of 'bits' to the
// bitstream, echoing each bit to the debug writer. Returns the number of
// bits written.
func (this *DebugOutputBitStream) WriteBits(bits uint64, length uint) uint {
	res := this.delegate.WriteBits(bits, length)

	for i := uint(0); i < length; i++ {
		bit := (bits >> i) & 1
		this.current <<= 1
		this.current |= byte(bit)
		this.lineIndex++
		fmt.Fprintf(this.out, "%d", bit)

		if this.mark && i == length-1 {
			fmt.Fprintf(this.out, "w")
		}

		if this.width > 7 && this.lineIndex%this.width == 0 {
			if this.hexa {
				this.printByte(this.current)
			}

			fmt.Fprintf(this.out, "\n")
			this.lineIndex = 0
		} else if this.lineIndex&7 == 0 {
			if this.hexa {
				this.printByte(this.current)
			} else {
				fmt.Fprintf(this.out, " ")
			}
		}
	}

	return res
}

// WriteByte flushes the delegate's partial byte and writes one raw byte,
// echoing it to the debug writer as 8 bits.
func (this *DebugOutputBitStream) WriteByte(b byte) uint {
	res := this.delegate.WriteByte(b)

	for i := 7; i >= 0; i-- {
		bit := (b >> uint(i)) & 1
		fmt.Fprintf(this.out, "%d", bit)
	}

	this.lineIndex = 0
	fmt.Fprintf(this.out, "\n")
	return res
}

func (this *DebugOutputBitStream) printByte(val byte) {
	if val < 10 {
		fmt.Fprintf(this.out, " [00%1d] ", val)
	} else if val < 100 {
		fmt.Fprintf(this.out, " [0%2d] ", val)
	} else {
		fmt.Fprintf(this.out, " [%3d] ", val)
	}
}

// Close makes the bitstream unavailable for further writes.
func (this *DebugOutputBitStream) Close() error {
	return this.delegate.Close()
}

// Written returns the number of bits written.
func (this *DebugOutputBitStream) Written() uint64 {
	return this.delegate.Written()
}

// Bytes returns the packed byte buffer from the delegate.
func (this *DebugOutputBitStream) Bytes() []byte {
	return this.delegate.Bytes()
}

// Mark sets the internal mark state. When true, displays 'w' after each
// bit or bit sequence written to the delegate.
func (this *DebugOutputBitStream) Mark(mark bool) {
	this.mark = mark
}

// ShowByte sets the internal show byte state. When true, displays the
// hexadecimal value after the bits.
func (this *DebugOutputBitStream) ShowByte(show bool) {
	this.hexa = show
}
