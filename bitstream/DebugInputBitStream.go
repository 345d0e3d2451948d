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

// DebugInputBitStream is an implementation of valli.InputBitStream used for
// debugging the frequency table's bit-packed header. Every call is
// delegated to an underlying InputBitStream and the bits read are also
// echoed, one character per bit, to the provided io.Writer.
type DebugInputBitStream struct {
	delegate  valli.InputBitStream
	out       io.Writer
	mark      bool
	hexa      bool
	current   byte
	width     int
	lineIndex int
}

// NewDebugInputBitStream creates a DebugInputBitStream wrapped around 'ibs'.
func NewDebugInputBitStream(ibs valli.InputBitStream, writer io.Writer) (*DebugInputBitStream, error) {
	if ibs == nil {
		return nil, errors.New("the delegate cannot be null")
	}

	if writer == nil {
		return nil, errors.New("the writer cannot be null")
	}

	this := new(DebugInputBitStream)
	this.delegate = ibs
	this.out = writer
	this.width = 80
	return this, nil
}

// ReadBit returns the next bit in the bitstream, echoing it to the debug
// writer. Calls ReadBit() on the delegate.
func (this *DebugInputBitStream) ReadBit() int {
	res := this.delegate.ReadBit()

	this.current <<= 1
	this.current |= byte(res)
	this.lineIndex++
	fmt.Fprintf(this.out, "%d", res&1)

	if this.mark {
		fmt.Fprintf(this.out, "r")
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

	return res
}

// ReadBits reads 'length' (in [1..63]) bits from the bitstream, echoing
// each bit to the debug writer.
func (this *DebugInputBitStream) ReadBits(length uint) uint64 {
	res := this.delegate.ReadBits(length)

	for i := uint(0); i < length; i++ {
		bit := (res >> i) & 1
		this.current <<= 1
		this.current |= byte(bit)
		this.lineIndex++
		fmt.Fprintf(this.out, "%d", bit)

		if this.mark && i == length-1 {
			fmt.Fprintf(this.out, "r")
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

// ReadByte discards the delegate's partial byte and reads one raw byte,
// echoing it to the debug writer as 8 bits.
func (this *DebugInputBitStream) ReadByte() byte {
	b := this.delegate.ReadByte()

	for i := 7; i >= 0; i-- {
		bit := (b >> uint(i)) & 1
		fmt.Fprintf(this.out, "%d", bit)
	}

	this.lineIndex = 0
	fmt.Fprintf(this.out, "\n")
	return b
}

// HasMoreToRead returns false when the bitstream is closed or EOS has
// been reached. Calls HasMoreToRead() on the delegate.
func (this *DebugInputBitStream) HasMoreToRead() (bool, error) {
	return this.delegate.HasMoreToRead()
}

func (this *DebugInputBitStream) printByte(val byte) {
	if val < 10 {
		fmt.Fprintf(this.out, " [00%1d] ", val)
	} else if val < 100 {
		fmt.Fprintf(this.out, " [0%2d] ", val)
	} else {
		fmt.Fprintf(this.out, " [%3d] ", val)
	}
}

// Close makes the bitstream unavailable for further reads.
func (this *DebugInputBitStream) Close() error {
	return this.delegate.Close()
}

// Read returns the number of bits read. Calls Read() on the delegate.
func (this *DebugInputBitStream) Read() uint64 {
	return this.delegate.Read()
}

// Mark sets the internal mark state. When true, displays 'r' after each
// bit or bit sequence read from the delegate.
func (this *DebugInputBitStream) Mark(mark bool) {
	this.mark = mark
}

// ShowByte sets the internal show byte state. When true, displays the
// hexadecimal value after the bits.
func (this *DebugInputBitStream) ShowByte(show bool) {
	this.hexa = show
}
