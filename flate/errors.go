// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

import "strconv"

// ErrorKind distinguishes the ways a DEFLATE stream can be rejected. Every
// error Inflate returns can be attributed to exactly one of these.
type ErrorKind int

const (
	// TruncatedInput means a bit or byte read ran past the end of the
	// source buffer.
	TruncatedInput ErrorKind = iota
	// InvalidBlockType means a block header's btype field was 3 (reserved).
	InvalidBlockType
	// InvalidStoredBlock means a stored block's len/nlen fields were not
	// one's complements of each other.
	InvalidStoredBlock
	// InvalidTable means a code-length alphabet was over-subscribed, empty,
	// incomplete (other than a single one-bit code), or exceeded the
	// alphabet's maximum symbol count.
	InvalidTable
	// InvalidCode means a decoded Huffman entry had a zero or out-of-range
	// length field, or decoded to a symbol outside its alphabet.
	InvalidCode
	// InvalidRepeat means code-length symbol 16 appeared before any literal
	// length had been emitted.
	InvalidRepeat
	// InvalidDistance means a back-reference's distance reached before the
	// start of the output produced so far.
	InvalidDistance
)

func (k ErrorKind) String() string {
	switch k {
	case TruncatedInput:
		return "truncated input"
	case InvalidBlockType:
		return "invalid block type"
	case InvalidStoredBlock:
		return "invalid stored block length"
	case InvalidTable:
		return "invalid huffman table"
	case InvalidCode:
		return "invalid huffman code"
	case InvalidRepeat:
		return "invalid code-length repeat"
	case InvalidDistance:
		return "invalid back-reference distance"
	default:
		return "unknown flate error"
	}
}

// Error reports a single, terminal defect in a DEFLATE stream. Offset is the
// byte position in the source buffer at which the defect was detected; it is
// not necessarily the byte at which the encoder introduced it.
type Error struct {
	Kind   ErrorKind
	Offset int
}

func (e *Error) Error() string {
	return "flate: " + e.Kind.String() + " at offset " + strconv.Itoa(e.Offset)
}

func newError(kind ErrorKind, offset int) *Error {
	return &Error{Kind: kind, Offset: offset}
}
