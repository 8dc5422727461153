// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

// Constants from RFC 1951. These are the only process-wide state in this
// package: the fixed-code length tables and the length/distance base and
// extra-bits tables, all immutable compile-time data.

const (
	maxLitSymbols  = 286 // HLIT bound: literal/length symbols a dynamic block may define
	litAlphabetLen = 288 // full RFC 1951 fixed literal/length alphabet, incl. 2 unused codes
	maxDistSymbols = 30  // distance alphabet
	maxCLSymbols   = 19  // code-length meta-alphabet
)

// codeLengthOrder is the order in which code-length-alphabet code lengths
// are transmitted in a dynamic block header, RFC 1951 §3.2.7.
var codeLengthOrder = [maxCLSymbols]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// baseLengths and extraLengthBits decode the length half of a (length,
// distance) pair from length symbols 257..285.
var baseLengths = [29]int{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31, 35, 43, 51,
	59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var extraLengthBits = [29]uint{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4,
	4, 5, 5, 5, 5, 0,
}

// baseDistances and extraDistanceBits decode the distance half of a
// (length, distance) pair from distance symbols 0..29.
var baseDistances = [30]int{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193, 257, 385,
	513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

var extraDistanceBits = [30]uint{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10,
	10, 11, 11, 12, 12, 13, 13,
}

// fixedLiteralHuffman and fixedDistanceHuffman are the RFC 1951 §3.2.6
// fixed-code tables, built once at package init from their code lengths
// rather than hand-encoded, so the tables are provable correct from the
// same builder used for dynamic blocks.
var fixedLiteralHuffman *huffmanTable
var fixedDistanceHuffman *huffmanTable

func init() {
	lengths := make([]int, 288)
	for i := 0; i < 144; i++ {
		lengths[i] = 8
	}
	for i := 144; i < 256; i++ {
		lengths[i] = 9
	}
	for i := 256; i < 280; i++ {
		lengths[i] = 7
	}
	for i := 280; i < 288; i++ {
		lengths[i] = 8
	}
	t, err := buildHuffmanTable(lengths, litAlphabetLen)
	if err != nil {
		panic("flate: fixed literal table is malformed: " + err.Error())
	}
	fixedLiteralHuffman = t

	// All 32 five-bit distance codes take part in the fixed code (RFC 1951
	// §3.2.6), which makes it complete; symbols 30 and 31 decode but are
	// rejected by decodeBackref as out of range.
	dlengths := make([]int, 32)
	for i := range dlengths {
		dlengths[i] = 5
	}
	dt, err := buildHuffmanTable(dlengths, len(dlengths))
	if err != nil {
		panic("flate: fixed distance table is malformed: " + err.Error())
	}
	fixedDistanceHuffman = dt
}
