// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

// bitStream is a byte-addressable view of a DEFLATE bitstream with a bit
// cursor. Bits are delivered LSB first within a byte, per RFC 1951 §3.1.1.
// A bitStream owns the entire compressed buffer up front; it has no support
// for resuming decode across partial or streamed input.
type bitStream struct {
	src     []byte
	bytePos int
	bitPos  uint // 0..7, next bit to consume within src[bytePos]
}

func newBitStream(src []byte) *bitStream {
	return &bitStream{src: src}
}

// availableBits reports how many bits remain between the cursor and the end
// of src.
func (b *bitStream) availableBits() int {
	return (len(b.src)-b.bytePos)*8 - int(b.bitPos)
}

// readBits returns the next n bits (0 <= n <= 16) as an unsigned integer,
// LSB first, and advances the cursor. It fails with TruncatedInput if fewer
// than n bits remain.
func (b *bitStream) readBits(n uint) (uint32, error) {
	if int(n) > b.availableBits() {
		return 0, newError(TruncatedInput, b.bytePos)
	}
	var result uint32
	var filled uint
	bytePos, bitPos := b.bytePos, b.bitPos
	for filled < n {
		avail := 8 - bitPos
		take := n - filled
		if take > avail {
			take = avail
		}
		mask := uint32(1)<<take - 1
		bits := (uint32(b.src[bytePos]) >> bitPos) & mask
		result |= bits << filled
		filled += take
		bitPos += take
		if bitPos == 8 {
			bitPos = 0
			bytePos++
		}
	}
	b.bytePos, b.bitPos = bytePos, bitPos
	return result, nil
}

// skipRemainingBitsInCurrentByte advances the cursor to the start of the
// next byte if it isn't already byte-aligned.
func (b *bitStream) skipRemainingBitsInCurrentByte() {
	if b.bitPos != 0 {
		b.bitPos = 0
		b.bytePos++
	}
}

// readBytes byte-aligns the cursor, then copies len bytes from the stream
// into dst[offset:offset+len]. It fails with TruncatedInput if short.
func (b *bitStream) readBytes(dst []byte, offset, length int) error {
	b.skipRemainingBitsInCurrentByte()
	if b.bytePos+length > len(b.src) {
		return newError(TruncatedInput, b.bytePos)
	}
	copy(dst[offset:offset+length], b.src[b.bytePos:b.bytePos+length])
	b.bytePos += length
	return nil
}

// peek24 gathers up to three bytes starting at bytePos into a 24-bit
// register, shifted so bit 0 of the result is the next bit the cursor would
// consume. Bytes past the end of src read as zero; huffmanTable.decodeSymbol
// is responsible for checking that enough real bits backed the code it
// matched.
func (b *bitStream) peek24() uint32 {
	var v uint32
	for i := 0; i < 3; i++ {
		if p := b.bytePos + i; p < len(b.src) {
			v |= uint32(b.src[p]) << uint(8*i)
		}
	}
	return v >> b.bitPos
}

// advance moves the cursor forward by n bits without reading them; used once
// decodeSymbol has determined how many bits a matched code consumed.
func (b *bitStream) advance(n uint) {
	total := b.bitPos + n
	b.bytePos += int(total / 8)
	b.bitPos = total % 8
}
