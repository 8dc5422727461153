// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

// copySlop is the minimum extra capacity reserved past a back-reference
// copy's logical end before any wide (8-byte) copy is attempted, so a wide
// copy's final chunk can overrun the logical length without running off the
// end of the underlying array.
const copySlop = 13

// ProgressFunc, if supplied to InflateWithProgress, is called after each
// literal run and back-reference copy with the output buffer's current
// logical length. It exists so progressutil can report decode progress
// without flate depending on progressutil or on time/terminal concerns.
type ProgressFunc func(outputLen int)

// inflater holds all of the state for a single Inflate call. Every field is
// local to that call: no state survives across calls or is shared between
// concurrent ones.
type inflater struct {
	bs       *bitStream
	out      []byte
	progress ProgressFunc
}

// ensureCapacity grows out's underlying array, if needed, so it has room for
// at least total bytes without reallocating again immediately. Doubling
// amortizes the cost of repeated growth.
func (inf *inflater) ensureCapacity(total int) {
	if cap(inf.out) >= total {
		return
	}
	newCap := cap(inf.out) * 2
	if newCap < total {
		newCap = total
	}
	if newCap < 256 {
		newCap = 256
	}
	buf := make([]byte, len(inf.out), newCap)
	copy(buf, inf.out)
	inf.out = buf
}

// decodeBlock reads one block header and its body, dispatching on btype. It
// reports whether this was the final block.
func (inf *inflater) decodeBlock() (final bool, err error) {
	hdr, err := inf.bs.readBits(3)
	if err != nil {
		return false, err
	}
	final = hdr&1 == 1
	btype := (hdr >> 1) & 3

	switch btype {
	case 0:
		err = inf.decodeStoredBlock()
	case 1:
		err = inf.decodeBlockBody(fixedLiteralHuffman, fixedDistanceHuffman)
	case 2:
		var lit, dist *huffmanTable
		lit, dist, err = inf.readDynamicTables()
		if err == nil {
			err = inf.decodeBlockBody(lit, dist)
		}
	default:
		err = newError(InvalidBlockType, inf.bs.bytePos)
	}
	return final, err
}

// decodeStoredBlock copies a raw, uncompressed block to the output.
func (inf *inflater) decodeStoredBlock() error {
	inf.bs.skipRemainingBitsInCurrentByte()
	var hdr [4]byte
	if err := inf.bs.readBytes(hdr[:], 0, 4); err != nil {
		return err
	}
	n := int(hdr[0]) | int(hdr[1])<<8
	nn := int(hdr[2]) | int(hdr[3])<<8
	if uint16(nn) != ^uint16(n) {
		return newError(InvalidStoredBlock, inf.bs.bytePos)
	}
	if n == 0 {
		return nil
	}
	op := len(inf.out)
	inf.ensureCapacity(op + n)
	inf.out = inf.out[:op+n]
	if err := inf.bs.readBytes(inf.out, op, n); err != nil {
		return err
	}
	if inf.progress != nil {
		inf.progress(len(inf.out))
	}
	return nil
}

// decodeBlockBody decodes a fixed or dynamic block's literal/length and
// back-reference stream using lit and dist.
func (inf *inflater) decodeBlockBody(lit, dist *huffmanTable) error {
	for {
		s, err := lit.decodeSymbol(inf.bs)
		if err != nil {
			return err
		}
		switch {
		case s < 256:
			inf.out = append(inf.out, byte(s))
		case s == 256:
			return nil
		case s <= 285:
			if err := inf.decodeBackref(s, dist); err != nil {
				return err
			}
		default:
			return newError(InvalidCode, inf.bs.bytePos)
		}
	}
}

// decodeBackref decodes the (length, distance) pair for length symbol s and
// copies it into the output.
func (inf *inflater) decodeBackref(s int, dist *huffmanTable) error {
	lengthIndex := s - 257
	if lengthIndex >= len(baseLengths) {
		return newError(InvalidCode, inf.bs.bytePos)
	}
	extra, err := inf.bs.readBits(extraLengthBits[lengthIndex])
	if err != nil {
		return err
	}
	length := baseLengths[lengthIndex] + int(extra)

	distSym, err := dist.decodeSymbol(inf.bs)
	if err != nil {
		return err
	}
	if distSym >= len(baseDistances) {
		return newError(InvalidCode, inf.bs.bytePos)
	}
	dextra, err := inf.bs.readBits(extraDistanceBits[distSym])
	if err != nil {
		return err
	}
	distance := baseDistances[distSym] + int(dextra)

	if err := inf.copyBackref(length, distance); err != nil {
		return err
	}
	if inf.progress != nil {
		inf.progress(len(inf.out))
	}
	return nil
}

// copyBackref replicates length bytes from distance bytes before the current
// output position. The source and destination ranges may alias; semantics
// are byte-by-byte forward copy so small distances replicate a pattern.
// Once distance >= 8 the copy proceeds in 8-byte chunks with a byte-wise
// tail: each chunk's source ends at or before its destination starts, so it
// only reads bytes that were already in the output or that an earlier chunk
// of the same call wrote.
func (inf *inflater) copyBackref(length, distance int) error {
	op := len(inf.out)
	if distance > op {
		return newError(InvalidDistance, inf.bs.bytePos)
	}
	inf.ensureCapacity(op + length + copySlop)
	full := inf.out[:cap(inf.out)]
	src := op - distance

	i := 0
	if distance >= 8 {
		for ; i+8 <= length; i += 8 {
			copy(full[op+i:op+i+8], full[src+i:src+i+8])
		}
	}
	for ; i < length; i++ {
		full[op+i] = full[src+i]
	}
	inf.out = full[:op+length]
	return nil
}

// readDynamicTables decodes a dynamic block's code-length meta-table and,
// through it, the literal/length and distance tables.
func (inf *inflater) readDynamicTables() (lit, dist *huffmanTable, err error) {
	hlitBits, err := inf.bs.readBits(5)
	if err != nil {
		return nil, nil, err
	}
	hdistBits, err := inf.bs.readBits(5)
	if err != nil {
		return nil, nil, err
	}
	hclenBits, err := inf.bs.readBits(4)
	if err != nil {
		return nil, nil, err
	}
	hlit := int(hlitBits) + 257
	hdist := int(hdistBits) + 1
	hclen := int(hclenBits) + 4

	var clLengths [maxCLSymbols]int
	for i := 0; i < hclen; i++ {
		v, err := inf.bs.readBits(3)
		if err != nil {
			return nil, nil, err
		}
		clLengths[codeLengthOrder[i]] = int(v)
	}
	clTable, err := buildHuffmanTable(clLengths[:], maxCLSymbols)
	if err != nil {
		return nil, nil, err
	}

	total := hlit + hdist
	unpacked := make([]int, 0, total)
	for len(unpacked) < total {
		sym, err := clTable.decodeSymbol(inf.bs)
		if err != nil {
			return nil, nil, err
		}
		var rep, value int
		switch {
		case sym < 16:
			unpacked = append(unpacked, sym)
			continue
		case sym == 16:
			if len(unpacked) == 0 {
				return nil, nil, newError(InvalidRepeat, inf.bs.bytePos)
			}
			v, err := inf.bs.readBits(2)
			if err != nil {
				return nil, nil, err
			}
			rep = int(v) + 3
			value = unpacked[len(unpacked)-1]
		case sym == 17:
			v, err := inf.bs.readBits(3)
			if err != nil {
				return nil, nil, err
			}
			rep = int(v) + 3
			value = 0
		case sym == 18:
			v, err := inf.bs.readBits(7)
			if err != nil {
				return nil, nil, err
			}
			rep = int(v) + 11
			value = 0
		default:
			return nil, nil, newError(InvalidCode, inf.bs.bytePos)
		}
		if len(unpacked)+rep > total {
			return nil, nil, newError(InvalidTable, inf.bs.bytePos)
		}
		for i := 0; i < rep; i++ {
			unpacked = append(unpacked, value)
		}
	}

	lit, err = buildHuffmanTable(unpacked[:hlit], maxLitSymbols)
	if err != nil {
		return nil, nil, err
	}
	dist, err = buildHuffmanTable(unpacked[hlit:hlit+hdist], maxDistSymbols)
	if err != nil {
		return nil, nil, err
	}
	return lit, dist, nil
}
