// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gzipframe parses the RFC 1952 gzip container around a DEFLATE
// stream and verifies its trailer, so callers can hand goflate a .gz file
// instead of a raw DEFLATE stream. It depends on flate but flate depends on
// nothing here: container framing and checksums are not part of flate's
// error surface.
package gzipframe

import (
	"encoding/binary"
	"errors"
	"hash/crc32"

	"github.com/coreos/pkg/capnslog"

	"github.com/coreos/goflate/flate"
)

var plog = capnslog.NewPackageLogger("github.com/coreos/goflate", "gzipframe")

const (
	gzipMagic0 = 0x1f
	gzipMagic1 = 0x8b
	deflateCM  = 8

	flagText    = 1 << 0
	flagHCRC    = 1 << 1
	flagExtra   = 1 << 2
	flagName    = 1 << 3
	flagComment = 1 << 4
)

// ErrHeader means the input did not start with a well-formed RFC 1952
// member header (bad magic, unsupported compression method, or a reserved
// flag bit set).
var ErrHeader = errors.New("gzipframe: invalid gzip header")

// ErrChecksum means the trailing CRC-32 did not match the decoded payload.
var ErrChecksum = errors.New("gzipframe: crc32 mismatch")

// ErrSize means the trailing ISIZE field did not match the decoded
// payload's length modulo 2^32.
var ErrSize = errors.New("gzipframe: size mismatch")

// Header holds the RFC 1952 §2.3 member header fields gzipframe exposes to
// callers, plus the trailer fields verified against the decoded payload.
// flate never sees any of this.
type Header struct {
	Flags   byte
	Name    string
	Comment string
	Extra   []byte
	ModTime uint32
	OS      byte

	// CRC32 and ISIZE are the trailing checksum and uncompressed-size
	// fields (RFC 1952 §2.3.1 and §8), filled in once Inflate has verified
	// them against the decoded payload.
	CRC32 uint32
	ISIZE uint32
}

// Inflate parses a single gzip member from src, decodes its DEFLATE payload,
// and verifies the trailing CRC-32 and ISIZE. It does not support
// multi-member streams or trailing garbage after the member.
func Inflate(src []byte) ([]byte, *Header, error) {
	hdr, body, err := readHeader(src)
	if err != nil {
		return nil, nil, err
	}
	if len(body) < 8 {
		return nil, nil, ErrHeader
	}
	payload, trailer := body[:len(body)-8], body[len(body)-8:]

	out, err := flate.InflateBytes(payload)
	if err != nil {
		return nil, nil, err
	}

	wantCRC := binary.LittleEndian.Uint32(trailer[0:4])
	wantSize := binary.LittleEndian.Uint32(trailer[4:8])
	gotCRC := crc32.ChecksumIEEE(out)
	if gotCRC != wantCRC {
		return nil, nil, ErrChecksum
	}
	if uint32(len(out)) != wantSize {
		return nil, nil, ErrSize
	}
	hdr.CRC32 = gotCRC
	hdr.ISIZE = wantSize
	plog.Debugf("gzip member %q: %d bytes compressed, %d bytes decoded", hdr.Name, len(payload), len(out))
	return out, hdr, nil
}

// readHeader consumes the fixed and optional header fields from src and
// returns the header plus everything after it (DEFLATE payload + trailer).
func readHeader(src []byte) (*Header, []byte, error) {
	if len(src) < 10 {
		return nil, nil, ErrHeader
	}
	if src[0] != gzipMagic0 || src[1] != gzipMagic1 || src[2] != deflateCM {
		return nil, nil, ErrHeader
	}
	flg := src[3]
	if flg&0xe0 != 0 {
		return nil, nil, ErrHeader
	}
	hdr := &Header{
		Flags:   flg,
		ModTime: binary.LittleEndian.Uint32(src[4:8]),
		OS:      src[9],
	}
	rest := src[10:]

	if flg&flagExtra != 0 {
		if len(rest) < 2 {
			return nil, nil, ErrHeader
		}
		n := int(binary.LittleEndian.Uint16(rest[0:2]))
		rest = rest[2:]
		if len(rest) < n {
			return nil, nil, ErrHeader
		}
		hdr.Extra = append([]byte(nil), rest[:n]...)
		rest = rest[n:]
	}
	if flg&flagName != 0 {
		s, tail, err := readCString(rest)
		if err != nil {
			return nil, nil, err
		}
		hdr.Name, rest = s, tail
	}
	if flg&flagComment != 0 {
		s, tail, err := readCString(rest)
		if err != nil {
			return nil, nil, err
		}
		hdr.Comment, rest = s, tail
	}
	if flg&flagHCRC != 0 {
		if len(rest) < 2 {
			return nil, nil, ErrHeader
		}
		rest = rest[2:]
	}
	return hdr, rest, nil
}

func readCString(b []byte) (string, []byte, error) {
	for i, c := range b {
		if c == 0 {
			return string(b[:i]), b[i+1:], nil
		}
	}
	return "", nil, ErrHeader
}
