// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package flate implements a DEFLATE (RFC 1951) decompressor. It decodes a
// raw DEFLATE bitstream into the original bytes; it does not parse zlib or
// gzip container framing, and it does not implement a matching compressor
// (see github.com/coreos/goflate/gzipframe for the former).
package flate

import "github.com/coreos/pkg/capnslog"

var plog = capnslog.NewPackageLogger("github.com/coreos/goflate", "flate")

// growthFactor is how much larger than the source buffer the output is
// expected to be; most real-world DEFLATE streams compress text and binary
// data to well under half their original size, so this is a conservative
// starting guess to avoid repeated reallocation.
const growthFactor = 3

// Inflate decodes the DEFLATE stream src and appends the result to dst,
// returning the extended slice. It does not modify src.
func Inflate(dst, src []byte) ([]byte, error) {
	return InflateWithProgress(dst, src, nil)
}

// InflateBytes decodes the DEFLATE stream src and returns a freshly
// allocated slice holding the result.
func InflateBytes(src []byte) ([]byte, error) {
	return Inflate(make([]byte, 0, len(src)*growthFactor), src)
}

// InflateWithProgress behaves like Inflate, but calls progress after every
// literal run and back-reference copy with the output's current logical
// length. progress may be nil.
func InflateWithProgress(dst, src []byte, progress ProgressFunc) ([]byte, error) {
	inf := &inflater{
		bs:       newBitStream(src),
		out:      dst,
		progress: progress,
	}
	for {
		final, err := inf.decodeBlock()
		if err != nil {
			return inf.out, err
		}
		if inf.progress != nil {
			inf.progress(len(inf.out))
		}
		if final {
			break
		}
	}
	plog.Debugf("inflated %d input bytes to %d output bytes", len(src), len(inf.out)-len(dst))
	return inf.out, nil
}
