// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

import (
	"bytes"
	"testing"
)

func TestCopyBackrefPatternReplication(t *testing.T) {
	// distance=1, length=N replicates the previous byte N times.
	inf := &inflater{out: []byte("x")}
	if err := inf.copyBackref(5, 1); err != nil {
		t.Fatalf("copyBackref: %v", err)
	}
	if !bytes.Equal(inf.out, []byte("xxxxxx")) {
		t.Errorf("got %q, want %q", inf.out, "xxxxxx")
	}
}

func TestCopyBackrefWideCopyPath(t *testing.T) {
	// distance=8 exercises the 8-byte wide-copy branch, including a chunk
	// that must read bytes this same call already wrote.
	inf := &inflater{out: []byte("01234567")}
	if err := inf.copyBackref(20, 8); err != nil {
		t.Fatalf("copyBackref: %v", err)
	}
	want := "0123456701234567012345670123"
	if !bytes.Equal(inf.out, []byte(want)) {
		t.Errorf("got %q, want %q", inf.out, want)
	}
}

func TestCopyBackrefDistanceAtOutputLength(t *testing.T) {
	// totalDist == op (reading from offset 0) is explicitly permitted, not
	// rejected.
	inf := &inflater{out: []byte("abc")}
	if err := inf.copyBackref(2, 3); err != nil {
		t.Fatalf("copyBackref: %v", err)
	}
	if !bytes.Equal(inf.out, []byte("abcab")) {
		t.Errorf("got %q, want %q", inf.out, "abcab")
	}
}

func TestCopyBackrefDistanceBeyondOutput(t *testing.T) {
	inf := &inflater{bs: newBitStream(nil), out: []byte("abc")}
	err := inf.copyBackref(2, 4)
	if err == nil {
		t.Fatal("expected InvalidDistance, got nil")
	}
	if ferr, ok := err.(*Error); !ok || ferr.Kind != InvalidDistance {
		t.Errorf("expected InvalidDistance, got %v", err)
	}
}

func TestDecodeBlockInvalidType(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(1, 1) // bfinal
	w.writeBits(3, 2) // btype=3, reserved
	w.bytes = append(w.bytes, 0, 0, 0)
	inf := &inflater{bs: newBitStream(w.bytes)}
	_, err := inf.decodeBlock()
	if ferr, ok := err.(*Error); !ok || ferr.Kind != InvalidBlockType {
		t.Errorf("expected InvalidBlockType, got %v", err)
	}
}

func TestDecodeStoredBlockBadLength(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(1, 1) // bfinal
	w.writeBits(0, 2) // btype=0, stored
	w.bytes = append(w.bytes, 0, 0, 0, 0, 0) // len=0, nlen=0 -- not one's complement
	inf := &inflater{bs: newBitStream(w.bytes)}
	_, err := inf.decodeBlock()
	if ferr, ok := err.(*Error); !ok || ferr.Kind != InvalidStoredBlock {
		t.Errorf("expected InvalidStoredBlock, got %v", err)
	}
}

func TestDecodeStoredBlockEmpty(t *testing.T) {
	// empty stored block (len=0) produces no output.
	w := &bitWriter{}
	w.writeBits(1, 1) // bfinal
	w.writeBits(0, 2) // btype=0
	w.bytes = append(w.bytes, 0x00, 0x00, 0xff, 0xff)
	inf := &inflater{bs: newBitStream(w.bytes)}
	final, err := inf.decodeBlock()
	if err != nil {
		t.Fatalf("decodeBlock: %v", err)
	}
	if !final {
		t.Error("expected final=true")
	}
	if len(inf.out) != 0 {
		t.Errorf("got %d output bytes, want 0", len(inf.out))
	}
}
