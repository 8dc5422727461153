// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

import (
	"testing"

	. "gopkg.in/check.v1"
)

// Hook gocheck into go test, following the same TestingT(t) convention the
// teacher's other packages use gocheck for.
func TestGocheck(t *testing.T) { TestingT(t) }

type TablesSuite struct{}

var _ = Suite(&TablesSuite{})

// The base/extra tables are compile-time data copied from RFC 1951 §3.2.5.
// Spot-check the boundary entries gocheck-style rather than re-typing all
// 29/30 entries again.
func (s *TablesSuite) TestLengthTableBoundaries(c *C) {
	c.Assert(baseLengths[0], Equals, 3)
	c.Assert(baseLengths[len(baseLengths)-1], Equals, 258)
	c.Assert(extraLengthBits[len(extraLengthBits)-1], Equals, uint(0))
	c.Assert(len(baseLengths), Equals, len(extraLengthBits))
}

func (s *TablesSuite) TestDistanceTableBoundaries(c *C) {
	c.Assert(baseDistances[0], Equals, 1)
	c.Assert(baseDistances[len(baseDistances)-1], Equals, 24577)
	c.Assert(extraDistanceBits[len(extraDistanceBits)-1], Equals, uint(13))
	c.Assert(len(baseDistances), Equals, len(extraDistanceBits))
}

func (s *TablesSuite) TestCodeLengthOrder(c *C) {
	c.Assert(len(codeLengthOrder), Equals, maxCLSymbols)
	c.Assert(codeLengthOrder[0], Equals, 16)
	c.Assert(codeLengthOrder[len(codeLengthOrder)-1], Equals, 15)
}

func (s *TablesSuite) TestFixedTablesBuilt(c *C) {
	c.Assert(fixedLiteralHuffman, NotNil)
	c.Assert(fixedDistanceHuffman, NotNil)
	c.Assert(fixedDistanceHuffman.maxCodeLength, Equals, 5)
}
