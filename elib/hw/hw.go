// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Memory mapped register read/write
package hw

import (
	"fmt"
	"math/bits"
)

// ReadWriter accesses 32 bit registers by byte offset.
// Read-modify-write is left to the caller.
type ReadWriter interface {
	Read32(offset uint) uint32
	Write32(offset uint, v uint32)
}

// Reg is a register byte offset.
type Reg uint

func (r Reg) Get(rw ReadWriter) uint32    { return rw.Read32(uint(r)) }
func (r Reg) Set(rw ReadWriter, v uint32) { rw.Write32(uint(r), v) }

func (r Reg) Or(rw ReadWriter, v uint32) (x uint32) {
	x = r.Get(rw) | v
	r.Set(rw, x)
	return
}

func (r Reg) AndNot(rw ReadWriter, v uint32) (x uint32) {
	x = r.Get(rw) &^ v
	r.Set(rw, x)
	return
}

// Update writes v only when it differs from the current register value.
// Returns true if a write was issued.
func (r Reg) Update(rw ReadWriter, v uint32) bool {
	if r.Get(rw) == v {
		return false
	}
	r.Set(rw, v)
	return true
}

func (r Reg) String() string { return fmt.Sprintf("0x%05x", uint(r)) }

// Mask returns a contiguous bit field mask covering bits [hi:lo].
func Mask(hi, lo uint) uint32 {
	return (^uint32(0) >> (31 - hi)) &^ (1<<lo - 1)
}

// Replace sets the field selected by mask to x, shifted to the mask's
// lowest set bit.
func Replace(v, mask, x uint32) uint32 {
	shift := uint(bits.TrailingZeros32(mask))
	return v&^mask | (x<<shift)&mask
}

// Field extracts the field selected by mask.
func Field(v, mask uint32) uint32 {
	return (v & mask) >> uint(bits.TrailingZeros32(mask))
}

func CheckRegAddr(name string, got, want uint) {
	if got != want {
		panic(fmt.Errorf("%s got 0x%x != want 0x%x", name, got, want))
	}
}
