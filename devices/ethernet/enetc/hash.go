// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package enetc

import (
	"math/bits"

	"github.com/platinasystems/enetc/ethernet"
)

// hashIndex folds an address into a 6 bit hash filter index. Bit i of
// the index is the parity of address bits i, i+6, ..., i+42 with a[0] as
// the least significant byte.
func hashIndex(a *ethernet.Address) uint {
	var fold uint64
	for i := range a {
		fold |= uint64(a[i]) << uint(8*i)
	}
	var mask uint64
	for i := 0; i < 8; i++ {
		mask |= 1 << uint(i*6)
	}
	var res uint
	for i := uint(0); i < 6; i++ {
		res |= uint(bits.OnesCount64(fold&(mask<<i))&1) << i
	}
	return res
}

// MacFilter is the software view of one station interface address class:
// the addresses that should match and their hash filter value.
type MacFilter struct {
	addrs []ethernet.Address
	hash  uint64
}

func (f *MacFilter) Reset() {
	f.addrs = f.addrs[:0]
	f.hash = 0
}

// Add inserts a; duplicates are ignored.
func (f *MacFilter) Add(a ethernet.Address) {
	for i := range f.addrs {
		if f.addrs[i] == a {
			return
		}
	}
	f.addrs = append(f.addrs, a)
	f.hash |= 1 << hashIndex(&a)
}

func (f *MacFilter) Len() int                     { return len(f.addrs) }
func (f *MacFilter) Hash() uint64                 { return f.hash }
func (f *MacFilter) Addresses() []ethernet.Address { return f.addrs }
