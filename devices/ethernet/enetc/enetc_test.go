// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package enetc

import (
	"errors"
	"testing"

	"github.com/platinasystems/enetc/elib/hw"
	"github.com/platinasystems/enetc/ethernet"
	"github.com/platinasystems/enetc/internal/test"
)

var testCaps = Caps{
	NumVsi:        2,
	NumMsix:       32,
	NumRxBdr:      16,
	NumTxBdr:      16,
	NumTc:         8,
	HalfDuplex:    true,
	MacFilterNum:  4,
	VlanFilterNum: 64,
	IpfWordsNum:   128,
}

type ringOp struct {
	add      bool
	index    int
	a        ethernet.Address
	siBitmap uint32
}

// fakeRing records control ring commands. fail, if set, may reject one.
type fakeRing struct {
	ops  []ringOp
	fail func(op ringOp) bool
}

func (r *fakeRing) do(op ringOp) error {
	if r.fail != nil && r.fail(op) {
		name := "delete"
		if op.add {
			name = "add"
		}
		return &RingError{Op: name, Index: op.index, Err: errors.New("injected")}
	}
	r.ops = append(r.ops, op)
	return nil
}

func (r *fakeRing) AppendEntry(index int, a ethernet.Address, siBitmap uint32) error {
	return r.do(ringOp{add: true, index: index, a: a, siBitmap: siBitmap})
}

func (r *fakeRing) DeleteEntry(index int) error {
	return r.do(ringOp{index: index})
}

func (r *fakeRing) count(add bool) (n int) {
	for _, op := range r.ops {
		if op.add == add {
			n++
		}
	}
	return
}

type mergeLog []bool

func (m *mergeLog) LinkStateUpdate(up bool) { *m = append(*m, up) }

func newTestPort(t *testing.T, caps Caps, c Config) (*Port, *hw.Mem, *fakeRing) {
	t.Helper()
	m := NewSim(caps)
	r := &fakeRing{}
	if c.Interface == InterfaceNone {
		c.Interface = InterfaceRgmii
	}
	p := New(m, r, c)
	test.Assert{TB: t}.Nil(p.Init())
	m.ClearLog()
	return p, m, r
}

func addrs(t *testing.T, ss ...string) []ethernet.Address {
	t.Helper()
	as := make([]ethernet.Address, len(ss))
	for i, s := range ss {
		a, err := ethernet.ParseAddress(s)
		if err != nil {
			t.Fatal(err)
		}
		as[i] = a
	}
	return as
}

func hashReg(m *hw.Mem, si int, c AddrClass) uint64 {
	lo, hi := psiumhfr0(si), psiumhfr1(si)
	if c == MC {
		lo, hi = psimmhfr0(si), psimmhfr1(si)
	}
	return uint64(lo.Get(m)) | uint64(hi.Get(m))<<32
}
