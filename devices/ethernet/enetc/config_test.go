// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package enetc

import (
	"testing"

	"github.com/platinasystems/enetc/elib/hw"
	"github.com/platinasystems/enetc/internal/test"
)

func TestGetCaps(t *testing.T) {
	assert := test.Assert{TB: t}
	m := hw.NewMem()
	m.Preset(uint(ecapr1), 2<<24|31<<12|7<<4)
	m.Preset(uint(ecapr2), 18<<16|12)
	m.Preset(uint(pmcapr), pmcaprHd)
	m.Preset(uint(psimafcapr), 4)

	c := GetCaps(m)
	assert.Int(c.NumVsi, 2)
	assert.Int(c.NumSi(), 3)
	assert.Int(c.NumMsix, 32)
	assert.Int(c.NumTc, 8)
	assert.Int(c.NumRxBdr, 18)
	assert.Int(c.NumTxBdr, 12)
	assert.True(c.HalfDuplex)
	assert.Int(c.MacFilterNum, 4)

	assert.True(GetCaps(NewSim(testCaps)) == testCaps)
}

func TestSplitRings(t *testing.T) {
	for _, x := range []struct {
		n, numVsi int
		psi, vsi  int
	}{
		{16, 2, 8, 4},
		{8, 2, 6, 1},
		{4, 2, 2, 1},
		{10, 0, 8, 0},
		{3, 0, 3, 0},
		{1, 2, 0, 0},
	} {
		psi, vsi := splitRings(x.n, x.numVsi)
		if psi != x.psi || vsi != x.vsi {
			t.Errorf("splitRings(%d, %d) = %d, %d; want %d, %d",
				x.n, x.numVsi, psi, vsi, x.psi, x.vsi)
		}
	}
}

func TestSplitMsix(t *testing.T) {
	for _, x := range []struct {
		n, numSi int
		psi, vsi uint32
	}{
		{32, 3, 11, 9},
		{16, 1, 15, 15},
		{3, 3, 0, 0},
		{64, 2, 31, 31},
	} {
		psi, vsi := splitMsix(x.n, x.numSi)
		if psi != x.psi || vsi != x.vsi {
			t.Errorf("splitMsix(%d, %d) = %d, %d; want %d, %d",
				x.n, x.numSi, psi, vsi, x.psi, x.vsi)
		}
	}
}

func TestInit(t *testing.T) {
	assert := test.Assert{TB: t}
	_, m, _ := newTestPort(t, testCaps, Config{})

	v := psicfgr0(0).Get(m)
	assert.Hex(uint64(hw.Field(v, psicfgr0NumRxBdr)), 8)
	assert.Hex(uint64(hw.Field(v, psicfgr0NumTxBdr)), 8)
	assert.Hex(uint64(hw.Field(v, psicfgr0Sivc)), vlanTypeC|vlanTypeS)
	assert.Hex(uint64(v&(psicfgr0Vte|psicfgr0Sivie)), 0)
	for si := 1; si <= 2; si++ {
		v = psicfgr0(si).Get(m)
		assert.Hex(uint64(hw.Field(v, psicfgr0NumRxBdr)), 4)
		assert.Hex(uint64(hw.Field(v, psicfgr0NumTxBdr)), 4)
		assert.Hex(uint64(v&(psicfgr0Vte|psicfgr0Sivie)),
			psicfgr0Vte|psicfgr0Sivie)
		assert.Hex(uint64(psicfgr2(si).Get(m)), 9)
	}
	assert.Hex(uint64(psicfgr2(0).Get(m)), 11)

	assert.Hex(uint64(psivlanfmr.Get(m)), psivlanfmrVs)
	assert.Hex(uint64(psipvmr.Get(m)), vlanPromiscAll)
	assert.Hex(uint64(psipmmr.Get(m)), 0)
	assert.Hex(uint64(pmMaxFrm.Get(m)), MaxFrameSize)
	for tc := 0; tc < numTc; tc++ {
		assert.Hex(uint64(ptctmsdur(tc).Get(m)), MaxFrameSize|sduTypeMpdu<<16)
	}
	assert.Hex(uint64(isidkc0cr0.Get(m)), isidkcValid|isidkcSmacp|isidkcOvidp)
	assert.Hex(uint64(isidkc1cr0.Get(m)), isidkcValid|isidkcDmacp|isidkcOvidp)
	assert.Hex(uint64(pisidcr.Get(m)), pisidcrKc0En|pisidcrKc1En)
	assert.Hex(uint64(pmr.Get(m)), 7<<16)
	assert.Hex(uint64(por.Get(m)), 0)

	var key uint32
	for i := 0; i < rssKeyWords; i++ {
		key |= prsskr(i).Get(m)
	}
	assert.True(key != 0)
}

func TestTcMsdu(t *testing.T) {
	assert := test.Assert{TB: t}
	p, m, _ := newTestPort(t, testCaps, Config{})

	assert.Nil(p.SetTcMsdu([]uint32{1500, 0, 256}))
	assert.Hex(uint64(ptctmsdur(0).Get(m)), 1518|sduTypeMpdu<<16)
	assert.Hex(uint64(ptctmsdur(1).Get(m)), MaxFrameSize|sduTypeMpdu<<16)
	assert.Hex(uint64(ptctmsdur(2).Get(m)), 274|sduTypeMpdu<<16)
	assert.Hex(uint64(ptctmsdur(7).Get(m)), MaxFrameSize|sduTypeMpdu<<16)

	assert.Match(p.SetTcMsdu([]uint32{0, 1999}).Error(), "tc 1 max sdu 1999")
	assert.Error(p.SetTcMsdu(make([]uint32, 9)), ErrNotSupported)

	assert.Nil(p.SetTcMsdu(nil))
	assert.Hex(uint64(ptctmsdur(0).Get(m)), MaxFrameSize|sduTypeMpdu<<16)
}

func TestTimeGating(t *testing.T) {
	assert := test.Assert{TB: t}
	p, m, _ := newTestPort(t, testCaps, Config{})

	assert.False(p.TimeGating())
	p.SetTimeGating(true)
	p.SetTimeGating(true)
	assert.True(p.TimeGating())
	assert.Int(m.Writes(uint(ptgscr)), 1)
	p.SetTimeGating(false)
	assert.False(p.TimeGating())
	assert.Int(m.Writes(uint(ptgscr)), 2)

	assert.Nil(p.SetTcTsd(2, true))
	assert.Hex(uint64(ptctsdr(2).Get(m)), ptctsdrTsde)
	assert.Nil(p.SetTcTsd(2, false))
	assert.Hex(uint64(ptctsdr(2).Get(m)), 0)
	assert.Error(p.SetTcTsd(8, true), ErrNotSupported)
}

func TestLoopback(t *testing.T) {
	assert := test.Assert{TB: t}
	p, m, _ := newTestPort(t, testCaps, Config{})
	pmCmdCfg.Set(m, cmdCfgTxEn|cmdCfgRxEn|1<<11)

	assert.Nil(p.SetLoopback(LoopbackMac))
	v := pmCmdCfg.Get(m)
	assert.Hex(uint64(v&cmdCfgLoopEn), cmdCfgLoopEn)
	assert.Hex(uint64(hw.Field(v, cmdCfgLpbkMode)), lpbkModeMacLevel)
	assert.Hex(uint64(v&(cmdCfgTxEn|cmdCfgRxEn)), cmdCfgTxEn|cmdCfgRxEn)
	assert.True(p.Loopback() == LoopbackMac)

	assert.Nil(p.SetLoopback(LoopbackNone))
	assert.Hex(uint64(pmCmdCfg.Get(m)&cmdCfgLoopEn), 0)
	assert.True(p.Loopback() == LoopbackNone)

	assert.Error(p.SetLoopback(LoopbackPhy), ErrNotSupported)
}
