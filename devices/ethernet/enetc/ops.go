// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package enetc

import (
	"encoding/binary"

	"github.com/platinasystems/enetc/elib/hw"
	"github.com/platinasystems/enetc/ethernet"
)

// AddrClass selects the unicast or multicast filter of a station interface.
type AddrClass int

const (
	UC AddrClass = iota
	MC
	nAddrClass
)

func (c AddrClass) String() string {
	if c == MC {
		return "mc"
	}
	return "uc"
}

// Ops hides the register layout of one hardware generation from the
// filter and link logic.
type Ops interface {
	SetSiPrimaryMac(si int, a ethernet.Address)
	GetSiPrimaryMac(si int) ethernet.Address
	SetSiVlanPromisc(siMap uint32)
	SetSiMacPromisc(si int, c AddrClass, enable bool)
	SetSiMacFilter(si int, c AddrClass, hash uint64)
	SetSiAntiSpoofing(si int, enable bool)
	SetLoopback(enable bool)
	SetTcTsd(tc int, enable bool)
	SetTcMsdu(maxSdu []uint32)
	ResetTcMsdu()
	GetTimeGating() bool
	SetTimeGating(enable bool)
}

type enetc4 struct {
	r hw.ReadWriter
}

// NewEnetc4Ops returns the register operations of an ENETC v4 port.
func NewEnetc4Ops(r hw.ReadWriter) Ops { return &enetc4{r: r} }

func (o *enetc4) SetSiPrimaryMac(si int, a ethernet.Address) {
	upper := binary.LittleEndian.Uint32(a[0:4])
	lower := uint32(binary.LittleEndian.Uint16(a[4:6]))
	if si != 0 {
		psipmar0(si).Set(o.r, upper)
		psipmar1(si).Set(o.r, lower)
	} else {
		pmar0.Set(o.r, upper)
		pmar1.Set(o.r, lower)
	}
}

func (o *enetc4) GetSiPrimaryMac(si int) (a ethernet.Address) {
	var upper, lower uint32
	if si != 0 {
		upper = psipmar0(si).Get(o.r)
		lower = psipmar1(si).Get(o.r)
	} else {
		upper = pmar0.Get(o.r)
		lower = pmar1.Get(o.r)
	}
	binary.LittleEndian.PutUint32(a[0:4], upper)
	binary.LittleEndian.PutUint16(a[4:6], uint16(lower))
	return
}

func (o *enetc4) SetSiVlanPromisc(siMap uint32) {
	v := psipvmr.Get(o.r)
	v = hw.Replace(v, vlanPromiscAll, siMap)
	psipvmr.Set(o.r, v)
}

func (o *enetc4) SetSiMacPromisc(si int, c AddrClass, enable bool) {
	bit := uint32(1) << uint(si)
	if c == MC {
		bit <<= 16
	}
	v := psipmmr.Get(o.r)
	if enable {
		v |= bit
	} else {
		v &^= bit
	}
	psipmmr.Set(o.r, v)
}

func (o *enetc4) SetSiMacFilter(si int, c AddrClass, hash uint64) {
	if c == UC {
		psiumhfr0(si).Set(o.r, uint32(hash))
		psiumhfr1(si).Set(o.r, uint32(hash>>32))
	} else {
		psimmhfr0(si).Set(o.r, uint32(hash))
		psimmhfr1(si).Set(o.r, uint32(hash>>32))
	}
}

func (o *enetc4) SetSiAntiSpoofing(si int, enable bool) {
	v := psicfgr0(si).Get(o.r) &^ psicfgr0AntiSpoofing
	if enable {
		v |= psicfgr0AntiSpoofing
	}
	psicfgr0(si).Set(o.r, v)
}

func (o *enetc4) SetLoopback(enable bool) {
	v := pmCmdCfg.Get(o.r)
	if enable {
		v |= cmdCfgLoopEn
	} else {
		v &^= cmdCfgLoopEn
	}
	// MAC level loopback is the only mode used.
	v = hw.Replace(v, cmdCfgLpbkMode, lpbkModeMacLevel)
	pmCmdCfg.Set(o.r, v)
}

func (o *enetc4) SetTcTsd(tc int, enable bool) {
	var v uint32
	if enable {
		v = ptctsdrTsde
	}
	ptctsdr(tc).Set(o.r, v)
}

// SetTcMsdu sets the max sdu of each traffic class; zero selects the
// port max frame size.
func (o *enetc4) SetTcMsdu(maxSdu []uint32) {
	for tc := 0; tc < numTc; tc++ {
		v := uint32(MaxFrameSize)
		if tc < len(maxSdu) && maxSdu[tc] != 0 {
			v = maxSdu[tc] + vlanEthHlen
		}
		v = hw.Replace(v, ptctmsdurSduType, sduTypeMpdu)
		ptctmsdur(tc).Set(o.r, v)
	}
}

func (o *enetc4) ResetTcMsdu() {
	v := hw.Replace(MaxFrameSize, ptctmsdurSduType, sduTypeMpdu)
	for tc := 0; tc < numTc; tc++ {
		ptctmsdur(tc).Set(o.r, v)
	}
}

func (o *enetc4) GetTimeGating() bool {
	return ptgscr.Get(o.r)&ptgscrTge != 0
}

func (o *enetc4) SetTimeGating(enable bool) {
	v := ptgscr.Get(o.r) &^ ptgscrTge
	if enable {
		v |= ptgscrTge
	}
	ptgscr.Update(o.r, v)
}
