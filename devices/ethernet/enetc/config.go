// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package enetc

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/platinasystems/enetc/elib/hw"
)

// splitRings divides n rings between the PSI and numVsi virtual station
// interfaces. The PSI gets up to siMaxRings; each VSI gets an equal share
// of the remainder, rounded down.
func splitRings(n, numVsi int) (psi, vsi int) {
	if n < siMaxRings+numVsi {
		psi = n - numVsi
	} else {
		psi = siMaxRings
	}
	if psi < 0 {
		psi = 0
	}
	if numVsi > 0 {
		vsi = (n - psi) / numVsi
	}
	return
}

// splitMsix divides n msi-x vectors between numSi station interfaces.
// The PSI also takes the remainder. Values are vector counts minus one.
func splitMsix(n, numSi int) (psi, vsi uint32) {
	psi = uint32(n/numSi+n%numSi-1) & 0x3f
	vsi = uint32(n/numSi-1) & 0x3f
	return
}

func (p *Port) configure() error {
	p.configureSi()

	pmMaxFrm.Set(p.regs, MaxFrameSize)
	p.Ops.ResetTcMsdu()

	if err := p.setRandomRssKey(); err != nil {
		return err
	}
	p.setIsidKeyRules()

	var v uint32
	for si := 0; si < p.caps.NumSi(); si++ {
		v |= pmrSiEn0 << uint(si)
	}
	pmr.Set(p.regs, v)
	// Enable port tx/rx.
	por.Set(p.regs, 0)
	return nil
}

func (p *Port) configureSi() {
	c := &p.caps
	psiRx, vsiRx := splitRings(c.NumRxBdr, c.NumVsi)
	psiTx, vsiTx := splitRings(c.NumTxBdr, c.NumVsi)
	p.numRxRings = psiRx

	v := hw.Replace(0, psicfgr0NumRxBdr, uint32(psiRx))
	v = hw.Replace(v, psicfgr0NumTxBdr, uint32(psiTx))
	v = hw.Replace(v, psicfgr0Sivc, vlanTypeC|vlanTypeS)
	psicfgr0(0).Set(p.regs, v)

	v = hw.Replace(0, psicfgr0NumRxBdr, uint32(vsiRx))
	v = hw.Replace(v, psicfgr0NumTxBdr, uint32(vsiTx))
	v = hw.Replace(v, psicfgr0Sivc, vlanTypeC|vlanTypeS)
	v |= psicfgr0Vte | psicfgr0Sivie
	for si := 1; si <= c.NumVsi; si++ {
		psicfgr0(si).Set(p.regs, v)
	}

	// Outer vlan tag is used for filtering.
	psivlanfmr.Set(p.regs, psivlanfmrVs)
	p.Ops.SetSiVlanPromisc(vlanPromiscAll)
	psipmmr.Set(p.regs, 0)

	psi, vsi := splitMsix(c.NumMsix, c.NumSi())
	psicfgr2(0).Set(p.regs, hw.Replace(0, psicfgr2NumMsix, psi))
	for si := 1; si <= c.NumVsi; si++ {
		psicfgr2(si).Set(p.regs, hw.Replace(0, psicfgr2NumMsix, vsi))
	}
}

func (p *Port) setRandomRssKey() error {
	var key [rssKeyWords * 4]byte
	if _, err := rand.Read(key[:]); err != nil {
		return fmt.Errorf("rss key: %w", err)
	}
	for i := 0; i < rssKeyWords; i++ {
		prsskr(i).Set(p.regs, binary.LittleEndian.Uint32(key[4*i:]))
	}
	return nil
}

// Key construction rule 0 is source mac + vid, rule 1 destination mac + vid.
func (p *Port) setIsidKeyRules() {
	isidkc0cr0.Set(p.regs, isidkcValid|isidkcSmacp|isidkcOvidp)
	isidkc1cr0.Set(p.regs, isidkcValid|isidkcDmacp|isidkcOvidp)
	pisidcr.Or(p.regs, pisidcrKc0En|pisidcrKc1En)
}

// SetTimeGating enables or disables time gated scheduling on the port.
func (p *Port) SetTimeGating(enable bool) { p.Ops.SetTimeGating(enable) }
func (p *Port) TimeGating() bool          { return p.Ops.GetTimeGating() }

// SetTcTsd enables time specific departure on traffic class tc.
func (p *Port) SetTcTsd(tc int, enable bool) error {
	if tc < 0 || tc >= p.caps.NumTc {
		return fmt.Errorf("tc %d: %w", tc, ErrNotSupported)
	}
	p.Ops.SetTcTsd(tc, enable)
	return nil
}

// SetTcMsdu sets the per traffic class max sdu; nil restores the port
// max frame size on every class.
func (p *Port) SetTcMsdu(maxSdu []uint32) error {
	if maxSdu == nil {
		p.Ops.ResetTcMsdu()
		return nil
	}
	if len(maxSdu) > numTc {
		return fmt.Errorf("%d traffic classes: %w", len(maxSdu), ErrNotSupported)
	}
	for tc, v := range maxSdu {
		if v+vlanEthHlen > MaxFrameSize {
			return fmt.Errorf("tc %d max sdu %d exceeds frame size %d",
				tc, v, MaxFrameSize)
		}
	}
	p.Ops.SetTcMsdu(maxSdu)
	return nil
}
