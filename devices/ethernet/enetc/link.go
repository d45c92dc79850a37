// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package enetc

import (
	"fmt"

	"github.com/platinasystems/enetc/elib/hw"
)

// Pause frame settings used while tx pause is enabled.
const (
	pauseQuanta  = 0xffff
	pauseRefresh = pauseQuanta / 2

	// Rx fifo thresholds in multiples of the max frame size.
	pauseOnFrames  = 3
	pauseOffFrames = 1
)

// MacConfig selects the MAC interface mode. In-band autonegotiation is
// only meaningful for RGMII.
func (p *Port) MacConfig(inband bool, iface Interface) error {
	mode, ok := iface.ifMode()
	if !ok {
		return fmt.Errorf("%s: %w", iface, ErrUnsupportedInterface)
	}
	v := pmIfMode.Get(p.regs)
	v = hw.Replace(v, ifModeIfMode, mode)
	v &^= ifModeEna
	if inband && iface.IsRgmii() {
		v |= ifModeEna
	}
	pmIfMode.Set(p.regs, v)
	p.Interface, p.Inband = iface, inband
	return nil
}

// LinkUp reprograms the MAC for a new link and enables it. Registers
// that already hold the derived values are not written, so repeating a
// link up with the same parameters only rewrites the enable bits.
func (p *Port) LinkUp(l Link) error {
	if l.Interface == InterfaceNone {
		l.Interface = p.Interface
	}
	if _, ok := l.Interface.ifMode(); !ok {
		return fmt.Errorf("%s: %w", l.Interface, ErrUnsupportedInterface)
	}
	if l.Speed != p.speed {
		p.setPortSpeed(l.Speed)
	}
	// In-band RGMII learns speed and duplex itself; RMII never does.
	if !l.Inband && l.Interface.IsRgmii() {
		p.setRgmiiMac(l.Speed, l.Duplex)
	}
	if l.Interface == InterfaceRmii {
		p.setRmiiMac(l.Speed, l.Duplex)
	}

	tx, rx, hdFc := l.pause()
	p.setHdFlowControl(hdFc)
	p.setTxPause(tx)
	p.setRxPause(rx)
	p.enableMac(true)
	p.up = true

	if p.MacMerge != nil {
		p.MacMerge.LinkStateUpdate(true)
	}
	return nil
}

// LinkDown disables the MAC. Speed, duplex and pause settings are left
// for the next LinkUp to compare against.
func (p *Port) LinkDown() error {
	if p.MacMerge != nil {
		p.MacMerge.LinkStateUpdate(false)
	}
	p.enableMac(false)
	p.up = false
	return nil
}

// pause returns effective tx and rx pause and half duplex flow control.
// Pause frames are full duplex only; preemption excludes pause generation.
func (l *Link) pause() (tx, rx, hdFc bool) {
	if l.Duplex == DuplexFull {
		tx = l.TxPause && !l.Preemption
		rx = l.RxPause
		return
	}
	hdFc = l.TxPause || l.RxPause
	return
}

func (p *Port) setPortSpeed(s Speed) {
	enc := s
	if !s.supported() {
		enc = Speed10
	}
	v := pcr.Get(p.regs)
	v = hw.Replace(v, pcrPspeed, uint32(enc/10-1))
	pcr.Set(p.regs, v)
	p.speed = s
}

func (p *Port) setRgmiiMac(s Speed, d Duplex) {
	old := pmIfMode.Get(p.regs)
	v := old &^ (ifModeEna | ifModeM10 | ifModeRevMii)
	switch s {
	case Speed1000:
		v = hw.Replace(v, ifModeSsp, ssp1G)
	case Speed100:
		v = hw.Replace(v, ifModeSsp, ssp100M)
	case Speed10:
		v = hw.Replace(v, ifModeSsp, ssp10M)
	}
	if d == DuplexFull {
		v &^= ifModeHd
	} else {
		v |= ifModeHd
	}
	pmIfMode.Update(p.regs, v)
}

func (p *Port) setRmiiMac(s Speed, d Duplex) {
	old := pmIfMode.Get(p.regs)
	v := old &^ (ifModeEna | ifModeSsp)
	if s == Speed10 {
		v |= ifModeM10
	} else {
		v &^= ifModeM10
	}
	if d == DuplexFull {
		v &^= ifModeHd
	} else {
		v |= ifModeHd
	}
	pmIfMode.Update(p.regs, v)
}

func (p *Port) setHdFlowControl(enable bool) {
	if !p.caps.HalfDuplex {
		return
	}
	v := pmCmdCfg.Get(p.regs)
	if enable {
		v |= cmdCfgHdFcEn
	} else {
		v &^= cmdCfgHdFcEn
	}
	pmCmdCfg.Update(p.regs, v)
}

func (p *Port) setTxPause(enable bool) {
	for i := 0; i < p.numRxRings; i++ {
		v := rbmr(i).Get(p.regs)
		if enable {
			v |= rbmrCm
		} else {
			v &^= rbmrCm
		}
		rbmr(i).Update(p.regs, v)
	}

	var quanta, thresh, on, off uint32
	if enable {
		quanta = pauseQuanta
		thresh = pauseRefresh
		on = pauseOnFrames * MaxFrameSize
		off = pauseOffFrames * MaxFrameSize
	}
	pmPauseQuanta.Update(p.regs, quanta)
	pmPauseThresh.Update(p.regs, thresh)
	ppauontr.Update(p.regs, on)
	ppauofftr.Update(p.regs, off)
}

func (p *Port) setRxPause(enable bool) {
	v := pmCmdCfg.Get(p.regs)
	if enable {
		v &^= cmdCfgPauseIgn
	} else {
		v |= cmdCfgPauseIgn
	}
	pmCmdCfg.Update(p.regs, v)
}

func (p *Port) enableMac(enable bool) {
	v := pmCmdCfg.Get(p.regs)
	if enable {
		v |= cmdCfgTxEn | cmdCfgRxEn
	} else {
		v &^= cmdCfgTxEn | cmdCfgRxEn
	}
	pmCmdCfg.Set(p.regs, v)
}

// LinkStatus reports the MAC's view of the link. Speed and duplex come
// from the in-band status of RGMII ports; other interfaces report their
// nominal rate at full duplex.
func (p *Port) LinkStatus() (l Link, up bool) {
	v := pmIfStatus.Get(p.regs)
	up = v&ifStatusLinkUp != 0
	l.Interface = p.Interface
	l.Inband = p.Inband
	l.Speed = p.Interface.NominalSpeed()
	l.Duplex = DuplexFull
	if p.Interface.IsRgmii() && p.Inband {
		switch hw.Field(v, ifStatusSpeed) {
		case ifStatus10M:
			l.Speed = Speed10
		case ifStatus100M:
			l.Speed = Speed100
		case ifStatus1G:
			l.Speed = Speed1000
		default:
			l.Speed = SpeedUnknown
		}
		if v&ifStatusFullDuplex == 0 {
			l.Duplex = DuplexHalf
		}
	}
	return
}
