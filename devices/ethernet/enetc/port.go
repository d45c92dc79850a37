// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package enetc

import (
	"github.com/platinasystems/enetc/elib/hw"
	"github.com/platinasystems/enetc/ethernet"
)

// MacMerge is the frame preemption (MAC merge) sub-layer. It is told about
// link transitions so it can restart verification.
type MacMerge interface {
	LinkStateUpdate(up bool)
}

type Config struct {
	Interface Interface
	// Link uses in-band autonegotiation status.
	Inband bool

	// Optional; nil when frame preemption is not in use.
	MacMerge MacMerge

	// Register operations; defaults to ENETC v4.
	Ops Ops
}

// siFilter is the filter state of one station interface.
type siFilter struct {
	filters [nAddrClass]MacFilter
	promisc [nAddrClass]bool
	exact   bool

	// Exact match entries 0..len(installed)-1 known to be in the table.
	installed []ethernet.Address
	// Last apply completed; installed matches the requested list.
	synced bool
}

// Port is the software context of one ENETC port. Callers serialize all
// method calls.
type Port struct {
	Config

	regs hw.ReadWriter
	ring Ring
	caps Caps
	si   []siFilter

	// Last programmed speed; zero until the first link up.
	speed Speed
	up    bool

	// Rx rings owned by the PSI.
	numRxRings int
}

func New(regs hw.ReadWriter, ring Ring, c Config) *Port {
	p := &Port{
		Config: c,
		regs:   regs,
		ring:   ring,
	}
	if p.Ops == nil {
		p.Ops = NewEnetc4Ops(regs)
	}
	return p
}

// Init reads port capabilities and performs the one time port setup.
func (p *Port) Init() (err error) {
	p.caps = GetCaps(p.regs)
	p.si = make([]siFilter, p.caps.NumSi())
	if err = p.configure(); err != nil {
		return
	}
	return p.MacConfig(p.Inband, p.Interface)
}

func (p *Port) Caps() Caps   { return p.caps }
func (p *Port) IsUp() bool   { return p.up }
func (p *Port) Speed() Speed { return p.speed }

func (p *Port) validSi(si int) bool { return si >= 0 && si < len(p.si) }

// macFilterCap is the exact match capacity of si. The table belongs to
// the PSI; virtual station interfaces always use hash filters.
func (p *Port) macFilterCap(si int) int {
	if si != 0 {
		return 0
	}
	return p.caps.MacFilterNum
}
