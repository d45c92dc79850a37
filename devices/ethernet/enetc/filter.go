// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package enetc

import (
	"fmt"

	"github.com/platinasystems/enetc/ethernet"
	"github.com/platinasystems/log"
)

// SetRxMode programs the address filters of station interface si.
//
// Addresses go to the exact match table when all of them fit, otherwise
// to the 64 bit hash filters. A promiscuous class contributes no
// addresses and has its promiscuous bit set. Non group addresses in mc
// are ignored. Control ring failures are returned as *RingError; the
// caller should re-apply the full state after one.
func (p *Port) SetRxMode(si int, uc, mc []ethernet.Address, ucPromisc, mcPromisc bool) error {
	if !p.validSi(si) {
		return fmt.Errorf("si %d: %w", si, ErrInvalidSi)
	}
	s := &p.si[si]
	ucf, mcf := &s.filters[UC], &s.filters[MC]
	ucf.Reset()
	mcf.Reset()
	if !ucPromisc {
		for _, a := range uc {
			ucf.Add(a)
		}
	}
	if !mcPromisc {
		for _, a := range mc {
			if a.IsMulticast() {
				mcf.Add(a)
			}
		}
	}
	s.promisc[UC], s.promisc[MC] = ucPromisc, mcPromisc

	numMacs := ucf.Len() + mcf.Len()
	limit := p.macFilterCap(si)
	exact := numMacs > 0 && numMacs <= limit
	if numMacs > limit && limit > 0 {
		log.Print("daemon", "debug", "si", si, ": ", numMacs,
			" addresses exceed ", limit, " exact match entries, using hash filter")
	}

	var want []ethernet.Address
	if exact {
		want = make([]ethernet.Address, 0, numMacs)
		want = append(want, ucf.Addresses()...)
		want = append(want, mcf.Addresses()...)
	}
	if !s.synced || !sameAddresses(s.installed, want) {
		s.synced = false
		if err := p.clearMacFilterTable(s); err != nil {
			return err
		}
	}

	if exact {
		p.Ops.SetSiMacFilter(si, UC, 0)
		p.Ops.SetSiMacFilter(si, MC, 0)
		if !s.synced {
			if err := p.fillMacFilterTable(si, s, want); err != nil {
				return err
			}
		}
	} else {
		// Promiscuous classes have empty filters, so their hash is zero.
		p.Ops.SetSiMacFilter(si, UC, ucf.Hash())
		p.Ops.SetSiMacFilter(si, MC, mcf.Hash())
	}
	s.exact = exact
	s.synced = true

	p.Ops.SetSiMacPromisc(si, UC, ucPromisc)
	p.Ops.SetSiMacPromisc(si, MC, mcPromisc)
	return nil
}

// clearMacFilterTable deletes installed entries from the top so the
// installed list stays contiguous if the ring fails part way.
func (p *Port) clearMacFilterTable(s *siFilter) error {
	for i := len(s.installed) - 1; i >= 0; i-- {
		if err := p.ring.DeleteEntry(i); err != nil {
			return err
		}
		s.installed = s.installed[:i]
	}
	return nil
}

func (p *Port) fillMacFilterTable(si int, s *siFilter, want []ethernet.Address) error {
	siBitmap := uint32(1) << uint(si)
	for i, a := range want {
		if err := p.ring.AppendEntry(i, a, siBitmap); err != nil {
			return err
		}
		s.installed = append(s.installed, a)
	}
	return nil
}

func sameAddresses(a, b []ethernet.Address) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FilterState is a snapshot of one station interface's address filters.
type FilterState struct {
	Exact   bool
	Entries []ethernet.Address
	Hash    [nAddrClass]uint64
	Promisc [nAddrClass]bool
}

func (f *FilterState) Mode() string {
	if f.Exact {
		return "exact"
	}
	return "hash"
}

func (p *Port) FilterState(si int) (f FilterState, err error) {
	if !p.validSi(si) {
		err = fmt.Errorf("si %d: %w", si, ErrInvalidSi)
		return
	}
	s := &p.si[si]
	f.Exact = s.exact
	f.Entries = append([]ethernet.Address(nil), s.installed...)
	f.Promisc = s.promisc
	if !s.exact {
		for c := range f.Hash {
			f.Hash[c] = s.filters[c].Hash()
		}
	}
	return
}

// SetPrimaryMac sets the station interface primary address.
func (p *Port) SetPrimaryMac(si int, a ethernet.Address) error {
	if !p.validSi(si) {
		return fmt.Errorf("si %d: %w", si, ErrInvalidSi)
	}
	if a.IsMulticast() || a.IsZero() {
		return fmt.Errorf("%s: invalid primary address", a.String())
	}
	p.Ops.SetSiPrimaryMac(si, a)
	return nil
}

func (p *Port) PrimaryMac(si int) (a ethernet.Address, err error) {
	if !p.validSi(si) {
		err = fmt.Errorf("si %d: %w", si, ErrInvalidSi)
		return
	}
	a = p.Ops.GetSiPrimaryMac(si)
	return
}
