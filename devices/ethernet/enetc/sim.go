// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package enetc

import (
	"github.com/platinasystems/enetc/elib/hw"
)

// NewSim returns an in-memory port whose capability registers report c
// and whose control ring completes every command successfully.
func NewSim(c Caps) *hw.Mem {
	m := hw.NewMem()
	c.encode(m)
	m.OnWrite = SimCbdr(nil)
	return m
}

// SimCbdr returns a register write hook that completes control ring
// commands. When fail is non-nil and returns a non-zero status for the
// posted descriptor, that status is reported instead of success.
func SimCbdr(fail func(cmd, index uint32) uint32) func(*hw.Mem, uint, uint32) {
	return func(m *hw.Mem, offset uint, v uint32) {
		if offset != uint(sicbdrpir) {
			return
		}
		var status uint32
		if fail != nil {
			cmd := m.Read32(uint(sicbd(cbdCmd))) & 0xff
			index := m.Read32(uint(sicbd(cbdIndex)))
			status = fail(cmd, index)
		}
		m.Preset(uint(sicbd(cbdStatus)), status)
		m.Preset(uint(sicbdrcir), v)
	}
}

// SimLinkStatus sets the in-band link status register of a simulated port.
func SimLinkStatus(m *hw.Mem, up bool, speed Speed, duplex Duplex) {
	var v uint32
	if up {
		v |= ifStatusLinkUp
	}
	if duplex == DuplexFull {
		v |= ifStatusFullDuplex
	}
	switch speed {
	case Speed100:
		v = hw.Replace(v, ifStatusSpeed, ifStatus100M)
	case Speed1000:
		v = hw.Replace(v, ifStatusSpeed, ifStatus1G)
	default:
		v = hw.Replace(v, ifStatusSpeed, ifStatus10M)
	}
	m.Preset(uint(pmIfStatus), v)
}
