// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package enetc

import (
	"fmt"

	"github.com/platinasystems/enetc/elib/hw"
)

// Caps are the port capabilities read once at bring up.
type Caps struct {
	NumVsi   int
	NumMsix  int
	NumRxBdr int
	NumTxBdr int
	NumTc    int

	// Half duplex flow control is supported by the MAC.
	HalfDuplex bool

	// Exact match MAC address filter table entries.
	MacFilterNum  int
	VlanFilterNum int
	IpfWordsNum   int
}

func GetCaps(r hw.ReadWriter) (c Caps) {
	v := ecapr1.Get(r)
	c.NumVsi = int(hw.Field(v, ecapr1NumVsi))
	c.NumMsix = int(hw.Field(v, ecapr1NumMsix)) + 1
	c.NumTc = int(hw.Field(v, ecapr1NumTcs)) + 1

	v = ecapr2.Get(r)
	c.NumRxBdr = int(hw.Field(v, ecapr2NumRxBdr))
	c.NumTxBdr = int(hw.Field(v, ecapr2NumTxBdr))

	c.HalfDuplex = pmcapr.Get(r)&pmcaprHd != 0

	c.MacFilterNum = int(hw.Field(psimafcapr.Get(r), psimafcaprNum))
	c.VlanFilterNum = int(hw.Field(psivlanfcapr.Get(r), psivlanfcaprNum))
	c.IpfWordsNum = int(hw.Field(ipftcapr.Get(r), ipftcaprNum))
	return
}

// NumSi is the number of station interfaces, PSI included.
func (c *Caps) NumSi() int { return c.NumVsi + 1 }

// MaxIpfEntries is the ingress port filter capacity; each entry takes at
// least two words.
func (c *Caps) MaxIpfEntries() int { return c.IpfWordsNum / 2 }

func (c *Caps) String() string {
	return fmt.Sprintf("vsi %d msix %d rings rx %d tx %d tc %d half duplex %v mac filters %d vlan filters %d ipf words %d",
		c.NumVsi, c.NumMsix, c.NumRxBdr, c.NumTxBdr, c.NumTc, c.HalfDuplex,
		c.MacFilterNum, c.VlanFilterNum, c.IpfWordsNum)
}

// encode is the inverse of GetCaps, for simulated ports.
func (c *Caps) encode(m *hw.Mem) {
	v := hw.Replace(0, ecapr1NumVsi, uint32(c.NumVsi))
	if c.NumMsix > 0 {
		v = hw.Replace(v, ecapr1NumMsix, uint32(c.NumMsix-1))
	}
	if c.NumTc > 0 {
		v = hw.Replace(v, ecapr1NumTcs, uint32(c.NumTc-1))
	}
	m.Preset(uint(ecapr1), v)
	v = hw.Replace(0, ecapr2NumRxBdr, uint32(c.NumRxBdr))
	v = hw.Replace(v, ecapr2NumTxBdr, uint32(c.NumTxBdr))
	m.Preset(uint(ecapr2), v)
	v = 0
	if c.HalfDuplex {
		v = pmcaprHd
	}
	m.Preset(uint(pmcapr), v)
	m.Preset(uint(psimafcapr), uint32(c.MacFilterNum))
	m.Preset(uint(psivlanfcapr), uint32(c.VlanFilterNum))
	m.Preset(uint(ipftcapr), uint32(c.IpfWordsNum))
}
