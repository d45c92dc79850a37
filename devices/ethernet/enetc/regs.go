// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package enetc drives the address filters and MAC link configuration of
// an NXP ENETC v4 ethernet port.
package enetc

import (
	"github.com/platinasystems/enetc/elib/hw"
)

// Byte offsets into the port register window. The port block starts at
// 0x0, the MAC (pMAC 0) block at 0x5000 and the station interface (SI 0)
// ring block at 0x8000.
const (
	/* [6:4] number of traffic classes
	   [22:12] number of msi-x vectors - 1
	   [27:24] number of virtual station interfaces */
	ecapr1 hw.Reg = 0x0004

	/* [9:0] number of tx rings
	   [25:16] number of rx rings */
	ecapr2 hw.Reg = 0x0008

	/* [16+n] station interface n enable */
	pmr hw.Reg = 0x0010

	/* [n] unicast promiscuous for si n
	   [16+n] multicast promiscuous for si n */
	psipmmr hw.Reg = 0x0200

	/* [2:0] vlan promiscuous for si 0-2 */
	psipvmr hw.Reg = 0x0204

	/* [0] outer (s) vlan tag used for vlan filtering */
	psivlanfmr hw.Reg = 0x0208

	/* [8] half duplex supported */
	pmcapr hw.Reg = 0x4004

	/* [29:16] port speed in units of 10 Mb/s minus one */
	pcr hw.Reg = 0x4010

	pmar0 hw.Reg = 0x4020
	pmar1 hw.Reg = 0x4024

	/* [0] port disable */
	por hw.Reg = 0x4028

	/* [7:0] number of mac address filter table entries */
	psimafcapr hw.Reg = 0x4040

	/* [7:0] number of vlan filter table entries */
	psivlanfcapr hw.Reg = 0x4048

	/* [10:0] number of ingress port filter words */
	ipftcapr hw.Reg = 0x4050

	/* [0] rule valid
	   [3] destination mac present
	   [4] source mac present
	   [5] outer vlan id present */
	isidkc0cr0 hw.Reg = 0x4080
	isidkc1cr0 hw.Reg = 0x40a0

	/* [0] key construction rule 0 enable
	   [1] key construction rule 1 enable */
	pisidcr hw.Reg = 0x40c0

	// Rx fifo occupancy (bytes) above which pause frames are sent and
	// below which they stop.
	ppauontr  hw.Reg = 0x4108
	ppauofftr hw.Reg = 0x410c

	/* [0] time gating enable */
	ptgscr hw.Reg = 0x4400

	// pMAC 0.
	/* [0] tx enable
	   [1] rx enable
	   [8] ignore received pause frames
	   [10] loopback enable
	   [12:11] loopback mode
	   [18] half duplex flow control enable */
	pmCmdCfg hw.Reg = 0x5008

	/* [15:0] max frame length */
	pmMaxFrm hw.Reg = 0x5014

	/* [15:0] pause quanta sent when fifo crosses ppauontr */
	pmPauseQuanta hw.Reg = 0x5054

	/* [15:0] quanta remaining when pause refresh is sent */
	pmPauseThresh hw.Reg = 0x5064

	/* [2:0] interface mode
	   [3] reverse mii
	   [4] 10 Mb/s (rmii)
	   [6] half duplex
	   [14:13] rgmii speed select
	   [15] in-band autonegotiation enable */
	pmIfMode hw.Reg = 0x5300

	/* [1:0] rgmii in-band speed 0 => 10M, 1 => 100M, 2 => 1G
	   [2] full duplex
	   [3] link up */
	pmIfStatus hw.Reg = 0x5304
)

// Per station interface registers (a = si index).
func psipmar0(a int) hw.Reg  { return hw.Reg(0x2000 + a*0x80) }
func psipmar1(a int) hw.Reg  { return hw.Reg(0x2004 + a*0x80) }
func psicfgr0(a int) hw.Reg  { return hw.Reg(0x2010 + a*0x80) }
func psicfgr2(a int) hw.Reg  { return hw.Reg(0x2018 + a*0x80) }
func psiumhfr0(a int) hw.Reg { return hw.Reg(0x2050 + a*0x80) }
func psiumhfr1(a int) hw.Reg { return hw.Reg(0x2054 + a*0x80) }
func psimmhfr0(a int) hw.Reg { return hw.Reg(0x2058 + a*0x80) }
func psimmhfr1(a int) hw.Reg { return hw.Reg(0x205c + a*0x80) }

// Per traffic class registers.
/* [15:0] max sdu
   [17:16] sdu type */
func ptctmsdur(tc int) hw.Reg { return hw.Reg(0x4208 + tc*0x20) }

/* [0] time specific departure enable */
func ptctsdr(tc int) hw.Reg { return hw.Reg(0x4220 + tc*0x20) }

// Receive side scaling hash key, 10 words.
func prsskr(i int) hw.Reg { return hw.Reg(0x4500 + i*4) }

// SI 0 receive ring mode register.
/* [0] enable
   [6] congestion management (pause generation) */
func rbmr(ring int) hw.Reg { return hw.Reg(0x8000 + ring*0x200) }

// SI 0 control buffer descriptor ring.
const (
	/* [31] ring enable */
	sicbdrmr hw.Reg = 0x9800
	/* producer index */
	sicbdrpir hw.Reg = 0x9804
	/* [15:0] consumer index */
	sicbdrcir hw.Reg = 0x9808
	/* ring length in descriptors */
	sicbdrlenr hw.Reg = 0x980c
)

// Command descriptor window, cbdWords words.
func sicbd(w int) hw.Reg { return hw.Reg(0x9840 + w*4) }

const numTc = 8

// Fields.
var (
	ecapr1NumTcs  = hw.Mask(6, 4)
	ecapr1NumMsix = hw.Mask(22, 12)
	ecapr1NumVsi  = hw.Mask(27, 24)

	ecapr2NumTxBdr = hw.Mask(9, 0)
	ecapr2NumRxBdr = hw.Mask(25, 16)

	psimafcaprNum   = hw.Mask(7, 0)
	psivlanfcaprNum = hw.Mask(7, 0)
	ipftcaprNum     = hw.Mask(10, 0)

	pcrPspeed = hw.Mask(29, 16)

	psicfgr0NumTxBdr = hw.Mask(9, 0)
	psicfgr0NumRxBdr = hw.Mask(25, 16)
	psicfgr0Sivc     = hw.Mask(20, 19)

	psicfgr2NumMsix = hw.Mask(5, 0)

	ptctmsdurMaxSdu  = hw.Mask(15, 0)
	ptctmsdurSduType = hw.Mask(17, 16)

	ifModeIfMode = hw.Mask(2, 0)
	ifModeSsp    = hw.Mask(14, 13)

	ifStatusSpeed = hw.Mask(1, 0)

	cmdCfgLpbkMode = hw.Mask(12, 11)

	sicbdrcirIndex = hw.Mask(15, 0)
)

const (
	pmcaprHd = 1 << 8

	pmrSiEn0 = 1 << 16

	psicfgr0AntiSpoofing = 1 << 24
	psicfgr0Vte          = 1 << 27
	psicfgr0Sivie        = 1 << 28

	vlanTypeC = 1 << 0
	vlanTypeS = 1 << 1

	psivlanfmrVs = 1 << 0

	vlanPromiscAll = 0x7

	isidkcValid = 1 << 0
	isidkcDmacp = 1 << 3
	isidkcSmacp = 1 << 4
	isidkcOvidp = 1 << 5

	pisidcrKc0En = 1 << 0
	pisidcrKc1En = 1 << 1

	ptgscrTge   = 1 << 0
	ptctsdrTsde = 1 << 0

	cmdCfgTxEn     = 1 << 0
	cmdCfgRxEn     = 1 << 1
	cmdCfgPauseIgn = 1 << 8
	cmdCfgLoopEn   = 1 << 10
	cmdCfgHdFcEn   = 1 << 18

	lpbkModeMacLevel = 0

	ifModeRevMii = 1 << 3
	ifModeM10    = 1 << 4
	ifModeHd     = 1 << 6
	ifModeEna    = 1 << 15

	ifStatusFullDuplex = 1 << 2
	ifStatusLinkUp     = 1 << 3

	rbmrCm = 1 << 6

	sicbdrmrEn = 1 << 31
)

// PM_IF_MODE interface mode encodings.
const (
	ifModeXgmii = 0
	ifModeRmii  = 3
	ifModeRgmii = 4
	ifModeSgmii = 5
)

// PM_IF_MODE rgmii speed select encodings.
const (
	ssp100M = 0
	ssp10M  = 1
	ssp1G   = 2
)

// PM_IF_STATUS in-band speed encodings.
const (
	ifStatus10M  = 0
	ifStatus100M = 1
	ifStatus1G   = 2
)

const (
	// Bytes mapped for one port: port, MAC and SI 0 blocks.
	RegSize = 0x10000

	// Largest frame accepted by the MAC including VLAN tag and FCS.
	MaxFrameSize = 2000

	vlanEthHlen = 18
	sduTypeMpdu = 1

	rssKeyWords = 10

	// Rings per station interface.
	siMaxRings = 8
)
