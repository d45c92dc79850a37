// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package enetc

import (
	"fmt"
)

// Interface is the MAC to PHY interface mode.
type Interface int

const (
	InterfaceNone Interface = iota
	InterfaceRgmii
	InterfaceRgmiiId
	InterfaceRgmiiRxid
	InterfaceRgmiiTxid
	InterfaceRmii
	InterfaceSgmii
	Interface2500BaseX
	Interface10GBaseR
	InterfaceXgmii
	InterfaceUsxgmii
	InterfaceMii
)

// Device tree phy-mode names.
var interfaceNames = [...]string{
	InterfaceNone:      "",
	InterfaceRgmii:     "rgmii",
	InterfaceRgmiiId:   "rgmii-id",
	InterfaceRgmiiRxid: "rgmii-rxid",
	InterfaceRgmiiTxid: "rgmii-txid",
	InterfaceRmii:      "rmii",
	InterfaceSgmii:     "sgmii",
	Interface2500BaseX: "2500base-x",
	Interface10GBaseR:  "10gbase-r",
	InterfaceXgmii:     "xgmii",
	InterfaceUsxgmii:   "usxgmii",
	InterfaceMii:       "mii",
}

func (i Interface) String() string {
	if i >= 0 && int(i) < len(interfaceNames) {
		if s := interfaceNames[i]; s != "" {
			return s
		}
	}
	return fmt.Sprintf("interface %d", int(i))
}

func ParseInterface(s string) (Interface, error) {
	for i, name := range interfaceNames {
		if name != "" && name == s {
			return Interface(i), nil
		}
	}
	return InterfaceNone, fmt.Errorf("%q: %w", s, ErrUnsupportedInterface)
}

func (i Interface) IsRgmii() bool {
	switch i {
	case InterfaceRgmii, InterfaceRgmiiId, InterfaceRgmiiRxid, InterfaceRgmiiTxid:
		return true
	}
	return false
}

// ifMode returns the PM_IF_MODE interface mode encoding.
func (i Interface) ifMode() (v uint32, ok bool) {
	ok = true
	switch {
	case i.IsRgmii():
		v = ifModeRgmii
	case i == InterfaceRmii:
		v = ifModeRmii
	case i == InterfaceSgmii, i == Interface2500BaseX:
		v = ifModeSgmii
	case i == Interface10GBaseR, i == InterfaceXgmii, i == InterfaceUsxgmii:
		v = ifModeXgmii
	default:
		ok = false
	}
	return
}

// NominalSpeed is the line rate of interfaces without in-band speed status.
func (i Interface) NominalSpeed() Speed {
	switch i {
	case InterfaceSgmii:
		return Speed1000
	case Interface2500BaseX:
		return Speed2500
	case Interface10GBaseR, InterfaceXgmii, InterfaceUsxgmii:
		return Speed10000
	case InterfaceRmii:
		return Speed100
	}
	return Speed1000
}

// Speed in Mb/s.
type Speed int

const (
	SpeedUnknown Speed = 0
	Speed10      Speed = 10
	Speed100     Speed = 100
	Speed1000    Speed = 1000
	Speed2500    Speed = 2500
	Speed10000   Speed = 10000
)

func (s Speed) String() string {
	switch {
	case s == SpeedUnknown:
		return "unknown"
	case s >= 1000 && s%1000 == 0:
		return fmt.Sprintf("%dG", s/1000)
	case s >= 1000:
		return fmt.Sprintf("%.1fG", float64(s)/1000)
	}
	return fmt.Sprintf("%dM", int(s))
}

func (s Speed) supported() bool {
	switch s {
	case Speed10, Speed100, Speed1000, Speed2500, Speed10000:
		return true
	}
	return false
}

type Duplex int

const (
	DuplexHalf Duplex = iota
	DuplexFull
)

func (d Duplex) String() string {
	if d == DuplexFull {
		return "full"
	}
	return "half"
}

// Link holds the negotiated parameters of one link up event.
type Link struct {
	Speed     Speed
	Duplex    Duplex
	Interface Interface
	// In-band autonegotiation status; the MAC learns speed and duplex itself.
	Inband bool
	// Pause as resolved by autonegotiation.
	TxPause bool
	RxPause bool
	// Frame preemption is active; pause generation must be disabled.
	Preemption bool
}

func (l *Link) String() string {
	return fmt.Sprintf("%s %s duplex %s pause tx %v rx %v", l.Interface,
		l.Speed, l.Duplex, l.TxPause, l.RxPause)
}

type LoopbackType int

const (
	LoopbackNone LoopbackType = iota
	LoopbackMac
	LoopbackPhy
)

var loopbackNames = [...]string{
	LoopbackNone: "none",
	LoopbackMac:  "mac",
	LoopbackPhy:  "phy",
}

func (x LoopbackType) String() string {
	if x >= 0 && int(x) < len(loopbackNames) {
		return loopbackNames[x]
	}
	return fmt.Sprintf("loopback %d", int(x))
}

func ParseLoopback(s string) (LoopbackType, error) {
	for i, name := range loopbackNames {
		if name == s {
			return LoopbackType(i), nil
		}
	}
	return LoopbackNone, fmt.Errorf("%q: unknown loopback", s)
}
