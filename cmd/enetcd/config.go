// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package enetcd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/platinasystems/enetc/devices/ethernet/enetc"
	"github.com/platinasystems/enetc/ethernet"
)

// Prefix of every redis field owned by the daemon.
const Prefix = "enetc."

// What a field change requires to be reprogrammed.
type change int

const (
	changeNone change = iota
	changeFilter
	changeLink
	changeLoopback
)

type siConfig struct {
	uc, mc   []ethernet.Address
	promisc  bool
	allmulti bool
}

// config is the desired port state, set through redis.
type config struct {
	si         []siConfig
	txPause    bool
	rxPause    bool
	preemption bool
	loopback   enetc.LoopbackType
}

func newConfig(numSi int) *config {
	return &config{
		si:      make([]siConfig, numSi),
		txPause: true,
		rxPause: true,
	}
}

// parseField splits enetc.si<N>.<name> and enetc.<name>. Port wide
// fields return si -1.
func parseField(field string) (si int, name string, err error) {
	si = -1
	s := strings.TrimPrefix(field, Prefix)
	if s == field {
		err = fmt.Errorf("%s: not an enetc field", field)
		return
	}
	if strings.HasPrefix(s, "si") {
		i := strings.IndexByte(s, '.')
		if i < 0 {
			err = fmt.Errorf("%s: missing field name", field)
			return
		}
		if si, err = strconv.Atoi(s[2:i]); err != nil || si < 0 {
			err = fmt.Errorf("%s: invalid station interface", field)
			return
		}
		s = s[i+1:]
	}
	name = s
	return
}

func parsePause(s string) (tx, rx bool, err error) {
	switch s {
	case "none":
	case "rx":
		rx = true
	case "tx":
		tx = true
	case "both":
		tx, rx = true, true
	default:
		err = fmt.Errorf("%q: pause must be none, rx, tx or both", s)
	}
	return
}

func formatPause(tx, rx bool) string {
	switch {
	case tx && rx:
		return "both"
	case tx:
		return "tx"
	case rx:
		return "rx"
	}
	return "none"
}

// set records the new value of field. The config is unchanged on error.
func (c *config) set(field, value string) (what change, si int, err error) {
	var name string
	if si, name, err = parseField(field); err != nil {
		return
	}
	if si >= 0 {
		if si >= len(c.si) {
			err = fmt.Errorf("%s: %w", field, enetc.ErrInvalidSi)
			return
		}
		s := &c.si[si]
		var as []ethernet.Address
		var b bool
		switch name {
		case "unicast", "multicast":
			if as, err = ethernet.ParseAddresses(value); err != nil {
				return
			}
			if name == "unicast" {
				s.uc = as
			} else {
				s.mc = as
			}
		case "promisc", "allmulti":
			if b, err = strconv.ParseBool(value); err != nil {
				return
			}
			if name == "promisc" {
				s.promisc = b
			} else {
				s.allmulti = b
			}
		default:
			err = fmt.Errorf("cannot hset: %s", field)
			return
		}
		what = changeFilter
		return
	}
	switch name {
	case "pause":
		var tx, rx bool
		if tx, rx, err = parsePause(value); err != nil {
			return
		}
		c.txPause, c.rxPause = tx, rx
		what = changeLink
	case "preemption":
		var b bool
		if b, err = strconv.ParseBool(value); err != nil {
			return
		}
		c.preemption = b
		what = changeLink
	case "loopback":
		var x enetc.LoopbackType
		if x, err = enetc.ParseLoopback(value); err != nil {
			return
		}
		if x == enetc.LoopbackPhy {
			err = fmt.Errorf("%s: %w", value, enetc.ErrNotSupported)
			return
		}
		c.loopback = x
		what = changeLoopback
	default:
		err = fmt.Errorf("cannot hset: %s", field)
	}
	return
}

// link applies the configured pause and preemption to a link status.
func (c *config) link(l enetc.Link) enetc.Link {
	l.TxPause = c.txPause
	l.RxPause = c.rxPause
	l.Preemption = c.preemption
	return l
}
