// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package enetc

import (
	"fmt"
)

// SetLoopback loops transmitted frames back at the MAC. Phy loopback
// belongs to the phy driver.
func (p *Port) SetLoopback(x LoopbackType) error {
	switch x {
	case LoopbackNone:
		p.Ops.SetLoopback(false)
	case LoopbackMac:
		p.Ops.SetLoopback(true)
	default:
		return fmt.Errorf("%s: %w", x, ErrNotSupported)
	}
	return nil
}

func (p *Port) Loopback() LoopbackType {
	if pmCmdCfg.Get(p.regs)&cmdCfgLoopEn != 0 {
		return LoopbackMac
	}
	return LoopbackNone
}
