// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package enetc

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/platinasystems/enetc/ethernet"
	"github.com/platinasystems/fdt"
)

const fdtMagic = 0xd00dfeed

// DeviceTree is the port configuration found in a flattened device tree.
type DeviceTree struct {
	Interface Interface
	Inband    bool
	// Zero if the node has no local-mac-address.
	MacAddress ethernet.Address
}

func (d *DeviceTree) Config() Config {
	return Config{Interface: d.Interface, Inband: d.Inband}
}

// ParseDeviceTree reads the port properties of the named node from a
// device tree blob.
func ParseDeviceTree(b []byte, node string) (d DeviceTree, err error) {
	if len(b) < 40 || binary.BigEndian.Uint32(b) != fdtMagic {
		err = errors.New("device tree: bad magic")
		return
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("device tree: %v", r)
		}
	}()
	t := &fdt.Tree{Debug: false, IsLittleEndian: false}
	if err = t.Parse(b); err != nil {
		return
	}
	if t.RootNode == nil {
		err = errors.New("device tree: empty")
		return
	}

	var n *fdt.Node
	t.MatchNode(node, func(m *fdt.Node) {
		if n == nil {
			n = m
		}
	})
	if n == nil {
		err = fmt.Errorf("device tree: %s: node not found", node)
		return
	}

	mode, ok := n.Properties["phy-mode"]
	if !ok {
		mode, ok = n.Properties["phy-connection-type"]
	}
	if !ok {
		err = fmt.Errorf("device tree: %s: no phy-mode", node)
		return
	}
	if d.Interface, err = ParseInterface(t.PropString(mode)); err != nil {
		return
	}
	if v, ok := n.Properties["managed"]; ok {
		d.Inband = t.PropString(v) == "in-band-status"
	}
	if v, ok := n.Properties["local-mac-address"]; ok {
		if len(v) != ethernet.AddressBytes {
			err = fmt.Errorf("device tree: %s: local-mac-address length %d",
				node, len(v))
			return
		}
		copy(d.MacAddress[:], v)
	}
	return
}
