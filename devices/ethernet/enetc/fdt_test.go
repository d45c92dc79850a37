// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package enetc

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/platinasystems/enetc/internal/test"
)

// dtb builds a minimal flattened device tree blob.
type dtb struct {
	strct, strs bytes.Buffer
	names       map[string]uint32
}

func (d *dtb) cell(v uint32) { binary.Write(&d.strct, binary.BigEndian, v) }

func (d *dtb) pad() {
	for d.strct.Len()%4 != 0 {
		d.strct.WriteByte(0)
	}
}

func (d *dtb) begin(name string) {
	d.cell(1)
	d.strct.WriteString(name)
	d.strct.WriteByte(0)
	d.pad()
}

func (d *dtb) end() { d.cell(2) }

func (d *dtb) prop(name string, v []byte) {
	if d.names == nil {
		d.names = make(map[string]uint32)
	}
	off, ok := d.names[name]
	if !ok {
		off = uint32(d.strs.Len())
		d.names[name] = off
		d.strs.WriteString(name)
		d.strs.WriteByte(0)
	}
	d.cell(3)
	d.cell(uint32(len(v)))
	d.cell(off)
	d.strct.Write(v)
	d.pad()
}

func (d *dtb) str(name, v string) { d.prop(name, append([]byte(v), 0)) }

func (d *dtb) blob() []byte {
	const (
		hdrLen = 40
		rsvLen = 16
	)
	d.cell(9)
	offStruct := hdrLen + rsvLen
	offStrings := offStruct + d.strct.Len()
	var b bytes.Buffer
	for _, v := range []uint32{
		fdtMagic,
		uint32(offStrings + d.strs.Len()),
		uint32(offStruct),
		uint32(offStrings),
		hdrLen,
		17,
		16,
		0,
		uint32(d.strs.Len()),
		uint32(d.strct.Len()),
	} {
		binary.Write(&b, binary.BigEndian, v)
	}
	b.Write(make([]byte, rsvLen))
	b.Write(d.strct.Bytes())
	b.Write(d.strs.Bytes())
	return b.Bytes()
}

func testDtb() []byte {
	var d dtb
	d.begin("")
	d.str("compatible", "fsl,imx95")
	d.begin("ethernet@0")
	d.str("phy-mode", "rgmii-id")
	d.str("managed", "in-band-status")
	d.prop("local-mac-address", []byte{0x00, 0x04, 0x9f, 0x01, 0x02, 0x03})
	d.end()
	d.begin("ethernet@1")
	d.str("phy-connection-type", "sgmii")
	d.end()
	d.begin("ethernet@2")
	d.str("phy-mode", "qsgmii")
	d.end()
	d.begin("ethernet@3")
	d.end()
	d.end()
	return d.blob()
}

func TestParseDeviceTree(t *testing.T) {
	assert := test.Assert{TB: t}
	b := testDtb()

	d, err := ParseDeviceTree(b, "ethernet@0")
	assert.Nil(err)
	assert.True(d.Interface == InterfaceRgmiiId)
	assert.True(d.Inband)
	assert.Equal(d.MacAddress.String(), "00:04:9f:01:02:03")
	c := d.Config()
	assert.True(c.Inband && c.Interface == InterfaceRgmiiId)

	d, err = ParseDeviceTree(b, "ethernet@1")
	assert.Nil(err)
	assert.True(d.Interface == InterfaceSgmii)
	assert.False(d.Inband)
	assert.True(d.MacAddress.IsZero())

	_, err = ParseDeviceTree(b, "ethernet@2")
	assert.Error(err, ErrUnsupportedInterface)
	_, err = ParseDeviceTree(b, "ethernet@3")
	assert.Error(err, "device tree: ethernet@3: no phy-mode")
	_, err = ParseDeviceTree(b, "ethernet@9")
	assert.Error(err, "device tree: ethernet@9: node not found")
	_, err = ParseDeviceTree(b[4:], "ethernet@0")
	assert.Error(err, "device tree: bad magic")
}
