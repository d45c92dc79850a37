// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package pci finds PCI functions through linux sysfs.
package pci

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type VendorID uint16
type DeviceID uint16

const (
	VendorNxp VendorID = 0x1131

	// ENETC v4 physical function.
	DeviceEnetcPf DeviceID = 0xe101
)

var sysBusPciPath string = "/sys/bus/pci/devices"

type Device struct {
	// Domain:bus:device.function, e.g. 0001:00:00.0
	Addr   string
	Vendor VendorID
	Device DeviceID
}

func (d *Device) String() string {
	return fmt.Sprintf("%s %04x:%04x", d.Addr, uint16(d.Vendor),
		uint16(d.Device))
}

func (d *Device) SysfsPath(format string, args ...interface{}) (path string) {
	path = filepath.Join(sysBusPciPath, d.Addr, fmt.Sprintf(format, args...))
	return
}

// ResourcePath is the file to mmap for the registers behind bar.
func (d *Device) ResourcePath(bar int) string {
	return d.SysfsPath("resource%d", bar)
}

func readHexFile(path string) (v uint, err error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return
	}
	s := strings.TrimSpace(string(b))
	if n, _ := fmt.Sscanf(s, "0x%x", &v); n != 1 {
		err = fmt.Errorf("%s: %q: not hex", path, s)
	}
	return
}

// Find returns the functions matching vendor and device in address order.
func Find(vendor VendorID, device DeviceID) (ds []Device, err error) {
	fis, err := ioutil.ReadDir(sysBusPciPath)
	if err != nil {
		return
	}
	for _, fi := range fis {
		d := Device{Addr: fi.Name()}
		v, err := readHexFile(d.SysfsPath("vendor"))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		if VendorID(v) != vendor {
			continue
		}
		if v, err = readHexFile(d.SysfsPath("device")); err != nil {
			return nil, err
		}
		if DeviceID(v) != device {
			continue
		}
		d.Vendor, d.Device = vendor, device
		ds = append(ds, d)
	}
	sort.Slice(ds, func(i, j int) bool { return ds[i].Addr < ds[j].Addr })
	return
}
