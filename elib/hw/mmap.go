// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package hw

import (
	"fmt"
	"os"
	"sync/atomic"
	"syscall"
	"unsafe"
)

// Mmap is a register window mapped from a file such as a PCI BAR
// resource (/sys/bus/pci/devices/DEV/resource0) or /dev/mem.
type Mmap struct {
	name string
	mem  []byte
}

// NewMmap maps size bytes of the named file starting at offset.
func NewMmap(name string, offset int64, size int) (*Mmap, error) {
	f, err := os.OpenFile(name, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mem, err := syscall.Mmap(int(f.Fd()), offset, size,
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("%s: mmap: %v", name, err)
	}
	return &Mmap{name: name, mem: mem}, nil
}

func (m *Mmap) String() string { return m.name }

func (m *Mmap) addr(offset uint) *uint32 {
	if offset+4 > uint(len(m.mem)) {
		panic(fmt.Errorf("%s: offset 0x%x beyond 0x%x", m.name, offset,
			len(m.mem)))
	}
	return (*uint32)(unsafe.Pointer(&m.mem[offset]))
}

func (m *Mmap) Read32(offset uint) uint32 {
	return atomic.LoadUint32(m.addr(offset))
}

func (m *Mmap) Write32(offset uint, v uint32) {
	atomic.StoreUint32(m.addr(offset), v)
}

func (m *Mmap) Close() error {
	if m.mem == nil {
		return nil
	}
	err := syscall.Munmap(m.mem)
	m.mem = nil
	return err
}
