// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package hw

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// Access records one register write.
type Access struct {
	Offset uint
	Value  uint32
}

func (a Access) String() string {
	return fmt.Sprintf("0x%05x <- 0x%08x", a.Offset, a.Value)
}

// Mem is a register file held in memory. Unwritten registers read as zero.
// Writes are logged so tests can count register transactions.
type Mem struct {
	sync.Mutex
	regs map[uint]uint32
	log  []Access

	// OnWrite, if set, is called after each write with the mutex released.
	// Simulated hardware uses it to react to doorbell registers.
	OnWrite func(m *Mem, offset uint, v uint32)
}

func NewMem() *Mem {
	return &Mem{regs: make(map[uint]uint32)}
}

func (m *Mem) Read32(offset uint) uint32 {
	m.Lock()
	defer m.Unlock()
	return m.regs[offset]
}

func (m *Mem) Write32(offset uint, v uint32) {
	m.Lock()
	m.regs[offset] = v
	m.log = append(m.log, Access{offset, v})
	f := m.OnWrite
	m.Unlock()
	if f != nil {
		f(m, offset, v)
	}
}

// Preset sets a register value without logging a write or calling OnWrite.
func (m *Mem) Preset(offset uint, v uint32) {
	m.Lock()
	defer m.Unlock()
	m.regs[offset] = v
}

// Writes returns the number of logged writes to offset.
func (m *Mem) Writes(offset uint) (n int) {
	m.Lock()
	defer m.Unlock()
	for _, a := range m.log {
		if a.Offset == offset {
			n++
		}
	}
	return
}

// Log returns a copy of the write log.
func (m *Mem) Log() []Access {
	m.Lock()
	defer m.Unlock()
	return append([]Access(nil), m.log...)
}

// ClearLog discards logged writes; register values are kept.
func (m *Mem) ClearLog() {
	m.Lock()
	defer m.Unlock()
	m.log = m.log[:0]
}

// Snapshot returns a copy of all register values.
func (m *Mem) Snapshot() map[uint]uint32 {
	m.Lock()
	defer m.Unlock()
	s := make(map[uint]uint32, len(m.regs))
	for k, v := range m.regs {
		s[k] = v
	}
	return s
}

// Dump prints non-zero registers in offset order.
func (m *Mem) Dump(w io.Writer) {
	s := m.Snapshot()
	offsets := make([]uint, 0, len(s))
	for k, v := range s {
		if v != 0 {
			offsets = append(offsets, k)
		}
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })
	for _, o := range offsets {
		fmt.Fprintf(w, "0x%05x: 0x%08x\n", o, s[o])
	}
}
