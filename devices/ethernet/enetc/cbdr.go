// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package enetc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/jpillora/backoff"
	"github.com/platinasystems/enetc/elib/hw"
	"github.com/platinasystems/enetc/ethernet"
)

// Ring adds and deletes exact match MAC address filter table entries.
// Each call completes or fails before returning.
type Ring interface {
	AppendEntry(index int, a ethernet.Address, siBitmap uint32) error
	DeleteEntry(index int) error
}

// Command descriptor words.
const (
	/* [7:0] command
	   [15:8] table id */
	cbdCmd = iota
	cbdIndex
	cbdAddrLo
	cbdAddrHi
	cbdSiBitmap
	_
	_
	/* [15:0] completion status, zero on success */
	cbdStatus
	cbdWords
)

const (
	cbdCmdAdd    = 1
	cbdCmdDelete = 2

	// MAC address filter table.
	tableMaft = 0x1
)

var errRingTimeout = errors.New("timeout")

// Cbdr is the control buffer descriptor ring of station interface 0.
// Commands are posted through the descriptor window and the producer
// index; the consumer index catches up when hardware is done.
type Cbdr struct {
	r   hw.ReadWriter
	len uint32

	// Max time to wait for a command to complete.
	Timeout time.Duration
	// Completion poll interval bounds.
	PollMin, PollMax time.Duration
}

const (
	DefaultCbdrLen     = 64
	DefaultCbdrTimeout = 100 * time.Millisecond
)

// NewCbdr resets and enables the ring.
func NewCbdr(r hw.ReadWriter, n int) *Cbdr {
	if n <= 0 {
		n = DefaultCbdrLen
	}
	c := &Cbdr{
		r:       r,
		len:     uint32(n),
		Timeout: DefaultCbdrTimeout,
		PollMin: time.Microsecond,
		PollMax: time.Millisecond,
	}
	sicbdrmr.Set(r, 0)
	sicbdrpir.Set(r, 0)
	sicbdrcir.Set(r, 0)
	sicbdrlenr.Set(r, c.len)
	sicbdrmr.Set(r, sicbdrmrEn)
	return c
}

// Disable stops the ring; later commands fail.
func (c *Cbdr) Disable() { sicbdrmr.Set(c.r, 0) }

func (c *Cbdr) AppendEntry(index int, a ethernet.Address, siBitmap uint32) error {
	var d [cbdWords]uint32
	d[cbdCmd] = cbdCmdAdd | tableMaft<<8
	d[cbdIndex] = uint32(index)
	d[cbdAddrLo] = binary.LittleEndian.Uint32(a[0:4])
	d[cbdAddrHi] = uint32(binary.LittleEndian.Uint16(a[4:6]))
	d[cbdSiBitmap] = siBitmap
	if err := c.exec(&d); err != nil {
		return &RingError{Op: "add", Index: index, Err: err}
	}
	return nil
}

func (c *Cbdr) DeleteEntry(index int) error {
	var d [cbdWords]uint32
	d[cbdCmd] = cbdCmdDelete | tableMaft<<8
	d[cbdIndex] = uint32(index)
	if err := c.exec(&d); err != nil {
		return &RingError{Op: "delete", Index: index, Err: err}
	}
	return nil
}

func (c *Cbdr) exec(d *[cbdWords]uint32) error {
	if sicbdrmr.Get(c.r)&sicbdrmrEn == 0 {
		return errors.New("ring disabled")
	}
	for i := range d {
		sicbd(i).Set(c.r, d[i])
	}
	pi := (sicbdrpir.Get(c.r) + 1) % c.len
	sicbdrpir.Set(c.r, pi)

	b := &backoff.Backoff{
		Min:    c.PollMin,
		Max:    c.PollMax,
		Factor: 2,
		Jitter: false,
	}
	start := time.Now()
	for hw.Field(sicbdrcir.Get(c.r), sicbdrcirIndex) != pi {
		if time.Since(start) > c.Timeout {
			return errRingTimeout
		}
		time.Sleep(b.Duration())
	}
	if s := sicbd(cbdStatus).Get(c.r) & 0xffff; s != 0 {
		return fmt.Errorf("status 0x%04x", s)
	}
	return nil
}
