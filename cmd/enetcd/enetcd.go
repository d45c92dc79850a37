// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package enetcd is the ENETC port daemon. It programs the address filters
// and MAC link of one port from redis fields and publishes port state.
package enetcd

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/rpc"
	"strconv"
	"sync"
	"time"

	"github.com/platinasystems/atsock"
	"github.com/platinasystems/enetc/devices/ethernet/enetc"
	"github.com/platinasystems/enetc/elib/hw"
	"github.com/platinasystems/enetc/elib/hw/pci"
	"github.com/platinasystems/enetc/ethernet"
	"github.com/platinasystems/enetc/internal/goes"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/log"
	"github.com/platinasystems/parms"
	"github.com/platinasystems/redis"
	"github.com/platinasystems/redis/publisher"
	"github.com/platinasystems/redis/rpc/args"
	"github.com/platinasystems/redis/rpc/reply"
)

const (
	Name = "enetcd"

	defaultNode = "ethernet"
	defaultPoll = time.Second
)

// Capabilities reported by "-sim" ports.
var simCaps = enetc.Caps{
	NumVsi:        2,
	NumMsix:       32,
	NumRxBdr:      16,
	NumTxBdr:      16,
	NumTc:         8,
	HalfDuplex:    true,
	MacFilterNum:  4,
	VlanFilterNum: 64,
	IpfWordsNum:   128,
}

type Command struct {
	Info
	Init func()
	init sync.Once

	// Make and close Info.stop once each.
	mkStop    sync.Once
	closeStop sync.Once
}

type Info struct {
	mutex sync.Mutex
	rpc   *atsock.RpcServer
	pub   *publisher.Publisher
	stop  chan struct{}
	lasts map[string]string

	// Register window; nil for simulated ports.
	window io.Closer
	cbdr   *enetc.Cbdr
	port   *enetc.Port
	cfg    *config
	// Last link status seen by the poll loop.
	link enetc.Link
}

func (*Command) String() string { return Name }

func (*Command) Usage() string {
	return Name + ` [-sim] [-resource FILE] [-dtb FILE] [-node NAME]
	[-interface MODE] [-poll DURATION]`
}

func (*Command) Apropos() string {
	return "enetc port daemon, publishes to redis"
}

func (*Command) Kind() goes.Kind { return goes.Daemon }

func (c *Command) Main(args ...string) error {
	if c.Init != nil {
		c.init.Do(c.Init)
	}
	stop := c.stopped()

	flag, args := flags.New(args, "-sim")
	parm, args := parms.New(args, "-resource", "-dtb", "-node",
		"-interface", "-poll")
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected", args)
	}
	if parm.ByName["-node"] == "" {
		parm.ByName["-node"] = defaultNode
	}
	poll := defaultPoll
	if s := parm.ByName["-poll"]; s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		if d <= 0 {
			return fmt.Errorf("%s: invalid poll interval", s)
		}
		poll = d
	}

	err := redis.IsReady()
	if err != nil {
		return err
	}

	pc, mac, err := c.portConfig(parm.ByName["-dtb"], parm.ByName["-node"],
		parm.ByName["-interface"])
	if err != nil {
		return err
	}
	regs, err := c.open(flag.ByName["-sim"], parm.ByName["-resource"])
	if err != nil {
		return err
	}
	defer c.release()

	if err = c.setup(regs, pc, mac); err != nil {
		return err
	}
	c.restore()

	if c.pub, err = publisher.New(); err != nil {
		return err
	}
	defer c.pub.Close()

	// Publish everything now that there is a publisher.
	c.mutex.Lock()
	c.lasts = make(map[string]string)
	c.publishState()
	c.mutex.Unlock()

	if c.rpc, err = atsock.NewRpcServer(Name); err != nil {
		return err
	}
	defer c.rpc.Close()

	rpc.Register(&c.Info)
	err = redis.Assign(redis.DefaultHash+":"+Prefix, Name, "Info")
	if err != nil {
		return err
	}

	t := time.NewTicker(poll)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return nil
		case <-t.C:
			if err = c.update(); err != nil {
				log.Print("daemon", "err", Name, ": ", err)
			}
		}
	}
}

// Close stops Main. It may be called more than once, and before Main.
func (c *Command) Close() error {
	c.closeStop.Do(func() { close(c.stopped()) })
	return nil
}

func (c *Command) stopped() chan struct{} {
	c.mkStop.Do(func() { c.stop = make(chan struct{}) })
	return c.stop
}

// portConfig reads interface mode and station address from the device
// tree, then applies the command line override.
func (c *Command) portConfig(dtb, node, iface string) (pc enetc.Config,
	mac ethernet.Address, err error) {
	if dtb != "" {
		var b []byte
		var d enetc.DeviceTree
		if b, err = ioutil.ReadFile(dtb); err != nil {
			return
		}
		if d, err = enetc.ParseDeviceTree(b, node); err != nil {
			return
		}
		pc = d.Config()
		mac = d.MacAddress
	}
	if iface != "" {
		if pc.Interface, err = enetc.ParseInterface(iface); err != nil {
			return
		}
	}
	if pc.Interface == enetc.InterfaceNone {
		pc.Interface = enetc.InterfaceRgmii
	}
	return
}

func (c *Command) open(sim bool, resource string) (hw.ReadWriter, error) {
	if sim {
		m := enetc.NewSim(simCaps)
		enetc.SimLinkStatus(m, true, enetc.Speed1000, enetc.DuplexFull)
		return m, nil
	}
	if resource == "" {
		ds, err := pci.Find(pci.VendorNxp, pci.DeviceEnetcPf)
		if err != nil {
			return nil, err
		}
		if len(ds) == 0 {
			return nil, fmt.Errorf("no enetc port found")
		}
		log.Print("daemon", "info", Name, ": ", &ds[0])
		resource = ds[0].ResourcePath(0)
	}
	m, err := hw.NewMmap(resource, 0, enetc.RegSize)
	if err != nil {
		return nil, err
	}
	c.window = m
	return m, nil
}

// release takes the link down and stops the control ring before the
// register window goes away.
func (c *Command) release() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.port != nil && c.port.IsUp() {
		if err := c.port.LinkDown(); err != nil {
			log.Print("daemon", "err", Name, ": ", err)
		}
	}
	if c.cbdr != nil {
		c.cbdr.Disable()
	}
	if c.window != nil {
		c.window.Close()
		c.window = nil
	}
}

func (i *Info) setup(regs hw.ReadWriter, pc enetc.Config,
	mac ethernet.Address) error {
	i.cbdr = enetc.NewCbdr(regs, enetc.DefaultCbdrLen)
	i.port = enetc.New(regs, i.cbdr, pc)
	if err := i.port.Init(); err != nil {
		return err
	}
	if !mac.IsZero() {
		if err := i.port.SetPrimaryMac(0, mac); err != nil {
			return err
		}
	}
	caps := i.port.Caps()
	i.cfg = newConfig(caps.NumSi())
	i.lasts = make(map[string]string)
	log.Print("daemon", "info", Name, ": ", pc.Interface, " ", caps.String())
	return nil
}

// writable lists every field accepted by Hset.
func (i *Info) writable() []string {
	fields := []string{Prefix + "pause", Prefix + "preemption",
		Prefix + "loopback"}
	for si := range i.cfg.si {
		for _, name := range []string{"unicast", "multicast",
			"promisc", "allmulti"} {
			fields = append(fields, siField(si, name))
		}
	}
	return fields
}

// restore applies the fields left in redis by a previous run.
func (i *Info) restore() {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	for _, field := range i.writable() {
		v, err := redis.Hget(redis.DefaultHash, field)
		if err != nil || v == "" {
			continue
		}
		if err = i.set(field, v); err != nil {
			log.Print("daemon", "err", Name, ": restore ", field,
				": ", err)
		}
	}
}

func (i *Info) Hset(args args.Hset, reply *reply.Hset) error {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	err := i.set(args.Field, string(args.Value))
	if err == nil {
		*reply = 1
	}
	return err
}

func (i *Info) set(field, value string) error {
	what, si, err := i.cfg.set(field, value)
	if err != nil {
		return err
	}
	switch what {
	case changeFilter:
		err = i.applyFilter(si)
	case changeLink:
		if i.port.IsUp() {
			err = i.port.LinkUp(i.cfg.link(i.link))
		}
	case changeLoopback:
		err = i.port.SetLoopback(i.cfg.loopback)
	}
	if err != nil {
		return err
	}
	i.publish(field, value)
	i.publishState()
	return nil
}

// applyFilter programs the configured filters of si. A control ring
// failure leaves the table unsynchronized, so one more full apply is
// made before giving up.
func (i *Info) applyFilter(si int) (err error) {
	s := &i.cfg.si[si]
	for try := 0; try < 2; try++ {
		err = i.port.SetRxMode(si, s.uc, s.mc, s.promisc, s.allmulti)
		if !errors.Is(err, enetc.ErrControlRing) {
			break
		}
		log.Print("daemon", "err", Name, ": si", si, ": ", err)
	}
	return
}

// update follows the MAC's link status.
func (i *Info) update() error {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	l, up := i.port.LinkStatus()
	var err error
	switch {
	case up && (!i.port.IsUp() || l.Speed != i.link.Speed ||
		l.Duplex != i.link.Duplex):
		i.link = l
		err = i.port.LinkUp(i.cfg.link(l))
		if err == nil {
			log.Print("daemon", "info", Name, ": link up ", &l)
		}
	case !up && i.port.IsUp():
		err = i.port.LinkDown()
		if err == nil {
			log.Print("daemon", "info", Name, ": link down")
		}
	}
	i.publishState()
	return err
}

func siField(si int, name string) string {
	return Prefix + "si" + strconv.Itoa(si) + "." + name
}

func (i *Info) publishState() {
	link, speed, duplex := "down", "unknown", "unknown"
	if i.port.IsUp() {
		link = "up"
		speed = i.port.Speed().String()
		duplex = i.link.Duplex.String()
	}
	i.publish(Prefix+"link", link)
	i.publish(Prefix+"speed", speed)
	i.publish(Prefix+"duplex", duplex)
	i.publish(Prefix+"interface", i.port.Interface.String())
	i.publish(Prefix+"pause", formatPause(i.cfg.txPause, i.cfg.rxPause))
	i.publish(Prefix+"preemption", strconv.FormatBool(i.cfg.preemption))
	i.publish(Prefix+"loopback", i.port.Loopback().String())
	for si := range i.cfg.si {
		f, err := i.port.FilterState(si)
		if err != nil {
			continue
		}
		i.publish(siField(si, "filter"), f.Mode())
		i.publish(siField(si, "entries"), strconv.Itoa(len(f.Entries)))
		i.publish(siField(si, "uc.hash"),
			fmt.Sprintf("0x%016x", f.Hash[enetc.UC]))
		i.publish(siField(si, "mc.hash"),
			fmt.Sprintf("0x%016x", f.Hash[enetc.MC]))
	}
}

// publish prints k only when its value changed.
func (i *Info) publish(k, v string) {
	if v == i.lasts[k] {
		return
	}
	i.lasts[k] = v
	if i.pub != nil {
		i.pub.Print(k, ": ", v)
	}
}
