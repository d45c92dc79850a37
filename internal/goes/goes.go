// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package goes runs one of several plotted commands by name.
package goes

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/platinasystems/flags"
	"github.com/platinasystems/log"
)

const (
	Builtin Kind = 1 + iota
	Daemon
)

var Exit = os.Exit

type Kind int

type ByName map[string]*Goes

type Goes struct {
	Name    string
	Close   func() error
	Main    func(...string) error
	Kind    Kind
	Usage   string
	Apropos string
}

type aproposer interface {
	Apropos() string
}

type kinder interface {
	Kind() Kind
}

type mainer interface {
	Main(...string) error
}

type usager interface {
	Usage() string
}

func (byName ByName) Keys() []string {
	keys := make([]string, 0, len(byName))
	for k := range byName {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Plot commands on map.
func (byName ByName) Plot(cmds ...interface{}) {
	for _, v := range cmds {
		g := new(Goes)
		if method, found := v.(fmt.Stringer); found {
			g.Name = method.String()
		} else {
			panic(fmt.Errorf("%T: doesn't have String method", v))
		}
		if _, found := byName[g.Name]; found {
			panic(fmt.Errorf("%s: duplicate", g.Name))
		}
		if method, found := v.(mainer); found {
			g.Main = method.Main
		} else {
			panic(fmt.Errorf("%s: doesn't have Main method",
				g.Name))
		}
		if method, found := v.(io.Closer); found {
			g.Close = method.Close
		}
		if method, found := v.(kinder); found {
			g.Kind = method.Kind()
		}
		if method, found := v.(usager); found {
			g.Usage = method.Usage()
		}
		if method, found := v.(aproposer); found {
			g.Apropos = method.Apropos()
		}
		byName[g.Name] = g
	}
}

// Main runs the args[0] command. When run w/o args this uses os.Args,
// skipping the program name unless it is itself a command, and exits
// instead of returns on error.
//
// "-h", "-help" or "--help" print the command usage.
//
// Daemons run in the foreground until SIGTERM or SIGINT, which calls
// their Close method.
func (byName ByName) Main(args ...string) (err error) {
	isDaemon := false
	if len(args) == 0 {
		args = os.Args
		if len(args) > 0 {
			if _, found := byName[filepath.Base(args[0])]; found {
				args[0] = filepath.Base(args[0])
			} else {
				args = args[1:]
			}
		}
		defer func() {
			if err != nil && err != io.EOF {
				if isDaemon {
					log.Print("daemon", "err", err)
				}
				fmt.Fprintf(os.Stderr, "%s: %v\n",
					filepath.Base(os.Args[0]), err)
				Exit(1)
			}
		}()
	}
	if len(args) == 0 {
		byName.help()
		return
	}
	name := args[0]
	flag, args := flags.New(args[1:], "-h", "-help", "--help")
	g := byName[name]
	if g == nil {
		if flag.ByName["-h"] || flag.ByName["-help"] ||
			flag.ByName["--help"] || name == "help" {
			byName.help()
			return
		}
		return fmt.Errorf("%s: command not found", name)
	}
	if flag.ByName["-h"] || flag.ByName["-help"] || flag.ByName["--help"] {
		fmt.Println("usage:", g.Usage)
		return
	}
	isDaemon = g.Kind == Daemon
	if isDaemon && g.Close != nil {
		sigch := make(chan os.Signal, 1)
		done := make(chan struct{})
		signal.Notify(sigch, syscall.SIGTERM, syscall.SIGINT)
		defer func() {
			signal.Stop(sigch)
			close(done)
		}()
		go func() {
			select {
			case <-sigch:
				log.Print("daemon", "info", name, ": stopping")
				g.Close()
			case <-done:
			}
		}()
	}
	return g.Main(args...)
}

func (byName ByName) help() {
	for _, k := range byName.Keys() {
		g := byName[k]
		format := "%-15s %s\n"
		if len(k) >= 16 {
			format = "%s\n\t\t%s\n"
		}
		fmt.Printf(format, k, strings.TrimSpace(g.Apropos))
	}
}
