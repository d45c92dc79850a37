// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package enetcctl shows and sets the redis fields of the enetc daemon.
package enetcctl

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	redigo "github.com/garyburd/redigo/redis"
	"github.com/platinasystems/enetc/cmd/enetcd"
	"github.com/platinasystems/parms"
	"github.com/platinasystems/redis"
)

const Name = "enetcctl"

type Command struct{}

func (*Command) String() string { return Name }

func (*Command) Usage() string {
	return Name + ` [-key HASH] show [PATTERN]
	` + Name + ` [-key HASH] set FIELD VALUE`
}

func (*Command) Apropos() string {
	return "show or set enetc port fields"
}

func (*Command) Main(args ...string) error {
	parm, args := parms.New(args, "-key")
	key := parm.ByName["-key"]
	if key == "" {
		key = redis.DefaultHash
	}
	if len(args) == 0 {
		args = []string{"show"}
	}
	switch args[0] {
	case "show":
		pattern := ""
		switch len(args) {
		case 1:
		case 2:
			pattern = args[1]
		default:
			return fmt.Errorf("%v: unexpected", args[2:])
		}
		fields, err := hgetall(key)
		if err != nil {
			return err
		}
		show(os.Stdout, fields, pattern)
	case "set":
		if len(args) != 3 {
			return fmt.Errorf("usage: %s set FIELD VALUE", Name)
		}
		_, err := redis.Hset(key, fieldName(args[1]), args[2])
		return err
	default:
		return fmt.Errorf("%s: unknown", args[0])
	}
	return nil
}

func hgetall(key string) (map[string]string, error) {
	r, err := redis.Connect()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return redigo.StringMap(r.Do("HGETALL", key))
}

// fieldName adds the daemon prefix to short field names.
func fieldName(s string) string {
	if strings.HasPrefix(s, enetcd.Prefix) {
		return s
	}
	return enetcd.Prefix + s
}

// show prints the daemon's fields containing pattern in field order.
func show(w io.Writer, fields map[string]string, pattern string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if strings.HasPrefix(k, enetcd.Prefix) &&
			strings.Contains(k, pattern) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprint(w, redis.Quotes(k), ": ", redis.Quotes(fields[k]), "\n")
	}
}
