// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ethernet

import (
	"fmt"
	"net"
	"strings"
)

func (a *Address) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", a[0], a[1], a[2], a[3], a[4], a[5])
}

// ParseAddress accepts aa:bb:cc:dd:ee:ff, aa-bb-cc-dd-ee-ff and aabb.ccdd.eeff.
func ParseAddress(s string) (a Address, err error) {
	hw, err := net.ParseMAC(s)
	if err == nil && len(hw) != AddressBytes {
		err = fmt.Errorf("%d byte address", len(hw))
	}
	if err != nil {
		err = fmt.Errorf("%q: invalid ethernet address: %v", s, err)
		return
	}
	copy(a[:], hw)
	return
}

// ParseAddresses parses a comma or space separated address list.
// An empty string is an empty list.
func ParseAddresses(s string) (as []Address, err error) {
	f := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	for _, x := range f {
		var a Address
		if a, err = ParseAddress(x); err != nil {
			return nil, err
		}
		as = append(as, a)
	}
	return
}

// FormatAddresses is the inverse of ParseAddresses.
func FormatAddresses(as []Address) string {
	s := make([]string, len(as))
	for i := range as {
		s[i] = as[i].String()
	}
	return strings.Join(s, ",")
}
