// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ethernet

import (
	"testing"
)

func TestParseAddress(t *testing.T) {
	want := Address{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0x01}
	for _, s := range []string{
		"aa:bb:cc:dd:ee:01",
		"AA:BB:CC:DD:EE:01",
		"aa-bb-cc-dd-ee-01",
		"aabb.ccdd.ee01",
	} {
		a, err := ParseAddress(s)
		if err != nil {
			t.Errorf("%s: %v", s, err)
			continue
		}
		if !a.Equal(want) {
			t.Errorf("%s: got %v want %v", s, &a, &want)
		}
	}
	for _, s := range []string{
		"",
		"aa:bb:cc:dd:ee",
		"aa:bb:cc:dd:ee:01:02:03",
		"zz:bb:cc:dd:ee:01",
	} {
		if _, err := ParseAddress(s); err == nil {
			t.Errorf("%q: expected error", s)
		}
	}
}

func TestAddressKind(t *testing.T) {
	for _, x := range []struct {
		s         string
		multicast bool
		broadcast bool
	}{
		{"00:04:9f:01:02:03", false, false},
		{"01:00:5e:00:00:01", true, false},
		{"33:33:00:00:00:01", true, false},
		{"ff:ff:ff:ff:ff:ff", true, true},
		{"02:00:00:00:00:01", false, false},
	} {
		a, err := ParseAddress(x.s)
		if err != nil {
			t.Fatal(err)
		}
		if a.IsMulticast() != x.multicast {
			t.Errorf("%s: multicast %v", x.s, a.IsMulticast())
		}
		if a.IsUnicast() == x.multicast {
			t.Errorf("%s: unicast %v", x.s, a.IsUnicast())
		}
		if a.IsBroadcast() != x.broadcast {
			t.Errorf("%s: broadcast %v", x.s, a.IsBroadcast())
		}
	}
}

func TestAddressUint64(t *testing.T) {
	a := Address{0x00, 0x04, 0x9f, 0x01, 0x02, 0x03}
	x := a.ToUint64()
	if x != 0x00049f010203 {
		t.Fatalf("got 0x%x", x)
	}
	var b Address
	b.FromUint64(x)
	if !b.Equal(a) {
		t.Errorf("got %v want %v", &b, &a)
	}
}

func TestParseAddresses(t *testing.T) {
	as, err := ParseAddresses("00:04:9f:01:02:03, 01:00:5e:00:00:01")
	if err != nil {
		t.Fatal(err)
	}
	if len(as) != 2 {
		t.Fatalf("got %d addresses", len(as))
	}
	if s := FormatAddresses(as); s != "00:04:9f:01:02:03,01:00:5e:00:00:01" {
		t.Errorf("format %q", s)
	}
	if as, err = ParseAddresses(""); err != nil || len(as) != 0 {
		t.Errorf("empty list: %v %v", as, err)
	}
	if _, err = ParseAddresses("00:04:9f:01:02:03,bogus"); err == nil {
		t.Error("expected error")
	}
}
