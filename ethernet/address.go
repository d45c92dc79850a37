// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ethernet

const AddressBytes = 6

type Address [AddressBytes]byte

var BroadcastAddr = Address{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

const (
	isGroup               = 1 << 0
	isLocallyAdministered = 1 << 1
)

// IsMulticast is true for group addresses, broadcast included.
func (a *Address) IsMulticast() bool {
	return a[0]&isGroup != 0
}
func (a *Address) IsBroadcast() bool {
	return *a == BroadcastAddr
}
func (a *Address) IsLocallyAdministered() bool {
	return a[0]&isLocallyAdministered != 0
}
func (a *Address) IsUnicast() bool {
	return !a.IsMulticast()
}
func (a *Address) IsZero() bool {
	return *a == Address{}
}

func (a *Address) FromUint64(x uint64) {
	for i := 0; i < AddressBytes; i++ {
		a[i] = byte((x >> uint(40-8*i)) & 0xff)
	}
}

// ToUint64 packs a[0] into bits [47:40].
func (a *Address) ToUint64() (x uint64) {
	for i := 0; i < AddressBytes; i++ {
		x |= uint64(a[i]) << uint(40-8*i)
	}
	return
}

func (a *Address) Equal(b Address) bool {
	return *a == b
}
