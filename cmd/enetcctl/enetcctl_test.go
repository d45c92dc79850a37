// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package enetcctl

import (
	"bytes"
	"testing"

	"github.com/platinasystems/enetc/internal/test"
)

func TestFieldName(t *testing.T) {
	assert := test.Assert{TB: t}
	assert.Equal(fieldName("pause"), "enetc.pause")
	assert.Equal(fieldName("si1.unicast"), "enetc.si1.unicast")
	assert.Equal(fieldName("enetc.loopback"), "enetc.loopback")
}

func TestShow(t *testing.T) {
	assert := test.Assert{TB: t}
	fields := map[string]string{
		"enetc.si0.filter":  "exact",
		"enetc.link":        "up",
		"enetc.si1.filter":  "hash",
		"fan_tray.1.status": "ok",
	}

	var b bytes.Buffer
	show(&b, fields, "")
	assert.Equal(b.String(), "enetc.link: up\n"+
		"enetc.si0.filter: exact\n"+
		"enetc.si1.filter: hash\n")

	b.Reset()
	show(&b, fields, "si1.")
	assert.Equal(b.String(), "enetc.si1.filter: hash\n")
}
