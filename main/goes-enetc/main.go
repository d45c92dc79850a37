// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// This is the enetc port daemon and its control command, run w/in another
// distro alongside redisd.
package main

import (
	"github.com/platinasystems/enetc/cmd/enetcctl"
	"github.com/platinasystems/enetc/cmd/enetcd"
	"github.com/platinasystems/enetc/internal/goes"
)

func main() {
	g := make(goes.ByName)
	g.Plot(new(enetcd.Command), new(enetcctl.Command))
	g.Main()
}
