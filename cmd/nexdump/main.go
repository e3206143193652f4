//go:build linux

// Copyright 2026 The Nex Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command nexdump opens a raw EtherCAT port on one interface and
// broadcasts a single BRD against register 0x0000 (the slave-count
// probe every EtherCAT master issues first), printing the working
// counter it gets back.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/wjecat/nex"
	"github.com/wjecat/nex/internal/transport"
)

func main() {
	iface := pflag.StringP("iface", "i", "eth0", "network interface to bind the raw EtherCAT socket to")
	timeoutUS := pflag.IntP("timeout", "t", nex.NexTimeoutRet, "per-datagram timeout in microseconds")
	slots := pflag.IntP("slots", "s", nex.DefaultOptions.SlotCount, "transaction slot count")
	pflag.Parse()

	raw, err := transport.OpenRaw(*iface, *slots)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nexdump: open %s: %v\n", *iface, err)
		os.Exit(1)
	}
	defer raw.Close()

	port, err := nex.Open(raw, nex.WithSlotCount(*slots))
	if err != nil {
		fmt.Fprintf(os.Stderr, "nexdump: %v\n", err)
		os.Exit(1)
	}

	var probe [2]byte
	wkc, err := port.BRD(0x0000, probe[:], *timeoutUS)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nexdump: BRD: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("slaves responding: %d (register 0x0000 = %#04x%02x)\n", wkc, probe[1], probe[0])
}
