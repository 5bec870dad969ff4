// Copyright (c) 2026 The wlmaker-sub002 authors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package stats

import (
	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"github.com/pkg/errors"
	"gitlab.com/mstarongitlab/goutils/sliceutils"
	"golang.org/x/sys/unix"
)

// sizeofIfinfomsg is the fixed header preceding link attributes.
const sizeofIfinfomsg = 16

// linkCounters is one interface's cumulative byte counters.
type linkCounters struct {
	name   string
	rx, tx uint64
	valid  bool
}

// newNetlinkCounters opens an rtnetlink socket and returns a counter
// function that dumps all links and sums their 64-bit byte counters,
// skipping loopback.
func newNetlinkCounters() (counterFunc, func() error, error) {
	conn, err := netlink.Dial(unix.NETLINK_ROUTE, nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "dialing rtnetlink")
	}
	counters := func() (uint64, uint64, error) {
		msgs, err := conn.Execute(netlink.Message{
			Header: netlink.Header{
				Type:  unix.RTM_GETLINK,
				Flags: netlink.Request | netlink.Dump,
			},
			Data: make([]byte, sizeofIfinfomsg),
		})
		if err != nil {
			return 0, 0, errors.Wrap(err, "dumping links")
		}
		links := make([]linkCounters, 0, len(msgs))
		for _, m := range msgs {
			if m.Header.Type != unix.RTM_NEWLINK {
				continue
			}
			lc, err := parseLink(m.Data)
			if err != nil {
				return 0, 0, err
			}
			links = append(links, lc)
		}
		counted := sliceutils.Filter(links, func(lc linkCounters) bool {
			return lc.valid && lc.name != "lo"
		})
		var rx, tx uint64
		for _, lc := range counted {
			rx += lc.rx
			tx += lc.tx
		}
		return rx, tx, nil
	}
	return counters, conn.Close, nil
}

// parseLink extracts IFLA_IFNAME and the IFLA_STATS64 byte counters
// from one RTM_NEWLINK payload. Counters are native endian; rx_bytes
// and tx_bytes sit at offsets 16 and 24 of rtnl_link_stats64.
func parseLink(data []byte) (linkCounters, error) {
	var lc linkCounters
	if len(data) < sizeofIfinfomsg {
		return lc, errors.New("short ifinfomsg")
	}
	ad, err := netlink.NewAttributeDecoder(data[sizeofIfinfomsg:])
	if err != nil {
		return lc, errors.Wrap(err, "decoding link attributes")
	}
	for ad.Next() {
		switch ad.Type() {
		case unix.IFLA_IFNAME:
			lc.name = ad.String()
		case unix.IFLA_STATS64:
			b := ad.Bytes()
			if len(b) >= 32 {
				lc.rx = nlenc.Uint64(b[16:24])
				lc.tx = nlenc.Uint64(b[24:32])
				lc.valid = true
			}
		}
	}
	if err := ad.Err(); err != nil {
		return lc, errors.Wrap(err, "decoding link attributes")
	}
	return lc, nil
}
