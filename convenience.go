// Copyright 2026 The Nex Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nex

import "sync"

// defaultPort is the process-wide Port used by the package-level
// convenience wrappers below. It is a compatibility surface over the
// explicit-Port API, not part of this package's conceptual model: a
// program that only ever talks to one EtherCAT network can skip
// threading a *Port through every call, at the cost of losing the
// ability to run more than one master in the same process.
var (
	defaultPortMu sync.Mutex
	defaultPort   *Port
)

// SetDefaultTransport binds the package-level convenience wrappers to
// transport, replacing whatever default Port existed before. It must be
// called once before using any of BWR/BRD/APRD/.../LRWDC as
// package-level functions.
func SetDefaultTransport(transport Transport, opts ...Option) error {
	port, err := Open(transport, opts...)
	if err != nil {
		return err
	}
	defaultPortMu.Lock()
	defaultPort = port
	defaultPortMu.Unlock()
	return nil
}

func currentDefaultPort() (*Port, error) {
	defaultPortMu.Lock()
	defer defaultPortMu.Unlock()
	if defaultPort == nil {
		return nil, ErrInvalidArgument
	}
	return defaultPort, nil
}

// BWR forwards to the default Port's BWR. See (*Port).BWR.
func BWR(ado uint16, data []byte, timeoutUS int) (wkc int, err error) {
	p, err := currentDefaultPort()
	if err != nil {
		return 0, err
	}
	return p.BWR(ado, data, timeoutUS)
}

// BRD forwards to the default Port's BRD. See (*Port).BRD.
func BRD(ado uint16, data []byte, timeoutUS int) (wkc int, err error) {
	p, err := currentDefaultPort()
	if err != nil {
		return 0, err
	}
	return p.BRD(ado, data, timeoutUS)
}

// APRD forwards to the default Port's APRD. See (*Port).APRD.
func APRD(position uint16, ado uint16, data []byte, timeoutUS int) (wkc int, err error) {
	p, err := currentDefaultPort()
	if err != nil {
		return 0, err
	}
	return p.APRD(position, ado, data, timeoutUS)
}

// APWR forwards to the default Port's APWR. See (*Port).APWR.
func APWR(position uint16, ado uint16, data []byte, timeoutUS int) (wkc int, err error) {
	p, err := currentDefaultPort()
	if err != nil {
		return 0, err
	}
	return p.APWR(position, ado, data, timeoutUS)
}

// FPRD forwards to the default Port's FPRD. See (*Port).FPRD.
func FPRD(station uint16, ado uint16, data []byte, timeoutUS int) (wkc int, err error) {
	p, err := currentDefaultPort()
	if err != nil {
		return 0, err
	}
	return p.FPRD(station, ado, data, timeoutUS)
}

// FPWR forwards to the default Port's FPWR. See (*Port).FPWR.
func FPWR(station uint16, ado uint16, data []byte, timeoutUS int) (wkc int, err error) {
	p, err := currentDefaultPort()
	if err != nil {
		return 0, err
	}
	return p.FPWR(station, ado, data, timeoutUS)
}

// LRWDC forwards to the default Port's LRWDC. See (*Port).LRWDC.
func LRWDC(logAddr uint32, data []byte, dcRefStation uint16, dcTime *int64, timeoutUS int) (wkc int, err error) {
	p, err := currentDefaultPort()
	if err != nil {
		return 0, err
	}
	return p.LRWDC(logAddr, data, dcRefStation, dcTime, timeoutUS)
}
