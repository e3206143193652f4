// Copyright 2026 The Nex Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nex

// Options configures a Port. The zero value is not usable directly; use
// DefaultOptions as the base, as Open does internally.
type Options struct {
	// SlotCount bounds the number of transaction indices this Port's
	// own per-slot bookkeeping (frame length, last sub-header offset)
	// is sized for. It must be >= whatever the Transport's own pool
	// hands out; GetIndex returning an index >= SlotCount is a usage
	// error. 8 matches the conventional EtherCAT master pool size.
	SlotCount int

	// DefaultTimeoutUS is stored with the Port's options but is not read
	// by any function in this package: both the explicit-port primitives
	// and the convenience wrappers in convenience.go take an explicit
	// timeout per call.
	DefaultTimeoutUS int
}

// DefaultOptions mirrors the conventional EtherCAT master configuration:
// an 8-slot transaction pool and a 2000us per-primitive timeout.
var DefaultOptions = Options{
	SlotCount:        8,
	DefaultTimeoutUS: NexTimeoutRet,
}

// Option configures a Port at Open time.
type Option func(*Options)

// WithSlotCount overrides the number of transaction slots this Port's
// bookkeeping tracks.
func WithSlotCount(n int) Option {
	return func(o *Options) { o.SlotCount = n }
}

// WithDefaultTimeout overrides Options.DefaultTimeoutUS. No primitive or
// convenience wrapper reads that value; each takes its own timeout.
func WithDefaultTimeout(us int) Option {
	return func(o *Options) { o.DefaultTimeoutUS = us }
}
