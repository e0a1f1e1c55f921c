// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/raypack/pixel"

// Option configures a GPU-backed render target.
type Option func(*options)

type options struct {
	device      DeviceHandle
	depthFormat pixel.Format
	accum       bool
}

func defaultOptions() options {
	return options{depthFormat: pixel.Unspecified}
}

// WithDevice attaches the host device. It is used for diagnostics only;
// targets never allocate through it.
func WithDevice(h DeviceHandle) Option {
	return func(o *options) { o.device = h }
}

// WithDepth adds a depth buffer of the given format.
func WithDepth(f pixel.Format) Option {
	return func(o *options) { o.depthFormat = f }
}

// WithAccumBuffer adds an RGBA32F accumulation buffer (GPUBuffer only).
func WithAccumBuffer() Option {
	return func(o *options) { o.accum = true }
}
