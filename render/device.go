// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/raypack/internal/logging"
)

// DeviceHandle provides GPU device access from the host application.
//
// Key principle: render targets RECEIVE the device from the host, they do
// NOT create one. The handle is only inspected for diagnostics; uploads go
// through the gpucontext texture interfaces.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used for headless rendering where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo reports an unknown adapter.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "null", Type: gpucontext.AdapterTypeUnknown}
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}

// logDevice records which adapter a target is attached to.
func logDevice(h DeviceHandle) {
	info := h.AdapterInfo()
	logging.L().Info("render: attached to device",
		"adapter", info.Name,
		"type", info.Type.String(),
		"surface", h.SurfaceFormat())
	if info.Type == gpucontext.AdapterTypeSoftware {
		logging.L().Warn("render: software adapter, uploads will be slow", "adapter", info.Name)
	}
}
