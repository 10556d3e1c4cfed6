package wgpu

import "errors"

// Package errors for the wgpu backend.
var (
	// ErrNilDevice is returned when the backend is created without a device or queue.
	ErrNilDevice = errors.New("wgpu: device is nil")

	// ErrUnsupportedDevice is returned when a DeviceProvider does not expose
	// HAL device and queue handles.
	ErrUnsupportedDevice = errors.New("wgpu: device provider does not expose a HAL device")
)
