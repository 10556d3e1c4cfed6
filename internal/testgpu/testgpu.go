// Package testgpu provides a headless gpucontext.DeviceProvider backed by
// the wgpu noop HAL for tests.
package testgpu

import (
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// Provider implements gpucontext.DeviceProvider on a noop device.
type Provider struct {
	device hal.Device
	queue  hal.Queue
	info   gpucontext.AdapterInfo
}

// New opens a noop device and returns a provider reporting the given
// adapter type. The device is destroyed when the test ends.
func New(t testing.TB, adapterType gpucontext.AdapterType) *Provider {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return &Provider{
		device: openDev.Device,
		queue:  openDev.Queue,
		info:   gpucontext.AdapterInfo{Name: adapters[0].Info.Name, Type: adapterType},
	}
}

func (p *Provider) Device() gpucontext.Device             { return p.device }
func (p *Provider) Queue() gpucontext.Queue               { return p.queue }
func (p *Provider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatUndefined }
func (p *Provider) Adapter() gpucontext.Adapter           { return nil }
func (p *Provider) AdapterInfo() gpucontext.AdapterInfo   { return p.info }
func (p *Provider) HALDevice() hal.Device                 { return p.device }
func (p *Provider) HALQueue() hal.Queue                   { return p.queue }
