//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"log"
	"sync"

	"github.com/gogpu/gputypes"
	wgpucore "github.com/gogpu/wgpu/core"

	"github.com/gogpu/framecache/core"
)

// gpuDevice owns the shared wgpu instance, adapter, device, and queue.
// All texture surfaces stream through the same device.
type gpuDevice struct {
	mu sync.Mutex

	instance *wgpucore.Instance
	adapter  wgpucore.AdapterID
	device   wgpucore.DeviceID
	queue    wgpucore.QueueID

	initialized bool
}

var sharedDevice gpuDevice

// Init brings up the GPU: instance, adapter, device, queue. Idempotent.
func (d *gpuDevice) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.initialized {
		return nil
	}

	d.instance = wgpucore.NewInstance(&gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
		Flags:    0,
	})

	adapterID, err := d.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	d.adapter = adapterID

	deviceID, err := wgpucore.RequestDevice(adapterID, &gputypes.DeviceDescriptor{
		Label:            "framecache-device",
		RequiredFeatures: nil,
		RequiredLimits:   gputypes.DefaultLimits(),
	})
	if err != nil {
		d.releaseAdapterLocked()
		return fmt.Errorf("surface: device creation failed: %w", err)
	}
	d.device = deviceID

	queueID, err := wgpucore.GetDeviceQueue(deviceID)
	if err != nil {
		d.releaseDeviceLocked()
		d.releaseAdapterLocked()
		return fmt.Errorf("surface: queue retrieval failed: %w", err)
	}
	d.queue = queueID

	d.initialized = true
	return nil
}

// Close releases the GPU resources in reverse order of creation. The
// queue is released with the device.
func (d *gpuDevice) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return
	}
	d.releaseDeviceLocked()
	d.releaseAdapterLocked()
	d.instance = nil
	d.queue = wgpucore.QueueID{}
	d.initialized = false
}

func (d *gpuDevice) releaseDeviceLocked() {
	if d.device.IsZero() {
		return
	}
	if err := wgpucore.DeviceDrop(d.device); err != nil {
		log.Printf("surface: error releasing device: %v", err)
	}
	d.device = wgpucore.DeviceID{}
}

func (d *gpuDevice) releaseAdapterLocked() {
	if d.adapter.IsZero() {
		return
	}
	if err := wgpucore.AdapterDrop(d.adapter); err != nil {
		log.Printf("surface: error releasing adapter: %v", err)
	}
	d.adapter = wgpucore.AdapterID{}
}

// IsInitialized reports whether the device is up.
func (d *gpuDevice) IsInitialized() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.initialized
}

// gpuProbe caches the result of the one-time device bring-up used for
// backend availability.
var gpuProbe struct {
	once sync.Once
	ok   bool
}

func gpuAvailable() bool {
	gpuProbe.once.Do(func() {
		gpuProbe.ok = sharedDevice.Init() == nil
	})
	return gpuProbe.ok
}

// TextureSurface renders on the CPU and streams the finished frame into
// a wgpu texture. The embedded ImageSurface holds the authoritative
// pixels; Present uploads only the rows the dirty regions touch.
type TextureSurface struct {
	ImageSurface

	dev *gpuDevice

	textureID wgpucore.TextureID
	viewID    wgpucore.TextureViewID
	sizeBytes uint64
	released  bool
}

// NewTextureSurface creates a GPU-presented surface. The shared device
// must come up; otherwise the caller should fall back to a software
// surface.
func NewTextureSurface(width, height int, opts ...ImageOption) (*TextureSurface, error) {
	if err := sharedDevice.Init(); err != nil {
		return nil, err
	}
	s := &TextureSurface{
		ImageSurface: *NewImageSurface(width, height, opts...),
		dev:          &sharedDevice,
	}
	if err := s.createTexture(); err != nil {
		return nil, err
	}
	return s, nil
}

// createTexture sizes the logical GPU texture to the CPU image.
//
// TODO: create the wgpu texture via core.CreateTexture once wgpu
// exposes texture creation; until then the IDs stay zero and the
// surface tracks the logical allocation only.
func (s *TextureSurface) createTexture() error {
	if !s.dev.IsInitialized() {
		return ErrNotInitialized
	}
	w, h := s.Size()
	s.sizeBytes = uint64(w) * uint64(h) * 4
	s.textureID = wgpucore.TextureID{}
	s.viewID = wgpucore.TextureViewID{}
	return nil
}

// SizeBytes returns the logical texture size in bytes.
func (s *TextureSurface) SizeBytes() uint64 { return s.sizeBytes }

// Present uploads the dirty regions to the texture. Rows are packed
// into contiguous spans so each region is one queue write.
//
// TODO: issue core.QueueWriteTexture per region once wgpu exposes it;
// the row packing below already produces the TextureDataLayout strides
// the call needs.
func (s *TextureSurface) Present(dirty []core.Rect) error {
	if s.released {
		return ErrSurfaceClosed
	}
	if !s.dev.IsInitialized() {
		return ErrNotInitialized
	}
	if len(dirty) == 0 {
		return nil
	}

	img := s.Image()
	for _, r := range dirty {
		if r.Empty() {
			continue
		}
		span := make([]byte, 0, r.W*r.H*4)
		for y := r.Y; y < r.Y+r.H; y++ {
			off := y*img.Stride + r.X*4
			span = append(span, img.Pix[off:off+r.W*4]...)
		}
		_ = span
	}
	return s.ImageSurface.Present(dirty)
}

// Resize reallocates the CPU image and the logical texture.
func (s *TextureSurface) Resize(w, h int) error {
	if s.released {
		return ErrSurfaceClosed
	}
	if err := s.ImageSurface.Resize(w, h); err != nil {
		return err
	}
	return s.createTexture()
}

// Close releases the surface. The shared device stays up for other
// surfaces. Close is idempotent.
func (s *TextureSurface) Close() error {
	if s.released {
		return nil
	}
	s.released = true
	s.textureID = wgpucore.TextureID{}
	s.viewID = wgpucore.TextureViewID{}
	return s.ImageSurface.Close()
}

func init() {
	Register("gpu", 100, func(opts Options) (Surface, error) {
		sc := opts.scaleOrDefault()
		return NewTextureSurface(opts.Width, opts.Height, WithSurfaceScale(sc, sc))
	}, gpuAvailable)
}
