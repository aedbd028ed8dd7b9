// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"
)

func TestRegistryPriorityOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("low", 10, func(opts Options) (Surface, error) {
		return NewImageSurface(opts.Width, opts.Height), nil
	}, nil)
	r.Register("high", 100, func(opts Options) (Surface, error) {
		return NewImageSurface(opts.Width, opts.Height), nil
	}, nil)

	got := r.List()
	if len(got) != 2 || got[0] != "high" || got[1] != "low" {
		t.Errorf("List() = %v, want [high low]", got)
	}
}

func TestRegistryAvailableFilter(t *testing.T) {
	r := NewRegistry()
	r.Register("broken", 100, func(opts Options) (Surface, error) {
		return NewImageSurface(opts.Width, opts.Height), nil
	}, func() bool { return false })
	r.Register("working", 10, func(opts Options) (Surface, error) {
		return NewImageSurface(opts.Width, opts.Height), nil
	}, nil)

	got := r.Available()
	if len(got) != 1 || got[0] != "working" {
		t.Errorf("Available() = %v, want [working]", got)
	}
}

func TestRegistryNewFallsThrough(t *testing.T) {
	r := NewRegistry()
	r.Register("failing", 100, func(opts Options) (Surface, error) {
		return nil, errors.New("boom")
	}, nil)
	r.Register("working", 10, func(opts Options) (Surface, error) {
		return NewImageSurface(opts.Width, opts.Height), nil
	}, nil)

	s, err := r.New(Options{Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()
	if _, ok := s.(*ImageSurface); !ok {
		t.Errorf("New() surface type = %T, want *ImageSurface", s)
	}
}

func TestRegistryNewEmpty(t *testing.T) {
	r := NewRegistry()
	if _, err := r.New(Options{Width: 1, Height: 1}); !errors.Is(err, ErrNoBackendAvailable) {
		t.Errorf("New() error = %v, want ErrNoBackendAvailable", err)
	}
}

func TestRegistryNewByNameNotFound(t *testing.T) {
	r := NewRegistry()
	_, err := r.NewByName("missing", Options{Width: 1, Height: 1})
	var nf *BackendNotFoundError
	if !errors.As(err, &nf) || nf.Name != "missing" {
		t.Errorf("NewByName() error = %v, want BackendNotFoundError{missing}", err)
	}
}

func TestRegistryNewByNameUnavailable(t *testing.T) {
	r := NewRegistry()
	r.Register("off", 10, func(opts Options) (Surface, error) {
		return NewImageSurface(opts.Width, opts.Height), nil
	}, func() bool { return false })

	_, err := r.NewByName("off", Options{Width: 1, Height: 1})
	var ua *BackendUnavailableError
	if !errors.As(err, &ua) || ua.Name != "off" {
		t.Errorf("NewByName() error = %v, want BackendUnavailableError{off}", err)
	}
}

func TestGlobalSoftwareBackend(t *testing.T) {
	s, err := NewByName("software", Options{Width: 16, Height: 16, Scale: 2})
	if err != nil {
		t.Fatalf("NewByName(software) error = %v", err)
	}
	defer s.Close()

	sx, sy := s.Scale()
	if sx != 2 || sy != 2 {
		t.Errorf("Scale() = (%v, %v), want (2, 2)", sx, sy)
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("temp", 10, func(opts Options) (Surface, error) {
		return NewImageSurface(opts.Width, opts.Height), nil
	}, nil)
	r.Unregister("temp")
	if _, ok := r.Get("temp"); ok {
		t.Error("Get() found backend after Unregister")
	}
}
