// Copyright 2026 The pixeloid Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/pixeloid/pixeloid"
)

// Invalidator is a StoreObserver collapsing change notifications into a
// single dirty flag, so a host can schedule a frame only when the
// document actually changed instead of rendering continuously.
//
// Safe for concurrent use: a store may notify from any goroutine while
// the host loop polls Consume.
type Invalidator struct {
	dirty atomic.Bool
}

var _ StoreObserver = (*Invalidator)(nil)

// ObjectAdded marks the next frame dirty.
func (v *Invalidator) ObjectAdded(*pixeloid.Object) { v.dirty.Store(true) }

// ObjectMutated marks the next frame dirty.
func (v *Invalidator) ObjectMutated(*pixeloid.Object) { v.dirty.Store(true) }

// ObjectRemoved marks the next frame dirty.
func (v *Invalidator) ObjectRemoved(uuid.UUID) { v.dirty.Store(true) }

// Consume reports whether any change arrived since the last call and
// clears the flag. The typical host loop renders a frame only when
// Consume returns true.
func (v *Invalidator) Consume() bool {
	return v.dirty.Swap(false)
}
