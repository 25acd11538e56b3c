// Copyright 2026 The pixeloid Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render ties the pipeline together: once per rendering tick
// it recomputes the coordinate mapping, derives metadata, syncs the
// texture cache, reconciles the compositor's display nodes, and hands
// the display tree to the presentation surface.
//
// The pipeline is single-threaded and frame-driven: one full pass
// executes synchronously per tick, and object mutations are applied
// between frames, never concurrently with a pass.
package render

import (
	"github.com/google/uuid"

	"github.com/pixeloid/pixeloid"
	"github.com/pixeloid/pixeloid/compose"
)

// ObjectStore is the document-level object collection the pipeline
// consumes. The store owns objects and layer visibility flags; the
// pipeline reads both once per frame.
type ObjectStore interface {
	// ListObjects returns the current object set. The pipeline iterates
	// the returned slice within the frame and does not retain it.
	ListObjects() []*pixeloid.Object

	// SelectedIDs returns the ids whose selection highlight should be
	// shown on the selection layer.
	SelectedIDs() []uuid.UUID

	// LayerVisible reports whether a logical layer should be presented.
	LayerVisible(layer string) bool
}

// StoreObserver receives change notifications from an object store.
// Hosts can use it to schedule dirty frames instead of rendering
// continuously. The pipeline itself does not require it: a frame pass
// reconciles against the store's current state regardless.
type StoreObserver interface {
	ObjectAdded(obj *pixeloid.Object)
	ObjectMutated(obj *pixeloid.Object)
	ObjectRemoved(id uuid.UUID)
}

// Surface is the presentation boundary: the pipeline owns display tree
// construction, the surface owns pixel output.
type Surface interface {
	// Present outputs the compositor's current display tree.
	Present(c *compose.Compositor) error
}
