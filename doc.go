// Package pixart provides the data model of a pixel-art editor.
//
// # Overview
//
// pixart is the raster editing core behind a grid-based drawing program: a
// document of fixed-size RGBA layers, animation frames that each own a copy
// of the layer stack, and the operations that edit them. Presentation (event
// wiring, widgets, displays) lives outside; it calls into this package and
// repaints.
//
// # Quick Start
//
//	doc := pixart.NewDocument(32, 32)
//	doc.ActiveLayer().Pixels.SetPixel(1, 1, pixart.Hex("#FF0000"))
//	img := doc.Composite() // flattened RGBA
//
// # Architecture
//
// The module is organized into:
//   - pixart: Color, Pixmap, Layer, Frame, Document, Composite
//   - raster: brush footprints, Bresenham lines, flood fill, rectangles
//   - history: linear undo/redo of layer-stack snapshots
//   - viewport: screen to logical pixel mapping under zoom and pan
//   - tool: pointer-event state machines for every editing tool
//   - anim: frame playback over a pluggable scheduler, onion skin
//   - render: the drawing surface abstraction used by a display
//   - project: JSON project files, PNG/GIF/PDF export, image import
//   - config: TOML editor preferences
//   - editor: a Session wiring all of the above together
//
// # Ownership
//
// Every pixel buffer belongs to exactly one container: the live layer stack,
// one frame, or one history entry. Moving data between containers always
// copies (see [Layer.Clone] and [CloneLayers]); buffers are never shared.
//
// # Coordinate System
//
// Logical pixels, origin (0,0) at top-left, X increases right, Y increases
// down. Buffers are row-major RGBA with straight alpha; the byte offset of
// (x, y) is (y*width+x)*4.
package pixart
