package pixart

import (
	"errors"
	"image"
	"testing"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument(8, 6)
	if doc.Width() != 8 || doc.Height() != 6 {
		t.Fatalf("size = %dx%d, want 8x6", doc.Width(), doc.Height())
	}
	if doc.LayerCount() != 1 || doc.Layer(0).Name != "Layer 1" {
		t.Errorf("layers = %d (%q), want one \"Layer 1\"", doc.LayerCount(), doc.Layer(0).Name)
	}
	if doc.FrameCount() != 1 || doc.Frame(0).Name != "Frame 1" {
		t.Errorf("frames = %d, want one \"Frame 1\"", doc.FrameCount())
	}
	if doc.Frame(0).Layers[0].Pixels == doc.Layer(0).Pixels {
		t.Error("frame snapshot aliases the live layer buffer")
	}
	if doc.Tool() != ToolBrush || doc.ActiveColor() != Black || doc.BrushSize() != 1 {
		t.Errorf("defaults = %v %v %d", doc.Tool(), doc.ActiveColor(), doc.BrushSize())
	}
	if len(doc.Palette()) != 10 {
		t.Errorf("palette has %d colors, want 10", len(doc.Palette()))
	}

	doc = NewDocument(0, -3)
	if doc.Width() != 1 || doc.Height() != 1 {
		t.Errorf("non-positive size = %dx%d, want 1x1", doc.Width(), doc.Height())
	}
}

func TestNewDocumentOptions(t *testing.T) {
	doc := NewDocument(4, 4,
		WithPalette([]Color{Red, Red, Blue}),
		WithBrush(3, ShapeCircle),
		WithFillTolerance(400),
		WithActiveColor(Green),
	)
	if got := doc.Palette(); len(got) != 2 || got[0] != Red || got[1] != Blue {
		t.Errorf("palette = %v, want [red blue]", got)
	}
	if doc.BrushSize() != 3 || doc.BrushShape() != ShapeCircle {
		t.Errorf("brush = %d %v", doc.BrushSize(), doc.BrushShape())
	}
	if doc.FillTolerance() != 255 {
		t.Errorf("tolerance = %d, want 255 (clamped)", doc.FillTolerance())
	}
	if doc.ActiveColor() != Green {
		t.Errorf("color = %v, want green", doc.ActiveColor())
	}
}

// TestBrushExample covers the 4x4 end-to-end drawing example.
func TestBrushExample(t *testing.T) {
	doc := NewDocument(4, 4)
	doc.ActiveLayer().Pixels.SetPixel(1, 1, Hex("#FF0000"))
	pm := doc.ActiveLayer().Pixels
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := Transparent
			if x == 1 && y == 1 {
				want = Color{255, 0, 0, 255}
			}
			if got := pm.GetPixel(x, y); got != want {
				t.Errorf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDeleteLastLayerRejected(t *testing.T) {
	doc := NewDocument(2, 2)
	doc.ActiveLayer().Pixels.SetPixel(0, 0, Red)
	before := doc.Snapshot()

	err := doc.DeleteLayer(0)
	if !errors.Is(err, ErrLastLayer) {
		t.Fatalf("DeleteLayer(0) = %v, want ErrLastLayer", err)
	}
	if doc.LayerCount() != 1 || !doc.Layer(0).Pixels.Equal(before[0].Pixels) {
		t.Error("rejected delete changed the document")
	}
}

func TestLayerStackEdits(t *testing.T) {
	doc := NewDocument(2, 2)
	doc.AddLayer("B")
	doc.AddLayer("  ")
	names := func() []string {
		var out []string
		for _, l := range doc.Layers() {
			out = append(out, l.Name)
		}
		return out
	}
	if got := names(); len(got) != 3 || got[1] != "B" || got[2] != "Layer 3" {
		t.Fatalf("names = %v", got)
	}
	if doc.ActiveLayerIndex() != 2 {
		t.Errorf("active = %d, want 2", doc.ActiveLayerIndex())
	}

	t.Run("move follows active", func(t *testing.T) {
		if err := doc.MoveLayer(2, 0); err != nil {
			t.Fatal(err)
		}
		if got := names(); got[0] != "Layer 3" || got[1] != "Layer 1" || got[2] != "B" {
			t.Errorf("names after move = %v", got)
		}
		if doc.ActiveLayerIndex() != 0 {
			t.Errorf("active = %d, want 0", doc.ActiveLayerIndex())
		}
		if err := doc.SetActiveLayer(1); err != nil {
			t.Fatal(err)
		}
		if err := doc.MoveLayer(0, 2); err != nil {
			t.Fatal(err)
		}
		if doc.ActiveLayerIndex() != 0 || doc.ActiveLayer().Name != "Layer 1" {
			t.Errorf("active = %d (%q), want 0 (Layer 1)", doc.ActiveLayerIndex(), doc.ActiveLayer().Name)
		}
	})

	t.Run("move out of range", func(t *testing.T) {
		if err := doc.MoveLayer(0, 3); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("MoveLayer(0,3) = %v, want ErrIndexOutOfRange", err)
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		src := doc.Layer(0)
		src.Pixels.SetPixel(1, 1, Red)
		dup, err := doc.DuplicateLayer(0)
		if err != nil {
			t.Fatal(err)
		}
		if dup.ID == src.ID || dup.Name != src.Name+" Copy" {
			t.Errorf("dup = %d %q", dup.ID, dup.Name)
		}
		if doc.Layer(1) != dup || doc.ActiveLayerIndex() != 1 {
			t.Error("duplicate not inserted above the source")
		}
		dup.Pixels.SetPixel(0, 0, Blue)
		if src.Pixels.GetPixel(0, 0) != Transparent {
			t.Error("duplicate shares pixels with its source")
		}
	})

	t.Run("delete below active", func(t *testing.T) {
		if err := doc.SetActiveLayer(3); err != nil {
			t.Fatal(err)
		}
		active := doc.ActiveLayer()
		if err := doc.DeleteLayer(0); err != nil {
			t.Fatal(err)
		}
		if doc.ActiveLayer() != active {
			t.Error("active layer changed after deleting a layer below it")
		}
	})
}

func TestMergeDown(t *testing.T) {
	doc := NewDocument(2, 1)
	doc.ActiveLayer().Pixels.Clear(Black)
	top := doc.AddLayer("top")
	top.Pixels.SetPixel(0, 0, White)
	top.Opacity = 0.5

	if err := doc.MergeDown(0); !errors.Is(err, ErrNoLayerBelow) {
		t.Errorf("MergeDown(0) = %v, want ErrNoLayerBelow", err)
	}
	if err := doc.MergeDown(1); err != nil {
		t.Fatalf("MergeDown(1) = %v", err)
	}
	if doc.LayerCount() != 1 || doc.ActiveLayerIndex() != 0 {
		t.Fatalf("after merge: %d layers, active %d", doc.LayerCount(), doc.ActiveLayerIndex())
	}
	if got := doc.Layer(0).Pixels.GetPixel(0, 0); got != (Color{128, 128, 128, 255}) {
		t.Errorf("merged (0,0) = %v, want mid grey", got)
	}
	if got := doc.Layer(0).Pixels.GetPixel(1, 0); got != Black {
		t.Errorf("merged (1,0) = %v, want black", got)
	}
}

func TestLayerProperties(t *testing.T) {
	doc := NewDocument(2, 2)
	tests := []struct {
		name  string
		apply func() error
		check func(*Layer) bool
	}{
		{"opacity clamped high", func() error { return doc.SetLayerOpacity(0, 2) }, func(l *Layer) bool { return l.Opacity == 1 }},
		{"opacity clamped low", func() error { return doc.SetLayerOpacity(0, -1) }, func(l *Layer) bool { return l.Opacity == 0 }},
		{"hide", func() error { return doc.SetLayerVisible(0, false) }, func(l *Layer) bool { return !l.Visible }},
		{"toggle", func() error { return doc.ToggleLayerVisibility(0) }, func(l *Layer) bool { return l.Visible }},
		{"rename", func() error { return doc.RenameLayer(0, " Sky ") }, func(l *Layer) bool { return l.Name == "Sky" }},
		{"blank rename ignored", func() error { return doc.RenameLayer(0, "") }, func(l *Layer) bool { return l.Name == "Sky" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.apply(); err != nil {
				t.Fatal(err)
			}
			if !tt.check(doc.Layer(0)) {
				t.Errorf("layer = %+v", *doc.Layer(0))
			}
		})
	}

	if err := doc.SetLayerOpacity(5, 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("SetLayerOpacity(5) = %v, want ErrIndexOutOfRange", err)
	}
}

func TestClearLayer(t *testing.T) {
	doc := NewDocument(2, 2)
	doc.ActiveLayer().Pixels.Clear(Red)
	if err := doc.ClearLayer(0); err != nil {
		t.Fatal(err)
	}
	if !doc.Layer(0).Pixels.Equal(NewPixmap(2, 2)) {
		t.Error("layer not cleared")
	}
}

func TestDocumentResize(t *testing.T) {
	doc := NewDocument(4, 4)
	doc.ActiveLayer().Pixels.SetPixel(1, 1, Red)
	doc.CaptureFrame()
	doc.SetSelection(image.Rect(2, 2, 4, 4))

	if err := doc.Resize(0, 3); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Resize(0,3) = %v, want ErrInvalidDimensions", err)
	}
	if err := doc.Resize(2, 3); err != nil {
		t.Fatal(err)
	}
	if doc.Width() != 2 || doc.Height() != 3 {
		t.Fatalf("size = %dx%d", doc.Width(), doc.Height())
	}
	for _, l := range append(doc.Layers(), doc.Frame(0).Layers...) {
		if l.Pixels.Width() != 2 || l.Pixels.Height() != 3 {
			t.Errorf("layer %q is %dx%d", l.Name, l.Pixels.Width(), l.Pixels.Height())
		}
		if l.Pixels.GetPixel(1, 1) != Red {
			t.Errorf("layer %q lost content", l.Name)
		}
	}
	if _, ok := doc.Selection(); ok {
		t.Error("selection outside the new canvas survived")
	}
}

func TestSelection(t *testing.T) {
	doc := NewDocument(8, 8)
	doc.SetSelection(image.Rect(5, 5, 1, 2))
	r, ok := doc.Selection()
	if !ok || r != image.Rect(1, 2, 5, 5) {
		t.Errorf("Selection() = %v, %v", r, ok)
	}
	doc.SetSelection(image.Rectangle{})
	if _, ok := doc.Selection(); ok {
		t.Error("empty rectangle did not clear the selection")
	}
}

func TestPaletteEdits(t *testing.T) {
	doc := NewDocument(1, 1, WithPalette([]Color{Red}))
	if err := doc.AddPaletteColor(Red); !errors.Is(err, ErrDuplicateColor) {
		t.Errorf("AddPaletteColor(dup) = %v, want ErrDuplicateColor", err)
	}
	if err := doc.AddPaletteColor(Blue); err != nil {
		t.Fatal(err)
	}
	if err := doc.RemovePaletteColor(Green); !errors.Is(err, ErrColorNotFound) {
		t.Errorf("RemovePaletteColor(missing) = %v, want ErrColorNotFound", err)
	}
	if err := doc.RemovePaletteColor(Red); err != nil {
		t.Fatal(err)
	}
	if got := doc.Palette(); len(got) != 1 || got[0] != Blue {
		t.Errorf("palette = %v, want [blue]", got)
	}
}

func TestSetTool(t *testing.T) {
	doc := NewDocument(1, 1)
	if err := doc.SetTool(ToolFill); err != nil || doc.Tool() != ToolFill {
		t.Errorf("SetTool(fill) = %v, tool %v", err, doc.Tool())
	}
	if err := doc.SetTool(ToolCount); err == nil {
		t.Error("SetTool(ToolCount) accepted an invalid tool")
	}
	if doc.Tool() != ToolFill {
		t.Errorf("invalid SetTool changed tool to %v", doc.Tool())
	}
}

func TestAssemble(t *testing.T) {
	l := NewLayer(7, "a", 2, 2)
	l.Opacity = 3
	doc, err := Assemble(2, 2, []Color{Red}, []*Layer{l}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if doc.FrameCount() != 1 {
		t.Errorf("frames = %d, want 1 synthesized", doc.FrameCount())
	}
	if l.Opacity != 1 {
		t.Errorf("opacity = %v, want clamped 1", l.Opacity)
	}
	if id := doc.NewID(); id <= 7 {
		t.Errorf("NewID() = %d, want > 7", id)
	}

	bad := NewLayer(1, "b", 3, 2)
	if _, err := Assemble(2, 2, nil, []*Layer{bad}, nil); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("mismatched layer: %v, want ErrInvalidDimensions", err)
	}
	if _, err := Assemble(2, 2, nil, nil, nil); err == nil {
		t.Error("empty layer stack accepted")
	}
}

func TestRestoreLayersFitsCanvas(t *testing.T) {
	doc := NewDocument(4, 4)
	small := NewLayer(7, "small", 2, 2)
	small.Pixels.SetPixel(1, 1, Red)
	large := NewLayer(8, "large", 6, 6)
	large.Pixels.SetPixel(5, 5, Red)

	doc.RestoreLayers([]*Layer{small, large})
	for i, l := range doc.Layers() {
		if l.Pixels.Width() != 4 || l.Pixels.Height() != 4 {
			t.Errorf("layer %d is %dx%d, want 4x4", i, l.Pixels.Width(), l.Pixels.Height())
		}
	}
	if got := doc.Layer(0).Pixels.GetPixel(1, 1); got != Red {
		t.Errorf("(1,1) = %v, want red kept at the origin", got)
	}
	if small.Pixels.Width() != 2 {
		t.Error("RestoreLayers modified its argument")
	}
}
