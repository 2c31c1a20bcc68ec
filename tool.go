package pixart

import (
	"fmt"
	"strings"
)

// Tool identifies the editing tool that receives pointer events.
// The set is closed; tool.Manager dispatches on it directly.
type Tool uint8

const (
	ToolBrush Tool = iota
	ToolEraser
	ToolFill
	ToolEyedropper
	ToolLine
	ToolRectangle
	ToolFilledRectangle
	ToolEllipse
	ToolSelection

	// ToolCount is the number of tools. It is not a valid Tool.
	ToolCount
)

var toolNames = [ToolCount]string{
	ToolBrush:           "brush",
	ToolEraser:          "eraser",
	ToolFill:            "fill",
	ToolEyedropper:      "eyedropper",
	ToolLine:            "line",
	ToolRectangle:       "rectangle",
	ToolFilledRectangle: "filled-rectangle",
	ToolEllipse:         "ellipse",
	ToolSelection:       "selection",
}

// String returns the tool name.
func (t Tool) String() string {
	if t < ToolCount {
		return toolNames[t]
	}
	return fmt.Sprintf("Tool(%d)", uint8(t))
}

// Valid reports whether t names a known tool.
func (t Tool) Valid() bool {
	return t < ToolCount
}

// ParseTool parses a tool name as returned by Tool.String.
func ParseTool(s string) (Tool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range toolNames {
		if name == s {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("pixart: unknown tool %q", s)
}

// BrushShape is the footprint of the brush and eraser.
type BrushShape uint8

const (
	ShapeSquare BrushShape = iota
	ShapeCircle
)

// String returns "square" or "circle".
func (s BrushShape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeCircle:
		return "circle"
	default:
		return fmt.Sprintf("BrushShape(%d)", uint8(s))
	}
}

// ParseBrushShape parses "square" or "circle".
func ParseBrushShape(s string) (BrushShape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "square":
		return ShapeSquare, nil
	case "circle":
		return ShapeCircle, nil
	}
	return 0, fmt.Errorf("pixart: unknown brush shape %q", s)
}
