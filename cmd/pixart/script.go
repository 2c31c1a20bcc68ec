package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/pixart"
	"github.com/gogpu/pixart/editor"
	"github.com/gogpu/pixart/tool"
)

// A draw script is one command per line; blank lines and lines starting
// with '#' are ignored. Coordinates are logical pixels.
//
//	tool brush
//	color #ff0000
//	size 2
//	press 1 1
//	move 6 1
//	release
//	key ctrl+z
//	frame add
//	layer add Outline

type step struct {
	line int
	op   string
	args []string
}

func (st step) errorf(format string, args ...any) error {
	return fmt.Errorf("script line %d: %s: %s", st.line, st.op, fmt.Sprintf(format, args...))
}

// arity is the accepted argument count range per command.
var arity = map[string][2]int{
	"tool":      {1, 1},
	"color":     {1, 1},
	"size":      {1, 1},
	"shape":     {1, 1},
	"tolerance": {1, 1},
	"press":     {2, 2},
	"move":      {2, 2},
	"release":   {0, 2},
	"leave":     {0, 0},
	"key":       {1, 1},
	"undo":      {0, 0},
	"redo":      {0, 0},
	"frame":     {1, 2},
	"layer":     {1, 2},
}

func parseScript(r io.Reader) ([]step, error) {
	var steps []step
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		st := step{line: n, op: strings.ToLower(fields[0]), args: fields[1:]}
		a, ok := arity[st.op]
		if !ok {
			return nil, fmt.Errorf("script line %d: unknown command %q", n, fields[0])
		}
		if len(st.args) < a[0] || len(st.args) > a[1] || st.op == "release" && len(st.args) == 1 {
			return nil, st.errorf("wrong number of arguments")
		}
		steps = append(steps, st)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return steps, nil
}

func runScript(s *editor.Session, steps []step) error {
	var last [2]float64
	for _, st := range steps {
		if err := runStep(s, st, &last); err != nil {
			return err
		}
	}
	s.Tools.Leave()
	return nil
}

func runStep(s *editor.Session, st step, last *[2]float64) error {
	doc := s.Doc
	switch st.op {
	case "tool":
		t, err := pixart.ParseTool(st.args[0])
		if err != nil {
			return st.errorf("%v", err)
		}
		return doc.SetTool(t)
	case "color":
		c, err := pixart.ParseHex(st.args[0])
		if err != nil {
			return st.errorf("%v", err)
		}
		doc.SetActiveColor(c)
	case "size":
		n, err := st.int(0)
		if err != nil {
			return err
		}
		doc.SetBrushSize(n)
	case "shape":
		shape, err := pixart.ParseBrushShape(st.args[0])
		if err != nil {
			return st.errorf("%v", err)
		}
		doc.SetBrushShape(shape)
	case "tolerance":
		n, err := st.int(0)
		if err != nil {
			return err
		}
		doc.SetFillTolerance(n)
	case "press", "move", "release":
		if len(st.args) == 2 {
			x, err := st.int(0)
			if err != nil {
				return err
			}
			y, err := st.int(1)
			if err != nil {
				return err
			}
			*last = [2]float64{float64(x), float64(y)}
		}
		typ := map[string]tool.EventType{"press": tool.EventPress, "move": tool.EventMove, "release": tool.EventRelease}[st.op]
		s.Handle(tool.Event{Type: typ, X: last[0], Y: last[1]})
	case "leave":
		s.Handle(tool.Event{Type: tool.EventLeave})
	case "key":
		s.Handle(tool.Event{Type: tool.EventKey, Key: tool.Key(st.args[0])})
	case "undo":
		s.Undo()
	case "redo":
		s.Redo()
	case "frame":
		return frameStep(s, st)
	case "layer":
		return layerStep(s, st)
	}
	return nil
}

func frameStep(s *editor.Session, st step) error {
	sub := strings.ToLower(st.args[0])
	if sub == "add" || sub == "copy" {
		if len(st.args) != 1 {
			return st.errorf("wrong number of arguments")
		}
		return s.AddFrame(sub == "copy")
	}
	if len(st.args) != 2 {
		return st.errorf("wrong number of arguments")
	}
	i, err := st.int(1)
	if err != nil {
		return err
	}
	switch sub {
	case "dup":
		err = s.DuplicateFrame(i)
	case "del":
		err = s.DeleteFrame(i)
	case "load":
		err = s.SelectFrame(i)
	default:
		return st.errorf("unknown frame command %q", st.args[0])
	}
	if err != nil {
		return st.errorf("%v", err)
	}
	return nil
}

func layerStep(s *editor.Session, st step) error {
	sub := strings.ToLower(st.args[0])
	if sub == "add" {
		name := ""
		if len(st.args) == 2 {
			name = st.args[1]
		}
		return s.Edit(func(d *pixart.Document) error {
			d.AddLayer(name)
			return nil
		})
	}
	if len(st.args) != 2 {
		return st.errorf("wrong number of arguments")
	}
	i, err := st.int(1)
	if err != nil {
		return err
	}
	var fn func(*pixart.Document) error
	switch sub {
	case "del":
		fn = func(d *pixart.Document) error { return d.DeleteLayer(i) }
	case "select":
		s.Tools.Leave()
		if err := s.Doc.SetActiveLayer(i); err != nil {
			return st.errorf("%v", err)
		}
		return nil
	case "merge":
		fn = func(d *pixart.Document) error { return d.MergeDown(i) }
	case "toggle":
		fn = func(d *pixart.Document) error { return d.ToggleLayerVisibility(i) }
	default:
		return st.errorf("unknown layer command %q", st.args[0])
	}
	if err := s.Edit(fn); err != nil {
		return st.errorf("%v", err)
	}
	return nil
}

func (st step) int(i int) (int, error) {
	n, err := strconv.Atoi(st.args[i])
	if err != nil {
		return 0, st.errorf("bad number %q", st.args[i])
	}
	return n, nil
}
