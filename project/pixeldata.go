package project

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
)

// PixelData is a raw RGBA buffer. It marshals as a JSON array of numbers
// and unmarshals from either such an array or a standard base64 string.
type PixelData []byte

// MarshalJSON implements json.Marshaler.
func (p PixelData) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	buf := make([]byte, 0, len(p)*4+2)
	buf = append(buf, '[')
	for i, b := range p {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendUint(buf, uint64(b), 10)
	}
	return append(buf, ']'), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *PixelData) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = nil
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return fmt.Errorf("pixelData: %w", err)
		}
		*p = b
		return nil
	}

	var vals []int
	if err := json.Unmarshal(data, &vals); err != nil {
		return fmt.Errorf("pixelData: %w", err)
	}
	out := make([]byte, len(vals))
	for i, v := range vals {
		if v < 0 || v > 255 {
			return fmt.Errorf("pixelData: value %d at %d out of byte range", v, i)
		}
		out[i] = byte(v)
	}
	*p = out
	return nil
}
