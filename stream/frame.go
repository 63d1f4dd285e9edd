package stream

import (
	"encoding/binary"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Frame is the rendered state of one widget, published to a countrx
// display device. Offsets carry digit-strip positions in row units;
// the device moves strips in the decreasing direction by that amount.
type Frame struct {
	ID      string    `json:"id"`
	Text    string    `json:"text"`
	Color   string    `json:"color"`
	Digits  []int     `json:"digits,omitempty"`
	Offsets []float64 `json:"offsets,omitempty"`
	Done    bool      `json:"done"`
}

// NewFrame creates a new Frame instance.
func NewFrame(id string) *Frame {
	f := new(Frame)
	f.ID = id
	return f
}

// SetColor stores a colour as its clamped hex form.
func (f *Frame) SetColor(c colorful.Color) {
	f.Color = c.Clamped().Hex()
}

// MarshalBinary converts a Frame into the compact form used by
// bandwidth-constrained devices: id and text as length-prefixed
// strings, RGB as three bytes, offsets as 8.8 fixed point.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 0, len(f.ID)+len(f.Text)+len(f.Offsets)*2+8)
	data = append(data, byte(len(f.ID)))
	data = append(data, f.ID...)
	data = append(data, byte(len(f.Text)))
	data = append(data, f.Text...)

	c, cerr := colorful.Hex(f.Color)
	if cerr != nil {
		c = colorful.Color{}
	}
	r, g, b := c.Clamped().RGB255()
	data = append(data, r, g, b)

	if f.Done {
		data = append(data, 1)
	} else {
		data = append(data, 0)
	}

	data = append(data, byte(len(f.Offsets)))
	for _, off := range f.Offsets {
		fixed := uint16(math.Round(off * 256))
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], fixed)
		data = append(data, buf[0], buf[1])
	}

	return data, nil
}
