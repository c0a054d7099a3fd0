package toon

import (
	"fmt"
	"io"

	"github.com/tooncodec/toon-go/internal/formatter"
	"github.com/tooncodec/toon-go/internal/marshaler"
)

// Encoder writes TOON values to an output stream.
type Encoder struct {
	w    io.Writer
	opts []EncodeOption
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...EncodeOption) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the TOON encoding of v to the stream.
func (e *Encoder) Encode(v any) error {
	val, err := marshaler.Marshal(v)
	if err != nil {
		return fmt.Errorf("toon: %w", wrapMarshalErr(err))
	}
	return e.EncodeValue(val)
}

// EncodeValue writes v's TOON rendering to the stream directly, without
// going through reflection.
func (e *Encoder) EncodeValue(v Value) error {
	o := newEncodeOptions()
	for _, opt := range e.opts {
		if err := opt(&o); err != nil {
			return err
		}
	}

	text, err := formatter.Format(v, formatter.Options{
		Delimiter:    o.delimiter,
		LengthMarker: o.lengthMarker,
		Indent:       o.indent,
	})
	if err != nil {
		return wrapFormatErr(err)
	}

	_, err = io.WriteString(e.w, text)
	return err
}
