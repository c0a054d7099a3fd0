package toon

import (
	"bytes"
	"fmt"
	"io"
	"reflect"

	"github.com/tooncodec/toon-go/internal/lexer"
	"github.com/tooncodec/toon-go/internal/mapper"
	"github.com/tooncodec/toon-go/internal/parser"
)

// Decoder reads and decodes TOON values from an input stream.
type Decoder struct {
	r    io.Reader
	opts []DecodeOption
}

// NewDecoder returns a new decoder that reads from r.
//
// The decoder buffers the whole of r before parsing; it is not a
// streaming implementation.
func NewDecoder(r io.Reader, opts ...DecodeOption) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads the next TOON-encoded value from its input and stores it
// in the value pointed to by v. If v is nil or not a pointer, Decode
// returns an error.
func (d *Decoder) Decode(v any) error {
	if d.r == nil {
		return fmt.Errorf("toon: Decode(nil reader)")
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}
	return d.decodeBytesInto(data, v)
}

// DecodeValue reads the next TOON-encoded value from its input and
// returns it as a Value tree, without populating a Go value.
func (d *Decoder) DecodeValue() (Value, error) {
	if d.r == nil {
		return Value{}, fmt.Errorf("toon: Decode(nil reader)")
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return Value{}, err
	}
	val, _, err := d.parse(data)
	return val, err
}

func (d *Decoder) decodeBytesInto(data []byte, v any) error {
	val, _, err := d.parse(data)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("toon: Unmarshal(non-pointer %T or nil)", v)
	}
	if err := mapper.Apply(val, rv); err != nil {
		return wrapUnmarshalErr(err)
	}
	return nil
}

func (d *Decoder) parse(data []byte) (Value, decodeOptions, error) {
	o := newDecodeOptions()
	for _, opt := range d.opts {
		if err := opt(&o); err != nil {
			return Value{}, o, err
		}
	}

	lines, blanks, err := lexer.New(bytes.NewReader(data), o.indent, o.strict).ScanAll()
	if err != nil {
		return Value{}, o, wrapParseErr(err)
	}

	p := parser.New(lines, blanks, parser.Options{
		Delimiter:       o.delimiter,
		Strict:          o.strict,
		MaxDepth:        o.maxDepth,
		DisableCoercion: !o.coerceTypes,
	})
	val, err := p.Parse()
	if err != nil {
		return Value{}, o, wrapParseErr(err)
	}
	return val, o, nil
}
