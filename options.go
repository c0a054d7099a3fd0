package toon

import (
	"fmt"

	"github.com/tooncodec/toon-go/internal/token"
)

// Delimiter identifies which of the three legal array-header delimiter
// symbols an Encoder or Decoder should use.
type Delimiter int

const (
	Comma Delimiter = iota
	Tab
	Pipe
)

func (d Delimiter) internal() token.Delimiter {
	switch d {
	case Tab:
		return token.Tab
	case Pipe:
		return token.Pipe
	default:
		return token.Comma
	}
}

const defaultIndent = "  "

type encodeOptions struct {
	delimiter    token.Delimiter
	lengthMarker bool
	indent       string
}

func newEncodeOptions() encodeOptions {
	return encodeOptions{delimiter: token.Comma, indent: defaultIndent}
}

// EncodeOption configures an Encoder.
type EncodeOption func(*encodeOptions) error

// WithDelimiter sets the delimiter the encoder declares in array headers
// and uses to separate inline and tabular values. The default is Comma.
func WithDelimiter(d Delimiter) EncodeOption {
	return func(o *encodeOptions) error {
		o.delimiter = d.internal()
		return nil
	}
}

// WithLengthMarker makes the encoder emit the '#' length marker before
// each array's declared length. Absent by default.
func WithLengthMarker() EncodeOption {
	return func(o *encodeOptions) error {
		o.lengthMarker = true
		return nil
	}
}

// WithIndent sets the string used for one level of indentation. The
// default is two spaces; it must not contain a tab character.
func WithIndent(indent string) EncodeOption {
	return func(o *encodeOptions) error {
		for i := 0; i < len(indent); i++ {
			if indent[i] == '\t' {
				return fmt.Errorf("toon: indent must not contain a tab character")
			}
		}
		o.indent = indent
		return nil
	}
}

const defaultMaxDepth = 1000

type decodeOptions struct {
	delimiter   *token.Delimiter
	strict      bool
	indent      string
	maxDepth    int
	coerceTypes bool
}

func newDecodeOptions() decodeOptions {
	return decodeOptions{strict: true, indent: defaultIndent, maxDepth: defaultMaxDepth, coerceTypes: true}
}

// DecodeOption configures a Decoder.
type DecodeOption func(*decodeOptions) error

// WithDecodeDelimiter overrides the decoder's header-declared delimiter
// detection, forcing every array in the document to use d.
func WithDecodeDelimiter(d Delimiter) DecodeOption {
	return func(o *decodeOptions) error {
		internal := d.internal()
		o.delimiter = &internal
		return nil
	}
}

// WithStrict toggles strict-mode validation. Strict is on by default;
// disabling it tolerates relaxed input (misaligned indentation rounded
// down, declared array lengths that don't match their rows).
func WithStrict(strict bool) DecodeOption {
	return func(o *decodeOptions) error {
		o.strict = strict
		return nil
	}
}

// WithDecodeIndent sets the indentation unit the lexer expects. The
// default is two spaces.
func WithDecodeIndent(indent string) DecodeOption {
	return func(o *decodeOptions) error {
		o.indent = indent
		return nil
	}
}

// MaxDepth bounds the decoder's structural recursion, guarding against
// stack exhaustion on adversarial input. The default is 1000.
func MaxDepth(n int) DecodeOption {
	return func(o *decodeOptions) error {
		if n <= 0 {
			return fmt.Errorf("toon: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

// CoerceTypes controls whether unquoted tokens shaped like true, false,
// null or a number decode to their literal type (the default) or are
// always left as strings, for hosts that want to run their own type
// inference over the decoded tree.
func CoerceTypes(coerce bool) DecodeOption {
	return func(o *decodeOptions) error {
		o.coerceTypes = coerce
		return nil
	}
}
