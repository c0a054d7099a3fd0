package toon

import (
	"fmt"
	"reflect"

	"github.com/tooncodec/toon-go/internal/formatter"
	"github.com/tooncodec/toon-go/internal/lexer"
	"github.com/tooncodec/toon-go/internal/mapper"
	"github.com/tooncodec/toon-go/internal/marshaler"
	"github.com/tooncodec/toon-go/internal/parser"
)

// ParseError reports a syntactic problem in the decoded text: a
// malformed header, an unterminated quote, a bad escape sequence.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("toon: parse error at line %d: %s", e.Line, e.Message)
	}
	return "toon: parse error: " + e.Message
}

// ValidationError reports a structurally well-formed document that
// still violates a strict-mode rule: a declared array length that
// doesn't match its rows, a tabular row with the wrong width, an
// indentation unit that isn't a clean multiple.
type ValidationError struct {
	Line    int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("toon: validation error at line %d: %s", e.Line, e.Message)
	}
	return "toon: validation error: " + e.Message
}

// EncodeError reports a value that cannot be rendered as TOON text, such
// as a non-finite float under strict numeric rendering.
type EncodeError struct {
	Message string
}

func (e *EncodeError) Error() string { return "toon: encode error: " + e.Message }

// MarshalerError wraps an error returned by a type's MarshalTOON method.
type MarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *MarshalerError) Error() string {
	return "toon: error calling MarshalTOON for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *MarshalerError) Unwrap() error { return e.Err }

// UnmarshalerError wraps an error returned by a type's UnmarshalTOON method.
type UnmarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *UnmarshalerError) Error() string {
	return "toon: error calling UnmarshalTOON for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *UnmarshalerError) Unwrap() error { return e.Err }

// wrapParseErr converts an internal/parser error into its public
// counterpart at the package boundary, since internal packages cannot
// import the root package to produce these types directly.
func wrapParseErr(err error) error {
	switch e := err.(type) {
	case *parser.ParseError:
		return &ParseError{Line: e.Line, Message: e.Message}
	case *parser.ValidationError:
		return &ValidationError{Line: e.Line, Message: e.Message}
	case *lexer.IndentError:
		return &ValidationError{Line: e.Line, Message: e.Message}
	default:
		return err
	}
}

func wrapFormatErr(err error) error {
	switch err.(type) {
	case *formatter.NonFiniteNumberError:
		return &EncodeError{Message: err.Error()}
	default:
		return err
	}
}

func wrapMarshalErr(err error) error {
	if e, ok := err.(*marshaler.MarshalerError); ok {
		return &MarshalerError{Type: e.Type, Err: e.Err}
	}
	return err
}

func wrapUnmarshalErr(err error) error {
	if e, ok := err.(*mapper.UnmarshalerError); ok {
		return &UnmarshalerError{Type: e.Type, Err: e.Err}
	}
	return err
}
