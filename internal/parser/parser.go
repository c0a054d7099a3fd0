// Package parser implements the recursive-descent structural decoder:
// it turns the indentation-scored logical lines produced by
// internal/lexer into a value.Value tree, dispatching on each line's
// shape (header, hyphen item, key-value, or bare scalar). It recurses
// over indentation depth rather than brace/bracket tokens, and returns
// a single wrapped error on the first violation instead of collecting
// a slice of messages.
package parser

import (
	"fmt"

	"github.com/tooncodec/toon-go/internal/lexer"
	"github.com/tooncodec/toon-go/internal/token"
	"github.com/tooncodec/toon-go/value"
)

// DefaultMaxDepth bounds recursion when the caller does not override it.
const DefaultMaxDepth = 1000

// Options configures a Parser.
type Options struct {
	// Delimiter, when non-nil, overrides the delimiter that would
	// otherwise be read from each header. Most decodes leave this nil.
	Delimiter *token.Delimiter
	Strict    bool
	MaxDepth  int

	// DisableCoercion, when true, leaves every unquoted token as a
	// string instead of recognizing true/false/null/number shapes. The
	// zero value coerces, which is the default decoding behavior.
	DisableCoercion bool
}

func (o Options) coerceTypes() bool { return !o.DisableCoercion }

// Parser consumes a slice of lexer.Line and builds a value.Value tree.
type Parser struct {
	lines  []lexer.Line
	blanks []int // source line numbers of blank lines the lexer dropped
	pos    int
	opts   Options
}

// New creates a Parser over lines. blanks holds the source line numbers
// of every blank line the lexer dropped, used only to reject one that
// falls inside an array's row/item block under strict mode.
func New(lines []lexer.Line, blanks []int, opts Options) *Parser {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Parser{lines: lines, blanks: blanks, opts: opts}
}

// blankLineBetween reports the line number of the first blank line
// strictly between first and last, or 0 if none falls in that range.
func (p *Parser) blankLineBetween(first, last int) int {
	for _, b := range p.blanks {
		if b > first && b < last {
			return b
		}
	}
	return 0
}

// Parse decodes the whole input and returns its root value.
func (p *Parser) Parse() (value.Value, error) {
	if len(p.lines) == 0 {
		if p.opts.Strict {
			return value.Value{}, &ValidationError{Message: "empty input"}
		}
		return value.Null(), nil
	}

	v, err := p.parseRoot()
	if err != nil {
		return value.Value{}, err
	}
	if p.pos != len(p.lines) {
		trailing := p.lines[p.pos]
		return value.Value{}, &ParseError{Line: trailing.Number, Message: "unexpected content after root value"}
	}
	return v, nil
}

func (p *Parser) parseRoot() (value.Value, error) {
	first := p.lines[0]

	// Only a keyless header introduces a root array; a keyed header such
	// as "tags[3]: ..." is the first field of a root object.
	if h, _, ok, err := parseHeaderLine(first.Text); err == nil && ok {
		if !h.HasKey {
			return p.parseRootArray()
		}
	} else if len(p.lines) == 1 && !isKeyValueLine(first.Text) {
		p.pos = 1
		return parsePrimitiveToken(first.Text, p.opts.coerceTypes())
	}

	if p.opts.Strict {
		for _, ln := range p.lines {
			if ln.Depth == 0 && !isKeyValueLine(ln.Text) && !isHeaderLine(ln.Text) {
				return value.Value{}, &ValidationError{Line: ln.Number, Message: "multiple depth-0 lines that are not key-value or header lines"}
			}
		}
	}

	return p.parseObjectAt(0)
}

func (p *Parser) parseRootArray() (value.Value, error) {
	ln := p.lines[0]
	h, rest, ok, err := parseHeaderLine(ln.Text)
	if err != nil {
		return value.Value{}, p.wrapErr(ln, err)
	}
	if !ok {
		return value.Value{}, p.parseErr(ln, "expected array header")
	}
	p.pos = 1
	return p.parseArrayBody(ln, h, rest, 0)
}

func (p *Parser) parseObjectAt(depth int) (value.Value, error) {
	if depth > p.opts.MaxDepth {
		return value.Value{}, &ValidationError{Message: "maximum nesting depth exceeded"}
	}
	var members []value.Member
	for p.pos < len(p.lines) {
		ln := p.lines[p.pos]
		if ln.Depth < depth {
			break
		}
		if ln.Depth > depth {
			return value.Value{}, p.parseErr(ln, "unexpected indentation")
		}

		if h, rest, ok, err := parseHeaderLine(ln.Text); err != nil {
			return value.Value{}, p.wrapErr(ln, err)
		} else if ok {
			p.pos++
			arr, aerr := p.parseArrayBody(ln, h, rest, depth)
			if aerr != nil {
				return value.Value{}, aerr
			}
			members = append(members, value.Member{Key: h.Key, Value: arr})
			continue
		}

		key, rest, err := splitKeyValue(ln.Text)
		if err != nil {
			return value.Value{}, p.wrapErr(ln, err)
		}
		p.pos++
		if rest == "" {
			child, cerr := p.parseObjectAt(depth + 1)
			if cerr != nil {
				return value.Value{}, cerr
			}
			members = append(members, value.Member{Key: key, Value: child})
			continue
		}
		v, perr := parsePrimitiveToken(rest, p.opts.coerceTypes())
		if perr != nil {
			return value.Value{}, p.wrapErr(ln, perr)
		}
		members = append(members, value.Member{Key: key, Value: v})
	}
	return value.Object(members...), nil
}

// parseArrayBody parses whatever follows a parsed Header: inline values
// on the same line, tabular rows, list items, or nothing for an empty
// array. depth is the depth of the header line itself.
func (p *Parser) parseArrayBody(headerLine lexer.Line, h Header, rest string, depth int) (value.Value, error) {
	if depth > p.opts.MaxDepth {
		return value.Value{}, &ValidationError{Message: "maximum nesting depth exceeded"}
	}
	delim := h.Delim
	if p.opts.Delimiter != nil {
		delim = *p.opts.Delimiter
	}
	switch {
	case h.HasFields:
		return p.parseTabularRows(headerLine, h, delim, depth)
	case rest != "":
		return p.parseInlineValues(headerLine, h, delim, rest)
	case h.Length == 0:
		return value.Array(), nil
	default:
		return p.parseListItems(headerLine, h, depth)
	}
}

func (p *Parser) parseInlineValues(headerLine lexer.Line, h Header, delim token.Delimiter, rest string) (value.Value, error) {
	fields := splitDelimited(rest, delim.Byte())
	items := make([]value.Value, len(fields))
	for i, raw := range fields {
		v, err := parsePrimitiveToken(raw, p.opts.coerceTypes())
		if err != nil {
			return value.Value{}, p.wrapErr(headerLine, err)
		}
		items[i] = v
	}
	if p.opts.Strict && len(items) != h.Length {
		return value.Value{}, &ValidationError{
			Line:    headerLine.Number,
			Message: fmt.Sprintf("inline array declared length %d, got %d", h.Length, len(items)),
		}
	}
	return value.Array(items...), nil
}

func (p *Parser) parseTabularRows(headerLine lexer.Line, h Header, delim token.Delimiter, depth int) (value.Value, error) {
	rowDepth := depth + 1
	var items []value.Value
	firstRowNum, lastRowNum := 0, 0
	for p.pos < len(p.lines) {
		ln := p.lines[p.pos]
		if ln.Depth < rowDepth {
			break
		}
		if ln.Depth > rowDepth {
			return value.Value{}, p.parseErr(ln, "unexpected indentation in tabular rows")
		}
		if !isTabularRow(ln.Text, delim.Byte()) {
			break
		}
		fields := splitDelimited(ln.Text, delim.Byte())
		if p.opts.Strict && len(fields) != len(h.Fields) {
			return value.Value{}, &ValidationError{
				Line:    ln.Number,
				Message: fmt.Sprintf("tabular row has %d fields, header declares %d", len(fields), len(h.Fields)),
			}
		}
		members := make([]value.Member, 0, len(h.Fields))
		for i, fname := range h.Fields {
			raw := ""
			if i < len(fields) {
				raw = fields[i]
			}
			v, err := parsePrimitiveToken(raw, p.opts.coerceTypes())
			if err != nil {
				return value.Value{}, p.wrapErr(ln, err)
			}
			members = append(members, value.Member{Key: fname, Value: v})
		}
		items = append(items, value.Object(members...))
		if firstRowNum == 0 {
			firstRowNum = ln.Number
		}
		lastRowNum = ln.Number
		p.pos++
	}
	if p.opts.Strict {
		if bl := p.blankLineBetween(firstRowNum, lastRowNum); bl != 0 {
			return value.Value{}, &ValidationError{
				Line:    bl,
				Message: "blank line inside a tabular array's rows",
			}
		}
		if len(items) != h.Length {
			return value.Value{}, &ValidationError{
				Line:    headerLine.Number,
				Message: fmt.Sprintf("tabular array declared length %d, got %d rows", h.Length, len(items)),
			}
		}
	}
	return value.Array(items...), nil
}

func (p *Parser) parseListItems(headerLine lexer.Line, h Header, depth int) (value.Value, error) {
	itemDepth := depth + 1
	if itemDepth > p.opts.MaxDepth {
		return value.Value{}, &ValidationError{Message: "maximum nesting depth exceeded"}
	}
	var items []value.Value
	firstItemNum, lastItemNum := 0, 0
	for p.pos < len(p.lines) {
		ln := p.lines[p.pos]
		if ln.Depth < itemDepth {
			break
		}
		if ln.Depth > itemDepth || !startsWithHyphen(ln.Text) {
			if ln.Depth > itemDepth {
				return value.Value{}, p.parseErr(ln, "unexpected indentation in list items")
			}
			break
		}
		if firstItemNum == 0 {
			firstItemNum = ln.Number
		}
		item, err := p.parseListItem(ln, itemDepth)
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, item)
		lastItemNum = p.lines[p.pos-1].Number
	}
	if p.opts.Strict {
		if bl := p.blankLineBetween(firstItemNum, lastItemNum); bl != 0 {
			return value.Value{}, &ValidationError{
				Line:    bl,
				Message: "blank line inside an expanded list's items",
			}
		}
		if len(items) != h.Length {
			return value.Value{}, &ValidationError{
				Line:    headerLine.Number,
				Message: fmt.Sprintf("expanded list declared length %d, got %d items", h.Length, len(items)),
			}
		}
	}
	return value.Array(items...), nil
}

func (p *Parser) parseListItem(ln lexer.Line, itemDepth int) (value.Value, error) {
	content := ln.Text[1:] // drop leading '-'
	if content == "" {
		p.pos++
		return value.Object(), nil
	}
	if content[0] != ' ' {
		return value.Value{}, p.parseErr(ln, "expected space after '-'")
	}
	content = content[1:]
	p.pos++

	if len(content) > 0 && content[0] == '[' {
		h, rest, ok, err := parseHeaderLine(content)
		if err != nil {
			return value.Value{}, p.wrapErr(ln, err)
		}
		if !ok {
			return value.Value{}, p.parseErr(ln, "malformed inline array header")
		}
		return p.parseArrayBody(ln, h, rest, itemDepth)
	}

	if h, rest, ok, err := parseHeaderLine(content); err != nil {
		return value.Value{}, p.wrapErr(ln, err)
	} else if ok {
		firstVal, aerr := p.parseArrayBody(ln, h, rest, itemDepth+1)
		if aerr != nil {
			return value.Value{}, aerr
		}
		return p.finishListItemObject(value.Member{Key: h.Key, Value: firstVal}, itemDepth)
	}

	if key, rest, err := splitKeyValue(content); err == nil {
		if rest == "" {
			nested, nerr := p.parseObjectAt(itemDepth + 2)
			if nerr != nil {
				return value.Value{}, nerr
			}
			return p.finishListItemObject(value.Member{Key: key, Value: nested}, itemDepth)
		}
		v, perr := parsePrimitiveToken(rest, p.opts.coerceTypes())
		if perr != nil {
			return value.Value{}, p.wrapErr(ln, perr)
		}
		return p.finishListItemObject(value.Member{Key: key, Value: v}, itemDepth)
	}

	v, err := parsePrimitiveToken(content, p.opts.coerceTypes())
	if err != nil {
		return value.Value{}, p.wrapErr(ln, err)
	}
	return v, nil
}

func (p *Parser) finishListItemObject(first value.Member, itemDepth int) (value.Value, error) {
	siblings, err := p.parseObjectAt(itemDepth + 1)
	if err != nil {
		return value.Value{}, err
	}
	members := append([]value.Member{first}, siblings.Members()...)
	return value.Object(members...), nil
}

func startsWithHyphen(s string) bool {
	return len(s) > 0 && s[0] == '-'
}

func (p *Parser) parseErr(ln lexer.Line, msg string) error {
	return &ParseError{Line: ln.Number, Message: msg}
}

func (p *Parser) wrapErr(ln lexer.Line, err error) error {
	switch e := err.(type) {
	case *ParseError:
		if e.Line == 0 {
			e.Line = ln.Number
		}
		return e
	case *ValidationError:
		if e.Line == 0 {
			e.Line = ln.Number
		}
		return e
	default:
		return &ParseError{Line: ln.Number, Message: err.Error()}
	}
}
