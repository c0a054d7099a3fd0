// Package formatter walks a value.Value tree and renders it as TOON
// text, picking one of three array shapes (inline, tabular, expanded
// list) at every array site.
package formatter

import (
	"math"
	"strconv"
	"strings"

	"github.com/tooncodec/toon-go/internal/syntax"
	"github.com/tooncodec/toon-go/internal/token"
	"github.com/tooncodec/toon-go/value"
)

// Options configures how Format renders a tree.
type Options struct {
	Delimiter      token.Delimiter
	LengthMarker   bool
	Indent         string
	StrictNumerics bool // reject non-finite numbers instead of normalizing to null
}

// NonFiniteNumberError reports that StrictNumerics rejected a NaN or
// infinite float during encoding.
type NonFiniteNumberError struct{}

func (*NonFiniteNumberError) Error() string {
	return "cannot encode non-finite number under strict numeric policy"
}

// Format renders v as TOON text under opts.
func Format(v value.Value, opts Options) (string, error) {
	f := &formatter{opts: opts}
	var err error
	switch v.Kind() {
	case value.KindObject:
		if v.Len() > 0 {
			err = f.emitObjectFields(v, 0)
		}
	case value.KindArray:
		err = f.emitArray("", v, 0)
	default:
		tok, terr := f.primitiveToken(v, f.opts.Delimiter)
		if terr != nil {
			return "", terr
		}
		f.emit(0, tok)
	}
	if err != nil {
		return "", err
	}
	return strings.Join(f.lines, "\n"), nil
}

type formatter struct {
	opts  Options
	lines []string
}

func (f *formatter) emit(depth int, text string) {
	f.lines = append(f.lines, strings.Repeat(f.opts.Indent, depth)+text)
}

func (f *formatter) emitObjectFields(obj value.Value, depth int) error {
	for _, m := range obj.Members() {
		if err := f.emitField(m.Key, m.Value, depth); err != nil {
			return err
		}
	}
	return nil
}

func (f *formatter) emitField(key string, v value.Value, depth int) error {
	switch v.Kind() {
	case value.KindObject:
		f.emit(depth, formatKey(key)+":")
		if v.Len() > 0 {
			return f.emitObjectFields(v, depth+1)
		}
		return nil
	case value.KindArray:
		return f.emitArray(key, v, depth)
	default:
		tok, err := f.primitiveToken(v, f.opts.Delimiter)
		if err != nil {
			return err
		}
		f.emit(depth, formatKey(key)+": "+tok)
		return nil
	}
}

type arrayShape int

const (
	shapeInline arrayShape = iota
	shapeTabular
	shapeExpanded
)

func (f *formatter) classifyArray(key string, arr value.Value) (header string, fields []string, shape arrayShape) {
	items := arr.ArrayItems()
	delim := f.opts.Delimiter
	switch {
	case isAllPrimitive(items):
		return f.formatHeader(key, len(items), delim, nil), nil, shapeInline
	default:
		if flds, ok := tabularFields(items); ok {
			return f.formatHeader(key, len(items), delim, flds), flds, shapeTabular
		}
		return f.formatHeader(key, len(items), delim, nil), nil, shapeExpanded
	}
}

func (f *formatter) emitArray(key string, arr value.Value, depth int) error {
	header, fields, shape := f.classifyArray(key, arr)
	items := arr.ArrayItems()
	switch shape {
	case shapeInline:
		line, err := f.inlineArrayLine(header, items)
		if err != nil {
			return err
		}
		f.emit(depth, line)
		return nil
	case shapeTabular:
		f.emit(depth, header)
		return f.emitRows(items, fields, depth+1)
	default:
		f.emit(depth, header)
		for _, el := range items {
			if err := f.emitListItem(el, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
}

func (f *formatter) inlineArrayLine(header string, items []value.Value) (string, error) {
	if len(items) == 0 {
		return header, nil
	}
	tokens := make([]string, len(items))
	for i, el := range items {
		tok, err := f.primitiveToken(el, f.opts.Delimiter)
		if err != nil {
			return "", err
		}
		tokens[i] = tok
	}
	return header + " " + strings.Join(tokens, string(f.opts.Delimiter.Byte())), nil
}

func (f *formatter) emitRows(items []value.Value, fields []string, depth int) error {
	for _, el := range items {
		row := make([]string, len(fields))
		for i, fld := range fields {
			v, _ := el.Get(fld)
			tok, err := f.primitiveToken(v, f.opts.Delimiter)
			if err != nil {
				return err
			}
			row[i] = tok
		}
		f.emit(depth, strings.Join(row, string(f.opts.Delimiter.Byte())))
	}
	return nil
}

func (f *formatter) emitListItem(v value.Value, depth int) error {
	indent := strings.Repeat(f.opts.Indent, depth)
	switch v.Kind() {
	case value.KindObject:
		return f.emitObjectListItem(v, depth)
	case value.KindArray:
		header, fields, shape := f.classifyArray("", v)
		switch shape {
		case shapeInline:
			line, err := f.inlineArrayLine(header, v.ArrayItems())
			if err != nil {
				return err
			}
			f.lines = append(f.lines, indent+"- "+line)
			return nil
		case shapeTabular:
			f.lines = append(f.lines, indent+"- "+header)
			return f.emitRows(v.ArrayItems(), fields, depth+1)
		default:
			f.lines = append(f.lines, indent+"- "+header)
			for _, el := range v.ArrayItems() {
				if err := f.emitListItem(el, depth+1); err != nil {
					return err
				}
			}
			return nil
		}
	default:
		tok, err := f.primitiveToken(v, f.opts.Delimiter)
		if err != nil {
			return err
		}
		f.lines = append(f.lines, indent+"- "+tok)
		return nil
	}
}

func (f *formatter) emitObjectListItem(obj value.Value, depth int) error {
	indent := strings.Repeat(f.opts.Indent, depth)
	if obj.Len() == 0 {
		f.lines = append(f.lines, indent+"-")
		return nil
	}
	members := obj.Members()
	first := members[0]
	prefix := indent + "- "
	switch first.Value.Kind() {
	case value.KindObject:
		f.lines = append(f.lines, prefix+formatKey(first.Key)+":")
		if first.Value.Len() > 0 {
			if err := f.emitObjectFields(first.Value, depth+2); err != nil {
				return err
			}
		}
	case value.KindArray:
		header, fields, shape := f.classifyArray(first.Key, first.Value)
		switch shape {
		case shapeInline:
			line, err := f.inlineArrayLine(header, first.Value.ArrayItems())
			if err != nil {
				return err
			}
			f.lines = append(f.lines, prefix+line)
		case shapeTabular:
			f.lines = append(f.lines, prefix+header)
			if err := f.emitRows(first.Value.ArrayItems(), fields, depth+2); err != nil {
				return err
			}
		default:
			f.lines = append(f.lines, prefix+header)
			for _, el := range first.Value.ArrayItems() {
				if err := f.emitListItem(el, depth+2); err != nil {
					return err
				}
			}
		}
	default:
		tok, err := f.primitiveToken(first.Value, f.opts.Delimiter)
		if err != nil {
			return err
		}
		f.lines = append(f.lines, prefix+formatKey(first.Key)+": "+tok)
	}
	if len(members) > 1 {
		if err := f.emitObjectFields(value.Object(members[1:]...), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (f *formatter) formatHeader(key string, n int, delim token.Delimiter, fields []string) string {
	var b strings.Builder
	if key != "" {
		b.WriteString(formatKey(key))
	}
	b.WriteByte('[')
	if f.opts.LengthMarker {
		b.WriteByte('#')
	}
	b.WriteString(strconv.Itoa(n))
	if sym := delim.HeaderSymbol(); sym != 0 {
		b.WriteByte(sym)
	}
	b.WriteByte(']')
	if len(fields) > 0 {
		b.WriteByte('{')
		for i, fld := range fields {
			if i > 0 {
				b.WriteByte(delim.Byte())
			}
			b.WriteString(formatKey(fld))
		}
		b.WriteByte('}')
	}
	b.WriteByte(':')
	return b.String()
}

func (f *formatter) primitiveToken(v value.Value, delim token.Delimiter) (string, error) {
	switch v.Kind() {
	case value.KindNull:
		return "null", nil
	case value.KindBool:
		if v.Bool() {
			return "true", nil
		}
		return "false", nil
	case value.KindNumber:
		return f.formatNumber(v)
	case value.KindString:
		s := v.Str()
		if syntax.NeedsQuoting(s, delim) {
			return syntax.Quote(s), nil
		}
		return s, nil
	default:
		return "", &NonFiniteNumberError{}
	}
}

const maxSafeInt = 1<<53 - 1

func (f *formatter) formatNumber(v value.Value) (string, error) {
	if bi, ok := v.BigInt(); ok {
		return syntax.Quote(bi.String()), nil
	}
	n := v.Number()
	if math.IsNaN(n) || math.IsInf(n, 0) {
		if f.opts.StrictNumerics {
			return "", &NonFiniteNumberError{}
		}
		return "null", nil
	}
	if n == 0 {
		return "0", nil
	}
	if math.Trunc(n) == n && math.Abs(n) <= maxSafeInt {
		return strconv.FormatInt(int64(n), 10), nil
	}
	s := strconv.FormatFloat(n, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s, nil
}

func formatKey(k string) string {
	if syntax.IsUnquotedKey(k) {
		return k
	}
	return syntax.Quote(k)
}

func isAllPrimitive(items []value.Value) bool {
	for _, el := range items {
		if !el.IsPrimitive() {
			return false
		}
	}
	return true
}

// tabularFields reports the shared field order of a uniform array of
// primitive-valued objects, or ok=false if items does not qualify for
// the tabular shape.
func tabularFields(items []value.Value) (fields []string, ok bool) {
	if len(items) == 0 || items[0].Kind() != value.KindObject || items[0].Len() == 0 {
		return nil, false
	}
	fields = items[0].Keys()
	fieldSet := make(map[string]bool, len(fields))
	for _, k := range fields {
		fieldSet[k] = true
	}
	for _, el := range items {
		if el.Kind() != value.KindObject {
			return nil, false
		}
		keys := el.Keys()
		if len(keys) != len(fields) {
			return nil, false
		}
		seen := make(map[string]bool, len(keys))
		for _, k := range keys {
			if !fieldSet[k] {
				return nil, false
			}
			seen[k] = true
		}
		if len(seen) != len(fieldSet) {
			return nil, false
		}
		for _, fld := range fields {
			v, _ := el.Get(fld)
			if !v.IsPrimitive() {
				return nil, false
			}
		}
	}
	return fields, true
}
