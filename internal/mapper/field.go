// Package mapper provides the reflect-based bridge between Go values and
// value.Value trees, used by both the encode-direction marshaler and the
// decode-direction struct/map population. It resolves the "toon" struct
// tag, falling back to an iancoleman/strcase snake_case default for
// untagged fields to match this codec's key convention.
package mapper

import (
	"reflect"
	"strings"
	"sync"

	"github.com/iancoleman/strcase"
)

// Field describes one exported, non-anonymous struct field as TOON sees
// it: its encoded name and its reflect.Type.Index path.
type Field struct {
	Name      string
	Index     []int
	Tagged    bool
	OmitEmpty bool
}

// Fields is a struct type's cached field set, preserving declaration
// order for encoding and offering name lookup for decoding.
type Fields struct {
	Ordered []Field
	byName  map[string]Field
}

// ByName looks up a field by its encoded TOON key.
func (f Fields) ByName(name string) (Field, bool) {
	fld, ok := f.byName[name]
	return fld, ok
}

var fieldCache sync.Map

// CachedFields parses t's "toon" struct tags once and caches the result
// for subsequent calls.
func CachedFields(t reflect.Type) Fields {
	if f, ok := fieldCache.Load(t); ok {
		return f.(Fields)
	}

	var ordered []Field
	byName := make(map[string]Field)
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Anonymous || !sf.IsExported() {
			continue
		}

		tag := sf.Tag.Get("toon")
		if tag == "-" {
			continue
		}

		fld := Field{Index: sf.Index}
		name, opts, _ := strings.Cut(tag, ",")
		if name != "" {
			fld.Name = name
			fld.Tagged = true
		} else {
			fld.Name = strcase.ToSnake(sf.Name)
		}

		for opts != "" {
			var opt string
			opt, opts, _ = strings.Cut(opts, ",")
			if opt == "omitempty" {
				fld.OmitEmpty = true
			}
		}

		ordered = append(ordered, fld)
		byName[fld.Name] = fld
	}

	fields := Fields{Ordered: ordered, byName: byName}
	fieldCache.Store(t, fields)
	return fields
}
