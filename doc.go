// Package toon implements the TOON (Token-Oriented Object Notation)
// codec: a compact, indentation-sensitive text encoding for the JSON
// data model, designed to spend fewer tokens than JSON when a document
// is fed to a language model.
//
// # Usage
//
//	data, err := toon.Marshal(v)
//	err := toon.Unmarshal(data, &v)
//
// Marshal and Unmarshal convert between Go values and TOON text using
// the same reflection-driven conventions as encoding/json: exported
// struct fields, a "toon" struct tag for renaming or omitting a field
// (omitempty), and the Marshaler/Unmarshaler interfaces for types that
// want to encode or decode themselves directly.
//
// EncodeValue, DecodeValue and the Encoder/Decoder types work with
// Value trees directly, bypassing reflection.
//
// The suggested file extension for TOON documents is ".toon"; the
// suggested media type is "text/toon". Neither is enforced by this
// package — they are conventions for callers that persist or transmit
// TOON text, recorded here for documentation only.
package toon
