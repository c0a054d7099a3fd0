// Package token holds the small set of lexical primitives shared by the
// encoder and decoder: the three delimiter symbols a header may declare.
package token

// Delimiter identifies which of the three legal array-header delimiter
// symbols is active in a given scope.
type Delimiter int

const (
	Comma Delimiter = iota
	Tab
	Pipe
)

// Byte returns the delimiter's single-byte wire representation.
func (d Delimiter) Byte() byte {
	switch d {
	case Tab:
		return '\t'
	case Pipe:
		return '|'
	default:
		return ','
	}
}

// Rune is the rune form of Byte, for use against rune-indexed text.
func (d Delimiter) Rune() rune { return rune(d.Byte()) }

// HeaderSymbol returns the header-terminator character that selects this
// delimiter, or 0 for Comma (comma has no header symbol — its absence
// inside the brackets always means comma).
func (d Delimiter) HeaderSymbol() byte {
	switch d {
	case Tab:
		return '\t'
	case Pipe:
		return '|'
	default:
		return 0
	}
}

// FromHeaderSymbol resolves the delimiter a header's terminator character
// selects. ok is false for any byte that is not a legal delimiter symbol.
func FromHeaderSymbol(b byte) (Delimiter, bool) {
	switch b {
	case '\t':
		return Tab, true
	case '|':
		return Pipe, true
	default:
		return Comma, false
	}
}

// String renders the delimiter as its wire character, for diagnostics.
func (d Delimiter) String() string {
	switch d {
	case Tab:
		return `\t`
	case Pipe:
		return "|"
	default:
		return ","
	}
}
