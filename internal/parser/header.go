package parser

import (
	"strconv"
	"strings"

	"github.com/tooncodec/toon-go/internal/token"
)

// Header is a parsed array-header introducer: K[MN D]F: per the header
// grammar.
type Header struct {
	Key       string
	HasKey    bool
	Length    int
	Delim     token.Delimiter
	Fields    []string
	HasFields bool
}

// parseHeaderLine reports whether text begins with a valid array header
// and, if so, returns the parsed header plus whatever text follows its
// terminating ':' on the same line (trimmed of one leading space).
// ok is false, err nil, when text plainly does not start a header (e.g.
// it is an ordinary key-value line); err is non-nil when text looks like
// an attempted header but is malformed.
func parseHeaderLine(text string) (Header, string, bool, error) {
	rest := text
	var key string
	hasKey := false

	if !strings.HasPrefix(rest, "[") {
		k, r, kerr := parseKeyToken(rest)
		if kerr != nil || !strings.HasPrefix(r, "[") {
			return Header{}, "", false, nil
		}
		key, rest, hasKey = k, r, true
	}

	rest = rest[1:] // consume '['
	if strings.HasPrefix(rest, "#") {
		rest = rest[1:]
	}

	digitsEnd := 0
	for digitsEnd < len(rest) && rest[digitsEnd] >= '0' && rest[digitsEnd] <= '9' {
		digitsEnd++
	}
	if digitsEnd == 0 {
		return Header{}, "", false, &ParseError{Message: "malformed array header: missing length"}
	}
	n, err := strconv.Atoi(rest[:digitsEnd])
	if err != nil {
		return Header{}, "", false, &ParseError{Message: "malformed array header: invalid length"}
	}
	rest = rest[digitsEnd:]

	delim := token.Comma
	if len(rest) > 0 && (rest[0] == '\t' || rest[0] == '|') {
		d, _ := token.FromHeaderSymbol(rest[0])
		delim = d
		rest = rest[1:]
	}

	if !strings.HasPrefix(rest, "]") {
		return Header{}, "", false, &ParseError{Message: "malformed array header: missing ']'"}
	}
	rest = rest[1:]

	var fields []string
	hasFields := false
	if strings.HasPrefix(rest, "{") {
		hasFields = true
		rest = rest[1:]
		for {
			fieldKey, r, kerr := parseKeyToken(rest)
			if kerr != nil {
				return Header{}, "", false, kerr
			}
			fields = append(fields, fieldKey)
			rest = r
			if len(rest) > 0 && rest[0] == delim.Byte() {
				rest = rest[1:]
				continue
			}
			break
		}
		if !strings.HasPrefix(rest, "}") {
			return Header{}, "", false, &ParseError{Message: "malformed array header: missing '}'"}
		}
		rest = rest[1:]
	}

	if !strings.HasPrefix(rest, ":") {
		return Header{}, "", false, &ParseError{Message: "malformed array header: missing trailing ':'"}
	}
	rest = strings.TrimPrefix(rest[1:], " ")

	return Header{
		Key:       key,
		HasKey:    hasKey,
		Length:    n,
		Delim:     delim,
		Fields:    fields,
		HasFields: hasFields,
	}, rest, true, nil
}

func isHeaderLine(text string) bool {
	_, _, ok, err := parseHeaderLine(text)
	return err == nil && ok
}
