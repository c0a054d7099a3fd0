package parser

import (
	"strings"

	"github.com/tooncodec/toon-go/internal/syntax"
)

// parseKeyToken consumes a key (quoted or unquoted) from the start of s
// and returns it alongside whatever text follows.
func parseKeyToken(s string) (string, string, error) {
	if strings.HasPrefix(s, `"`) {
		return readQuotedToken(s)
	}
	i := 0
	for i < len(s) && isKeyChar(s[i]) {
		i++
	}
	if i == 0 {
		return "", "", &ParseError{Message: "expected key"}
	}
	return s[:i], s[i:], nil
}

func isKeyChar(b byte) bool {
	return b == '_' || b == '.' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

func readQuotedToken(s string) (string, string, error) {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			inner := s[1:i]
			unescaped, err := syntax.Unescape(inner)
			if err != nil {
				return "", "", err
			}
			return unescaped, s[i+1:], nil
		}
	}
	return "", "", &ParseError{Message: "unterminated quoted key"}
}

// splitKeyValue parses a "key: value" (or bare "key:") line body into its
// key and the remainder following the colon, with its leading spaces
// and tabs trimmed.
func splitKeyValue(text string) (string, string, error) {
	key, rest, err := parseKeyToken(text)
	if err != nil {
		return "", "", err
	}
	if !strings.HasPrefix(rest, ":") {
		return "", "", &ParseError{Message: "expected ':' after key"}
	}
	rest = strings.TrimLeft(rest[1:], " \t")
	return key, rest, nil
}

func isKeyValueLine(text string) bool {
	_, rest, err := parseKeyToken(text)
	if err != nil {
		return false
	}
	return strings.HasPrefix(rest, ":")
}
