package parser

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/tooncodec/toon-go/internal/syntax"
	"github.com/tooncodec/toon-go/value"
)

const maxSafeInt = 1 << 53 - 1

// parsePrimitiveToken decodes a single trimmed field: quoted string,
// reserved word, number, or bare string. When coerceTypes is false, an
// unquoted token is always left as a string, letting a host run its
// own type inference over the decoded tree.
func parsePrimitiveToken(raw string, coerceTypes bool) (value.Value, error) {
	if raw == "" {
		return value.String(""), nil
	}
	if strings.HasPrefix(raw, `"`) {
		return parseQuotedString(raw)
	}
	if !coerceTypes {
		return value.String(raw), nil
	}
	switch raw {
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	case "null":
		return value.Null(), nil
	}
	if syntax.IsDecodeNumber(raw) {
		return parseNumberToken(raw)
	}
	return value.String(raw), nil
}

func parseQuotedString(raw string) (value.Value, error) {
	closeIdx := -1
	for i := 1; i < len(raw); i++ {
		if raw[i] == '\\' {
			i++
			continue
		}
		if raw[i] == '"' {
			closeIdx = i
			break
		}
	}
	if closeIdx == -1 || closeIdx != len(raw)-1 {
		return value.Value{}, &ParseError{Message: "unterminated quoted string"}
	}
	s, err := syntax.Unescape(raw[1:closeIdx])
	if err != nil {
		return value.Value{}, err
	}
	return value.String(s), nil
}

// parseNumberToken decodes a token that already matches the number
// grammar. A token whose magnitude overflows float64 (e.g. "1e400")
// parses as +/-Inf with a range error from strconv; per the numeric
// grammar such a token is only a Number when its value is finite, so
// it falls through and decodes as a plain string instead of erroring.
func parseNumberToken(raw string) (value.Value, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		if math.IsInf(f, 0) {
			return value.String(raw), nil
		}
		return value.Value{}, &ParseError{Message: fmt.Sprintf("invalid number literal %q", raw)}
	}
	if isIntegerLiteral(raw) && math.Abs(f) > maxSafeInt {
		if bi, ok := new(big.Int).SetString(raw, 10); ok {
			return value.BigInt(bi), nil
		}
	}
	return value.Number(f), nil
}

func isIntegerLiteral(raw string) bool {
	return !strings.ContainsAny(raw, ".eE")
}
