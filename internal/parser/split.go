package parser

import "strings"

// splitDelimited walks s tracking a quoted flag toggled by unescaped
// double quotes, splitting on the active delimiter only outside quotes,
// and trims surrounding ASCII spaces/tabs from each field.
func splitDelimited(s string, delim byte) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuotes {
			cur.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				cur.WriteByte(s[i])
				continue
			}
			if c == '"' {
				inQuotes = false
			}
			continue
		}
		switch {
		case c == '"':
			inQuotes = true
			cur.WriteByte(c)
		case c == delim:
			fields = append(fields, strings.Trim(cur.String(), " \t"))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	fields = append(fields, strings.Trim(cur.String(), " \t"))
	return fields
}

// isTabularRow disambiguates a tabular-array row from a nested
// key-value line: a row's first delimiter occurs before its first
// colon (or it has no colon at all).
func isTabularRow(s string, delim byte) bool {
	colonIdx := firstUnquotedByte(s, ':')
	if colonIdx == -1 {
		return true
	}
	delimIdx := firstUnquotedByte(s, delim)
	return delimIdx != -1 && delimIdx < colonIdx
}

func firstUnquotedByte(s string, target byte) int {
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuotes {
			if c == '\\' {
				i++
				continue
			}
			if c == '"' {
				inQuotes = false
			}
			continue
		}
		if c == '"' {
			inQuotes = true
			continue
		}
		if c == target {
			return i
		}
	}
	return -1
}
