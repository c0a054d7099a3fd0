package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tooncodec/toon-go/internal/token"
)

func TestParseHeaderLineStrayCommaBeforeBracketIsError(t *testing.T) {
	h, rest, ok, err := parseHeaderLine("users[2,]{id,name}: ")
	_ = rest
	require.Error(t, err) // stray comma before ']' is malformed
	_ = h
	_ = ok
}

func TestParseHeaderLinePlainKeyFields(t *testing.T) {
	h, rest, ok, err := parseHeaderLine("users[2]{id,name}:")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "users", h.Key)
	assert.Equal(t, 2, h.Length)
	assert.Equal(t, token.Comma, h.Delim)
	assert.Equal(t, []string{"id", "name"}, h.Fields)
	assert.Empty(t, rest)
}

func TestParseHeaderLineTabDelimiter(t *testing.T) {
	h, _, ok, err := parseHeaderLine("vals[3\t]:")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, token.Tab, h.Delim)
}

func TestParseHeaderLinePipeDelimiter(t *testing.T) {
	h, _, ok, err := parseHeaderLine("vals[3|]:")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, token.Pipe, h.Delim)
}

func TestParseHeaderLineNoKey(t *testing.T) {
	h, rest, ok, err := parseHeaderLine("[2]: 1,2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, h.HasKey)
	assert.Equal(t, "1,2", rest)
}

func TestParseHeaderLineLengthMarker(t *testing.T) {
	h, _, ok, err := parseHeaderLine("tags[#3]: a,b,c")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, h.Length)
}

func TestParseHeaderLineNotAHeader(t *testing.T) {
	_, _, ok, err := parseHeaderLine("plain: value")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSplitKeyValueBareKey(t *testing.T) {
	key, rest, err := splitKeyValue("name:")
	require.NoError(t, err)
	assert.Equal(t, "name", key)
	assert.Empty(t, rest)
}

func TestSplitKeyValueQuotedKey(t *testing.T) {
	key, rest, err := splitKeyValue(`"has space": 1`)
	require.NoError(t, err)
	assert.Equal(t, "has space", key)
	assert.Equal(t, "1", rest)
}

func TestSplitDelimitedRespectsQuotes(t *testing.T) {
	fields := splitDelimited(`1,"a,b",3`, ',')
	assert.Equal(t, []string{"1", `"a,b"`, "3"}, fields)
}

func TestIsTabularRowDisambiguation(t *testing.T) {
	assert.True(t, isTabularRow("1,Alice", ','))
	assert.False(t, isTabularRow("key: 1,2", ','))
	assert.False(t, isTabularRow("key: value", ','))
}
