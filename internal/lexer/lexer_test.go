package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanAllBasicDepths(t *testing.T) {
	src := "a: 1\nb:\n  c: 2\n  d: 3\n"
	lines, blanks, err := New(strings.NewReader(src), "  ", true).ScanAll()
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.Empty(t, blanks)
	assert.Equal(t, Line{Number: 1, Depth: 0, Text: "a: 1"}, lines[0])
	assert.Equal(t, Line{Number: 2, Depth: 0, Text: "b:"}, lines[1])
	assert.Equal(t, Line{Number: 3, Depth: 1, Text: "c: 2"}, lines[2])
	assert.Equal(t, Line{Number: 4, Depth: 1, Text: "d: 3"}, lines[3])
}

func TestScanAllDropsBlankLinesButRecordsTheirNumbers(t *testing.T) {
	src := "a: 1\n\n   \nb: 2\n"
	lines, blanks, err := New(strings.NewReader(src), "  ", true).ScanAll()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Number)
	assert.Equal(t, 4, lines[1].Number)
	assert.Equal(t, []int{2, 3}, blanks)
}

func TestScanAllNoTrailingNewline(t *testing.T) {
	lines, _, err := New(strings.NewReader("only: line"), "  ", true).ScanAll()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "only: line", lines[0].Text)
}

func TestScanAllMisalignedIndentIsErrorInStrictMode(t *testing.T) {
	src := "a:\n   b: 1\n"
	_, _, err := New(strings.NewReader(src), "  ", true).ScanAll()
	require.Error(t, err)
	var indentErr *IndentError
	require.ErrorAs(t, err, &indentErr)
	assert.Equal(t, 2, indentErr.Line)
}

func TestScanAllMisalignedIndentRoundsDownInNonStrictMode(t *testing.T) {
	src := "a:\n   b: 1\n"
	lines, _, err := New(strings.NewReader(src), "  ", false).ScanAll()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 0, lines[0].Depth)
	assert.Equal(t, 1, lines[1].Depth) // 3 leading spaces / 2-space unit, floored
	assert.Equal(t, "b: 1", lines[1].Text)
}

func TestScanAllEmptyIndentUnitIsAlwaysDepthZero(t *testing.T) {
	lines, _, err := New(strings.NewReader("  a: 1\n"), "", true).ScanAll()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 0, lines[0].Depth)
	assert.Equal(t, "  a: 1", lines[0].Text)
}

func TestScanAllEmptyInput(t *testing.T) {
	lines, blanks, err := New(strings.NewReader(""), "  ", true).ScanAll()
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Empty(t, blanks)
}
