package toon_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tooncodec/toon-go"
)

// TestGolden decodes each fixture, re-encodes it with default options,
// and checks the output matches the fixture byte for byte. Every
// testdata/*.toon file here is already written in this codec's
// canonical form, so there is no separate golden file to maintain: the
// fixture doubles as its own expected output, exercising the round-trip
// and idempotence properties.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.toon")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			src, err := os.ReadFile(file)
			require.NoError(t, err)

			v, err := toon.DecodeValue(src)
			require.NoError(t, err)

			actual, err := toon.EncodeValue(v)
			require.NoError(t, err)

			expected := bytes.TrimSuffix(src, []byte("\n"))
			require.Equal(t, string(expected), string(actual), "re-encoded output does not match canonical fixture")

			// A second round trip must produce byte-identical output.
			v2, err := toon.DecodeValue(actual)
			require.NoError(t, err)
			idempotent, err := toon.EncodeValue(v2)
			require.NoError(t, err)
			require.Equal(t, string(actual), string(idempotent))
		})
	}
}

func TestGolden_NoTrailingNewlineEmitted(t *testing.T) {
	a, err := toon.Marshal(map[string]any{"x": 1})
	require.NoError(t, err)
	require.False(t, strings.HasSuffix(string(a), "\n"))
}
