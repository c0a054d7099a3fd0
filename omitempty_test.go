package toon_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tooncodec/toon-go"
)

// TestMarshal_OmitEmpty tests the ",omitempty" struct tag.
func TestMarshal_OmitEmpty(t *testing.T) {
	type OmitStruct struct {
		String     string         `toon:"string,omitempty"`
		Int        int            `toon:"int,omitempty"`
		Float      float64        `toon:"float,omitempty"`
		Bool       bool           `toon:"bool,omitempty"`
		Slice      []string       `toon:"slice,omitempty"`
		Map        map[string]int `toon:"map,omitempty"`
		Pointer    *int           `toon:"pointer,omitempty"`
		Struct     *OmitStruct    `toon:"struct,omitempty"`
		unexported string
	}

	t.Run("all fields zero-valued are omitted", func(t *testing.T) {
		v := OmitStruct{unexported: "ignored"}
		b, err := toon.Marshal(v)
		require.NoError(t, err)
		require.Empty(t, string(b))
	})

	t.Run("non-zero fields are included", func(t *testing.T) {
		pointerVal := 123
		v := OmitStruct{
			String:  "hello",
			Int:     1,
			Float:   3.14,
			Bool:    true,
			Slice:   []string{"a"},
			Map:     map[string]int{"b": 2},
			Pointer: &pointerVal,
			Struct:  &OmitStruct{String: "nested"},
		}
		b, err := toon.Marshal(v)
		require.NoError(t, err)
		s := string(b)

		require.Contains(t, s, `string: hello`)
		require.Contains(t, s, "int: 1")
		require.Contains(t, s, "float: 3.14")
		require.Contains(t, s, "bool: true")
		require.Contains(t, s, "slice[1]: a")
		require.Contains(t, s, "map:")
		require.Contains(t, s, "b: 2")
		require.Contains(t, s, "pointer: 123")
		require.Contains(t, s, "struct:")
		require.Contains(t, s, "nested")
	})

	t.Run("false bool is omitted, other fields still render", func(t *testing.T) {
		v := OmitStruct{Bool: false, Int: 1}
		b, err := toon.Marshal(v)
		require.NoError(t, err)
		s := string(b)
		require.NotContains(t, s, "bool:")
		require.Contains(t, s, "int: 1")
	})

	type NoOmitStruct struct {
		String  string `toon:"string"`
		Int     int    `toon:"int"`
		Pointer *int   `toon:"pointer"`
	}

	t.Run("fields without omitempty are included even when zero", func(t *testing.T) {
		v := NoOmitStruct{}
		b, err := toon.Marshal(v)
		require.NoError(t, err)
		s := string(b)
		require.Contains(t, s, `string: ""`)
		require.Contains(t, s, "int: 0")
		require.Contains(t, s, "pointer: null")
	})
}
