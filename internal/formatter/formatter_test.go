package formatter_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tooncodec/toon-go/internal/formatter"
	"github.com/tooncodec/toon-go/internal/token"
	"github.com/tooncodec/toon-go/value"
)

func defaultOptions() formatter.Options {
	return formatter.Options{Delimiter: token.Comma, Indent: "  "}
}

func TestFormatTabularArray(t *testing.T) {
	v := value.Object(
		value.Member{Key: "users", Value: value.Array(
			value.Object(
				value.Member{Key: "id", Value: value.Number(1)},
				value.Member{Key: "name", Value: value.String("Alice")},
				value.Member{Key: "role", Value: value.String("admin")},
			),
			value.Object(
				value.Member{Key: "id", Value: value.Number(2)},
				value.Member{Key: "name", Value: value.String("Bob")},
				value.Member{Key: "role", Value: value.String("user")},
			),
		)},
	)
	got, err := formatter.Format(v, defaultOptions())
	require.NoError(t, err)
	want := "users[2]{id,name,role}:\n  1,Alice,admin\n  2,Bob,user"
	assert.Equal(t, want, got)
}

func TestFormatInlinePrimitiveArray(t *testing.T) {
	v := value.Object(value.Member{Key: "tags", Value: value.Array(
		value.String("admin"), value.String("ops"), value.String("dev"),
	)})
	got, err := formatter.Format(v, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "tags[3]: admin,ops,dev", got)
}

func TestFormatNestedPrimitiveArrays(t *testing.T) {
	v := value.Object(value.Member{Key: "pairs", Value: value.Array(
		value.Array(value.Number(1), value.Number(2)),
		value.Array(value.Number(3), value.Number(4)),
	)})
	got, err := formatter.Format(v, defaultOptions())
	require.NoError(t, err)
	want := "pairs[2]:\n  - [2]: 1,2\n  - [2]: 3,4"
	assert.Equal(t, want, got)
}

func TestFormatMixedArrayIsExpandedList(t *testing.T) {
	v := value.Object(value.Member{Key: "items", Value: value.Array(
		value.Number(1),
		value.Object(value.Member{Key: "a", Value: value.Number(1)}),
		value.String("text"),
	)})
	got, err := formatter.Format(v, defaultOptions())
	require.NoError(t, err)
	want := "items[3]:\n  - 1\n  - a: 1\n  - text"
	assert.Equal(t, want, got)
}

func TestFormatLengthMarker(t *testing.T) {
	v := value.Object(value.Member{Key: "tags", Value: value.Array(
		value.String("a"), value.String("b"), value.String("c"),
	)})
	opts := defaultOptions()
	opts.LengthMarker = true
	got, err := formatter.Format(v, opts)
	require.NoError(t, err)
	assert.Equal(t, "tags[#3]: a,b,c", got)
}

func TestFormatQuotesValueWithColon(t *testing.T) {
	v := value.Object(
		value.Member{Key: "links", Value: value.Array(
			value.Object(
				value.Member{Key: "id", Value: value.Number(1)},
				value.Member{Key: "url", Value: value.String("http://a:b")},
			),
		)},
	)
	got, err := formatter.Format(v, defaultOptions())
	require.NoError(t, err)
	want := "links[1]{id,url}:\n  1,\"http://a:b\""
	assert.Equal(t, want, got)
}

func TestFormatEmptyObjectRoot(t *testing.T) {
	got, err := formatter.Format(value.Object(), defaultOptions())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFormatRootPrimitive(t *testing.T) {
	got, err := formatter.Format(value.String("hello"), defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestFormatRootArrayNoKey(t *testing.T) {
	got, err := formatter.Format(value.Array(value.Number(1), value.Number(2)), defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "[2]: 1,2", got)
}

func TestFormatEmptyArray(t *testing.T) {
	v := value.Object(value.Member{Key: "empty", Value: value.Array()})
	got, err := formatter.Format(v, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "empty[0]:", got)
}

func TestFormatNumberNormalization(t *testing.T) {
	v := value.Object(
		value.Member{Key: "negZero", Value: value.Number(math.Copysign(0, -1))},
		value.Member{Key: "pi", Value: value.Number(3.5)},
		value.Member{Key: "whole", Value: value.Number(42)},
	)
	got, err := formatter.Format(v, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "negZero: 0\npi: 3.5\nwhole: 42", got)
}

func TestFormatPipeDelimiterAvoidsCommaQuoting(t *testing.T) {
	v := value.Object(value.Member{Key: "csv", Value: value.String("a,b")})
	opts := defaultOptions()
	opts.Delimiter = token.Pipe
	got, err := formatter.Format(v, opts)
	require.NoError(t, err)
	assert.Equal(t, "csv: a,b", got)
}

func TestFormatQuotedKey(t *testing.T) {
	v := value.Object(value.Member{Key: "has space", Value: value.Number(1)})
	got, err := formatter.Format(v, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, `"has space": 1`, got)
}

func TestFormatEmptyNestedObjectListItem(t *testing.T) {
	v := value.Object(value.Member{Key: "items", Value: value.Array(value.Object())})
	got, err := formatter.Format(v, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "items[1]:\n  -", got)
}
