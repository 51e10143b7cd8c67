package binding

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustData(t *testing.T, raw string) any {
	t.Helper()
	var data any
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	return data
}

func TestInterpolate(t *testing.T) {
	data := mustData(t, `{"user":{"name":"Ada","tags":["a","b"]},"count":3,"price":9.5}`)

	require.Equal(t, "Hello, Ada!", Interpolate("Hello, ${user.name}!", data))
	require.Equal(t, "b", Interpolate("${user.tags[1]}", data))
	require.Equal(t, "3 items", Interpolate("${count} items", data))
	require.Equal(t, "9.5", Interpolate("${price}", data))
}

func TestInterpolateMissingPath(t *testing.T) {
	data := mustData(t, `{"user":{}}`)

	require.Equal(t, "${user.name}", Interpolate("${user.name}", data))
	require.Equal(t, "Guest", Interpolate("${user.name|Guest}", data))
	require.Equal(t, "Guest", Interpolate("${user.name | Guest}", nil))
	require.Equal(t, "${user.name}", Interpolate("${user.name}", nil))
}

func TestInterpolateMap(t *testing.T) {
	data := mustData(t, `{"href":"/home"}`)
	out := InterpolateMap(map[string]string{"href": "${href}", "title": "plain"}, data)
	require.Equal(t, map[string]string{"href": "/home", "title": "plain"}, out)
	require.Nil(t, InterpolateMap(nil, data))
}

func TestInterpolateNestedIndexes(t *testing.T) {
	data := mustData(t, `{"grid":[["a","b"],["c","d"]],"rows":[{"title":"first"}]}`)

	require.Equal(t, "c", Interpolate("${grid[1][0]}", data))
	require.Equal(t, "first", Interpolate("${rows[0].title}", data))
	require.Equal(t, "${grid[2][0]}", Interpolate("${grid[2][0]}", data))
	require.Equal(t, "${rows[x]}", Interpolate("${rows[x]}", data))
	require.Equal(t, "${rows.title}", Interpolate("${rows.title}", data))
}
