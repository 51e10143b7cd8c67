package annotation

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ByLCY/wireframe/fileio"
)

func TestParseArrayFormat(t *testing.T) {
	data := `[
  {"label":"button","x":10,"y":20,"width":100,"height":40,"text":"Submit"},
  {"label":"icon","x":0,"y":0,"width":24,"height":24,"attributes":{"aria-label":"menu"}}
]`
	anns, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, anns, 2)

	require.Equal(t, "button", anns[0].Label)
	require.Equal(t, 10.0, anns[0].X)
	require.Equal(t, 20.0, anns[0].Y)
	require.Equal(t, 100.0, anns[0].Width)
	require.Equal(t, 40.0, anns[0].Height)
	require.Equal(t, "Submit", anns[0].Text)
	require.Nil(t, anns[0].ClassID)

	require.Equal(t, map[string]string{"aria-label": "menu"}, anns[1].Attributes)
}

func TestParseWrappedDetectorFormat(t *testing.T) {
	data := `{"annotations":[{"class":"header","class_id":5,"bbox":[10,20,110,60]}]}`
	anns, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, anns, 1)

	a := anns[0]
	require.Equal(t, "header", a.Label)
	require.Equal(t, 10.0, a.X)
	require.Equal(t, 20.0, a.Y)
	require.Equal(t, 100.0, a.Width)
	require.Equal(t, 40.0, a.Height)
	require.NotNil(t, a.ClassID)
	require.Equal(t, 5, *a.ClassID)
}

func TestParseEmpty(t *testing.T) {
	anns, err := Parse([]byte(`[]`))
	require.NoError(t, err)
	require.Empty(t, anns)

	anns, err = Parse([]byte(`{"annotations": []}`))
	require.NoError(t, err)
	require.Empty(t, anns)
}

func TestParseMalformed(t *testing.T) {
	cases := []struct {
		name  string
		data  string
		index int
		field string
	}{
		{"missing width", `[{"label":"a","x":1,"y":1,"width":1,"height":1},{"label":"b","x":1,"y":1,"height":1}]`, 1, "width"},
		{"missing label", `[{"x":1,"y":1,"width":1,"height":1}]`, 0, "label"},
		{"empty label", `[{"label":"  ","x":1,"y":1,"width":1,"height":1}]`, 0, "label"},
		{"negative x", `[{"label":"a","x":-1,"y":1,"width":1,"height":1}]`, 0, "x"},
		{"string height", `[{"label":"a","x":1,"y":1,"width":1,"height":"tall"}]`, 0, "height"},
		{"short bbox", `{"annotations":[{"class":"a","bbox":[1,2,3]}]}`, 0, "bbox"},
		{"inverted bbox", `{"annotations":[{"class":"a","bbox":[10,10,5,20]}]}`, 0, "bbox"},
		{"bad attribute", `[{"label":"a","x":1,"y":1,"width":1,"height":1,"attributes":{"on click":"x"}}]`, 0, "attributes"},
		{"attribute case collision", `[{"label":"a","x":1,"y":1,"width":1,"height":1,"attributes":{"ID":"a","id":"b"}}]`, 0, "attributes"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			require.ErrorIs(t, err, ErrMalformedAnnotation)

			var me *MalformedError
			require.True(t, errors.As(err, &me))
			require.Equal(t, tc.index, me.Index)
			require.Equal(t, tc.field, me.Field)
		})
	}
}

func TestParseInvalidDocument(t *testing.T) {
	for _, data := range []string{``, `"x"`, `{"items":[]}`, `[{`} {
		_, err := Parse([]byte(data))
		require.ErrorIs(t, err, ErrInvalidDocument, "input %q", data)
	}
}

func TestLoadReader(t *testing.T) {
	anns, err := Load(strings.NewReader(`[{"label":"button","x":1,"y":2,"width":3,"height":4}]`))
	require.NoError(t, err)
	require.Len(t, anns, 1)
	require.Equal(t, "button", anns[0].Label)

	_, err = Load(strings.NewReader(`[{"label":"button"}]`))
	require.ErrorIs(t, err, ErrMalformedAnnotation)
}

func TestValidateAllStopsAtFirstInvalid(t *testing.T) {
	anns := []Annotation{
		{Label: "a", Width: 1, Height: 1},
		{Label: "b", X: -1, Width: 1, Height: 1},
		{Label: "", Width: 1, Height: 1},
	}
	err := ValidateAll(anns)
	var me *MalformedError
	require.ErrorAs(t, err, &me)
	require.Equal(t, 1, me.Index)
	require.Equal(t, "x", me.Field)

	require.NoError(t, ValidateAll(anns[:1]))
	require.NoError(t, ValidateAll(nil))
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "annotations.json"))
	require.ErrorIs(t, err, fileio.ErrInputNotFound)
}

func TestMarshalRoundTrip(t *testing.T) {
	id := 2
	in := []Annotation{{Label: "image", X: 1, Y: 2, Width: 3, Height: 4, ClassID: &id}}
	raw, err := Marshal(in)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(raw), "["))

	out, err := Parse(raw)
	require.NoError(t, err)
	require.Equal(t, in, out)

	empty, err := Marshal(nil)
	require.NoError(t, err)
	require.Equal(t, "[]\n", string(empty))
}
