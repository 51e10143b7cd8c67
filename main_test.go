package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ByLCY/wireframe/annotation"
	"github.com/ByLCY/wireframe/config"
	"github.com/ByLCY/wireframe/fileio"
	"github.com/ByLCY/wireframe/logging"
)

func TestMain(m *testing.M) {
	logging.InitLogger("error")
	os.Exit(m.Run())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testConfig(dir string) config.FileConfig {
	cfg := config.Default()
	cfg.Input = filepath.Join(dir, "annotations.json")
	cfg.Classes = filepath.Join(dir, "classes.txt")
	cfg.Output = filepath.Join(dir, "out", "output.html")
	return cfg
}

func TestRunWritesDocument(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Preview = filepath.Join(dir, "out", "preview.svg")
	cfg.Debug = filepath.Join(dir, "out", "layout.json")
	writeFile(t, cfg.Classes, "button = btn-primary\nicon\n")
	writeFile(t, cfg.Input, `[{"label":"button","x":10,"y":20,"width":100,"height":40,"text":"Hi ${name}"}]`)

	require.NoError(t, run(cfg, map[string]any{"name": "Ada"}))

	out, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	s := string(out)
	require.Contains(t, s, `class="absolute btn-primary"`)
	require.Contains(t, s, `style="left: 10px; top: 20px; width: 100px; height: 40px;"`)
	require.Contains(t, s, ">Hi Ada</button>")

	preview, err := os.ReadFile(cfg.Preview)
	require.NoError(t, err)
	require.Contains(t, string(preview), "<svg")
	require.FileExists(t, cfg.Debug)
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeFile(t, cfg.Classes, "button\nheader\n")
	writeFile(t, cfg.Input, `{"annotations":[{"class":"header","class_id":1,"bbox":[0,0,800,60]},{"class":"button","class_id":0,"bbox":[10,10,90,40]}]}`)

	require.NoError(t, run(cfg, nil))
	first, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	require.NoError(t, run(cfg, nil))
	second, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	require.True(t, bytes.Equal(first, second))
}

func TestRunMalformedWritesNothing(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeFile(t, cfg.Classes, "button\n")
	writeFile(t, cfg.Input, `[{"label":"button","x":1,"y":1,"height":1}]`)

	err := run(cfg, nil)
	require.ErrorIs(t, err, annotation.ErrMalformedAnnotation)
	require.NoFileExists(t, cfg.Output)
}

func TestRunMissingInputs(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	err := run(cfg, nil)
	require.ErrorIs(t, err, fileio.ErrInputNotFound)

	writeFile(t, cfg.Classes, "button\n")
	err = run(cfg, nil)
	require.ErrorIs(t, err, fileio.ErrInputNotFound)
	require.NoFileExists(t, cfg.Output)
}

func TestRunUnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeFile(t, cfg.Classes, "button\n")
	writeFile(t, cfg.Input, `[]`)
	writeFile(t, filepath.Join(dir, "blocker"), "x")
	cfg.Output = filepath.Join(dir, "blocker", "output.html")

	require.ErrorIs(t, run(cfg, nil), fileio.ErrOutputWrite)
}

func TestRunUnwritableDebugKeepsOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeFile(t, cfg.Classes, "button\n")
	writeFile(t, cfg.Input, `[{"label":"button","x":0,"y":0,"width":1,"height":1}]`)
	writeFile(t, cfg.Output, "previous")
	writeFile(t, filepath.Join(dir, "blocker"), "x")
	cfg.Debug = filepath.Join(dir, "blocker", "layout.json")

	require.ErrorIs(t, run(cfg, nil), fileio.ErrOutputWrite)
	out, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	require.Equal(t, "previous", string(out))
}

func TestRunEmptyAnnotations(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeFile(t, cfg.Classes, "")
	writeFile(t, cfg.Input, `[]`)

	require.NoError(t, run(cfg, nil))
	out, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	require.NotContains(t, string(out), "absolute")
	require.Contains(t, string(out), `<div class="relative">`)
}

func TestRunClassOverrides(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.ClassOverrides = map[string]string{"button": "btn-override"}
	writeFile(t, cfg.Classes, "button = btn-primary\n")
	writeFile(t, cfg.Input, `[{"label":"button","x":0,"y":0,"width":1,"height":1}]`)

	require.NoError(t, run(cfg, nil))
	out, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	require.Contains(t, string(out), `class="absolute btn-override"`)
}

func TestParseData(t *testing.T) {
	data, err := parseData("")
	require.NoError(t, err)
	require.Nil(t, data)

	data, err = parseData(`{"a":1}`)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": 1.0}, data)

	path := filepath.Join(t.TempDir(), "data.json")
	writeFile(t, path, `{"b":"x"}`)
	data, err = parseData("@" + path)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"b": "x"}, data)

	_, err = parseData("{")
	require.Error(t, err)
}

func TestRunConvert(t *testing.T) {
	dir := t.TempDir()
	opts := convertOptions{
		Labels:  filepath.Join(dir, "labels", "image.txt"),
		Image:   filepath.Join(dir, "images", "image.png"),
		Classes: filepath.Join(dir, "classes.txt"),
		Output:  filepath.Join(dir, "annotations.json"),
		Preview: filepath.Join(dir, "bbox", "annotated.pdf"),
	}
	writeFile(t, opts.Classes, "button\nheading\n")
	writeFile(t, opts.Labels, "1 0.5 0.5 0.25 0.125\n0 0.25 0.25 0.125 0.125\n")

	require.NoError(t, os.MkdirAll(filepath.Dir(opts.Image), 0o755))
	f, err := os.Create(opts.Image)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 1024, 512))))
	require.NoError(t, f.Close())

	require.NoError(t, runConvert(opts))

	anns, err := annotation.LoadFile(opts.Output)
	require.NoError(t, err)
	require.Len(t, anns, 2)
	require.Equal(t, "heading", anns[0].Label)
	require.Equal(t, 384.0, anns[0].X)
	require.Equal(t, 224.0, anns[0].Y)
	require.Equal(t, 256.0, anns[0].Width)
	require.Equal(t, 64.0, anns[0].Height)
	require.Equal(t, "button", anns[1].Label)

	preview, err := os.ReadFile(opts.Preview)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(preview), "%PDF"))
}

func TestRunConvertMissingLabels(t *testing.T) {
	dir := t.TempDir()
	opts := convertOptions{
		Labels:  filepath.Join(dir, "labels.txt"),
		Image:   filepath.Join(dir, "image.png"),
		Classes: filepath.Join(dir, "classes.txt"),
		Output:  filepath.Join(dir, "annotations.json"),
	}
	writeFile(t, opts.Classes, "button\n")
	require.ErrorIs(t, runConvert(opts), fileio.ErrInputNotFound)
	require.NoFileExists(t, opts.Output)
}

func TestMainRenderWritesMergedConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	for _, env := range []string{config.EnvConfig, config.EnvInput, config.EnvClasses, config.EnvOutput, config.EnvLogLevel, config.EnvMinify} {
		t.Setenv(env, "")
	}
	path := filepath.Join(dir, "merged.yaml")

	code := mainRender([]string{"-in", "screens/login.json", "-minify", "-log-level", "error", "-write-config", path})
	require.Equal(t, 0, code)

	cfg, err := config.ReadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "screens/login.json", cfg.Input)
	require.Equal(t, "classes.txt", cfg.Classes)
	require.True(t, cfg.Minify)
	require.NoFileExists(t, filepath.Join(dir, "output.html"))
}
