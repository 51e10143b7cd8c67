package canvasrenderer

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/wireframe/fileio"
	"github.com/ByLCY/wireframe/fonts"
	"github.com/ByLCY/wireframe/layout"
	"github.com/ByLCY/wireframe/renderer"
)

const (
	boxStrokeWidth = 0.4 // mm
	labelFontSize  = 7.0 // pt
	labelPadding   = 0.8 // mm
	minPageSizePx  = 100.0
)

// Format 是预览输出格式。
type Format string

const (
	FormatPDF Format = "pdf"
	FormatSVG Format = "svg"
)

// FormatFromPath 根据扩展名推断输出格式。
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "pdf":
		return FormatPDF, nil
	case "svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("不支持的预览格式: %s（仅支持 .pdf/.svg）", path)
	}
}

// palette 与检测脚本的随机色相近，但按 label 固定，保证输出可复现。
var palette = []string{
	"#e6194b", "#3cb44b", "#4363d8", "#f58231", "#911eb4",
	"#46f0f0", "#f032e6", "#bcbd22", "#008080", "#9a6324",
	"#800000", "#808000", "#000075", "#ff7f0e", "#17becf",
}

// Renderer draws bounding-box previews via github.com/tdewolff/canvas.
type Renderer struct {
	format     Format
	background string

	fontMu sync.Mutex
	family *canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the preview renderer.
type Options struct {
	Format Format
	// Background 是可选的底图路径（通常是标注所对应的截图），按页面尺寸拉伸绘制。
	Background string
}

// NewRenderer creates a PDF preview renderer.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{Format: FormatPDF}) }

// NewRendererWithOptions creates a preview renderer.
func NewRendererWithOptions(opts Options) *Renderer {
	if opts.Format == "" {
		opts.Format = FormatPDF
	}
	return &Renderer{format: opts.Format, background: opts.Background}
}

// Render 输出预览文件内容。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	widthMM := layout.Px(math.Max(result.Page.Width, minPageSizePx)).ToMM()
	heightMM := layout.Px(math.Max(result.Page.Height, minPageSizePx)).ToMM()

	c := canvas.New(widthMM, heightMM)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 与标注一致，左上角为原点

	if err := r.drawBackground(ctx, widthMM, heightMM); err != nil {
		return nil, err
	}
	if err := r.loadFamily(); err != nil {
		return nil, err
	}
	for _, box := range result.Page.Boxes {
		r.drawBox(ctx, box)
	}

	var buf bytes.Buffer
	if err := r.write(&buf, c, widthMM, heightMM, result.Meta); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) write(w io.Writer, c *canvas.Canvas, widthMM, heightMM float64, meta layout.DocumentMeta) error {
	switch r.format {
	case FormatPDF:
		writer := pdf.New(w, widthMM, heightMM, nil)
		writer.SetInfo(meta.Title, "", "", "", "wireframe")
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return fmt.Errorf("写入 PDF 失败: %w", err)
		}
	case FormatSVG:
		writer := svg.New(w, widthMM, heightMM, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return fmt.Errorf("写入 SVG 失败: %w", err)
		}
	default:
		return fmt.Errorf("不支持的预览格式: %s", r.format)
	}
	return nil
}

func (r *Renderer) drawBackground(ctx *canvas.Context, widthMM, heightMM float64) error {
	ctx.SetFillColor(canvas.White)
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.DrawPath(0, 0, canvas.Rectangle(widthMM, heightMM))

	if r.background == "" {
		return nil
	}
	f, err := fileio.Open(r.background)
	if err != nil {
		return err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("解码底图 %s 失败: %w", r.background, err)
	}
	dpmm := float64(img.Bounds().Dx()) / widthMM
	if dpmm <= 0 {
		dpmm = 1
	}
	ctx.DrawImage(0, 0, img, canvas.DPMM(dpmm))
	return nil
}

// drawBox 绘制描边矩形，在左上角上方贴一个带底色的 label 标签，
// 框足够高时在框内左下角标注像素尺寸。
func (r *Renderer) drawBox(ctx *canvas.Context, box layout.Box) {
	x, y := layout.Px(box.X).ToMM(), layout.Px(box.Y).ToMM()
	w, h := layout.Px(box.Width).ToMM(), layout.Px(box.Height).ToMM()
	col := LabelColor(box.Label)

	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(col)
	ctx.SetStrokeWidth(boxStrokeWidth)
	ctx.DrawPath(x, y, canvas.Rectangle(w, h))

	tagFace := r.family.Face(labelFontSize, canvas.White, canvas.FontBold, canvas.FontNormal)
	metrics := tagFace.Metrics()
	tagW := tagFace.TextWidth(box.Label) + 2*labelPadding
	tagH := metrics.LineHeight + labelPadding
	tagY := y - tagH
	if tagY < 0 {
		// 贴顶的元素把标签放进框内
		tagY = y
	}
	ctx.SetFillColor(col)
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.DrawPath(x, tagY, canvas.Rectangle(tagW, tagH))
	ctx.DrawText(x+labelPadding, tagY+labelPadding/2+metrics.Ascent, canvas.NewTextLine(tagFace, box.Label, canvas.Left))

	sizeFace := r.family.Face(labelFontSize, col, canvas.FontRegular, canvas.FontNormal)
	sizeMetrics := sizeFace.Metrics()
	if h < 2*sizeMetrics.LineHeight+tagH {
		return
	}
	size := layout.FormatNumber(box.Width) + "x" + layout.FormatNumber(box.Height)
	ctx.DrawText(x+labelPadding, y+h-labelPadding/2-sizeMetrics.Descent, canvas.NewTextLine(sizeFace, size, canvas.Left))
}

// loadFamily 加载标签用的常规与粗体字体，只加载一次。
func (r *Renderer) loadFamily() error {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.family != nil {
		return nil
	}
	family := canvas.NewFontFamily("wireframe-label")
	for _, f := range []struct {
		name  string
		style canvas.FontStyle
	}{
		{"regular", canvas.FontRegular},
		{"bold", canvas.FontBold},
	} {
		data, err := fonts.Load(f.name)
		if err != nil {
			return err
		}
		if err := family.LoadFont(data, 0, f.style); err != nil {
			return fmt.Errorf("加载标签字体 %s 失败: %w", f.name, err)
		}
	}
	r.family = family
	return nil
}

// LabelColor 为 label 选取固定的描边颜色。
func LabelColor(label string) color.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(label))
	return canvas.Hex(palette[h.Sum32()%uint32(len(palette))])
}
