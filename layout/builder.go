package layout

import (
	"fmt"
	"math"

	"github.com/ByLCY/wireframe/annotation"
	"github.com/ByLCY/wireframe/binding"
	"github.com/ByLCY/wireframe/classmap"
)

// tagByLabel 把 UI 元素类型映射到 HTML 标签，未列出的类型使用 div。
var tagByLabel = map[string]string{
	"button":    "button",
	"heading":   "h2",
	"paragraph": "p",
	"image":     "img",
	"input":     "input",
	"span":      "span",
	"text":      "span",
	"header":    "header",
	"footer":    "footer",
	"section":   "section",
	"list":      "ul",
}

// placeholderText 是 Placeholders 打开时各类型的示例文本。
var placeholderText = map[string]string{
	"button":    "Click me",
	"heading":   "Sample Heading",
	"paragraph": "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.",
	"input":     "Enter text here...",
	"text":      "Sample text",
	"span":      "Sample text",
	"image":     "Placeholder",
}

// TagFor 返回 label 对应的 HTML 标签。
func TagFor(label string) string {
	if tag, ok := tagByLabel[label]; ok {
		return tag
	}
	return "div"
}

// Build 按输入顺序把标注转换为带类名与坐标的元素。
// 任意一条标注非法都会中止并返回 annotation.MalformedError。
func Build(anns []annotation.Annotation, m *classmap.Mapping, data any, opts BuildOptions) (*Result, error) {
	meta := opts.Meta
	if meta.Title == "" {
		meta.Title = DefaultTitle
	}
	if meta.Lang == "" {
		meta.Lang = DefaultLang
	}

	if err := annotation.ValidateAll(anns); err != nil {
		return nil, fmt.Errorf("布局计算失败: %w", err)
	}

	page := Page{
		Width:  math.Max(opts.MinWidth, 0),
		Height: math.Max(opts.MinHeight, 0),
		Boxes:  make([]Box, 0, len(anns)),
	}
	for i, a := range anns {
		box := buildBox(i, a, m, data, opts.Placeholders)
		page.Width = math.Max(page.Width, a.Right())
		page.Height = math.Max(page.Height, a.Bottom())
		page.Boxes = append(page.Boxes, box)
	}

	return &Result{Page: page, Meta: meta}, nil
}

func buildBox(index int, a annotation.Annotation, m *classmap.Mapping, data any, placeholders bool) Box {
	box := Box{
		Index:      index,
		Label:      a.Label,
		Tag:        TagFor(a.Label),
		Class:      m.Resolve(a.Label),
		X:          a.X,
		Y:          a.Y,
		Width:      a.Width,
		Height:     a.Height,
		Text:       binding.Interpolate(a.Text, data),
		Attributes: binding.InterpolateMap(a.Attributes, data),
		ClassID:    a.ClassID,
	}
	if placeholders && box.Text == "" {
		box.Text = placeholderText[a.Label]
	}
	if box.Tag == "img" {
		box.Src = placeholderImage(a.Width, a.Height)
	}
	return box
}

func placeholderImage(w, h float64) string {
	return fmt.Sprintf("https://picsum.photos/%d/%d?random=1", int(math.Max(1, math.Round(w))), int(math.Max(1, math.Round(h))))
}
