// Package htmlrenderer 把布局结果组装成以 Tailwind 类名排版的静态 HTML 页面。
package htmlrenderer

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/tdewolff/minify/v2"
	minhtml "github.com/tdewolff/minify/v2/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ByLCY/wireframe/layout"
	"github.com/ByLCY/wireframe/renderer"
)

// ContainerClass 是包裹所有元素的相对定位容器的类名。
const ContainerClass = "relative"

// Options configures the HTML renderer.
type Options struct {
	// Minify 压缩输出（去掉空白与可省略的引号）。
	Minify bool
}

// Renderer 基于 golang.org/x/net/html 节点树生成文档，输出只取决于输入。
type Renderer struct {
	opts     Options
	minifier *minify.M
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates an HTML renderer.
func NewRenderer(opts Options) *Renderer {
	r := &Renderer{opts: opts}
	if opts.Minify {
		m := minify.New()
		m.AddFunc("text/html", minhtml.Minify)
		r.minifier = m
	}
	return r
}

// Render 生成完整的 HTML 文档。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	doc := Document(result)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("生成 HTML 失败: %w", err)
	}
	buf.WriteByte('\n')

	if r.minifier == nil {
		return buf.Bytes(), nil
	}
	out, err := r.minifier.Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("压缩 HTML 失败: %w", err)
	}
	return out, nil
}

// Document 构建整棵文档树：doctype、head、body 以及定位容器。
func Document(result *layout.Result) *html.Node {
	meta := result.Meta
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(newline(0))

	root := element(atom.Html, attr("lang", meta.Lang))
	doc.AppendChild(root)

	head := element(atom.Head)
	appendIndented(head, 2,
		element(atom.Meta, attr("charset", "UTF-8")),
		element(atom.Meta, attr("name", "viewport"), attr("content", "width=device-width, initial-scale=1.0")),
		withText(element(atom.Title), meta.Title),
	)
	if meta.Script != "" {
		appendIndented(head, 2, element(atom.Script, attr("src", meta.Script)))
	}
	for _, href := range meta.Stylesheets {
		appendIndented(head, 2, element(atom.Link, attr("rel", "stylesheet"), attr("href", href)))
	}
	head.AppendChild(newline(1))

	var bodyAttrs []html.Attribute
	if meta.BodyClass != "" {
		bodyAttrs = append(bodyAttrs, attr("class", meta.BodyClass))
	}
	body := element(atom.Body, bodyAttrs...)
	body.AppendChild(newline(1))
	body.AppendChild(container(result.Page))
	body.AppendChild(newline(0))

	root.AppendChild(newline(0))
	root.AppendChild(head)
	root.AppendChild(newline(0))
	root.AppendChild(body)
	root.AppendChild(newline(0))
	return doc
}

func container(page layout.Page) *html.Node {
	attrs := []html.Attribute{attr("class", ContainerClass)}
	if page.Width > 0 || page.Height > 0 {
		attrs = append(attrs, attr("style", fmt.Sprintf("width: %s; height: %s;",
			layout.Px(page.Width).CSS(), layout.Px(page.Height).CSS())))
	}
	div := element(atom.Div, attrs...)
	for _, box := range page.Boxes {
		appendIndented(div, 2, BoxNode(box))
	}
	if len(page.Boxes) > 0 {
		div.AppendChild(newline(1))
	}
	return div
}

// BoxNode 把单个元素转换为绝对定位的节点。
func BoxNode(box layout.Box) *html.Node {
	classes := "absolute"
	if box.Class != "" {
		classes += " " + box.Class
	}
	style := PositionStyle(box)

	extra := lowerKeys(box.Attributes)
	if c := strings.TrimSpace(extra["class"]); c != "" {
		classes += " " + c
	}
	if s := strings.TrimSpace(extra["style"]); s != "" {
		style += " " + s
	}

	attrs := []html.Attribute{
		attr("class", classes),
		attr("style", style),
		attr("data-type", box.Label),
	}
	if box.ClassID != nil {
		attrs = append(attrs, attr("data-class-id", strconv.Itoa(*box.ClassID)))
	}

	switch box.Tag {
	case "img":
		attrs = append(attrs, attr("src", box.Src), attr("alt", box.Text))
	case "input":
		attrs = append(attrs, attr("type", "text"), attr("placeholder", box.Text))
	}

	reserved := map[string]bool{"class": true, "style": true, "data-type": true}
	for _, a := range attrs {
		reserved[a.Key] = true
	}
	for _, key := range slices.Sorted(maps.Keys(extra)) {
		if reserved[key] {
			continue
		}
		attrs = append(attrs, attr(key, extra[key]))
	}

	n := &html.Node{Type: html.ElementNode, Data: box.Tag, DataAtom: atom.Lookup([]byte(box.Tag)), Attr: attrs}
	if !box.Void() && box.Text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: box.Text})
	}
	return n
}

// lowerKeys 把属性名统一为小写。大小写冲突时按原始键的字典序保留第一个，
// 经过 annotation.Validate 的标注不会出现这种情况。
func lowerKeys(attrs map[string]string) map[string]string {
	out := make(map[string]string, len(attrs))
	for _, key := range slices.Sorted(maps.Keys(attrs)) {
		k := strings.ToLower(key)
		if _, dup := out[k]; dup {
			continue
		}
		out[k] = attrs[key]
	}
	return out
}

// PositionStyle 返回绝对定位所需的内联样式。
func PositionStyle(box layout.Box) string {
	return fmt.Sprintf("left: %s; top: %s; width: %s; height: %s;",
		layout.Px(box.X).CSS(), layout.Px(box.Y).CSS(),
		layout.Px(box.Width).CSS(), layout.Px(box.Height).CSS())
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func newline(depth int) *html.Node {
	return &html.Node{Type: html.TextNode, Data: "\n" + strings.Repeat("  ", depth)}
}

// appendIndented 在每个子节点前插入换行与缩进，便于阅读输出。
func appendIndented(parent *html.Node, depth int, children ...*html.Node) {
	for _, c := range children {
		parent.AppendChild(newline(depth))
		parent.AppendChild(c)
	}
}
