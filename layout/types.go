package layout

// 该文件定义布局结果，供 HTML 渲染、预览渲染与调试 JSON 共用。

// Result 保存布局后的页面与文档元信息。
type Result struct {
	Page Page         `json:"page"`
	Meta DocumentMeta `json:"meta"`
}

// Page 的宽高单位为 px，原点在左上角。
type Page struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Boxes  []Box   `json:"boxes"`
}

// Box 表示一个已经确定标签、类名与坐标的元素。
// Boxes 的顺序即输入顺序，也是绘制顺序（后者覆盖前者）。
type Box struct {
	Index      int               `json:"index"`
	Label      string            `json:"label"`
	Tag        string            `json:"tag"`
	Class      string            `json:"class"`
	X          float64           `json:"x"`
	Y          float64           `json:"y"`
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Text       string            `json:"text,omitempty"`
	Src        string            `json:"src,omitempty"` // 仅 img
	Attributes map[string]string `json:"attributes,omitempty"`
	ClassID    *int              `json:"classId,omitempty"`
}

// Void 表示该标签没有闭合标签与子节点。
func (b Box) Void() bool {
	return b.Tag == "img" || b.Tag == "input"
}

// DocumentMeta 描述 HTML 外壳所需的信息。
type DocumentMeta struct {
	Title       string   `json:"title"`
	Lang        string   `json:"lang"`
	Script      string   `json:"script,omitempty"`
	Stylesheets []string `json:"stylesheets,omitempty"`
	BodyClass   string   `json:"bodyClass,omitempty"`
}
