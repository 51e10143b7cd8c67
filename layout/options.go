package layout

// BuildOptions 配置布局阶段的可选行为。
type BuildOptions struct {
	Meta DocumentMeta
	// Placeholders 为空文本的元素填充示例内容。
	Placeholders bool
	// MinWidth/MinHeight 是页面的最小尺寸（px）。
	MinWidth  float64
	MinHeight float64
}

// 默认的文档外壳。
const (
	DefaultTitle     = "Generated Layout"
	DefaultLang      = "en"
	DefaultScriptURL = "https://cdn.tailwindcss.com"
)

// DefaultMeta 返回默认文档信息。
func DefaultMeta() DocumentMeta {
	return DocumentMeta{
		Title:  DefaultTitle,
		Lang:   DefaultLang,
		Script: DefaultScriptURL,
	}
}
