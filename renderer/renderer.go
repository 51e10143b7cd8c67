package renderer

import "github.com/ByLCY/wireframe/layout"

// Renderer 将布局结果输出为最终文件，例如 HTML 页面或预览 PDF。
// Render 返回生成的字节数据以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}
