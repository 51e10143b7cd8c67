// Package classmap 维护 UI 元素 label 到 Tailwind 类名的只读映射。
package classmap

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/ByLCY/wireframe/fileio"
)

// DefaultClass 用于未知 label：只画一个虚线框，不报错。
const DefaultClass = "border border-dashed border-gray-400"

// builtinClasses 是常见 UI 元素的默认样式。
var builtinClasses = map[string]string{
	"button":    "px-4 py-2 bg-blue-500 text-white rounded hover:bg-blue-600",
	"div":       "flex flex-col gap-4",
	"div-bg":    "flex flex-col gap-4 bg-gray-100",
	"footer":    "flex items-center justify-between w-full bg-gray-100 p-4",
	"grid":      "grid grid-cols-3 gap-4",
	"header":    "flex items-center justify-between w-full bg-white p-4",
	"heading":   "text-2xl font-bold mb-4",
	"icon":      "w-6 h-6",
	"image":     "object-cover",
	"input":     "border rounded px-3 py-2 focus:outline-none focus:ring-2",
	"list":      "flex flex-col gap-2",
	"paragraph": "text-gray-600 leading-relaxed",
	"section":   "flex flex-col gap-6 p-6",
	"span":      "flex gap-2",
	"text":      "text-gray-800",
}

// Builtin 返回内置样式（label 不在内置表中时 ok=false）。
func Builtin(label string) (string, bool) {
	c, ok := builtinClasses[label]
	return c, ok
}

// Mapping 在加载后不再修改，可被多个渲染过程共享。
type Mapping struct {
	labels  []string
	classes map[string]string
	ids     map[string]int
}

// Load 读取并解析类别文件。
func Load(path string) (*Mapping, error) {
	f, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	file, err := ParseFile(path, f)
	if err != nil {
		return nil, fmt.Errorf("解析类别文件失败: %w", err)
	}
	return FromFile(file)
}

// FromFile 由语法树构建映射。只有 label 的行使用内置样式；
// 空行与注释行占用一个 class id 但不对应任何 label。
func FromFile(file *File) (*Mapping, error) {
	m := newMapping(len(file.Lines))
	for _, line := range file.Lines {
		e := line.Entry
		if e == nil {
			m.skip()
			continue
		}
		if prev, dup := m.ids[e.Label]; dup {
			return nil, fmt.Errorf("%s: label %q 重复（首次出现在第 %d 行）", e.Pos, e.Label, prev+1)
		}
		classes := e.ClassString()
		if !e.Assign {
			if c, ok := builtinClasses[e.Label]; ok {
				classes = c
			} else {
				classes = DefaultClass
			}
		}
		m.add(e.Label, classes)
	}
	return m, nil
}

// FromMap 以 label 字典序构建映射。
func FromMap(classes map[string]string) *Mapping {
	m := newMapping(len(classes))
	for _, label := range slices.Sorted(maps.Keys(classes)) {
		m.add(label, classes[label])
	}
	return m
}

// Builtins 返回仅包含内置样式的映射。
func Builtins() *Mapping { return FromMap(builtinClasses) }

func newMapping(n int) *Mapping {
	return &Mapping{
		labels:  make([]string, 0, n),
		classes: make(map[string]string, n),
		ids:     make(map[string]int, n),
	}
}

func (m *Mapping) add(label, classes string) {
	m.ids[label] = len(m.labels)
	m.labels = append(m.labels, label)
	m.classes[label] = strings.Join(strings.Fields(classes), " ")
}

// skip 为空行保留一个 class id。
func (m *Mapping) skip() {
	m.labels = append(m.labels, "")
}

// Override 返回应用了覆盖项的新映射；新 label 追加在末尾（按字典序）。
func (m *Mapping) Override(overrides map[string]string) *Mapping {
	out := newMapping(m.Len() + len(overrides))
	if m != nil {
		for _, label := range m.labels {
			if label == "" {
				out.skip()
				continue
			}
			out.add(label, m.classes[label])
		}
	}
	for _, label := range slices.Sorted(maps.Keys(overrides)) {
		if _, ok := out.ids[label]; ok {
			out.classes[label] = strings.Join(strings.Fields(overrides[label]), " ")
			continue
		}
		out.add(label, overrides[label])
	}
	return out
}

// Lookup 返回 label 对应的类名。
func (m *Mapping) Lookup(label string) (string, bool) {
	if m == nil {
		return "", false
	}
	c, ok := m.classes[label]
	return c, ok
}

// Resolve 与 Lookup 相同，但未知 label 回退到 DefaultClass。
func (m *Mapping) Resolve(label string) string {
	if c, ok := m.Lookup(label); ok {
		return c
	}
	return DefaultClass
}

// Labels 按文件行序返回 label，下标即 class id；空行与注释行为空串。
func (m *Mapping) Labels() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.labels)
}

// ClassID 返回 label 的序号。
func (m *Mapping) ClassID(label string) (int, bool) {
	if m == nil {
		return 0, false
	}
	id, ok := m.ids[label]
	return id, ok
}

// Label 是 ClassID 的逆操作。
func (m *Mapping) Label(id int) (string, bool) {
	if m == nil || id < 0 || id >= len(m.labels) || m.labels[id] == "" {
		return "", false
	}
	return m.labels[id], true
}

// Len 返回 class id 的数量（含空行）。
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.labels)
}
