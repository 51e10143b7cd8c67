package annotation

import (
	"maps"
	"math"
	"regexp"
	"slices"
	"strings"
)

var attrNamePattern = regexp.MustCompile(`^[A-Za-z_:][-A-Za-z0-9_:.]*$`)

// Validate 检查单条标注，index 仅用于错误信息。
func Validate(index int, a Annotation) error {
	if strings.TrimSpace(a.Label) == "" {
		return malformed(index, "label", "不能为空")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{{"x", a.X}, {"y", a.Y}, {"width", a.Width}, {"height", a.Height}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return malformed(index, f.name, "不是有限数值")
		}
		if f.v < 0 {
			return malformed(index, f.name, "不能为负数")
		}
	}
	// HTML 属性名不区分大小写，ID 与 id 会输出成重复属性
	seen := make(map[string]string, len(a.Attributes))
	for _, name := range slices.Sorted(maps.Keys(a.Attributes)) {
		if !attrNamePattern.MatchString(name) {
			return malformed(index, "attributes", "非法属性名 "+name)
		}
		key := strings.ToLower(name)
		if prev, dup := seen[key]; dup {
			return malformed(index, "attributes", "属性名 "+prev+" 与 "+name+" 仅大小写不同")
		}
		seen[key] = name
	}
	return nil
}

// ValidateAll 按顺序校验，遇到第一条非法标注即返回。
func ValidateAll(anns []Annotation) error {
	for i, a := range anns {
		if err := Validate(i, a); err != nil {
			return err
		}
	}
	return nil
}
