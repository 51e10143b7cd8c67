// Package annotation 定义 UI 元素的包围盒标注，并负责从 JSON 或 YOLO 标签文件中读取。
package annotation

import (
	"errors"
	"fmt"
)

// Annotation 描述一个 UI 元素的类型与包围盒（单位：px）。
type Annotation struct {
	Label      string            `json:"label"`
	X          float64           `json:"x"`
	Y          float64           `json:"y"`
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Text       string            `json:"text,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	ClassID    *int              `json:"class_id,omitempty"`
}

// Right 返回包围盒右边界。
func (a Annotation) Right() float64 { return a.X + a.Width }

// Bottom 返回包围盒下边界。
func (a Annotation) Bottom() float64 { return a.Y + a.Height }

var (
	// ErrMalformedAnnotation 表示某条标注不满足约束（缺字段、负数、空 label 等）。
	ErrMalformedAnnotation = errors.New("malformed annotation")
	// ErrInvalidDocument 表示文件整体不是可识别的标注 JSON。
	ErrInvalidDocument = errors.New("invalid annotation document")
)

// MalformedError 指出出错的标注下标与字段。
type MalformedError struct {
	Index  int
	Field  string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("第 %d 条标注的字段 %s 无效: %s", e.Index, e.Field, e.Reason)
}

// Is 让 errors.Is(err, ErrMalformedAnnotation) 成立。
func (e *MalformedError) Is(target error) bool { return target == ErrMalformedAnnotation }

func malformed(index int, field, reason string) *MalformedError {
	return &MalformedError{Index: index, Field: field, Reason: reason}
}
