package annotation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ByLCY/wireframe/fileio"
)

// rawAnnotation 同时兼容两种记录：
//   - {label, x, y, width, height, text, attributes}
//   - {class, class_id, bbox: [x1, y1, x2, y2]}（检测脚本的输出格式）
type rawAnnotation struct {
	Label      *string           `json:"label"`
	Class      *string           `json:"class"`
	ClassID    *int              `json:"class_id"`
	X          *float64          `json:"x"`
	Y          *float64          `json:"y"`
	Width      *float64          `json:"width"`
	Height     *float64          `json:"height"`
	BBox       []float64         `json:"bbox"`
	Text       string            `json:"text"`
	Attributes map[string]string `json:"attributes"`
}

type wrappedDocument struct {
	Annotations []json.RawMessage `json:"annotations"`
}

// LoadFile 读取并校验标注文件。
func LoadFile(path string) ([]Annotation, error) {
	f, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	anns, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return anns, nil
}

// Load 从 reader 读取标注。
func Load(r io.Reader) ([]Annotation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse 解析 JSON 标注；接受顶层数组或 {"annotations": [...]} 包装对象。
// 返回的每条标注都已通过 Validate。
func Parse(data []byte) ([]Annotation, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: 文件为空", ErrInvalidDocument)
	}

	var records []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
	case '{':
		var doc wrappedDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		if doc.Annotations == nil {
			return nil, fmt.Errorf("%w: 缺少 annotations 字段", ErrInvalidDocument)
		}
		records = doc.Annotations
	default:
		return nil, fmt.Errorf("%w: 顶层必须是数组或对象", ErrInvalidDocument)
	}

	out := make([]Annotation, 0, len(records))
	for i, rec := range records {
		a, err := decodeRecord(i, rec)
		if err != nil {
			return nil, err
		}
		if err := Validate(i, a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func decodeRecord(index int, rec json.RawMessage) (Annotation, error) {
	var raw rawAnnotation
	if err := json.Unmarshal(rec, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return Annotation{}, malformed(index, typeErr.Field, "类型应为 "+typeErr.Type.String())
		}
		return Annotation{}, malformed(index, "record", err.Error())
	}

	a := Annotation{
		Text:       raw.Text,
		Attributes: raw.Attributes,
		ClassID:    raw.ClassID,
	}
	switch {
	case raw.Label != nil:
		a.Label = *raw.Label
	case raw.Class != nil:
		a.Label = *raw.Class
	default:
		return Annotation{}, malformed(index, "label", "缺少字段")
	}

	if raw.BBox != nil {
		if len(raw.BBox) != 4 {
			return Annotation{}, malformed(index, "bbox", fmt.Sprintf("需要 4 个坐标，实际 %d 个", len(raw.BBox)))
		}
		x1, y1, x2, y2 := raw.BBox[0], raw.BBox[1], raw.BBox[2], raw.BBox[3]
		if x2 < x1 || y2 < y1 {
			return Annotation{}, malformed(index, "bbox", "右下角坐标小于左上角")
		}
		a.X, a.Y, a.Width, a.Height = x1, y1, x2-x1, y2-y1
		return a, nil
	}

	for _, f := range []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"x", raw.X, &a.X},
		{"y", raw.Y, &a.Y},
		{"width", raw.Width, &a.Width},
		{"height", raw.Height, &a.Height},
	} {
		if f.src == nil {
			return Annotation{}, malformed(index, f.name, "缺少字段")
		}
		*f.dst = *f.src
	}
	return a, nil
}

// Marshal 以顶层数组格式编码标注，Parse 可原样读回。
func Marshal(anns []Annotation) ([]byte, error) {
	if anns == nil {
		anns = []Annotation{}
	}
	data, err := json.MarshalIndent(anns, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
