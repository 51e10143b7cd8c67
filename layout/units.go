package layout

import "strconv"

// 标注坐标以 CSS 像素给出（96 px = 1 in），预览渲染器以毫米绘制。

// Unit represents the unit of a length value.
type Unit int

const (
	UnitPX Unit = iota // CSS pixels
	UnitMM             // millimeters
	UnitPT             // points
)

// Conversion constants between px, pt and mm.
const (
	PxPerInch = 96.0
	PtToMm    = 0.352777
	MmToPt    = 1.0 / PtToMm
	PxToMm    = 25.4 / PxPerInch
	MmToPx    = 1.0 / PxToMm
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitMM:
		return "mm"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Px 构造像素长度。
func Px(v float64) Length { return Length{Value: v, Unit: UnitPX} }

// To converts this length to target unit.
func (l Length) To(target Unit) float64 {
	mm := l.toMM()
	switch target {
	case UnitPX:
		return mm * MmToPx
	case UnitPT:
		return mm * MmToPt
	default:
		return mm
	}
}

func (l Length) toMM() float64 {
	switch l.Unit {
	case UnitPX:
		return l.Value * PxToMm
	case UnitPT:
		return l.Value * PtToMm
	default:
		return l.Value
	}
}

func (l Length) ToMM() float64 { return l.To(UnitMM) }
func (l Length) ToPT() float64 { return l.To(UnitPT) }

// CSS 输出形如 "12px" 的 CSS 长度，去掉多余的小数位。
func (l Length) CSS() string {
	return FormatNumber(l.Value) + UnitToString(l.Unit)
}

// FormatNumber 以最短形式输出数字：10 -> "10"，10.5 -> "10.5"。
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
