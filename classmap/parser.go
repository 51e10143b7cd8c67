package classmap

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	// Word 覆盖 Tailwind 类名中的 ':' '/' '[' 等字符，因此注释只能出现在词首。
	classLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Newline", Pattern: `\r?\n`},
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
		{Name: "Assign", Pattern: `=`},
		{Name: "Word", Pattern: `[^\s="]+`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(classLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

// File 是类别文件的语法树根节点。
// 每个物理行都保留一个 Line，空行与纯注释行也不例外，
// 因此 Lines 的下标就是 YOLO 标签里的 class id。
type File struct {
	Lines []*Line `parser:"@@*"`
}

// Line 是一行内容，Entry 为 nil 表示空行或注释行。
type Line struct {
	Entry *Entry `parser:"@@? Newline"`
}

// Entry 对应一行：label [= classes...]。
type Entry struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Label   string         `parser:"@Word"`
	Assign  bool           `parser:"( @'='"`
	Classes []*ClassValue  `parser:"  @@* )?"`
}

// Entries 返回所有非空行的条目。
func (f *File) Entries() []*Entry {
	entries := make([]*Entry, 0, len(f.Lines))
	for _, l := range f.Lines {
		if l.Entry != nil {
			entries = append(entries, l.Entry)
		}
	}
	return entries
}

// ClassValue 是裸写的类名或带引号的类名串。
type ClassValue struct {
	Quoted *StringLiteral `parser:"  @String"`
	Word   *string        `parser:"| @Word"`
}

// Text 返回该值对应的类名文本。
func (v *ClassValue) Text() string {
	switch {
	case v == nil:
		return ""
	case v.Quoted != nil:
		return string(*v.Quoted)
	case v.Word != nil:
		return *v.Word
	default:
		return ""
	}
}

// ClassString 把所有值拼成以空格分隔的类名串。
func (e *Entry) ClassString() string {
	parts := make([]string, 0, len(e.Classes))
	for _, c := range e.Classes {
		if t := strings.TrimSpace(c.Text()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// StringLiteral 在捕获时去掉引号。
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// ParseFile 解析类别文件内容，filename 仅用于错误位置。
func ParseFile(filename string, r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(filename, string(data))
}

// ParseString 解析字符串形式的类别文件。
func ParseString(filename, input string) (*File, error) {
	// 每个条目以换行结束，末行缺换行时补齐。
	if !strings.HasSuffix(input, "\n") {
		input += "\n"
	}
	return fileParser.ParseString(filename, input)
}
