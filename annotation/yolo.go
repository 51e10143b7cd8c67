package annotation

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ByLCY/wireframe/fileio"
)

// ImageSize 读取图片头部获取像素尺寸，不解码整张图。
func ImageSize(path string) (int, int, error) {
	f, err := fileio.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("解析图片 %s 失败: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// ParseYOLO 将 YOLO 标签（每行 "class_id x_center y_center width height"，坐标归一化）
// 换算为像素标注。classes 按 class_id 下标给出 label。
// 字段数不为 5 的行会被跳过；class_id 越界视为非法标注。
func ParseYOLO(r io.Reader, classes []string, imgW, imgH int) ([]Annotation, error) {
	if imgW <= 0 || imgH <= 0 {
		return nil, fmt.Errorf("图片尺寸无效: %dx%d", imgW, imgH)
	}
	var out []Annotation
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) != 5 {
			continue
		}
		index := len(out)
		classID, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, malformed(index, "class_id", err.Error())
		}
		if classID < 0 || classID >= len(classes) {
			return nil, malformed(index, "class_id", fmt.Sprintf("%d 超出类别数 %d", classID, len(classes)))
		}
		if strings.TrimSpace(classes[classID]) == "" {
			return nil, malformed(index, "class_id", fmt.Sprintf("%d 对应类别文件中的空行", classID))
		}

		var vals [4]float64
		for i, name := range []string{"x_center", "y_center", "width", "height"} {
			v, err := strconv.ParseFloat(parts[i+1], 64)
			if err != nil {
				return nil, malformed(index, name, err.Error())
			}
			vals[i] = v
		}

		x1, y1, x2, y2 := yoloToBox(vals[0], vals[1], vals[2], vals[3], imgW, imgH)
		id := classID
		a := Annotation{
			Label:   classes[classID],
			X:       float64(x1),
			Y:       float64(y1),
			Width:   float64(x2 - x1),
			Height:  float64(y2 - y1),
			ClassID: &id,
		}
		if err := Validate(index, a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// yoloToBox 把中心点格式换算为左上/右下像素坐标，截断取整并限制在图片范围内。
func yoloToBox(xc, yc, w, h float64, imgW, imgH int) (int, int, int, int) {
	fw, fh := float64(imgW), float64(imgH)
	x1 := clampInt(math.Trunc((xc-w/2)*fw), imgW)
	y1 := clampInt(math.Trunc((yc-h/2)*fh), imgH)
	x2 := clampInt(math.Trunc((xc+w/2)*fw), imgW)
	y2 := clampInt(math.Trunc((yc+h/2)*fh), imgH)
	if x2 < x1 {
		x2 = x1
	}
	if y2 < y1 {
		y2 = y1
	}
	return x1, y1, x2, y2
}

func clampInt(v float64, max int) int {
	if v < 0 {
		return 0
	}
	if v > float64(max) {
		return max
	}
	return int(v)
}
