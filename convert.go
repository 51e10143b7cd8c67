package main

import (
	"flag"
	"fmt"

	"github.com/ByLCY/wireframe/annotation"
	"github.com/ByLCY/wireframe/classmap"
	"github.com/ByLCY/wireframe/fileio"
	"github.com/ByLCY/wireframe/layout"
	"github.com/ByLCY/wireframe/logging"
)

type convertOptions struct {
	Labels  string
	Image   string
	Classes string
	Output  string
	Preview string
}

func mainConvert(args []string) int {
	fs := flag.NewFlagSet("wireframe convert", flag.ExitOnError)
	opts := convertOptions{}
	fs.StringVar(&opts.Labels, "labels", "labels/image.txt", "YOLO 标签文件路径")
	fs.StringVar(&opts.Image, "image", "images/image.png", "标签对应的截图，用于换算像素坐标")
	fs.StringVar(&opts.Classes, "classes", "classes.txt", "类别文件路径，行号即 class id")
	fs.StringVar(&opts.Output, "out", "annotations.json", "标注 JSON 输出路径")
	fs.StringVar(&opts.Preview, "preview", "", "在截图上叠加包围盒的预览输出路径（.pdf/.svg）")
	logLevel := fs.String("log-level", "", "日志级别 debug|info|warn|error")
	_ = fs.Parse(args)

	logging.InitLogger(*logLevel)
	if err := runConvert(opts); err != nil {
		logging.Logger.Error("转换标注失败", "err", err)
		return 1
	}
	return 0
}

// runConvert 把 YOLO 标签换算为像素标注，可选输出叠加在截图上的预览。
func runConvert(opts convertOptions) error {
	mapping, err := classmap.Load(opts.Classes)
	if err != nil {
		return fmt.Errorf("读取类别文件失败: %w", err)
	}
	width, height, err := annotation.ImageSize(opts.Image)
	if err != nil {
		return err
	}
	logging.Logger.Debug("image loaded", "path", opts.Image, "width", width, "height", height)

	f, err := fileio.Open(opts.Labels)
	if err != nil {
		return err
	}
	defer f.Close()
	anns, err := annotation.ParseYOLO(f, mapping.Labels(), width, height)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.Labels, err)
	}

	var previewBytes []byte
	if opts.Preview != "" {
		result, err := layout.Build(anns, mapping, nil, layout.BuildOptions{
			Meta:      layout.DocumentMeta{Title: opts.Image},
			MinWidth:  float64(width),
			MinHeight: float64(height),
		})
		if err != nil {
			return err
		}
		if previewBytes, err = renderPreview(result, opts.Preview, opts.Image); err != nil {
			return err
		}
	}

	data, err := annotation.Marshal(anns)
	if err != nil {
		return err
	}
	outputs := []fileio.Output{{Path: opts.Output, Data: data}}
	if previewBytes != nil {
		outputs = append(outputs, fileio.Output{Path: opts.Preview, Data: previewBytes})
	}
	if err := fileio.WriteFilesAtomic(outputs...); err != nil {
		return err
	}
	logging.Logger.Info("annotations written", "path", opts.Output, "count", len(anns))
	if previewBytes != nil {
		logging.Logger.Info("preview written", "path", opts.Preview)
	}
	return nil
}
