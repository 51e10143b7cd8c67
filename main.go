package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ByLCY/wireframe/annotation"
	"github.com/ByLCY/wireframe/classmap"
	"github.com/ByLCY/wireframe/config"
	"github.com/ByLCY/wireframe/fileio"
	"github.com/ByLCY/wireframe/layout"
	"github.com/ByLCY/wireframe/logging"
	"github.com/ByLCY/wireframe/renderer"
	canvasrenderer "github.com/ByLCY/wireframe/renderer/canvas"
	htmlrenderer "github.com/ByLCY/wireframe/renderer/html"
	"github.com/ByLCY/wireframe/watcher"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "convert" {
		os.Exit(mainConvert(os.Args[2:]))
	}
	os.Exit(mainRender(os.Args[1:]))
}

func mainRender(args []string) int {
	fs := flag.NewFlagSet("wireframe", flag.ExitOnError)
	configPath := fs.String("config", "", "配置文件路径（默认 wireframe.yaml）")
	input := fs.String("in", "", "标注 JSON 路径（默认 annotations.json）")
	classes := fs.String("classes", "", "类别文件路径（默认 classes.txt）")
	output := fs.String("out", "", "HTML 输出路径（默认 output.html）")
	preview := fs.String("preview", "", "包围盒预览输出路径（.pdf/.svg）")
	debug := fs.String("debug", "", "布局调试 JSON 输出路径")
	dataJSON := fs.String("data", "", "绑定到文本占位符的 JSON 数据，@file.json 表示从文件读取")
	minify := fs.Bool("minify", false, "压缩 HTML 输出")
	placeholders := fs.Bool("placeholders", false, "为空文本的元素填充示例内容")
	watch := fs.Bool("watch", false, "输入变化时重新生成")
	logLevel := fs.String("log-level", "", "日志级别 debug|info|warn|error")
	writeConfig := fs.String("write-config", "", "把合并后的配置写到该路径后退出")
	_ = fs.Parse(args)

	logging.InitLogger("")
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Logger.Error("读取配置失败", "err", err)
		return 1
	}
	// 只有显式传入的参数覆盖配置
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "in":
			cfg.Input = *input
		case "classes":
			cfg.Classes = *classes
		case "out":
			cfg.Output = *output
		case "preview":
			cfg.Preview = *preview
		case "debug":
			cfg.Debug = *debug
		case "minify":
			cfg.Minify = *minify
		case "placeholders":
			cfg.Placeholders = *placeholders
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	logging.SetLogLevel(cfg.LogLevel)

	if *writeConfig != "" {
		if err := config.WriteConfig(*writeConfig, cfg); err != nil {
			logging.Logger.Error("写入配置失败", "err", err)
			return 1
		}
		logging.Logger.Info("config written", "path", *writeConfig)
		return 0
	}

	data, err := parseData(*dataJSON)
	if err != nil {
		logging.Logger.Error("解析 data JSON 失败", "err", err)
		return 1
	}

	if err := run(cfg, data); err != nil {
		logging.Logger.Error("生成 HTML 失败", "err", err)
		if !*watch {
			return 1
		}
	}
	if !*watch {
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logging.Logger.Info("watching for changes", "input", cfg.Input, "classes", cfg.Classes)
	err = watcher.Watch(ctx, []string{cfg.Input, cfg.Classes}, watcher.DefaultDebounce, func() {
		if err := run(cfg, data); err != nil {
			logging.Logger.Error("生成 HTML 失败", "err", err)
		}
	})
	if err != nil {
		logging.Logger.Error("监听失败", "err", err)
		return 1
	}
	return 0
}

// run 串联读取、布局与渲染；所有产物都生成成功后才写文件。
func run(cfg config.FileConfig, data any) error {
	mapping, err := loadMapping(cfg)
	if err != nil {
		return err
	}
	anns, err := annotation.LoadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("读取标注失败: %w", err)
	}
	logging.Logger.Debug("annotations loaded", "path", cfg.Input, "count", len(anns))

	result, err := layout.Build(anns, mapping, data, layout.BuildOptions{
		Meta:         cfg.Meta(),
		Placeholders: cfg.Placeholders,
	})
	if err != nil {
		return err
	}

	var r renderer.Renderer = htmlrenderer.NewRenderer(htmlrenderer.Options{Minify: cfg.Minify})
	page, err := r.Render(result)
	if err != nil {
		return err
	}

	var previewBytes []byte
	if cfg.Preview != "" {
		if previewBytes, err = renderPreview(result, cfg.Preview, ""); err != nil {
			return err
		}
	}

	outputs := []fileio.Output{{Path: cfg.Output, Data: page}}
	if previewBytes != nil {
		outputs = append(outputs, fileio.Output{Path: cfg.Preview, Data: previewBytes})
	}
	if cfg.Debug != "" {
		debugBytes, err := layout.DebugJSON(result)
		if err != nil {
			return fmt.Errorf("生成调试 JSON 失败: %w", err)
		}
		outputs = append(outputs, fileio.Output{Path: cfg.Debug, Data: debugBytes})
	}

	// 所有产物一起落盘，任一路径不可写时不覆盖任何文件
	if err := fileio.WriteFilesAtomic(outputs...); err != nil {
		return err
	}
	logging.Logger.Info("HTML written", "path", cfg.Output, "elements", len(result.Page.Boxes))
	if previewBytes != nil {
		logging.Logger.Info("preview written", "path", cfg.Preview)
	}
	if cfg.Debug != "" {
		logging.Logger.Debug("layout debug written", "path", cfg.Debug)
	}
	return nil
}

func loadMapping(cfg config.FileConfig) (*classmap.Mapping, error) {
	mapping, err := classmap.Load(cfg.Classes)
	if err != nil {
		return nil, fmt.Errorf("读取类别文件失败: %w", err)
	}
	if len(cfg.ClassOverrides) > 0 {
		mapping = mapping.Override(cfg.ClassOverrides)
	}
	return mapping, nil
}

func renderPreview(result *layout.Result, path, background string) ([]byte, error) {
	format, err := canvasrenderer.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	var r renderer.Renderer = canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
		Format:     format,
		Background: background,
	})
	out, err := r.Render(result)
	if err != nil {
		return nil, fmt.Errorf("渲染预览失败: %w", err)
	}
	return out, nil
}

func parseData(raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}
	b := []byte(raw)
	if path, ok := strings.CutPrefix(raw, "@"); ok {
		var err error
		if b, err = fileio.ReadFile(path); err != nil {
			return nil, err
		}
	}
	var data any
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, err
	}
	return data, nil
}
