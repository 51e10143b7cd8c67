// Package config 读取 wireframe.yaml 并叠加环境变量，命令行参数最后覆盖。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/wireframe/fileio"
	"github.com/ByLCY/wireframe/layout"
)

// DefaultPath 是未显式指定时尝试读取的配置文件。
const DefaultPath = "wireframe.yaml"

// 环境变量名。
const (
	EnvConfig   = "WIREFRAME_CONFIG"
	EnvInput    = "WIREFRAME_INPUT"
	EnvClasses  = "WIREFRAME_CLASSES"
	EnvOutput   = "WIREFRAME_OUTPUT"
	EnvLogLevel = "WIREFRAME_LOG_LEVEL"
	EnvMinify   = "WIREFRAME_MINIFY"
)

// FileConfig 对应 wireframe.yaml。
type FileConfig struct {
	Input          string            `yaml:"input"`
	Classes        string            `yaml:"classes"`
	Output         string            `yaml:"output"`
	Preview        string            `yaml:"preview,omitempty"`
	Debug          string            `yaml:"debug,omitempty"`
	Title          string            `yaml:"title"`
	Lang           string            `yaml:"lang"`
	Script         string            `yaml:"script"`
	Stylesheets    []string          `yaml:"stylesheets,omitempty"`
	BodyClass      string            `yaml:"body_class,omitempty"`
	Minify         bool              `yaml:"minify"`
	Placeholders   bool              `yaml:"placeholders"`
	LogLevel       string            `yaml:"log_level"`
	ClassOverrides map[string]string `yaml:"class_overrides,omitempty"`
}

// Default 返回默认配置。
func Default() FileConfig {
	meta := layout.DefaultMeta()
	return FileConfig{
		Input:    "annotations.json",
		Classes:  "classes.txt",
		Output:   "output.html",
		Title:    meta.Title,
		Lang:     meta.Lang,
		Script:   meta.Script,
		LogLevel: "info",
	}
}

// Meta 返回文档外壳信息。
func (c FileConfig) Meta() layout.DocumentMeta {
	return layout.DocumentMeta{
		Title:       c.Title,
		Lang:        c.Lang,
		Script:      c.Script,
		Stylesheets: c.Stylesheets,
		BodyClass:   c.BodyClass,
	}
}

// ReadConfig 在默认值之上读取 YAML 文件；未出现的字段保留默认值。
func ReadConfig(path string) (FileConfig, error) {
	cfg := Default()
	b, err := fileio.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("解析配置 %s 失败: %w", path, err)
	}
	return cfg, nil
}

// WriteConfig 写出配置文件。
func WriteConfig(path string, cfg FileConfig) error {
	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	return fileio.WriteFileAtomic(path, b)
}

// Load 按优先级合并：默认值 < 配置文件 < 环境变量（含 .env）。
// path 为空时使用 WIREFRAME_CONFIG 或 DefaultPath，默认路径不存在不算错误。
func Load(path string) (FileConfig, error) {
	// .env 缺失是常态
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		if env := os.Getenv(EnvConfig); env != "" {
			path, explicit = env, true
		} else {
			path = DefaultPath
		}
	}

	cfg, err := ReadConfig(path)
	if err != nil {
		if explicit || !isNotFound(err) {
			return cfg, err
		}
		cfg = Default()
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *FileConfig) error {
	for _, kv := range []struct {
		env string
		dst *string
	}{
		{EnvInput, &cfg.Input},
		{EnvClasses, &cfg.Classes},
		{EnvOutput, &cfg.Output},
		{EnvLogLevel, &cfg.LogLevel},
	} {
		if v := strings.TrimSpace(os.Getenv(kv.env)); v != "" {
			*kv.dst = v
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvMinify)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s 取值无效: %w", EnvMinify, err)
		}
		cfg.Minify = b
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, fileio.ErrInputNotFound) || errors.Is(err, fs.ErrNotExist)
}
