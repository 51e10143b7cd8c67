// Package fileio 负责输入文件读取与输出文件的原子写入。
package fileio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	// ErrInputNotFound 表示标注文件、类别文件等输入不存在。
	ErrInputNotFound = errors.New("input not found")
	// ErrOutputWrite 表示输出路径不可写。
	ErrOutputWrite = errors.New("output write failure")
)

// ReadFile 读取输入文件；文件不存在时返回包装了 ErrInputNotFound 的错误。
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("读取 %s 失败: %w", path, err)
	}
	return data, nil
}

// Open 与 ReadFile 相同，但返回文件句柄，由调用方负责关闭。
func Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("打开 %s 失败: %w", path, err)
	}
	return f, nil
}

// Output 是一次批量写入中的单个目标文件。
type Output struct {
	Path string
	Data []byte
}

// WriteFileAtomic 先写入同目录临时文件再 rename 覆盖目标，
// 失败时不会留下半成品文件。
func WriteFileAtomic(path string, data []byte) error {
	return WriteFilesAtomic(Output{Path: path, Data: data})
}

// WriteFilesAtomic 把所有输出先写入各自目录下的临时文件，全部成功后才依次 rename。
// 任一目标不可写时，已有文件都不会被覆盖。
func WriteFilesAtomic(outputs ...Output) error {
	staged := make([]string, 0, len(outputs))
	cleanup := func() {
		for _, name := range staged {
			_ = os.Remove(name)
		}
	}
	for _, out := range outputs {
		tmpName, err := stage(out.Path, out.Data)
		if err != nil {
			cleanup()
			return err
		}
		staged = append(staged, tmpName)
	}
	for i, out := range outputs {
		if err := os.Rename(staged[i], out.Path); err != nil {
			staged = staged[i:]
			cleanup()
			return fmt.Errorf("%w: %s: %v", ErrOutputWrite, out.Path, err)
		}
	}
	return nil
}

// stage 在目标目录写好临时文件并返回其路径。
func stage(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: 创建目录 %s: %v", ErrOutputWrite, dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrOutputWrite, path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("%w: %s: %v", ErrOutputWrite, path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("%w: %s: %v", ErrOutputWrite, path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("%w: %s: %v", ErrOutputWrite, path, err)
	}
	return tmpName, nil
}
