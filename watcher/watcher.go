// Package watcher 监听输入文件变化并在去抖后触发回调。
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ByLCY/wireframe/logging"
)

// DefaultDebounce 合并编辑器保存时产生的一串事件。
const DefaultDebounce = 350 * time.Millisecond

const watchedOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watch 监听 paths 所在目录，任一文件变化后在 debounce 内只调用一次 fn。
// 阻塞直到 ctx 结束；fn 在单独的 goroutine 中串行执行。
func Watch(ctx context.Context, paths []string, debounce time.Duration, fn func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		// 监听目录而不是文件，编辑器的 rename 保存也能被捕获
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("监听目录 %s 失败: %w", dir, err)
		}
		dirs[dir] = struct{}{}
	}

	trigger := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-trigger:
				fn()
			}
		}
	}()

	log := logging.Current()
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			<-done
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				<-done
				return nil
			}
			if _, watched := targets[filepath.Clean(ev.Name)]; !watched {
				continue
			}
			if ev.Op&watchedOps == 0 {
				continue
			}
			log.Debug("file changed", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)
		case <-timer.C:
			select {
			case trigger <- struct{}{}:
			default:
			}
		case err, ok := <-w.Errors:
			if !ok {
				<-done
				return nil
			}
			log.Warn("fsnotify error", "err", err)
		}
	}
}
