// Package watch re-runs a job whenever its input file is rewritten.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"lob-charts/infrastructure/logger"
)

// Config 监听配置
type Config struct {
	Settle time.Duration // 最后一次写入后等待的静默时间，避免读到写了一半的文件
}

// DefaultConfig 默认监听配置
func DefaultConfig() Config {
	return Config{Settle: 500 * time.Millisecond}
}

// Watcher 监听单个文件所在目录，文件写入/创建/重命名后触发回调
type Watcher struct {
	path    string
	cfg     Config
	watcher *fsnotify.Watcher
	log     *logger.Logger
}

// New 创建监听器；监听目录而不是文件本身，以便覆盖“删除后重建”的写法
func New(path string, cfg Config, log *logger.Logger) (*Watcher, error) {
	if cfg.Settle <= 0 {
		cfg.Settle = DefaultConfig().Settle
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Watcher{path: abs, cfg: cfg, watcher: fw, log: log}, nil
}

// Run blocks until ctx is done, invoking onChange once per burst of writes.
// Errors from onChange are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	defer w.watcher.Close()

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			// 只处理写入、创建和重命名事件
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(w.cfg.Settle)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			// 记录错误但继续监听
			w.log.LogError(err, map[string]interface{}{"path": w.path})
		case <-timer.C:
			w.log.Info("input_changed", zap.String("path", w.path))
			if err := onChange(ctx); err != nil {
				w.log.LogError(err, map[string]interface{}{"path": w.path, "stage": "rerun"})
			}
		}
	}
}
