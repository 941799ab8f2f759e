package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Loggers 按用途拆分的文件日志
type Loggers struct {
	Send *log.Logger
	Cron *log.Logger

	files []*os.File
}

var (
	once    sync.Once
	loggers *Loggers
	initErr error
)

// Init 初始化 ~/.wecombot/logs 下的日志文件，多次调用安全。
func Init(logDir string) (*Loggers, error) {
	once.Do(func() {
		if logDir == "" {
			initErr = fmt.Errorf("log dir is empty")
			return
		}
		if err := os.MkdirAll(logDir, 0755); err != nil {
			initErr = fmt.Errorf("failed to create log dir: %w", err)
			return
		}

		open := func(name string) (*log.Logger, *os.File, error) {
			path := filepath.Join(logDir, name)
			f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
			if err != nil {
				return nil, nil, err
			}
			l := log.New(f, "", log.LstdFlags|log.Lmicroseconds)
			return l, f, nil
		}

		l := &Loggers{}
		var files []*os.File

		var err error
		l.Send, files, err = attach(open, files, "send.log")
		if err != nil {
			initErr = err
			return
		}
		l.Cron, files, err = attach(open, files, "cron.log")
		if err != nil {
			initErr = err
			return
		}

		l.files = files
		loggers = l
	})

	return loggers, initErr
}

func attach(open func(string) (*log.Logger, *os.File, error), files []*os.File, name string) (*log.Logger, []*os.File, error) {
	l, f, err := open(name)
	if err != nil {
		return nil, files, fmt.Errorf("open %s: %w", name, err)
	}
	return l, append(files, f), nil
}

// Get 返回已初始化的日志（未初始化或初始化失败时为 nil）
func Get() *Loggers {
	return loggers
}

// Truncate 截断过长的字符串，保持日志可读
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
