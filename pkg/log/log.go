// Copyright 2026 Forgegate Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/wire"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.RWMutex
	global *zap.SugaredLogger
)

// ProviderSet is the Wire provider set for the log package.
var ProviderSet = wire.NewSet(ProvideLogger)

// Conf defines logger configuration.
type Conf struct {
	Output     string `mapstructure:"output"`
	Path       string `mapstructure:"path"`
	Filename   string `mapstructure:"filename"`
	Level      string `mapstructure:"level"`
	KeepDays   int    `mapstructure:"keepDays"`
	RotateSize int    `mapstructure:"rotateSize"`
	RotateNum  int    `mapstructure:"rotateNum"`
}

// Logger wraps zap.SugaredLogger to satisfy dependency injection usage.
type Logger struct {
	*zap.SugaredLogger
}

// ProvideLogger creates a dependency-injected logger instance.
func ProvideLogger(conf *Conf) (*Logger, error) {
	l, err := New(conf)
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: l}, nil
}

// SetDefaults returns default logger configuration.
func SetDefaults() *Conf {
	return &Conf{
		Output:     "stdout",
		Path:       "./logs",
		Filename:   "forgegate.log",
		Level:      "INFO",
		KeepDays:   7,
		RotateSize: 100,
		RotateNum:  10,
	}
}

// Validate validates and normalizes logger configuration.
func (c *Conf) Validate() error {
	if c == nil {
		return fmt.Errorf("logger config is nil")
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
	if c.Level == "" {
		c.Level = "INFO"
	}
	if c.Output == "file" {
		if c.Path == "" {
			return fmt.Errorf("log path is required when output is 'file'")
		}
		if c.Filename == "" {
			c.Filename = "forgegate.log"
		}
		if c.RotateSize <= 0 {
			c.RotateSize = 100
		}
		if c.RotateNum <= 0 {
			c.RotateNum = 10
		}
		if c.KeepDays <= 0 {
			c.KeepDays = 7
		}
	}
	return nil
}

// New creates a zap sugared logger and also updates the global logger instance.
func New(conf *Conf) (*zap.SugaredLogger, error) {
	l, err := buildLogger(conf)
	if err != nil {
		return nil, err
	}

	mu.Lock()
	global = l
	mu.Unlock()

	l.Debugw("logger initialized", "output", conf.Output, "level", conf.Level)
	return l, nil
}

// buildLogger creates a zap sugared logger from configuration.
func buildLogger(conf *Conf) (*zap.SugaredLogger, error) {
	if conf == nil {
		conf = SetDefaults()
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	sink, err := buildOutputSink(conf)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		sink,
		parseLogLevel(conf.Level),
	)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar(), nil
}

// buildOutputSink resolves the configured output into a zap write syncer.
func buildOutputSink(conf *Conf) (zapcore.WriteSyncer, error) {
	switch strings.ToLower(strings.TrimSpace(conf.Output)) {
	case "", "stdout", "console":
		return zapcore.AddSync(os.Stdout), nil
	case "stderr":
		return zapcore.AddSync(os.Stderr), nil
	case "file":
		if err := os.MkdirAll(conf.Path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(conf.Path, conf.Filename),
			MaxSize:    conf.RotateSize,
			MaxBackups: conf.RotateNum,
			MaxAge:     conf.KeepDays,
			Compress:   true,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported log output: %s", conf.Output)
	}
}

func parseLogLevel(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Init initializes the global logger instance.
func Init(conf *Conf) error {
	_, err := New(conf)
	return err
}

// MustInit initializes the global logger and panics on failure.
func MustInit(conf *Conf) {
	if err := Init(conf); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

// SetLevel rebuilds the global logger with a new level, used on config reload.
func SetLevel(conf *Conf, level string) error {
	if conf == nil {
		conf = SetDefaults()
	}
	conf.Level = level
	return Init(conf)
}

func getGlobal() *zap.SugaredLogger {
	mu.RLock()
	l := global
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		l, err := buildLogger(SetDefaults())
		if err != nil {
			panic(fmt.Sprintf("failed to build default logger: %v", err))
		}
		global = l
	}
	return global
}

// Sync flushes buffered log entries.
func Sync() {
	_ = getGlobal().Sync()
}
