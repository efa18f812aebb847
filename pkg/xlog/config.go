package xlog

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewConfig returns the default config: text at info level on os.Stderr,
// with secrets redacted.
func NewConfig() Config {
	return Config{
		Level:        LevelInfo,
		AddSource:    false,
		AttrReplacer: ChainReplacer(NormalizeSourceAttrReplacer(), RedactAttrReplacer(DefaultRedactedKeys...)),
		StdFormat:    "text",
		StdWriter:    os.Stderr,
		MaxSize:      30,
	}
}

// Config describes how a Logger is built.
type Config struct {
	// Level is the minimum level logged, default LevelInfo.
	Level slog.Level
	// AddSource adds the file and line of the call site.
	AddSource bool
	// AttrReplacer rewrites attributes before they are logged.
	AttrReplacer AttrReplacer

	// StdFormat is the console format, one of "text" or "json".
	StdFormat string
	// StdWriter is the console output, default os.Stderr so that command
	// output on stdout stays clean.
	StdWriter io.Writer

	// Path is the log file, records are written as JSON. Empty disables the
	// file output.
	Path string
	// MaxSize is the size in megabytes before the file is rotated.
	MaxSize int
	// MaxAge is the number of days rotated files are kept, 0 keeps them all.
	MaxAge int
	// MaxBackups is the number of rotated files kept, 0 keeps them all.
	MaxBackups int
	// Compress gzips rotated files.
	Compress bool
}

// BuildHandler creates a new slog.Handler with config.
func (c *Config) BuildHandler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource:   c.AddSource,
		Level:       c.Level,
		ReplaceAttr: c.AttrReplacer,
	}
	stdCreator := TextHandlerCreator
	if c.StdFormat == "json" {
		stdCreator = JSONHandlerCreator
	}
	stdout := c.StdWriter
	if stdout == nil {
		stdout = os.Stderr
	}

	handlers := []slog.Handler{NewLeveledHandlerCreator(stdCreator)(stdout, opts)}
	if fw := c.buildFileWriter(); fw != nil {
		handlers = append(handlers, NewLeveledHandlerCreator(JSONHandlerCreator)(fw, opts))
	}
	if len(handlers) == 1 {
		return handlers[0]
	}
	return MultiHandler(handlers...)
}

func (c *Config) buildFileWriter() io.Writer {
	if c.Path == "" {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   c.Path,
		MaxSize:    c.MaxSize,
		MaxAge:     c.MaxAge,
		MaxBackups: c.MaxBackups,
		Compress:   c.Compress,
	}
}
