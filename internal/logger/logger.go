package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

func console(prefix string, out io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    noColor,
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
		},
		FormatMessage: func(i interface{}) string {
			return fmt.Sprintf("[%s] %v", prefix, i)
		},
	}
}

// New creates a prefixed console logger at the given level. Level accepts
// debug, info, warn and error; anything else falls back to info.
func New(prefix string, level string) zerolog.Logger {
	return build(level, console(prefix, os.Stdout, false))
}

// NewWithFile creates a prefixed logger writing to the console and a
// rotating log file under dir.
func NewWithFile(prefix string, level string, dir string) zerolog.Logger {
	rotatingLogFile := &lumberjack.Logger{
		Filename: filepath.Join(dir, prefix+".log"),
		MaxSize:  10,
		MaxAge:   15,
		Compress: true,
	}

	multi := zerolog.MultiLevelWriter(
		console(prefix, os.Stdout, false),
		console(prefix, rotatingLogFile, true),
	)
	return build(level, multi)
}

func build(level string, w io.Writer) zerolog.Logger {
	logger := zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(zerolog.InfoLevel)

	switch level {
	case "debug":
		logger = logger.Level(zerolog.DebugLevel)
	case "info":
		logger = logger.Level(zerolog.InfoLevel)
	case "warn":
		logger = logger.Level(zerolog.WarnLevel)
	case "error":
		logger = logger.Level(zerolog.ErrorLevel)
	}
	return logger
}
