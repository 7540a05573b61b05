// Package logging with the slog setup shared by modules and tests
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// DefaultTimeFormat of log timestamps
const DefaultTimeFormat = "Jan _2 15:04:05.0000"

// SetLogging initializes the default logger with a level and optional log file.
//
// levelName is one of debug, info, warn or error. Default is info.
// logFile is the optional file to write to in addition to stdout. "" for stdout only.
func SetLogging(levelName string, logFile string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(levelName) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var writer io.Writer = os.Stdout
	if logFile != "" {
		fp, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
		if err != nil {
			slog.Error("unable to open log file. Continuing with stdout only",
				"logFile", logFile, "err", err.Error())
		} else {
			writer = io.MultiWriter(os.Stdout, fp)
		}
	}
	logHandler := tint.NewHandler(writer, &tint.Options{
		AddSource: true, Level: level, TimeFormat: DefaultTimeFormat})
	logger := slog.New(logHandler)
	slog.SetDefault(logger)
	return logger
}
