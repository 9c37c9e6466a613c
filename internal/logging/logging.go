// Package logging builds the zap logger shared by the harness.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a console logger writing to w. Info and above are logged unless
// verbose is set. When logFile is not empty every debug entry is also kept in
// a rotated file there.
func New(w io.Writer, verbose bool, logFile string) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level),
	}

	if logFile != "" {
		fileConfig := zap.NewDevelopmentEncoderConfig()
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(fileConfig), getLogWriter(logFile), zapcore.DebugLevel))
	}
	return zap.New(zapcore.NewTee(cores...))
}

func getLogWriter(path string) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
	})
}
