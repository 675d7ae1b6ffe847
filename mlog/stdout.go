package mlog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 控制台日志器：同一套zap编码，只写os.Stdout不落盘
func newStdoutLogger(level Level) *loggerImp {
	return newConsoleLogger(zapcore.AddSync(os.Stdout), level)
}

func newConsoleLogger(ws zapcore.WriteSyncer, level Level) *loggerImp {
	core := zapcore.NewCore(consoleEncoder(), ws, zapLevel(level))
	return &loggerImp{
		level: level,
		zl:    zap.New(core).Sugar(),
	}
}
