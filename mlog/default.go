package mlog

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// zap实现的日志器。默认落盘走lumberjack滚动切割，
// 控制台版本见stdout.go，两者共用编码和级别映射
type loggerImp struct {
	level Level
	zl    *zap.SugaredLogger
}

func newDefaultLogger(logpath, logName string, level Level, stdOut bool) (*loggerImp, error) {
	// 默认使用当前路径
	if len(logpath) == 0 {
		logpath = "."
	}
	if len(logName) == 0 {
		logName = "default"
	}
	rotater := &lumberjack.Logger{
		Filename:   filepath.Join(logpath, logName+".log"),
		MaxSize:    100, // MB
		MaxBackups: 10,
		MaxAge:     30, // 天
		LocalTime:  true,
	}
	ws := zapcore.AddSync(rotater)
	if stdOut {
		ws = zapcore.NewMultiWriteSyncer(ws, zapcore.AddSync(os.Stdout))
	}
	core := zapcore.NewCore(consoleEncoder(), ws, zapLevel(level))
	l := &loggerImp{
		level: level,
		zl:    zap.New(core).Sugar(),
	}
	return l, nil
}

func consoleEncoder() zapcore.Encoder {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000000")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.ConsoleSeparator = " "
	return zapcore.NewConsoleEncoder(encCfg)
}

// Trace和Notice是zap没有的级别，分别落到Debug和Info上，
// 靠loggerImp自己的level先过滤一遍
func zapLevel(level Level) zapcore.Level {
	switch level {
	case TraceLevel, DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel, NoticeLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.FatalLevel
	}
}

func (me *loggerImp) IsLevelEnabled(level Level) bool {
	return me.level >= level
}

func (me *loggerImp) Sync() error {
	return me.zl.Sync()
}

func (me *loggerImp) Trace(args ...any) {
	if me.IsLevelEnabled(TraceLevel) {
		me.zl.Debug(args...)
	}
}

func (me *loggerImp) Tracef(format string, args ...any) {
	if me.IsLevelEnabled(TraceLevel) {
		me.zl.Debugf(format, args...)
	}
}

func (me *loggerImp) Debug(args ...any) {
	if me.IsLevelEnabled(DebugLevel) {
		me.zl.Debug(args...)
	}
}

func (me *loggerImp) Debugf(format string, args ...any) {
	if me.IsLevelEnabled(DebugLevel) {
		me.zl.Debugf(format, args...)
	}
}

func (me *loggerImp) Info(args ...any) {
	if me.IsLevelEnabled(InfoLevel) {
		me.zl.Info(args...)
	}
}

func (me *loggerImp) Infof(format string, args ...any) {
	if me.IsLevelEnabled(InfoLevel) {
		me.zl.Infof(format, args...)
	}
}

func (me *loggerImp) Notice(args ...any) {
	if me.IsLevelEnabled(NoticeLevel) {
		me.zl.Info(args...)
	}
}

func (me *loggerImp) Noticef(format string, args ...any) {
	if me.IsLevelEnabled(NoticeLevel) {
		me.zl.Infof(format, args...)
	}
}

func (me *loggerImp) Warn(args ...any) {
	if me.IsLevelEnabled(WarnLevel) {
		me.zl.Warn(args...)
	}
}

func (me *loggerImp) Warnf(format string, args ...any) {
	if me.IsLevelEnabled(WarnLevel) {
		me.zl.Warnf(format, args...)
	}
}

func (me *loggerImp) Error(args ...any) {
	if me.IsLevelEnabled(ErrorLevel) {
		me.zl.Error(args...)
	}
}

func (me *loggerImp) Errorf(format string, args ...any) {
	if me.IsLevelEnabled(ErrorLevel) {
		me.zl.Errorf(format, args...)
	}
}

func (me *loggerImp) Fatal(args ...any) {
	me.zl.Fatal(args...)
}

func (me *loggerImp) Fatalf(format string, args ...any) {
	me.zl.Fatalf(format, args...)
}
