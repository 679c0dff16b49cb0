// Package utils provides utilities that is used in all sub-packages in relaylist
package utils

import (
	"os"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	Log_debug = iota
	Log_info
	Log_warning
	Log_error //error一般用于输出一些 解析失败之类的错误, 但不致命
	Log_fatal

	DefaultLL = Log_info
)

// 日志写到 stderr, stdout 留给命令的输出.
//
// LogLevel 值越小越唠叨, 废话越多，值越大打印的越少，见log_开头的常量;
// 默认是 info级别.
var (
	LogLevel  int = DefaultLL
	ZapLogger *zap.Logger

	//若不为空, 则日志同时写入该文件 (按大小滚动)
	LogOutFileName string
)

func InitLog() {
	atomicLevel := zap.NewAtomicLevel()

	//我们的loglevel就是zap的loglevel+1
	atomicLevel.SetLevel(zapcore.Level(LogLevel - 1))

	var writes = []zapcore.WriteSyncer{zapcore.AddSync(os.Stderr)}

	if LogOutFileName != "" {
		writes = append(writes, zapcore.AddSync(&lumberjack.Logger{
			Filename:   LogOutFileName,
			MaxSize:    10, //MB
			MaxBackups: 3,
			MaxAge:     28, //days
		}))
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:  "msg",
		LevelKey:    "level",
		TimeKey:     "time",
		FunctionKey: "func",
		EncodeLevel: zapcore.CapitalColorLevelEncoder,
		EncodeTime:  zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000"),
		EncodeName:  zapcore.FullNameEncoder,
		LineEnding:  zapcore.DefaultLineEnding,
	}), zapcore.NewMultiWriteSyncer(writes...), atomicLevel)

	ZapLogger = zap.New(core)
	ZapLogger.Debug("log initialized", zap.Int("level", LogLevel), zap.String("file", LogOutFileName))
}

// 作为库使用时 调用者可能从未 InitLog, 此时所有 CanLog* 都返回nil
func canLogLevel(l zapcore.Level, msg string) *zapcore.CheckedEntry {
	if ZapLogger == nil {
		return nil
	}
	return ZapLogger.Check(l, msg)
}

func CanLogLevel(l int, msg string) *zapcore.CheckedEntry {
	return canLogLevel(zapcore.Level(l-1), msg)
}

func CanLogErr(msg string) *zapcore.CheckedEntry {
	return canLogLevel(zap.ErrorLevel, msg)
}

func CanLogInfo(msg string) *zapcore.CheckedEntry {
	return canLogLevel(zap.InfoLevel, msg)
}

func CanLogWarn(msg string) *zapcore.CheckedEntry {
	return canLogLevel(zap.WarnLevel, msg)
}

func CanLogDebug(msg string) *zapcore.CheckedEntry {
	return canLogLevel(zap.DebugLevel, msg)
}
