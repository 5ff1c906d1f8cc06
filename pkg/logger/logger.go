package logger

import (
	"os"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzlogrus "github.com/hertz-contrib/logger/logrus"
	"github.com/sirupsen/logrus"

	"MediaHub.com/config"
)

// Init 把 hlog 的输出统一交给 logrus，业务代码继续使用 hlog.CtxInfof 等接口
func Init(cfg config.Log) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	if strings.EqualFold(cfg.Format, "text") {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	hlog.SetLogger(hertzlogrus.NewLogger(hertzlogrus.WithLogger(l)))
	hlog.SetLevel(hlogLevel(level))

	// config 包在 Init 之前使用 logrus 标准 logger
	logrus.SetFormatter(l.Formatter)
	logrus.SetLevel(level)
	return l
}

func hlogLevel(level logrus.Level) hlog.Level {
	switch level {
	case logrus.TraceLevel:
		return hlog.LevelTrace
	case logrus.DebugLevel:
		return hlog.LevelDebug
	case logrus.WarnLevel:
		return hlog.LevelWarn
	case logrus.ErrorLevel:
		return hlog.LevelError
	case logrus.FatalLevel, logrus.PanicLevel:
		return hlog.LevelFatal
	default:
		return hlog.LevelInfo
	}
}
