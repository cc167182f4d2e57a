// Package log writes diagnostics through logrus to a daily file in the logs directory.
// Nothing is emitted unless logs.write is set.
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playcheck-cli/playcheck/constant"
	"github.com/playcheck-cli/playcheck/filesystem"
	"github.com/playcheck-cli/playcheck/key"
	"github.com/playcheck-cli/playcheck/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var enabled bool

// std is the untagged logger behind the package level functions.
var std = Tagged{entry: logrus.NewEntry(logrus.StandardLogger())}

// Setup opens today's log file and applies the configured format and level.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	path := filepath.Join(where.Logs(), fmt.Sprintf("%s-%s.log", constant.Playcheck, time.Now().Format("2006-01-02")))
	f, err := filesystem.API().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	logrus.SetOutput(f)
	logrus.SetFormatter(formatter(viper.GetBool(key.LogsJson)))

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	return nil
}

func formatter(json bool) logrus.Formatter {
	if json {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}
}

func Error(args ...interface{}) {
	if enabled {
		std.entry.Error(args...)
	}
}

func Errorf(format string, args ...interface{}) { std.Errorf(format, args...) }
func Warnf(format string, args ...interface{})  { std.Warnf(format, args...) }
func Infof(format string, args ...interface{})  { std.Infof(format, args...) }
func Debugf(format string, args ...interface{}) { std.Debugf(format, args...) }
