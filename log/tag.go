package log

import logrus "github.com/sirupsen/logrus"

// Tagged emits entries labelled with a session tag.
type Tagged struct {
	entry *logrus.Entry
}

// Tag returns a logger whose entries carry the given tag as the "tag" field.
func Tag(tag string) Tagged {
	return Tagged{entry: logrus.WithField("tag", tag)}
}

func (t Tagged) logf(level logrus.Level, format string, args ...interface{}) {
	if enabled {
		t.entry.Logf(level, format, args...)
	}
}

func (t Tagged) Errorf(format string, args ...interface{}) {
	t.logf(logrus.ErrorLevel, format, args...)
}
func (t Tagged) Warnf(format string, args ...interface{}) { t.logf(logrus.WarnLevel, format, args...) }
func (t Tagged) Infof(format string, args ...interface{}) { t.logf(logrus.InfoLevel, format, args...) }
func (t Tagged) Debugf(format string, args ...interface{}) {
	t.logf(logrus.DebugLevel, format, args...)
}
