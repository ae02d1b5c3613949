package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	applog "github.com/localnerve/jam-build-bookmarks/internal/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormLogger writes GORM output to the service logger. Statements are traced at
// debug, slow ones at warn and failed ones at error.
type gormLogger struct {
	log   applog.Logger
	level logger.LogLevel
	slow  time.Duration
}

// NewGormLogger returns a GORM logger that writes to log at level
func NewGormLogger(log applog.Logger, level logger.LogLevel) logger.Interface {
	return &gormLogger{log: log, level: level, slow: slowQueryThreshold}
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		l.log.Info(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		l.log.Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		l.log.Error(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.log.Error("Query failed", applog.Error(err), applog.Duration("elapsed", elapsed),
			applog.String("sql", sql), applog.Int64("rows", rows))
	case elapsed > l.slow && l.level >= logger.Warn:
		sql, rows := fc()
		l.log.Warn("Slow query", applog.Duration("elapsed", elapsed),
			applog.String("sql", sql), applog.Int64("rows", rows))
	case l.level >= logger.Info:
		sql, rows := fc()
		l.log.Debug("Query", applog.Duration("elapsed", elapsed),
			applog.String("sql", sql), applog.Int64("rows", rows))
	}
}
