// GORM to zap logging bridge. SQL tracing goes through the application
// logger so queries carry the request ID like every other log line.
package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopcore/infrastructure/persistence"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowThreshold = 200 * time.Millisecond

type gormLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLoggerAdapter builds a gorm logger.Interface backed by the
// package logger. Safe to call before Init; a nop logger is used then.
func NewGormLoggerAdapter(level gormlogger.LogLevel) gormlogger.Interface {
	return &gormLogger{
		level:         level,
		slowThreshold: defaultSlowThreshold,
	}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &gormLogger{level: level, slowThreshold: l.slowThreshold}
}

// base resolves the zap logger at call time so the adapter picks up a
// logger initialized after the DB connection was opened.
func (l *gormLogger) base(ctx context.Context) *zap.Logger {
	zl := log
	if zl == nil {
		return zap.NewNop()
	}
	if requestID := persistence.RequestIDFromContext(ctx); requestID != "" {
		zl = zl.With(zap.String("request_id", requestID))
	}
	return zl
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.base(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.base(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.base(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	sql, rows := fc()
	elapsed := time.Since(begin)
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
	}
	zl := l.base(ctx)

	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		zl.Error("Database operation failed", append(fields, zap.Error(err))...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		zl.Warn("Slow SQL query", fields...)
	case l.level >= gormlogger.Info:
		zl.Info("SQL query executed", fields...)
	}
}
