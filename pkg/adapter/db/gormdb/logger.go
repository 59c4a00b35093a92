// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gormdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/momeni/libweb/pkg/core/log"
)

// SlowThreshold is the statement duration which is reported with
// the warning level.
const SlowThreshold = 200 * time.Millisecond

// statementLogger passes the GORM statement traces to the default
// slog logger, so they share its level, format, and request id.
// Failed and slow statements are warnings and other ones are logged
// at the debug level.
type statementLogger struct {
	level logger.LogLevel
	slow  time.Duration
}

func newStatementLogger() statementLogger {
	return statementLogger{level: logger.Info, slow: SlowThreshold}
}

func (l statementLogger) LogMode(level logger.LogLevel) logger.Interface {
	l.level = level
	return l
}

func (l statementLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		log.Info(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l statementLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		log.Warn(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l statementLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		log.Error(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l statementLogger) Trace(
	ctx context.Context, begin time.Time,
	fc func() (sql string, rows int64), err error,
) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	attrs := func() []slog.Attr {
		sql, rows := fc()
		return []slog.Attr{
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
		}
	}
	switch {
	case err != nil && l.level >= logger.Error &&
		!errors.Is(err, gorm.ErrRecordNotFound):
		log.Warn(ctx, "statement failed", append(attrs(), log.Err("err", err))...)
	case l.slow > 0 && elapsed > l.slow && l.level >= logger.Warn:
		log.Warn(ctx, "slow statement", attrs()...)
	case l.level >= logger.Info &&
		slog.Default().Enabled(ctx, slog.LevelDebug):
		log.Debug(ctx, "statement", attrs()...)
	}
}

// ParamsFilter keeps the placeholders of sql, so passwords and other
// arguments are not written to the logs.
func (l statementLogger) ParamsFilter(
	_ context.Context, sql string, _ ...any,
) (string, []any) {
	return sql, nil
}
