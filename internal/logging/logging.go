/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package logging builds the zap logger of the service from its configuration.
package logging

import (
	"github.com/botobag/linkboard/graphql"
	"github.com/botobag/linkboard/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger writing to stderr. "json" selects zap's production encoding and "console"
// the human-friendly development one.
func New(cfg config.Log, options ...zap.Option) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, graphql.NewError("invalid log level", graphql.Op("logging.New"), graphql.ErrKindValidation, err)
	}

	var zapConfig zap.Config
	switch cfg.Format {
	case "", "json":
		zapConfig = zap.NewProductionConfig()
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
	default:
		return nil, graphql.NewError(`unknown log format "`+cfg.Format+`"`, graphql.Op("logging.New"),
			graphql.ErrKindValidation)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapConfig.Build(options...)
	if err != nil {
		return nil, graphql.NewError("cannot build logger", graphql.Op("logging.New"), err)
	}
	return logger, nil
}

// Must is like New but panics on failure.
func Must(cfg config.Log, options ...zap.Option) *zap.Logger {
	logger, err := New(cfg, options...)
	if err != nil {
		panic(err)
	}
	return logger
}
